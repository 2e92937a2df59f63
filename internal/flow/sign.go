package flow

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"sort"
)

// Sign computes the Flow request signature: parameters are sorted by key,
// concatenated as key||value pairs without delimiter, and signed with
// HMAC-SHA256 over the UTF-8 bytes. The result is lowercase hex. The same
// scheme authenticates every call to the provider, so it must stay
// byte-identical to Flow's own implementation.
func Sign(params map[string]string, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	mac := hmac.New(sha256.New, []byte(secret))
	for _, k := range keys {
		mac.Write([]byte(k))
		mac.Write([]byte(params[k]))
	}

	return hex.EncodeToString(mac.Sum(nil))
}
