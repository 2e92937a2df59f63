package flow

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignDeterministic(t *testing.T) {
	params := map[string]string{
		"apiKey": "test-key",
		"token":  "tok-123",
	}

	first := Sign(params, "secret")
	second := Sign(params, "secret")

	assert.Equal(t, first, second)
}

func TestSignOrderIndependent(t *testing.T) {
	// maps iterate in random order; the signature must not depend on it
	a := map[string]string{"apiKey": "k", "commerceOrder": "FG-1", "amount": "19990"}
	b := map[string]string{"amount": "19990", "apiKey": "k", "commerceOrder": "FG-1"}

	assert.Equal(t, Sign(a, "secret"), Sign(b, "secret"))
}

func TestSignMatchesHMAC(t *testing.T) {
	params := map[string]string{
		"apiKey": "k",
		"token":  "tok",
	}

	// sorted keys: apiKey, token -> "apiKey" + "k" + "token" + "tok"
	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("apiKey" + "k" + "token" + "tok"))

	assert.Equal(t, hex.EncodeToString(mac.Sum(nil)), Sign(params, "secret"))
}

func TestSignFormat(t *testing.T) {
	sig := Sign(map[string]string{"apiKey": "k"}, "secret")

	require.Len(t, sig, 64)
	_, err := hex.DecodeString(sig)
	assert.NoError(t, err)
	assert.Equal(t, strings.ToLower(sig), sig)
}

func TestSignSecretMatters(t *testing.T) {
	params := map[string]string{"apiKey": "k", "token": "tok"}

	assert.NotEqual(t, Sign(params, "secret-a"), Sign(params, "secret-b"))
}
