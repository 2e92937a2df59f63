package service

import (
	"strings"
	"unicode"
)

var slugReplacements = map[rune]string{
	'á': "a", 'é': "e", 'í': "i", 'ó': "o", 'ú': "u", 'ü': "u", 'ñ': "n",
}

// slugify builds a URL-friendly slug: lowercase, accents folded, runs of
// non-alphanumeric characters collapsed to single hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true

	for _, r := range strings.ToLower(s) {
		if repl, ok := slugReplacements[r]; ok {
			b.WriteString(repl)
			lastHyphen = false
			continue
		}
		if unicode.IsLetter(r) && r < 128 || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.Trim(b.String(), "-")
}
