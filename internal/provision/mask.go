package provision

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

var maskRunes = []rune{'*', '#', 'x', '-', '•'}

// Mask hides a secret behind a string of the same length. The mask character
// is never one that occurs in the secret.
func Mask(secret string) string {
	n := utf8.RuneCountInString(secret)
	if n == 0 {
		return ""
	}
	return strings.Repeat(string(maskRune(secret)), n)
}

// maskRune picks the first preferred rune absent from secret, then walks up
// from '!' through visible runes. A secret has finitely many runes, so the
// walk always ends.
func maskRune(secret string) rune {
	for _, r := range maskRunes {
		if !strings.ContainsRune(secret, r) {
			return r
		}
	}
	for r := '!'; ; r++ {
		if unicode.IsGraphic(r) && !unicode.IsSpace(r) && !strings.ContainsRune(secret, r) {
			return r
		}
	}
}
