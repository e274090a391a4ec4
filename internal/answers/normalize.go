package answers

import (
	"fmt"
	"hash/fnv"
	"strings"
	"unicode"
)

// Normalize canonicalizes a form-field label for cache keying: lowercase,
// punctuation stripped, runs of whitespace collapsed to single spaces.
func Normalize(label string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(label) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Hash returns a stable short hash of a normalized label, used as answer
// provenance.
func Hash(normalized string) string {
	h := fnv.New64a()
	h.Write([]byte(normalized))
	return fmt.Sprintf("%016x", h.Sum64())
}
