// Package fuzzy implements the text normalization and relevance scoring
// used to match search queries against product names.
package fuzzy

import (
	"strings"
)

// Normalize canonicalizes a string for matching and indexing: ASCII
// lowercasing, `_` and `:` become spaces, whitespace runs collapse to a
// single space, leading/trailing whitespace is trimmed. Idempotent.
func Normalize(s string) string {
	lowered := strings.ToLower(s)
	replaced := strings.NewReplacer("_", " ", ":", " ").Replace(lowered)
	return strings.Join(strings.Fields(replaced), " ")
}

// PrettyName turns a raw product id into a display name: the part before an
// optional `:` is split on `_` and title-cased; a non-empty tail is appended
// in parentheses. "ENCHANTED_BOOK" -> "Enchanted Book", "LOG:2" -> "Log (2)".
func PrettyName(id string) string {
	base, tail, _ := strings.Cut(id, ":")

	words := strings.Split(base, "_")
	for i, w := range words {
		words[i] = capitalize(strings.ToLower(w))
	}
	pretty := strings.Join(words, " ")

	if tail != "" {
		return pretty + " (" + tail + ")"
	}
	return pretty
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	runes := []rune(w)
	return strings.ToUpper(string(runes[0])) + string(runes[1:])
}
