package nahw

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Canonical returns s in Unicode NFC. Vocalized Arabic can put shadda and a
// short vowel in either order; NFC fixes the order so templates written in
// source compare equal to patterns coming from the disambiguator.
func Canonical(s string) string {
	return norm.NFC.String(s)
}

// Tokenize splits text on runs of Unicode white space, mirroring the
// whitespace tokenization the disambiguator is fed with.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// foldLabel normalizes a request label for lookup: surrounding space is
// trimmed, the text is put in NFC and lower-cased.
func foldLabel(label string) string {
	return strings.ToLower(Canonical(strings.TrimSpace(label)))
}

// canonicalSet builds a membership set from words, each put in NFC.
func canonicalSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[Canonical(w)] = struct{}{}
	}
	return set
}
