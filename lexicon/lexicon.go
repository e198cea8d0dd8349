// Package lexicon is a file-backed Analyzer. Each surface form maps to a
// ranked list of analyses; the first one listed in the data file is the one
// a disambiguation picks.
//
// Forms are looked up exactly (after NFC) first, then with short vowels,
// shadda, sukun and tatweel removed, so a vocalized token still finds an
// unvocalized entry and the other way round.
package lexicon

import (
	"context"

	"github.com/cours-d-arabe/nahw"
)

// Lexicon maps surface forms to ranked analyses. It is read-only once
// loaded and safe for concurrent use.
type Lexicon struct {
	exact map[string][]nahw.Record
	bare  map[string][]nahw.Record
	n     int
}

// New returns an empty Lexicon.
func New() *Lexicon {
	return &Lexicon{
		exact: make(map[string][]nahw.Record),
		bare:  make(map[string][]nahw.Record),
	}
}

// Add appends rec to the analyses of form. Analyses added first rank first.
func (l *Lexicon) Add(form string, rec nahw.Record) {
	key := nahw.Canonical(form)
	l.exact[key] = append(l.exact[key], rec)
	b := Bare(key)
	l.bare[b] = append(l.bare[b], rec)
	l.n++
}

// Len returns the number of analyses loaded.
func (l *Lexicon) Len() int {
	return l.n
}

// Lookup returns the ranked analyses of form, or nil if it is unknown.
func (l *Lexicon) Lookup(form string) []nahw.Record {
	key := nahw.Canonical(form)
	if recs, ok := l.exact[key]; ok {
		return recs
	}
	return l.bare[Bare(key)]
}

// Disambiguate returns one Word per token. Unknown tokens get no analyses.
// Records are copied so callers cannot alter the lexicon.
func (l *Lexicon) Disambiguate(ctx context.Context, tokens []string) ([]nahw.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	words := make([]nahw.Word, len(tokens))
	for i, tok := range tokens {
		words[i] = nahw.Word{Word: tok}
		if recs := l.Lookup(tok); len(recs) > 0 {
			words[i].Analyses = append([]nahw.Record(nil), recs...)
		}
	}
	return words, nil
}
