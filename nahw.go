// Package nahw classifies the tokens of a disambiguated Arabic sentence into
// grammatical categories (participles, elative nouns, objects, copulas, ...)
// and explains every match with the token's root, pattern, part of speech
// and lemma.
//
// Morphological analysis and disambiguation are not done here: they are
// supplied by an Analyzer injected at construction time, which returns the
// top-ranked analysis for each whitespace-delimited token.
package nahw

import (
	"context"
	"fmt"
)

// Analyzer turns a tokenized sentence into one disambiguated Word per token.
// Implementations are expected to be constructed once at process start and
// shared between requests.
type Analyzer interface {
	Disambiguate(ctx context.Context, tokens []string) ([]Word, error)
}

// AnalyzerFunc adapts an ordinary function to the Analyzer interface.
type AnalyzerFunc func(ctx context.Context, tokens []string) ([]Word, error)

// Disambiguate calls f(ctx, tokens).
func (f AnalyzerFunc) Disambiguate(ctx context.Context, tokens []string) ([]Word, error) {
	return f(ctx, tokens)
}

// Classifier holds the injected Analyzer and provides the public API.
// It keeps no per-request state and is safe for concurrent use as long as
// its Analyzer is.
type Classifier struct {
	analyzer Analyzer
}

// New returns a Classifier backed by a.
func New(a Analyzer) (*Classifier, error) {
	if a == nil {
		return nil, fmt.Errorf("nahw: nil analyzer")
	}
	return &Classifier{analyzer: a}, nil
}

// Analyze tokenizes req.Text, disambiguates it and returns every
// (token, category) match in token order. Any collaborator failure aborts
// the whole request; no partial result list is returned.
func (c *Classifier) Analyze(ctx context.Context, req Request) ([]MatchResult, error) {
	tokens := Tokenize(req.Text)
	if len(tokens) == 0 {
		return nil, nil
	}
	words, err := c.analyzer.Disambiguate(ctx, tokens)
	if err != nil {
		return nil, fmt.Errorf("nahw: disambiguate: %w", err)
	}
	if len(words) != len(tokens) {
		return nil, fmt.Errorf("%w: %d tokens, %d disambiguated words",
			ErrMalformedAnalysis, len(tokens), len(words))
	}
	// Results report the tokens as submitted, whatever the analyzer echoes.
	aligned := make([]Word, len(words))
	copy(aligned, words)
	for i := range aligned {
		aligned[i].Word = tokens[i]
	}
	return Aggregate(aligned, req.Categories, req.Special)
}

// CategoryInfo describes one registered label.
type CategoryInfo struct {
	Label   string `json:"label"`
	Alias   string `json:"alias,omitempty"`
	Special bool   `json:"special"`
}

// Categories lists every registered category, then every special-request
// label, in a stable order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, 0, len(categoryOrder)+len(specials))
	for _, c := range categoryOrder {
		out = append(out, CategoryInfo{Label: string(c), Alias: aliasOf[c]})
	}
	for _, s := range specials {
		out = append(out, CategoryInfo{Label: s.label, Alias: s.alias, Special: true})
	}
	return out
}

// CanonicalLabel returns the canonical label that label names, for regular
// categories and special requests alike.
func CanonicalLabel(label string) (string, bool) {
	if c, ok := Resolve(label); ok {
		return string(c), true
	}
	if r, ok := specialByLabel[foldLabel(label)]; ok {
		return r.label, true
	}
	return "", false
}
