package nahw

// PartOfSpeech is the part-of-speech tag reported by the disambiguator.
type PartOfSpeech string

const (
	POSNoun        PartOfSpeech = "NOUN"
	POSVerb        PartOfSpeech = "VERB"
	POSAdjective   PartOfSpeech = "ADJ"
	POSPronoun     PartOfSpeech = "PRON"
	POSAdverb      PartOfSpeech = "ADV"
	POSPreposition PartOfSpeech = "PREP"
	POSConjunction PartOfSpeech = "CONJ"
	POSParticle    PartOfSpeech = "PART"
	POSProperNoun  PartOfSpeech = "PROPN"
)

// Record is one raw analysis as produced by the disambiguator. A nil field
// means the disambiguator did not report it.
type Record struct {
	POS        *string `json:"pos,omitempty" yaml:"pos,omitempty"`
	Pattern    *string `json:"pattern,omitempty" yaml:"pattern,omitempty"`
	Root       *string `json:"root,omitempty" yaml:"root,omitempty"`
	Lemma      *string `json:"lemma,omitempty" yaml:"lemma,omitempty"`
	SyntaxRole *string `json:"syntax_role,omitempty" yaml:"syntax_role,omitempty"`
	SourceVerb *string `json:"source_verb,omitempty" yaml:"source_verb,omitempty"`
}

// Word is a token together with its ranked analyses, best first.
type Word struct {
	Word     string   `json:"word"`
	Analyses []Record `json:"analyses"`
}

// Top returns the best-ranked analysis, or nil when there is none.
func (w Word) Top() *Record {
	if len(w.Analyses) == 0 {
		return nil
	}
	return &w.Analyses[0]
}

// Request is a classification request.
type Request struct {
	// Text is the sentence; it is split on whitespace.
	Text string
	// Categories are evaluated in order; duplicates are evaluated again.
	Categories []string
	// Special is an optional free-form label evaluated after Categories.
	Special string
}

// MatchResult is one (token, category) match.
type MatchResult struct {
	Token string `json:"token"`
	Type  string `json:"type"`
	// Details is the category-specific explanation, possibly empty.
	Details string `json:"details"`
	// AdditionalDetails is nil when the token has none of root, pattern,
	// part of speech and lemma.
	AdditionalDetails []string `json:"additionalDetails"`
}

// Str returns a pointer to s. It is a convenience for building Records.
func Str(s string) *string {
	return &s
}
