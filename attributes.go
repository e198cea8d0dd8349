package nahw

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Attr is an optional string attribute. The zero value is absent, which is
// different from a present empty string.
//
// The value is kept as supplied; comparisons use its NFC form, so shadda and
// a short vowel match in either order.
type Attr struct {
	value   string
	key     string
	present bool
}

// Absent is the absent attribute.
var Absent = Attr{}

// Some returns a present attribute holding v.
func Some(v string) Attr {
	return Attr{value: v, key: Canonical(v), present: true}
}

// Get returns the value, as supplied, and whether it is present.
func (a Attr) Get() (string, bool) {
	return a.value, a.present
}

// Present reports whether the attribute is set.
func (a Attr) Present() bool {
	return a.present
}

// Is reports whether the attribute is present and equal to v up to NFC.
func (a Attr) Is(v string) bool {
	return a.present && a.key == Canonical(v)
}

// Contains reports whether the attribute is present and contains sub up to
// NFC.
func (a Attr) Contains(sub string) bool {
	return a.present && strings.Contains(a.key, Canonical(sub))
}

// In reports whether the attribute is present and a member of set, whose
// keys must be in NFC.
func (a Attr) In(set map[string]struct{}) bool {
	if !a.present {
		return false
	}
	_, ok := set[a.key]
	return ok
}

// Or returns the value, or def when absent.
func (a Attr) Or(def string) string {
	if !a.present {
		return def
	}
	return a.value
}

func (a Attr) String() string {
	if !a.present {
		return "<absent>"
	}
	return a.value
}

// AttributeBag is the normalized view of a token's top analysis.
// It is a plain value; copies never share state.
type AttributeBag struct {
	POS        Attr
	Pattern    Attr
	Root       Attr
	Lemma      Attr
	SyntaxRole Attr
	SourceVerb Attr
}

// IsNoun reports whether the part of speech is NOUN.
func (b AttributeBag) IsNoun() bool {
	return b.POS.Is(string(POSNoun))
}

// Empty reports whether every attribute is absent.
func (b AttributeBag) Empty() bool {
	return b == AttributeBag{}
}

// Adapt turns the top analysis of a token into an AttributeBag. A nil record
// is the normal "no analysis" case and yields an all-absent bag.
func Adapt(rec *Record) (AttributeBag, error) {
	var bag AttributeBag
	if rec == nil {
		return bag, nil
	}
	fields := []struct {
		name string
		src  *string
		dst  *Attr
	}{
		{"pos", rec.POS, &bag.POS},
		{"pattern", rec.Pattern, &bag.Pattern},
		{"root", rec.Root, &bag.Root},
		{"lemma", rec.Lemma, &bag.Lemma},
		{"syntax_role", rec.SyntaxRole, &bag.SyntaxRole},
		{"source_verb", rec.SourceVerb, &bag.SourceVerb},
	}
	for _, f := range fields {
		if f.src == nil {
			continue
		}
		if !utf8.ValidString(*f.src) {
			return AttributeBag{}, fmt.Errorf("%w: field %s is not valid UTF-8", ErrMalformedAnalysis, f.name)
		}
		*f.dst = Some(*f.src)
	}
	return bag, nil
}
