package nahw

// SubjectOfCopula is the special-request label for the subject of كان and
// its sisters.
const SubjectOfCopula = "اسم كان"

type specialRule struct {
	label string
	alias string
	match func(word string, bag AttributeBag) bool
}

var specials = []specialRule{
	{
		label: SubjectOfCopula,
		alias: "subject-of-copula",
		// Approximation: the disambiguator tags the subject of a copula
		// as a topic, so a topic noun is taken to be one.
		match: func(_ string, b AttributeBag) bool {
			return b.IsNoun() && b.SyntaxRole.Is(Canonical(RoleTopic))
		},
	},
}

// specialByLabel is keyed by folded label and alias.
var specialByLabel = func() map[string]*specialRule {
	m := make(map[string]*specialRule, 2*len(specials))
	for i := range specials {
		r := &specials[i]
		m[foldLabel(r.label)] = r
		m[foldLabel(r.alias)] = r
	}
	return m
}()

// MatchSpecial reports whether word satisfies the free-form special request
// label. Labels are compared case-insensitively; unknown labels never match.
func MatchSpecial(label, word string, bag AttributeBag) bool {
	r, ok := specialByLabel[foldLabel(label)]
	if !ok {
		return false
	}
	return r.match(word, bag)
}
