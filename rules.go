package nahw

import "strings"

// Category is a grammatical category label. The canonical labels are the
// Arabic names used on the wire; each also has an English alias.
type Category string

const (
	ActiveParticiple    Category = "اسم الفاعل"
	IntensiveNoun       Category = "صيغ المبالغة"
	PassiveParticiple   Category = "اسم المفعول"
	ElativeNoun         Category = "اسم التفضيل"
	NounOfTimeAndPlace  Category = "اسم الزمان والمكان"
	MimiVerbalNoun      Category = "المصدر الميمي"
	DeputizedAgent      Category = "نائب الفاعل"
	DirectObject        Category = "المفعول به"
	AbsoluteObject      Category = "المفعول المطلق"
	ObjectOfPurpose     Category = "المفعول لأجله"
	NominalSentence     Category = "الجملة الأسمية"
	CopulaAuxiliaryVerb Category = "النواسخ"
)

// Syntax-role tags as reported by the disambiguator.
const (
	RoleDeputizedAgent  = "نائب فاعل"
	RoleDirectObject    = "مفعول به"
	RoleAbsoluteObject  = "مفعول مطلق"
	RoleObjectOfPurpose = "مفعول لأجله"
	RoleTopic           = "مبتدأ"
)

var (
	activeParticipleMarker  = Canonical("فاعل")
	passiveParticipleMarker = Canonical("مفعول")
	elativeMarker           = Canonical("أفعل")

	// Must stay disjoint from the participle markers above.
	intensiveTemplates = canonicalSet("فَعَّال", "مِفْعَال", "فَعُول", "فَعِيل")

	timePlaceTemplates = canonicalSet("مَفعَل", "مَفعِل")
	mimiTemplate       = Canonical("مَفعَل")

	// Multi-word entries never match a single whitespace token; they are
	// kept so the list reads as the grammar books give it.
	copulaVerbs = canonicalSet(
		"كان", "أصبح", "أضحى", "ظل", "بات", "صار", "ليس",
		"ما زال", "ما برح", "ما فتئ", "ما انفك",
	)
)

// rule pairs a category predicate with its primary-detail template.
type rule struct {
	match  func(word string, bag AttributeBag) bool
	render func(bag AttributeBag) string
}

var rules = map[Category]rule{
	ActiveParticiple: {
		match: func(_ string, b AttributeBag) bool {
			return b.IsNoun() && b.Pattern.Contains(activeParticipleMarker)
		},
		render: renderPattern,
	},
	IntensiveNoun: {
		match: func(_ string, b AttributeBag) bool {
			return b.IsNoun() && b.Pattern.In(intensiveTemplates)
		},
	},
	PassiveParticiple: {
		match: func(_ string, b AttributeBag) bool {
			return b.IsNoun() && b.Pattern.Contains(passiveParticipleMarker)
		},
		render: renderSourceVerb,
	},
	ElativeNoun: {
		match: func(_ string, b AttributeBag) bool {
			return b.IsNoun() && b.Pattern.Contains(elativeMarker)
		},
		render: fixed(elativeDetail),
	},
	NounOfTimeAndPlace: {
		match: func(_ string, b AttributeBag) bool {
			return b.IsNoun() && b.Pattern.In(timePlaceTemplates)
		},
	},
	MimiVerbalNoun: {
		match: func(_ string, b AttributeBag) bool {
			return b.IsNoun() && b.Pattern.Is(mimiTemplate)
		},
	},
	DeputizedAgent: {
		match:  hasRole(RoleDeputizedAgent),
		render: fixed(deputizedAgentDetail),
	},
	DirectObject: {
		match: hasRole(RoleDirectObject),
	},
	AbsoluteObject: {
		match: hasRole(RoleAbsoluteObject),
	},
	ObjectOfPurpose: {
		match: hasRole(RoleObjectOfPurpose),
	},
	NominalSentence: {
		// Recognizing nominal sentences needs a parse of the whole clause,
		// which the single syntax-role tag cannot give. Never matches.
		match: func(string, AttributeBag) bool { return false },
	},
	CopulaAuxiliaryVerb: {
		match: func(word string, _ AttributeBag) bool {
			_, ok := copulaVerbs[Canonical(word)]
			return ok
		},
	},
}

// categoryOrder is the listing order of the vocabulary.
var categoryOrder = []Category{
	ActiveParticiple,
	IntensiveNoun,
	PassiveParticiple,
	ElativeNoun,
	NounOfTimeAndPlace,
	MimiVerbalNoun,
	DeputizedAgent,
	DirectObject,
	AbsoluteObject,
	ObjectOfPurpose,
	NominalSentence,
	CopulaAuxiliaryVerb,
}

var aliasOf = map[Category]string{
	ActiveParticiple:    "active-participle",
	IntensiveNoun:       "intensive-noun",
	PassiveParticiple:   "passive-participle",
	ElativeNoun:         "elative-noun",
	NounOfTimeAndPlace:  "noun-of-time-and-place",
	MimiVerbalNoun:      "verbal-noun-of-place",
	DeputizedAgent:      "deputized-agent",
	DirectObject:        "direct-object",
	AbsoluteObject:      "absolute-object",
	ObjectOfPurpose:     "object-of-purpose",
	NominalSentence:     "nominal-sentence",
	CopulaAuxiliaryVerb: "copula/auxiliary-verb",
}

// byLabel maps canonical labels and aliases to their category.
var byLabel = func() map[string]Category {
	m := make(map[string]Category, 2*len(rules))
	for c := range rules {
		m[Canonical(string(c))] = c
	}
	for c, alias := range aliasOf {
		m[alias] = c
	}
	return m
}()

// Resolve returns the category a label names, accepting canonical labels
// and aliases. Surrounding space is ignored; case is not folded.
func Resolve(label string) (Category, bool) {
	c, ok := byLabel[Canonical(strings.TrimSpace(label))]
	return c, ok
}

func hasRole(tag string) func(string, AttributeBag) bool {
	tag = Canonical(tag)
	return func(_ string, b AttributeBag) bool {
		return b.SyntaxRole.Is(tag)
	}
}

// Match reports whether word, with attributes bag, belongs to the category
// named by label. Labels outside the vocabulary never match.
func Match(label, word string, bag AttributeBag) bool {
	c, ok := Resolve(label)
	if !ok {
		return false
	}
	return rules[c].match(word, bag)
}
