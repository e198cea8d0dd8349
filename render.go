package nahw

const (
	unknownValue         = "غير معروف"
	elativeDetail        = "صيغة التفضيل"
	deputizedAgentDetail = "يحل محل الفاعل عند بناء الفعل للمجهول"
)

// Secondary-detail labels, in output order.
const (
	rootLabel    = "الجذر: "
	patternLabel = "الوزن: "
	posLabel     = "نوع الكلمة: "
	lemmaLabel   = "المصدر: "
)

func renderPattern(b AttributeBag) string {
	return b.Pattern.Or(unknownValue)
}

func renderSourceVerb(b AttributeBag) string {
	return b.SourceVerb.Or(unknownValue)
}

func fixed(text string) func(AttributeBag) string {
	return func(AttributeBag) string { return text }
}

// Render returns the primary explanation for label and the secondary
// attribute list for bag. Labels without a template, including unknown ones,
// get an empty primary detail.
func Render(label string, bag AttributeBag) (string, []string) {
	var primary string
	if c, ok := Resolve(label); ok {
		if r := rules[c].render; r != nil {
			primary = r(bag)
		}
	}
	return primary, secondaryDetails(bag)
}

// secondaryDetails lists root, pattern, part of speech and lemma, in that
// order, skipping absent ones. It returns nil, not an empty slice, when all
// four are absent.
func secondaryDetails(b AttributeBag) []string {
	var out []string
	for _, f := range []struct {
		label string
		attr  Attr
	}{
		{rootLabel, b.Root},
		{patternLabel, b.Pattern},
		{posLabel, b.POS},
		{lemmaLabel, b.Lemma},
	} {
		if v, ok := f.attr.Get(); ok {
			out = append(out, f.label+v)
		}
	}
	return out
}
