package lexicon

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// vocalization covers fathatan through sukun, the superscript alif and
// tatweel. Hamza carriers are letters in NFC and are kept.
var vocalization = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0640, Hi: 0x0640, Stride: 1},
		{Lo: 0x064B, Hi: 0x0652, Stride: 1},
		{Lo: 0x0670, Hi: 0x0670, Stride: 1},
	},
}

// Bare strips vocalization marks from s and returns it in NFC.
func Bare(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(vocalization)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
