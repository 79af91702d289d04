// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dotless

import (
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// presentationForms covers Arabic Presentation Forms-A and -B.
var presentationForms = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1},
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1},
	},
}

// FoldPresentationForms rewrites positional glyph code points (initial,
// medial, final, isolated and ligature forms) to their base letters with
// NFKC. All other text is left byte-identical. The map does not do this on
// its own: presentation forms are not table keys and pass through unchanged.
func FoldPresentationForms(text string) string {
	t := runes.If(runes.In(presentationForms), norm.NFKC, nil)
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}
