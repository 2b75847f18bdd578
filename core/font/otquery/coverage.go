package otquery

import (
	"github.com/npillmayer/textimg/core/font"
)

// TextInfo reports how well a font covers a text.
type TextInfo struct {
	Text          string
	Length        int  // number of code-points
	Renderable    int  // code-points mapped to a glyph
	NonRenderable int  // code-points mapped to .notdef
	MissingEmpty  bool // .notdef is not visible, i.e. non-renderable code-points vanish
}

// Coverage counts the code-points of text for which a typecase has a glyph.
func Coverage(tc *font.TypeCase, text string) TextInfo {
	info := TextInfo{Text: text}
	for _, r := range text {
		info.Length++
		if tc.GlyphIndex(r) == 0 {
			info.NonRenderable++
		} else {
			info.Renderable++
		}
	}
	info.MissingEmpty = !tc.MissingGlyphExists()
	tracer().Debugf("coverage of %q: %d of %d code-points", text, info.Renderable, info.Length)
	return info
}
