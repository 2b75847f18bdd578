package monospace

import (
	"io"
	"unicode/utf8"

	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"github.com/npillmayer/textimg/engine/glyphing"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/segment"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/image/math/fixed"
)

// cellReference is the code-point whose advance defines the cell width,
// if no cell width is given explicitly.
const cellReference = '0'

type msshape struct {
	cell             fixed.Int26_6
	graphemeSplitter *segment.Segmenter
	context          *uax11.Context
}

// Shaper creates a shaper for monospace typesetting.
// A cell width may be given which will then be used for shaping text.
// If it is zero, the advance of digit zero of the font in use is taken.
// If context is nil, a Latin context is assumed for East Asian widths.
//
// A monospace shaper is not safe for concurrent use.
func Shaper(cell fixed.Int26_6, context *uax11.Context) glyphing.Shaper {
	sh := &msshape{
		cell:    cell,
		context: context,
	}
	if context == nil {
		sh.context = uax11.LatinContext
	}
	onGraphemes := grapheme.NewBreaker(1)
	sh.graphemeSplitter = segment.NewSegmenter(onGraphemes)
	grapheme.SetupGraphemeClasses()
	return sh
}

// Shape creates a glyph sequence from a text. Context is ignored, as are
// script, language and features in p. Glyphs are taken from p.Font, if
// given; otherwise glyph indices are left at 0.
func (ms *msshape) Shape(text io.RuneReader, buf []glyphing.GlyphRecord, ctx [][]rune, p glyphing.Params) (glyphing.GlyphSequence, error) {
	if text == nil {
		return glyphing.GlyphSequence{}, nil
	}
	cell := ms.cell
	if cell == 0 && p.Font != nil {
		cell = p.Font.Advance(cellReference)
	}
	if cell == 0 {
		cell = fixed.I(10)
	}
	vertical := p.Direction == glyphing.TopToBottom || p.Direction == glyphing.BottomToTop
	seq := glyphing.GlyphSequence{Glyphs: buf[:0]}
	ms.graphemeSplitter.Init(text)
	i := 0
	for ms.graphemeSplitter.Next() {
		grphm := ms.graphemeSplitter.Bytes()
		w := uax11.Width(grphm, ms.context)
		codepoint, _ := utf8.DecodeRune(grphm)
		g := glyphing.GlyphRecord{
			ClusterID: i,
			CodePoint: codepoint,
		}
		if vertical {
			g.YAdvance = cell
		} else {
			g.XAdvance = fixed.Int26_6(w) * cell
		}
		if p.Font != nil {
			g.GID = ot.GlyphIndex(p.Font.GlyphIndex(codepoint))
		}
		seq.Glyphs = append(seq.Glyphs, g)
		i += utf8.RuneCount(grphm)
	}
	if p.Direction == glyphing.RightToLeft {
		reverse(seq.Glyphs)
	}
	tracer().Debugf("monospace shaper placed %d clusters, cell = %s", len(seq.Glyphs), cell)
	return seq, nil
}

func reverse(glyphs []glyphing.GlyphRecord) {
	for i, j := 0, len(glyphs)-1; i < j; i, j = i+1, j-1 {
		glyphs[i], glyphs[j] = glyphs[j], glyphs[i]
	}
}
