/*
Package glyphing converts text to sequences of positioned glyphs.

Shaping is delegated to implementations of Shaper, found in sub-packages:
package harfbuzz uses the HarfBuzz port of textlayout, package monospace
places glyphs onto a grid of fixed-width cells.

All positions and advances of a glyph sequence are given in pen units,
i.e. 1/64 of a device pixel (26.6 fixed point), for the typecase handed
to the shaper.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package glyphing

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// tracer traces with key 'textimg.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("textimg.glyphs")
}

// Direction is the direction to typeset text in.
type Direction int

// Direction to typeset text in. DirectionAuto leaves it to the shaper to
// guess the direction from the text's script.
const (
	DirectionAuto Direction = iota
	LeftToRight
	RightToLeft
	TopToBottom
	BottomToTop
)

func (d Direction) String() string {
	switch d {
	case LeftToRight:
		return "ltr"
	case RightToLeft:
		return "rtl"
	case TopToBottom:
		return "ttb"
	case BottomToTop:
		return "btt"
	}
	return "auto"
}

// ParseDirection reads a direction from one of "ltr", "rtl", "ttb", "btt"
// or "auto". The empty string is taken as "auto".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return DirectionAuto, nil
	case "ltr":
		return LeftToRight, nil
	case "rtl":
		return RightToLeft, nil
	case "ttb":
		return TopToBottom, nil
	case "btt":
		return BottomToTop, nil
	}
	return DirectionAuto, core.Error(core.EINVALID, "unknown text direction %q", s)
}

// A GlyphRecord is a glyph as output by a shaper. Offsets and advances are
// in pen units (1/64 pixel) at the size of the typecase used for shaping.
type GlyphRecord struct {
	GID       ot.GlyphIndex // glyph index within font
	ClusterID int           // position of code-point(s) for this glyph in original string
	CodePoint rune          // code-point of first rune to produce this glyph
	XOffset   fixed.Int26_6 // displacement of the glyph from the pen position
	YOffset   fixed.Int26_6 //
	XAdvance  fixed.Int26_6 // pen advance after glyph has been set
	YAdvance  fixed.Int26_6 //
}

func (g GlyphRecord) String() string {
	return fmt.Sprintf("(GID=%d, cluster=%d, advance=%s)", g.GID, g.ClusterID, g.XAdvance)
}

// A Shaper creates a sequence of glyphs from a sequence of
// Unicode code-points. Glyphs are taken from a font, given in a specific point-size.
//
// Clients may provide additional information in Params, as well as
// textual context ([2][]rune): runes before and after the text, which take
// part in shaping decisions but do not produce glyphs.
// Clients may provide a glyph buffer to avoid allocations.
type Shaper interface {
	Shape(io.RuneReader, []GlyphRecord, [][]rune, Params) (GlyphSequence, error)
}

// ShaperFunc adapts a plain function to the Shaper interface.
type ShaperFunc func(io.RuneReader, []GlyphRecord, [][]rune, Params) (GlyphSequence, error)

// Shape calls f.
func (f ShaperFunc) Shape(text io.RuneReader, buf []GlyphRecord, context [][]rune, params Params) (GlyphSequence, error) {
	return f(text, buf, context, params)
}

// DefaultLanguage is the language assumed for text if none is given.
var DefaultLanguage = language.AmericanEnglish

// Params collects shaping parameters. Params are passed by value with each
// call to a shaper; shapers keep no parameter state between calls.
type Params struct {
	Font      *font.TypeCase  // use a font at a given point-size
	Direction Direction       // writing direction; DirectionAuto to guess it
	Script    language.Script // 4-letter ISO 15924 script identifier; zero to guess it
	Language  language.Tag    // BCP 47 language tag
	Features  []FeatureRange  // OpenType features to apply
}

// FeatureEnd denotes the end of the text for feature ranges.
const FeatureEnd = math.MaxInt

// FeatureRange tells a shaper to turn a certain OpenType feature on or off for a
// run of code-points.
type FeatureRange struct {
	Feature    ot.Tag // 4-letter feature tag
	Arg        int    // optional argument for this feature
	On         bool   // turn it on or off?
	Start, End int    // position of code-points to apply feature for
}

// IsGlobal is a predicate: does the feature range span the whole text?
func (frng FeatureRange) IsGlobal() bool {
	return frng.Start == 0 && frng.End == FeatureEnd
}

func (frng FeatureRange) String() string {
	var b strings.Builder
	if !frng.On {
		b.WriteByte('-')
	}
	b.WriteString(frng.Feature.String())
	if !frng.IsGlobal() {
		if frng.End == FeatureEnd {
			fmt.Fprintf(&b, "[%d:]", frng.Start)
		} else {
			fmt.Fprintf(&b, "[%d:%d]", frng.Start, frng.End)
		}
	}
	if frng.On && frng.Arg > 1 {
		fmt.Fprintf(&b, "=%d", frng.Arg)
	}
	return b.String()
}

// GlyphSequence contains a sequence of shaped glyphs.
type GlyphSequence struct {
	Glyphs []GlyphRecord // resulting sequence of glyphs
}

// Len returns the number of glyphs in the sequence.
func (seq GlyphSequence) Len() int {
	return len(seq.Glyphs)
}

// Advance returns the sum of all glyph advances of the sequence.
func (seq GlyphSequence) Advance() fixed.Point26_6 {
	var adv fixed.Point26_6
	for _, g := range seq.Glyphs {
		adv.X += g.XAdvance
		adv.Y += g.YAdvance
	}
	return adv
}
