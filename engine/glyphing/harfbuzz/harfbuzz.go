/*
Package harfbuzz uses HarfBuzz to convert text to sequences of glyphs.

HarfBuzz is used through the Go port of package
github.com/benoitkugler/textlayout. Fonts are handed to HarfBuzz as the
tables parsed from their scalable parent, and HarfBuzz is configured to output
positions in pen units (1/64 pixel) at the typecase's size.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package harfbuzz

import (
	"bytes"
	"encoding/binary"
	"io"
	"unicode"

	hbtt "github.com/benoitkugler/textlayout/fonts/truetype"
	hb "github.com/benoitkugler/textlayout/harfbuzz"
	hblang "github.com/benoitkugler/textlayout/language"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"github.com/npillmayer/textimg/engine/glyphing"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

// tracer traces with key 'textimg.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("textimg.glyphs")
}

// --- Type conversion -------------------------------------------------------

// Lang4HB returns a language tag as a HarfBuzz language.
func Lang4HB(l language.Tag) hblang.Language {
	return hblang.NewLanguage(l.String())
}

// Script4HB returns a script as a HarfBuzz script.
func Script4HB(s language.Script) hblang.Script {
	b := []byte(s.String())
	b[0] = byte(unicode.ToLower(rune(b[0])))
	h := binary.BigEndian.Uint32(b)
	return hblang.Script(h)
}

// Direction4HB translates a direction to a HarfBuzz direction.
// DirectionAuto is not translated, as HarfBuzz has to guess it.
func Direction4HB(d glyphing.Direction) hb.Direction {
	switch d {
	case glyphing.LeftToRight:
		return hb.LeftToRight
	case glyphing.RightToLeft:
		return hb.RightToLeft
	case glyphing.TopToBottom:
		return hb.TopToBottom
	case glyphing.BottomToTop:
		return hb.BottomToTop
	}
	return hb.LeftToRight
}

// Feature4HB makes a typecast from an OpenType feature tag to a HarfBuzz truetype tag.
func Feature4HB(t ot.Tag) hbtt.Tag {
	return hbtt.Tag(t)
}

// FeatureRange4HB converts a feature range struct to a HarbBuzz Feature switch.
// HarfBuzz counts clusters including the pre-context, therefore the range is
// shifted by offset, the length of the pre-context.
func FeatureRange4HB(frng glyphing.FeatureRange, offset int) hb.Feature {
	f := hb.Feature{
		Tag:   Feature4HB(frng.Feature),
		Start: frng.Start + offset,
		End:   frng.End,
	}
	if frng.End != glyphing.FeatureEnd {
		f.End += offset
	}
	if frng.On {
		if frng.Arg > 0 {
			f.Value = uint32(frng.Arg)
		} else {
			f.Value = 1
		}
	}
	return f
}

// --- Fonts -----------------------------------------------------------------

// hbFont creates a HarfBuzz font scaled so that positions are in pen units.
func hbFont(tc *font.TypeCase) (*hb.Font, error) {
	// parsed tables are shared, HarfBuzz fonts carry the scale
	face, err := tc.ScalableFontParent().Tables()
	if err != nil {
		return nil, err
	}
	f := hb.NewFont(face)
	// scale is ppem in 26.6, therefore HarfBuzz reports 1/64 pixels
	f.XScale = int32(tc.PPEM())
	f.YScale = int32(tc.PPEM())
	return f, nil
}

// --- Shape -----------------------------------------------------------------

// Shaper returns HarfBuzz shaping as a glyphing.Shaper.
func Shaper() glyphing.Shaper {
	return glyphing.ShaperFunc(Shape)
}

// Shape calls the HarfBuzz shaper.
//
// Shape shapes a sequence of code-points (runes), turning its Unicode characters to
// positioned glyphs. It will select a shape plan based on params, including the
// selected font, and the properties of the input text. Direction, script and
// language not given in params are guessed by HarfBuzz from the text.
//
// If `params.Features` is not empty, it will be used to control the
// features applied during shaping. If two features have the same tag but
// overlapping ranges the value of the feature with the higher index takes
// precedence.
//
// params.Font must be set, otherwise no output is created.
//
// Clients may provide `buf` to avoid allocating memory by Shape. Shape will wrap it
// into the GlyphSequence returned.
func Shape(text io.RuneReader, buf []glyphing.GlyphRecord, context [][]rune, params glyphing.Params) (glyphing.GlyphSequence, error) {
	if text == nil || params.Font == nil {
		return glyphing.GlyphSequence{}, nil
	}
	runes, offset, length := bufferText(text, context)
	if length == 0 {
		return glyphing.GlyphSequence{Glyphs: buf[:0]}, nil
	}
	hbfont, err := hbFont(params.Font)
	if err != nil {
		return glyphing.GlyphSequence{}, err
	}
	features := make([]hb.Feature, 0, len(params.Features))
	for _, feat := range params.Features {
		features = append(features, FeatureRange4HB(feat, offset))
	}
	// Prepare HarfBuzz buffer
	hbbuf := hb.NewBuffer()
	convertParams(&hbbuf.Props, params)
	hbbuf.AddRunes(runes, offset, length)
	guessSegmentProperties(&hbbuf.Props, runes[offset:offset+length])
	tracer().Debugf("HarfBuzz shaping %d code-points, direction=%v, %d features",
		length, hbbuf.Props.Direction, len(features))
	hbbuf.Shape(hbfont, features)
	// Prepare shaped output
	n := len(hbbuf.Info)
	if cap(buf) < n {
		buf = make([]glyphing.GlyphRecord, n)
	}
	buf = buf[:n]
	// move HarfBuzz output to glyph sequence output
	for i, ginfo := range hbbuf.Info {
		gpos := &hbbuf.Pos[i]
		g := &buf[i]
		g.ClusterID = ginfo.Cluster - offset // HarfBuzz counts clusters including pre-context
		g.GID = ot.GlyphIndex(ginfo.Glyph)
		g.XAdvance = fixed.Int26_6(gpos.XAdvance)
		g.YAdvance = fixed.Int26_6(gpos.YAdvance)
		g.XOffset = fixed.Int26_6(gpos.XOffset)
		g.YOffset = fixed.Int26_6(gpos.YOffset)
		g.CodePoint = 0
		if ginfo.Cluster >= 0 && ginfo.Cluster < len(runes) {
			g.CodePoint = runes[ginfo.Cluster]
		}
		tracer().Debugf("[%3d] %v", i, g)
	}
	return glyphing.GlyphSequence{Glyphs: buf}, nil
}

// convertParams is a helper function to convert glyphing parameters to
// HarfBuzz's format. Unset script and direction are left at zero, to be
// guessed from the text.
func convertParams(props *hb.SegmentProperties, params glyphing.Params) {
	lang := params.Language
	if lang == language.Und {
		lang = glyphing.DefaultLanguage
	}
	props.Language = Lang4HB(lang)
	var none language.Script
	if params.Script != none {
		props.Script = Script4HB(params.Script)
	}
	if params.Direction != glyphing.DirectionAuto {
		props.Direction = Direction4HB(params.Direction)
	}
}

// guessSegmentProperties fills in script and direction if they are unset.
// The script is the one of the first code-point with a script other than
// Common, Inherited and Unknown. The direction follows from the script,
// defaulting to left-to-right.
func guessSegmentProperties(props *hb.SegmentProperties, runes []rune) {
	if props.Script == 0 {
		for _, r := range runes {
			script := hblang.LookupScript(r)
			if script != hblang.Common && script != hblang.Inherited && script != hblang.Unknown {
				props.Script = script
				break
			}
		}
	}
	if props.Direction == 0 {
		props.Direction = hb.LeftToRight
		if isRightToLeft(props.Script) {
			props.Direction = hb.RightToLeft
		}
	}
}

// isRightToLeft is a predicate: is script written right-to-left? Only
// scripts in current use are considered.
func isRightToLeft(script hblang.Script) bool {
	switch script {
	case hblang.Arabic, hblang.Hebrew, hblang.Syriac, hblang.Thaana, hblang.Nko,
		hblang.Samaritan, hblang.Mandaic, hblang.Adlam, hblang.Hanifi_Rohingya, hblang.Yezidi:
		return true
	}
	return false
}

// bufferText collects the input text of a call to Shape(…), re-encoding it
// to UTF-8 first. To conform to HarfBuzz's API, context is pre-/appended to
// the input runes.
//
// bufferText returns the start position of the input within the returned runes,
// together with the input's length (= rune count).
func bufferText(text io.RuneReader, context [][]rune) (runes []rune, off int, length int) {
	var bytesBuf bytes.Buffer
	if len(context) > 0 {
		for _, r := range context[0] {
			bytesBuf.WriteRune(r)
		}
		off = len(context[0])
	}
	for {
		r, sz, err := text.ReadRune()
		if sz == 0 || err != nil {
			break
		}
		length++
		bytesBuf.WriteRune(r)
	}
	if len(context) > 1 {
		for _, r := range context[1] {
			bytesBuf.WriteRune(r)
		}
	}
	return bytes.Runes(bytesBuf.Bytes()), off, length
}
