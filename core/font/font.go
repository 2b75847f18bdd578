/*
Package font is for typeface and font handling.

There is a certain confusion in the nomenclature of typesetting. We will
stick to the following definitions:

* A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".
It is read-only once parsed and may be shared.

* A "typecase" is a scaled font, i.e. a font in a certain size at a
certain device resolution. The name is reminiscend on the wooden
boxes of typesetters in the aera of metal type.
An example is "Helvetica regular 11pt @ 100dpi".

Please note that Go (Golang) does use the terms "font" and "face"
differently–actually more or less in an opposite manner.

A typecase owns scratch buffers for loading and rasterizing glyphs. It is
therefore not safe for concurrent use: clients have to serialize calls on a
single typecase, or use one typecase per goroutine. Scalable fonts may be
shared between typecases.

----------------------------------------------------------------------

BSD License

Copyright (c) 2017-21, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions
are met:

1. Redistributions of source code must retain the above copyright
notice, this list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright
notice, this list of conditions and the following disclaimer in the
documentation and/or other materials provided with the distribution.

3. Neither the name of this software nor the names of its contributors
may be used to endorse or promote products derived from this software
without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS
"AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT
LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR
A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT
LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE,
DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY
THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT
(INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE. */
package font

import (
	"image"
	"os"
	"path/filepath"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/dimen"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// tracer traces with key 'textimg.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("textimg.fonts")
}

// maxPointSize limits point sizes to keep ppem well inside 26.6 range.
const maxPointSize = 10000

// ScalableFont is a parsed font file, not yet scaled to a size.
type ScalableFont struct {
	Fontname string
	Filepath string     // file path
	Binary   []byte     // raw data
	SFNT     *sfnt.Font // the font's container; safe to share as long as buffers are not
}

// LoadOpenTypeFont loads and parses a font file. Errors are font load errors
// with code core.EFONTLOAD.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTLOAD, "error opening font file %s", fontfile)
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, err
	}
	f.Filepath = fontfile
	if f.Fontname == "" {
		f.Fontname = filepath.Base(fontfile)
	}
	return f, nil
}

// ParseOpenTypeFont parses a font from its binary representation.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, core.WrapError(err, core.EFONTLOAD, "unsupported font file format")
	}
	if f.SFNT.NumGlyphs() == 0 {
		return nil, core.Error(core.EFONTLOAD, "font contains no glyphs")
	}
	f.Fontname, _ = f.SFNT.Name(nil, sfnt.NameIDFull)
	return
}

// TypeCase is a font scaled to a point size at a fixed device resolution.
// Size and resolution never change after creation; re-sizing requires
// preparing a new typecase.
type TypeCase struct {
	scalableFontParent *ScalableFont
	size               int           // point size
	dpi                int           // device resolution
	ppem               fixed.Int26_6 // pixels per em in pen units
	hinting            xfont.Hinting
	buf                sfnt.Buffer       // scratch for outline loading
	rast               vector.Rasterizer // scratch for glyph bitmaps
	mask               image.Alpha       // glyph bitmap, reused on every load
	maxAdvance         fixed.Int26_6     // lazily computed, 0 if unknown
}

// Open loads a font file and scales it to a point size.
func Open(fontfile string, pointSize int) (*TypeCase, error) {
	sf, err := LoadOpenTypeFont(fontfile)
	if err != nil {
		return nil, err
	}
	return sf.PrepareCase(pointSize)
}

// Parse parses a font from binary data and scales it to a point size.
func Parse(name string, data []byte, pointSize int) (*TypeCase, error) {
	sf, err := ParseOpenTypeFont(data)
	if err != nil {
		return nil, err
	}
	if name != "" {
		sf.Fontname = name
	}
	return sf.PrepareCase(pointSize)
}

// PrepareCase scales a font to a point size at a resolution of dimen.DPI.
func (sf *ScalableFont) PrepareCase(pointSize int) (*TypeCase, error) {
	if pointSize <= 0 || pointSize > maxPointSize {
		return nil, core.Error(core.EFONTLOAD, "error setting char size %d for font %s",
			pointSize, sf.Fontname)
	}
	return sf.prepareCase(pointSize, dimen.DPI), nil
}

func (sf *ScalableFont) prepareCase(pointSize int, dpi int) *TypeCase {
	tc := &TypeCase{
		scalableFontParent: sf,
		size:               pointSize,
		dpi:                dpi,
		ppem:               dimen.PPEM(pointSize, dpi),
		hinting:            xfont.HintingFull,
	}
	tracer().Debugf("prepared font %s at %dpt @ %ddpi, ppem = %s", sf.Fontname, pointSize, dpi, tc.ppem)
	return tc
}

// UserSpaceCase returns a typecase of the same font and point size at
// resolution dimen.UserSpaceDPI, i.e. with an em of pointSize pixels.
// Text is shaped and rendered at this scale, whereas measuring and glyph
// inspection use the device resolution dimen.DPI.
//
// The typecase returned has scratch buffers of its own.
func (tc *TypeCase) UserSpaceCase() *TypeCase {
	return tc.scalableFontParent.prepareCase(tc.size, dimen.UserSpaceDPI)
}

// ScalableFontParent returns the unscaled font of a typecase.
func (tc *TypeCase) ScalableFontParent() *ScalableFont {
	return tc.scalableFontParent
}

// Name returns the font's name.
func (tc *TypeCase) Name() string {
	return tc.scalableFontParent.Fontname
}

// PointSize returns the point size the font is scaled to.
func (tc *TypeCase) PointSize() int {
	return tc.size
}

// DPI returns the resolution the typecase is scaled to: dimen.DPI, or
// dimen.UserSpaceDPI for typecases created by UserSpaceCase.
func (tc *TypeCase) DPI() int {
	return tc.dpi
}

// PenDPI returns the number of pen units per pixel, which is always dimen.PenDPI.
func (tc *TypeCase) PenDPI() int {
	return dimen.PenDPI
}

// PPEM returns the pixels per em, in pen units.
func (tc *TypeCase) PPEM() fixed.Int26_6 {
	return tc.ppem
}

// Hinting returns the hinting applied to advances and metrics.
func (tc *TypeCase) Hinting() xfont.Hinting {
	return tc.hinting
}

// GlyphIndex returns the glyph index for a code-point.
// If the code-point is not mapped by the font, 0 (.notdef) is returned.
func (tc *TypeCase) GlyphIndex(r rune) sfnt.GlyphIndex {
	x, err := tc.scalableFontParent.SFNT.GlyphIndex(&tc.buf, r)
	if err != nil {
		tracer().Debugf("cannot look up glyph for %#U: %v", r, err)
		return 0
	}
	return x
}

// Advance returns the advance width of the glyph for a code-point, in pen
// units, without rasterizing it.
func (tc *TypeCase) Advance(r rune) fixed.Int26_6 {
	x := tc.GlyphIndex(r)
	adv, err := tc.scalableFontParent.SFNT.GlyphAdvance(&tc.buf, x, tc.ppem, tc.hinting)
	if err != nil {
		tracer().Debugf("cannot get advance for %#U: %v", r, err)
		return 0
	}
	return adv
}

// Metrics returns the font-wide metrics at this typecase's size.
func (tc *TypeCase) Metrics() (xfont.Metrics, error) {
	return tc.scalableFontParent.SFNT.Metrics(&tc.buf, tc.ppem, tc.hinting)
}

// Kern returns the kerning between two glyphs, or 0 if the font has no
// kerning information for the pair.
func (tc *TypeCase) Kern(x0, x1 sfnt.GlyphIndex) fixed.Int26_6 {
	k, err := tc.scalableFontParent.SFNT.Kern(&tc.buf, x0, x1, tc.ppem, tc.hinting)
	if err != nil {
		return 0
	}
	return k
}

// MaxAdvance returns the maximum advance width over all glyphs of the font,
// in pen units. It is used as a fallback for glyphs reporting a zero advance.
func (tc *TypeCase) MaxAdvance() fixed.Int26_6 {
	if tc.maxAdvance > 0 {
		return tc.maxAdvance
	}
	f := tc.scalableFontParent.SFNT
	for i := 0; i < f.NumGlyphs(); i++ {
		adv, err := f.GlyphAdvance(&tc.buf, sfnt.GlyphIndex(i), tc.ppem, tc.hinting)
		if err == nil && adv > tc.maxAdvance {
			tc.maxAdvance = adv
		}
	}
	tracer().Debugf("max advance of %s at %dpt is %s", tc.Name(), tc.size, tc.maxAdvance)
	return tc.maxAdvance
}
