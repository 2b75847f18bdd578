package raster

import (
	"bytes"
	"image"
	"testing"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textimg/backend/gfx"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"github.com/npillmayer/textimg/engine/glyphing"
	"github.com/npillmayer/textimg/engine/layout"
	"github.com/stretchr/testify/suite"
)

type RasterTestEnviron struct {
	suite.Suite
	tc *font.TypeCase
}

// listen for 'go test' command --> run test methods
func TestRasterFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.raster")
	defer teardown()
	suite.Run(t, new(RasterTestEnviron))
}

// run once, before test suite methods
func (env *RasterTestEnviron) SetupSuite() {
	tracing.Select("textimg.fonts").SetTraceLevel(tracing.LevelError)
	var err error
	env.tc, err = font.FallbackFont().PrepareCase(32)
	env.Require().NoError(err)
}

// glyphsFor sets a line of text with one glyph per code-point, using the
// font's advances.
func (env *RasterTestEnviron) glyphsFor(text string) glyphing.GlyphSequence {
	var seq glyphing.GlyphSequence
	for i, r := range []rune(text) {
		seq.Glyphs = append(seq.Glyphs, glyphing.GlyphRecord{
			GID:       ot.GlyphIndex(env.tc.GlyphIndex(r)),
			ClusterID: i,
			CodePoint: r,
			XAdvance:  env.tc.Advance(r),
		})
	}
	return seq
}

func (env *RasterTestEnviron) render(text string, c gfx.Color, opts Options) (*gfx.Image, layout.Result) {
	sf, err := NewScaledFont(env.tc, opts)
	env.Require().NoError(err)
	defer sf.Close()
	result, err := layout.Layout(env.glyphsFor(text), sf)
	env.Require().NoError(err)
	img, err := Rasterize(result.Box.Size(), env.tc, c, result.Glyphs, opts)
	env.Require().NoError(err)
	return img, result
}

// --- Tests -----------------------------------------------------------------

func (env *RasterTestEnviron) TestInkInsideBorder() {
	img, result := env.render("Ag", gfx.Black, Options{})
	env.Equal(result.Box.Width, img.Width)
	env.Equal(result.Box.Height, img.Height)
	env.Equal(32, img.Depth)
	ink := img.InkBounds()
	env.T().Logf("canvas = %v, ink = %v", result.Box, ink)
	env.False(ink.Empty(), "expected some ink")
	env.True(ink.In(result.Box.Ink), "expected ink %v inside %v", ink, result.Box.Ink)
	env.True(ink.Min.X >= 1 && ink.Min.Y >= 1, "expected left and top border")
	env.True(ink.Max.X <= img.Width-1 && ink.Max.Y <= img.Height-1, "expected right and bottom border")
}

func (env *RasterTestEnviron) TestDeterminism() {
	img1, _ := env.render("Hello, World!", gfx.Black, Options{})
	img2, _ := env.render("Hello, World!", gfx.Black, Options{})
	env.Equal(img1.Width, img2.Width)
	env.Equal(img1.Height, img2.Height)
	env.True(bytes.Equal(img1.Pix, img2.Pix), "expected bit-identical images")
}

func (env *RasterTestEnviron) TestSourceColor() {
	red := gfx.Color{R: 0xff, A: 0xff}
	img, _ := env.render("W", red, Options{})
	inked := 0
	for i := 0; i < len(img.Pix); i += 4 {
		a := img.Pix[i+gfx.Alpha]
		if a == 0 {
			continue
		}
		inked++
		env.Equal(a, img.Pix[i+gfx.Red], "premultiplied red must equal alpha")
		env.Zero(img.Pix[i+gfx.Green])
		env.Zero(img.Pix[i+gfx.Blue])
	}
	env.True(inked > 0)
}

func (env *RasterTestEnviron) TestNoAntialias() {
	img, _ := env.render("o", gfx.Black, Options{Antialias: AntialiasNone})
	for i := gfx.Alpha; i < len(img.Pix); i += 4 {
		a := img.Pix[i]
		env.True(a == 0 || a == 0xff, "expected bi-level coverage, have alpha %d", a)
	}
}

func (env *RasterTestEnviron) TestExtentsSkipSpaces() {
	sf, err := NewScaledFont(env.tc, Options{})
	env.Require().NoError(err)
	defer sf.Close()
	space := layout.Glyph{GID: ot.GlyphIndex(env.tc.GlyphIndex(' ')), X: 1}
	ink, err := sf.GlyphExtents([]layout.Glyph{space})
	env.NoError(err)
	env.True(ink.Empty())
	dot := layout.Glyph{GID: ot.GlyphIndex(env.tc.GlyphIndex('.')), X: 50}
	ink, err = sf.GlyphExtents([]layout.Glyph{space, dot})
	env.NoError(err)
	env.True(ink.Min.X >= 50, "expected ink of '.' only, have %v", ink)
}

func (env *RasterTestEnviron) TestBadSurface() {
	_, err := NewSurface(0, 10)
	env.Equal(core.ERENDER, core.Code(err))
	_, err = Rasterize(image.Pt(3, 0), env.tc, gfx.Black, nil, Options{})
	env.Equal(core.ERENDER, core.Code(err))
}

func (env *RasterTestEnviron) TestNoFont() {
	_, err := NewScaledFont(nil, Options{})
	env.Equal(core.ERENDER, core.Code(err))
	_, err = Rasterize(image.Pt(3, 3), nil, gfx.Black, nil, Options{})
	env.Equal(core.ERENDER, core.Code(err))
	surface, err := NewSurface(3, 3)
	env.Require().NoError(err)
	ctx := NewContext(surface)
	ctx.ShowGlyphs([]layout.Glyph{{GID: 1, X: 1, Y: 1}})
	env.Equal(core.ERENDER, core.Code(ctx.Status()))
}

func (env *RasterTestEnviron) TestClosedObjects() {
	sf, err := NewScaledFont(env.tc, Options{})
	env.Require().NoError(err)
	sf.Close()
	_, err = sf.GlyphExtents([]layout.Glyph{{GID: 1}})
	env.Equal(core.ERENDER, core.Code(err))
	env.Error(sf.Status(), "expected status to stick")
	//
	surface, err := NewSurface(3, 3)
	env.Require().NoError(err)
	img := surface.Detach()
	env.NotNil(img)
	env.Error(surface.Status())
	ctx := NewContext(surface)
	env.Equal(core.ERENDER, core.Code(ctx.Status()))
}

func (env *RasterTestEnviron) TestEmptyGlyphList() {
	img, err := Rasterize(image.Pt(3, 3), env.tc, gfx.Black, nil, Options{})
	env.Require().NoError(err)
	env.Equal(3, img.Width)
	env.True(img.InkBounds().Empty())
}

func TestParseAntialias(t *testing.T) {
	for s, a := range map[string]Antialias{"": AntialiasSubpixel, "Gray": AntialiasGray, "none": AntialiasNone} {
		aa, err := ParseAntialias(s)
		if err != nil || aa != a {
			t.Errorf("expected %q to be %v, have %v (%v)", s, a, aa, err)
		}
	}
	if _, err := ParseAntialias("lcd"); core.Code(err) != core.EINVALID {
		t.Errorf("expected unknown mode to be invalid")
	}
}
