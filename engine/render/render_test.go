package render

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textimg/backend/gfx"
	"github.com/npillmayer/textimg/backend/gfx/raster"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/dimen"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/engine/glyphing"
	"github.com/npillmayer/textimg/engine/glyphing/monospace"
	"github.com/npillmayer/textimg/engine/layout"
	"github.com/stretchr/testify/suite"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
)

type RenderTestEnviron struct {
	suite.Suite
	regular *font.TypeCase
	mono    *font.TypeCase
}

// listen for 'go test' command --> run test methods
func TestRenderFunctions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.render")
	defer teardown()
	suite.Run(t, new(RenderTestEnviron))
}

// run once, before test suite methods
func (env *RenderTestEnviron) SetupSuite() {
	tracing.Select("textimg.fonts").SetTraceLevel(tracing.LevelError)
	tracing.Select("textimg.glyphs").SetTraceLevel(tracing.LevelError)
	var err error
	env.regular, err = font.FallbackFont().PrepareCase(24)
	env.Require().NoError(err)
	env.mono, err = font.FallbackMonoFont().PrepareCase(24)
	env.Require().NoError(err)
}

func (env *RenderTestEnviron) TestPrintableASCII() {
	r := New(Config{})
	for _, text := range []string{"A", ".", "Hello, World!", "~_~", "g"} {
		img, report, err := r.Render(env.regular, gfx.Black, text)
		env.Require().NoError(err, "text %q", text)
		env.True(img.Width >= 3 && img.Height >= 3, "text %q: image is %dx%d", text, img.Width, img.Height)
		env.Equal(report.Box.Width, img.Width)
		env.Equal(report.Box.Height, img.Height)
		env.Equal(32, img.Depth)
		env.Empty(report.Warnings, "text %q", text)
		env.False(img.InkBounds().Empty(), "text %q: expected ink", text)
	}
}

func (env *RenderTestEnviron) TestDeterminism() {
	r := New(Config{})
	img1, _, err := r.Render(env.regular, gfx.Black, "Quick brown fox")
	env.Require().NoError(err)
	img2, _, err := r.Render(env.regular, gfx.Black, "Quick brown fox")
	env.Require().NoError(err)
	env.Equal(img1.Width, img2.Width)
	env.Equal(img1.Height, img2.Height)
	env.True(bytes.Equal(img1.Pix, img2.Pix), "expected bit-identical images")
}

func (env *RenderTestEnviron) TestEmptyText() {
	img, report, err := New(Config{}).Render(env.regular, gfx.Black, "")
	env.Require().NoError(err)
	env.Equal(3, img.Width)
	env.Equal(3, img.Height)
	env.Zero(report.Glyphs)
	env.Require().NotEmpty(report.Warnings)
	env.Equal(core.WDEGENERATE, core.Code(report.Warnings[0]))
	env.True(img.InkBounds().Empty())
}

func (env *RenderTestEnviron) TestSpaceOnly() {
	img, report, err := New(Config{}).Render(env.regular, gfx.Black, "   ")
	env.Require().NoError(err)
	env.Equal(3, report.Glyphs)
	env.Equal(3, img.Width, "expected invisible text to yield a minimal canvas")
	env.Len(report.Warnings, 2)
}

func (env *RenderTestEnviron) TestMonospaceAdvance() {
	r := New(Config{})
	_, report, err := r.Render(env.mono, gfx.Black, "AB")
	env.Require().NoError(err)
	env.Equal(2, report.Glyphs)
	// replay shaping and layout at render scale to look at glyph origins
	tc := env.mono.UserSpaceCase()
	seq, err := r.conf.Shaper.Shape(stringReader("AB"), nil, nil, glyphing.Params{Font: tc})
	env.Require().NoError(err)
	sf, err := raster.NewScaledFont(tc, raster.Options{})
	env.Require().NoError(err)
	defer sf.Close()
	result, err := layout.Layout(seq, sf)
	env.Require().NoError(err)
	env.Require().Len(result.Glyphs, 2)
	adv := tc.Advance('A')
	env.Equal(adv, tc.Advance('B'), "expected a monospaced font")
	dist := result.Glyphs[1].X - result.Glyphs[0].X
	env.True(dimen.Abs(dist-adv.Round()) <= 1, "expected origin distance %d to equal advance %s (±1px)",
		dist, adv)
}

func (env *RenderTestEnviron) TestScaleEmToPointSize() {
	img, _, err := New(Config{}).Render(env.regular, gfx.Black, "H")
	env.Require().NoError(err)
	g, err := env.regular.UserSpaceCase().GlyphFor('H', fixed.Point26_6{})
	env.Require().NoError(err)
	env.Equal(g.Bounds().Dy()+2, img.Height, "expected ink of 'H' at em = 24px plus border")
	env.True(img.Height < 24, "expected cap height below the em, have %d", img.Height)
}

func (env *RenderTestEnviron) TestAutoDirection() {
	_, report, err := New(Config{}).Render(env.regular, gfx.Black, "AB")
	env.Require().NoError(err)
	single, _, err := New(Config{}).Render(env.regular, gfx.Black, "A")
	env.Require().NoError(err)
	env.Equal(2, report.Glyphs)
	inkA := single.Width - 2
	env.True(report.Box.Width-2 > inkA+inkA/2, "expected glyphs not to stack on top of each other")
}

func (env *RenderTestEnviron) TestMonospaceShaper() {
	r := New(Config{Shaper: monospace.Shaper(0, nil)})
	img, report, err := r.Render(env.mono, gfx.Black, "AB")
	env.Require().NoError(err)
	env.Equal(2, report.Glyphs)
	env.True(img.Width > env.mono.Advance('A').Round(), "expected two cells of ink")
}

func (env *RenderTestEnviron) TestFeatures() {
	lm, err := font.Parse("Latin Modern Roman", lmroman10regular.TTF, 24)
	env.Require().NoError(err)
	_, report, err := New(Config{Features: []string{"abc1", "liga"}}).Render(lm, gfx.Black, "fi")
	env.Require().NoError(err, "unknown feature must not abort rendering")
	env.Equal(1, report.Glyphs)
	env.Require().Len(report.Warnings, 1)
	env.Equal(core.WFEATURE, core.Code(report.Warnings[0]))
	_, report, err = New(Config{Features: []string{"-liga"}}).Render(lm, gfx.Black, "fi")
	env.Require().NoError(err)
	env.Equal(2, report.Glyphs)
}

func (env *RenderTestEnviron) TestNoFont() {
	_, _, err := New(Config{}).Render(nil, gfx.Black, "x")
	env.Equal(core.EFONTLOAD, core.Code(err))
}

func (env *RenderTestEnviron) TestShaperFailure() {
	failing := glyphing.ShaperFunc(func(io.RuneReader, []glyphing.GlyphRecord, [][]rune, glyphing.Params) (glyphing.GlyphSequence, error) {
		return glyphing.GlyphSequence{}, errors.New("shaper broke")
	})
	img, _, err := New(Config{Shaper: failing}).Render(env.regular, gfx.Black, "x")
	env.Nil(img)
	env.Equal(core.ERENDER, core.Code(err))
}

// --- Configuration ---------------------------------------------------------

func TestConfigFrom(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.render")
	defer teardown()
	//
	conf := testconfig.Conf{
		"textimg.language":  "de-DE",
		"textimg.features":  "liga, -kern",
		"textimg.direction": "rtl",
		"textimg.script":    "Latn",
	}
	c, err := ConfigFrom(conf)
	if err != nil {
		t.Fatal(err)
	}
	if c.Language != language.MustParse("de-DE") {
		t.Errorf("expected language de-DE, have %v", c.Language)
	}
	if len(c.Features) != 2 || c.Features[1] != "-kern" {
		t.Errorf("expected features [liga -kern], have %v", c.Features)
	}
	if c.Direction != glyphing.RightToLeft {
		t.Errorf("expected direction RTL, have %v", c.Direction)
	}
	if c.Script != language.MustParseScript("Latn") {
		t.Errorf("expected script Latn, have %v", c.Script)
	}
	_, err = ConfigFrom(testconfig.Conf{"textimg.direction": "diagonal"})
	if core.Code(err) != core.EINVALID {
		t.Errorf("expected invalid direction to be rejected, have %v", err)
	}
	if _, err = ConfigFrom(nil); err != nil {
		t.Errorf("expected nil configuration to yield defaults, have %v", err)
	}
}

// ---------------------------------------------------------------------------

type runeReader struct {
	runes []rune
}

func (rr *runeReader) ReadRune() (rune, int, error) {
	if len(rr.runes) == 0 {
		return 0, 0, io.EOF
	}
	r := rr.runes[0]
	rr.runes = rr.runes[1:]
	return r, 1, nil
}

func stringReader(s string) io.RuneReader {
	return &runeReader{runes: []rune(s)}
}
