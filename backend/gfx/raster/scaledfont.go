package raster

import (
	"image"
	"strings"

	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/dimen"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/engine/layout"
	"golang.org/x/image/font/sfnt"
)

// Antialias selects how glyph coverage is turned into pixels.
type Antialias int

// Antialiasing modes. AntialiasSubpixel is the default; as surfaces have no
// notion of LCD sub-pixel geometry, it results in gray-scale coverage
// computed from exact outline positions.
const (
	AntialiasSubpixel Antialias = iota
	AntialiasGray
	AntialiasNone
)

func (a Antialias) String() string {
	switch a {
	case AntialiasGray:
		return "gray"
	case AntialiasNone:
		return "none"
	}
	return "subpixel"
}

// ParseAntialias returns the antialiasing mode for a name. An empty name
// selects the default.
func ParseAntialias(s string) (Antialias, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "subpixel", "default":
		return AntialiasSubpixel, nil
	case "gray", "grey":
		return AntialiasGray, nil
	case "none", "off":
		return AntialiasNone, nil
	}
	return AntialiasSubpixel, core.Error(core.EINVALID, "unknown antialiasing mode %q", s)
}

// Options are rendering options for a scaled font.
type Options struct {
	Antialias Antialias
}

// ScaledFont is a typecase prepared for rendering. The font matrix is
// given by the typecase's point size, the user-to-device transform is the
// identity.
//
// ScaledFont implements layout.Extenter.
type ScaledFont struct {
	tc     *font.TypeCase
	opts   Options
	status error
	locked bool
}

var _ layout.Extenter = &ScaledFont{}

// NewScaledFont binds a typecase to rendering options. A scaled font holds
// the typecase locked until it is closed; the typecase must not be used by
// anyone else in the meantime.
func NewScaledFont(tc *font.TypeCase, opts Options) (*ScaledFont, error) {
	if tc == nil {
		return nil, core.Error(core.ERENDER, "cannot create scaled font without a font")
	}
	sf := &ScaledFont{tc: tc, opts: opts, locked: true}
	tracer().Debugf("scaled font %s at %dpt, antialias = %s", tc.Name(), tc.PointSize(), opts.Antialias)
	return sf, nil
}

// Status returns the first error the scaled font encountered, if any.
func (sf *ScaledFont) Status() error {
	if sf == nil {
		return core.Error(core.ERENDER, "scaled font is nil")
	}
	return sf.status
}

// Close releases the typecase. Using a closed scaled font is an error.
func (sf *ScaledFont) Close() {
	if sf != nil {
		sf.locked = false
	}
}

// TypeCase returns the underlying typecase.
func (sf *ScaledFont) TypeCase() *font.TypeCase {
	return sf.tc
}

// GlyphExtents returns the union of the ink rectangles of glyphs drawn at
// their positions. Glyphs without ink, such as spaces, do not count.
func (sf *ScaledFont) GlyphExtents(glyphs []layout.Glyph) (image.Rectangle, error) {
	var ink image.Rectangle
	err := sf.eachGlyph(glyphs, func(g font.Glyph) {
		ink = ink.Union(g.Bounds())
	})
	if err != nil {
		return image.Rectangle{}, err
	}
	tracer().Debugf("ink extents of %d glyphs: %v", len(glyphs), ink)
	return ink, nil
}

// eachGlyph renders glyphs one by one and calls f for every glyph leaving
// ink. The bitmap handed to f is valid during the call only.
func (sf *ScaledFont) eachGlyph(glyphs []layout.Glyph, f func(font.Glyph)) error {
	if err := sf.Status(); err != nil {
		return err
	}
	if !sf.locked {
		sf.status = core.Error(core.ERENDER, "scaled font used after close")
		return sf.status
	}
	for _, g := range glyphs {
		pen := dimen.PenPoint(g.X, g.Y)
		glyph, err := sf.tc.GlyphAt(sfnt.GlyphIndex(g.GID), pen)
		if err != nil {
			sf.status = core.WrapError(err, core.ERENDER, "cannot render glyph %d", g.GID)
			return sf.status
		}
		if glyph.Empty() {
			continue
		}
		if sf.opts.Antialias == AntialiasNone {
			threshold(glyph.Bitmap)
		}
		f(glyph)
	}
	return nil
}

// threshold turns coverage into on/off pixels.
func threshold(mask *image.Alpha) {
	for i, a := range mask.Pix {
		if a >= 0x80 {
			mask.Pix[i] = 0xff
		} else {
			mask.Pix[i] = 0
		}
	}
}
