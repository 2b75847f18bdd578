package raster

import (
	"image"

	"github.com/npillmayer/textimg/backend/gfx"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/engine/layout"
)

// Rasterize draws positioned glyphs onto a new image of a given size,
// painting them in color c.
//
// Any bad status of the rendering objects results in an error with code
// core.ERENDER, and no image is returned. Rendering objects are released
// before Rasterize returns, whether it succeeds or not.
func Rasterize(size image.Point, tc *font.TypeCase, c gfx.Color, glyphs []layout.Glyph, opts Options) (*gfx.Image, error) {
	sf, err := NewScaledFont(tc, opts)
	if err != nil {
		return nil, err
	}
	defer sf.Close()
	surface, err := NewSurface(size.X, size.Y)
	if err != nil {
		return nil, err
	}
	defer surface.Close()
	tracer().Debugf("allocated image space [%dx%d]", size.X, size.Y)
	ctx := NewContext(surface)
	defer ctx.Close()
	ctx.SetSourceColor(c)
	ctx.SetScaledFont(sf)
	if err := ctx.Status(); err != nil {
		return nil, core.WrapError(err, core.ERENDER, "bad context state")
	}
	tracer().Debugf("rendering %d glyphs at size %dpt", len(glyphs), tc.PointSize())
	ctx.ShowGlyphs(glyphs)
	if err := ctx.Status(); err != nil {
		return nil, core.WrapError(err, core.ERENDER, "cannot draw glyphs")
	}
	if err := surface.Status(); err != nil {
		return nil, core.WrapError(err, core.ERENDER, "bad surface state")
	}
	return surface.Detach(), nil
}
