package raster

import (
	"image"
	"image/draw"

	"github.com/npillmayer/textimg/backend/gfx"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/engine/layout"
)

// Surface is a drawing target backed by a BGRA image.
type Surface struct {
	img    *gfx.Image
	status error
}

// NewSurface allocates a transparent surface of w×h pixels.
// Both dimensions must be positive.
func NewSurface(w, h int) (*Surface, error) {
	if w <= 0 || h <= 0 {
		return nil, core.Error(core.ERENDER, "invalid surface size %dx%d", w, h)
	}
	return &Surface{img: gfx.NewImage(w, h)}, nil
}

// Status returns the first error the surface encountered, if any.
func (s *Surface) Status() error {
	if s == nil {
		return core.Error(core.ERENDER, "surface is nil")
	}
	if s.status == nil && s.img == nil {
		return core.Error(core.ERENDER, "surface has been finished")
	}
	return s.status
}

// Detach hands the surface's image over to the caller. Afterwards the
// surface is finished and cannot be drawn upon.
func (s *Surface) Detach() *gfx.Image {
	img := s.img
	s.img = nil
	return img
}

// Close finishes the surface, dropping its pixels unless they have been
// detached.
func (s *Surface) Close() {
	if s != nil {
		s.img = nil
	}
}

// Context draws onto a surface with a source color and a scaled font.
type Context struct {
	target *Surface
	source *image.Uniform
	font   *ScaledFont
	status error
}

// NewContext creates a drawing context for a surface. The source color
// defaults to opaque black.
func NewContext(target *Surface) *Context {
	ctx := &Context{
		target: target,
		source: image.NewUniform(gfx.Black),
	}
	if err := target.Status(); err != nil {
		ctx.status = err
	}
	return ctx
}

// Status returns the first error the context encountered, if any.
func (ctx *Context) Status() error {
	return ctx.status
}

// Close detaches the context from its surface and font.
func (ctx *Context) Close() {
	ctx.target = nil
	ctx.font = nil
}

// SetSourceColor sets the color glyphs are painted with.
func (ctx *Context) SetSourceColor(c gfx.Color) {
	b, g, r, a := c.Channels()
	tracer().Debugf("source color b=%.3f g=%.3f r=%.3f a=%.3f", b, g, r, a)
	ctx.source = image.NewUniform(c)
}

// SetScaledFont sets the font glyphs are taken from.
func (ctx *Context) SetScaledFont(sf *ScaledFont) {
	if ctx.status != nil {
		return
	}
	if err := sf.Status(); err != nil {
		ctx.status = err
		return
	}
	ctx.font = sf
}

// ShowGlyphs paints glyphs at their positions, compositing their coverage
// with the source color over the surface's pixels. Ink outside the surface
// is clipped.
func (ctx *Context) ShowGlyphs(glyphs []layout.Glyph) {
	if ctx.status != nil {
		return
	}
	if ctx.font == nil {
		ctx.status = core.Error(core.ERENDER, "no font set for drawing glyphs")
		return
	}
	if err := ctx.target.Status(); err != nil {
		ctx.status = err
		return
	}
	dst := ctx.target.img
	err := ctx.font.eachGlyph(glyphs, func(g font.Glyph) {
		r := g.Bounds()
		draw.DrawMask(dst, r, ctx.source, image.Point{}, g.Bitmap, image.Point{}, draw.Over)
	})
	if err != nil {
		ctx.status = err
	}
}
