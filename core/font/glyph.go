package font

import (
	"image"
	"image/draw"

	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/dimen"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Glyph is a rendered glyph together with its metrics.
//
// Bitmap is a borrowed view into the typecase's glyph buffer. It stays valid
// only until the next glyph is loaded from the same typecase. Clients which
// need to keep it have to call Copy before loading another glyph.
type Glyph struct {
	Index   sfnt.GlyphIndex
	Missing bool            // code-point maps to .notdef
	Advance fixed.Point26_6 // pen advance after this glyph, in pen units
	Size    image.Point     // bitmap width and rows
	Origin  image.Point     // bitmap left and top; top counts upwards from the baseline
	Bitmap  *image.Alpha    // coverage, Bounds() = (0,0)-Size
}

// Bounds returns the glyph's bitmap rectangle in image space, i.e. with
// y counting downwards and relative to the pen position the glyph has
// been loaded at.
func (g Glyph) Bounds() image.Rectangle {
	topLeft := image.Pt(g.Origin.X, -g.Origin.Y)
	return image.Rectangle{Min: topLeft, Max: topLeft.Add(g.Size)}
}

// Empty is a predicate: does the glyph leave no ink?
func (g Glyph) Empty() bool {
	return g.Size.X == 0 || g.Size.Y == 0
}

// Copy returns a glyph owning a private copy of its bitmap.
func (g Glyph) Copy() Glyph {
	if g.Bitmap == nil {
		return g
	}
	bm := image.NewAlpha(g.Bitmap.Rect)
	copy(bm.Pix, g.Bitmap.Pix)
	g.Bitmap = bm
	return g
}

// Range is the visual extent of a run of glyphs, in pixels and image space.
type Range struct {
	Size image.Point
	Min  image.Point
	Max  image.Point
}

// GlyphFor renders the glyph for a code-point with the pen at a given position.
// The pen offset takes part in rasterization, thus fractional pen positions
// result in correctly positioned coverage.
//
// A glyph reporting a zero advance (e.g., for code-points not mapped by the
// font) is given the font's maximum advance width instead.
func (tc *TypeCase) GlyphFor(r rune, pen fixed.Point26_6) (Glyph, error) {
	index := tc.GlyphIndex(r)
	g, err := tc.loadGlyphAt(index, pen)
	if err != nil {
		return g, err
	}
	g.Missing = index == 0
	if g.Advance.X == 0 {
		g.Advance.X = tc.MaxAdvance()
	}
	return g, nil
}

// GlyphAt renders the glyph with a given glyph index with the pen at a given
// position. No advance fallback is applied.
func (tc *TypeCase) GlyphAt(index sfnt.GlyphIndex, pen fixed.Point26_6) (Glyph, error) {
	g, err := tc.loadGlyphAt(index, pen)
	g.Missing = index == 0
	return g, err
}

// Measure returns the space required to render a string of text, without
// shaping. Glyphs are loaded at the running pen position and their bitmap
// extents accumulated. The pen advances by each glyph's advance; glyphs
// without advance move it by the font's maximum advance width.
//
// Measure is intended for simple one-glyph-per-code-point flows. Text which
// needs shaping should be measured through the layout engine.
func (tc *TypeCase) Measure(text []rune) Range {
	var pen fixed.Point26_6
	var minx, miny, maxx, maxy int
	for _, r := range text {
		g, err := tc.GlyphFor(r, pen)
		if err != nil {
			tracer().Errorf("cannot measure %#U: %v", r, err)
			pen.X += tc.MaxAdvance()
			continue
		}
		b := g.Bounds()
		minx = dimen.Min(minx, b.Min.X)
		miny = dimen.Min(miny, b.Min.Y)
		maxx = dimen.Max(maxx, b.Max.X)
		maxy = dimen.Max(maxy, b.Max.Y)
		pen.X += g.Advance.X
		pen.Y += g.Advance.Y
	}
	maxx = dimen.Max(maxx, dimen.ToPixels(pen.X))
	maxy = dimen.Max(maxy, dimen.ToPixels(pen.Y))
	return Range{
		Size: image.Pt(maxx-minx, maxy-miny),
		Min:  image.Pt(minx, miny),
		Max:  image.Pt(maxx, maxy),
	}
}

// MissingGlyphExists returns true if the font's .notdef glyph (index 0) has
// a visible representation. A .notdef glyph sitting on the baseline or
// without any bitmap extent counts as missing.
func (tc *TypeCase) MissingGlyphExists() bool {
	g, err := tc.GlyphAt(0, fixed.Point26_6{})
	if err != nil {
		tracer().Infof("font %s: cannot load .notdef: %v", tc.Name(), err)
		return false
	}
	return hasVisibleNotdef(g)
}

func hasVisibleNotdef(notdef Glyph) bool {
	if notdef.Origin.Y == 0 { // bitmap coords are cartesian, not image space
		return false
	}
	if notdef.Size.X == 0 && notdef.Size.Y == 0 {
		return false
	}
	return true
}

// loadGlyphAt loads a glyph outline and rasterizes it with the pen offset
// applied. The offset is local to this call.
func (tc *TypeCase) loadGlyphAt(index sfnt.GlyphIndex, pen fixed.Point26_6) (Glyph, error) {
	f := tc.scalableFontParent.SFNT
	g := Glyph{Index: index}
	// GlyphAdvance has to be called before LoadGlyph, as segments become
	// invalid once the buffer is re-used
	advance, err := f.GlyphAdvance(&tc.buf, index, tc.ppem, tc.hinting)
	if err != nil {
		return g, core.WrapError(err, core.EINVALID, "cannot load advance of glyph %d", index)
	}
	g.Advance = fixed.Point26_6{X: advance}
	segments, err := f.LoadGlyph(&tc.buf, index, tc.ppem, nil)
	if err != nil {
		return g, core.WrapError(err, core.EINVALID, "cannot load outline of glyph %d", index)
	}
	if len(segments) == 0 { // e.g., space
		g.Origin = image.Pt(dimen.ToPixels(pen.X), -dimen.ToPixels(pen.Y))
		g.Bitmap = tc.resetMask(0, 0)
		return g, nil
	}
	// translate bounds from glyph space to pen space, then quantize
	bounds := segments.Bounds().Add(pen)
	var dr image.Rectangle
	dr.Min.X = bounds.Min.X.Floor()
	dr.Min.Y = bounds.Min.Y.Floor()
	dr.Max.X = bounds.Max.X.Ceil()
	dr.Max.Y = bounds.Max.Y.Ceil()
	if dr.Dx() < 0 || dr.Dy() < 0 {
		return g, core.Error(core.EINVALID, "glyph %d has invalid bounds", index)
	}
	g.Size = dr.Size()
	g.Origin = image.Pt(dr.Min.X, -dr.Min.Y)
	g.Bitmap = tc.resetMask(dr.Dx(), dr.Dy())
	// bias moves segments into rasterizer space, which starts at (0,0)
	bias := fixed.Point26_6{
		X: pen.X - fixed.I(dr.Min.X),
		Y: pen.Y - fixed.I(dr.Min.Y),
	}
	tc.rast.Reset(dr.Dx(), dr.Dy())
	tc.rast.DrawOp = draw.Src
	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			tc.rast.MoveTo(toRast(seg.Args[0], bias))
		case sfnt.SegmentOpLineTo:
			tc.rast.LineTo(toRast(seg.Args[0], bias))
		case sfnt.SegmentOpQuadTo:
			cx, cy := toRast(seg.Args[0], bias)
			tx, ty := toRast(seg.Args[1], bias)
			tc.rast.QuadTo(cx, cy, tx, ty)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := toRast(seg.Args[0], bias)
			c2x, c2y := toRast(seg.Args[1], bias)
			tx, ty := toRast(seg.Args[2], bias)
			tc.rast.CubeTo(c1x, c1y, c2x, c2y, tx, ty)
		}
	}
	tc.rast.Draw(g.Bitmap, g.Bitmap.Bounds(), image.Opaque, image.Point{})
	return g, nil
}

// resetMask configures the typecase's glyph mask to a given size,
// re-allocating its buffer if necessary.
func (tc *TypeCase) resetMask(w, h int) *image.Alpha {
	n := w * h
	if cap(tc.mask.Pix) < n {
		tc.mask.Pix = make([]uint8, 2*n)
	}
	tc.mask.Pix = tc.mask.Pix[:n]
	for i := range tc.mask.Pix {
		tc.mask.Pix[i] = 0
	}
	tc.mask.Stride = w
	tc.mask.Rect = image.Rect(0, 0, w, h)
	return &tc.mask
}

func toRast(p, bias fixed.Point26_6) (float32, float32) {
	return float32(p.X+bias.X) / 64, float32(p.Y+bias.Y) / 64
}
