package layout

import (
	"fmt"
	"image"

	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/dimen"
	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"github.com/npillmayer/textimg/engine/glyphing"
)

// Border is the width of the empty border around the ink, in pixels.
const Border = 1

// Glyph is a glyph positioned on a canvas. X and Y are the glyph's origin in
// whole pixels, with Y counting downwards from the top of the canvas.
type Glyph struct {
	GID ot.GlyphIndex
	X   int
	Y   int
}

func (g Glyph) String() string {
	return fmt.Sprintf("(GID=%d @ %d,%d)", g.GID, g.X, g.Y)
}

// Extenter measures glyphs. GlyphExtents returns the union of the ink
// rectangles of all glyphs when drawn at their positions, in image space.
// Glyphs without ink do not contribute. If no glyph leaves ink, an empty
// rectangle is returned.
type Extenter interface {
	GlyphExtents(glyphs []Glyph) (image.Rectangle, error)
}

// BoundingBox describes the canvas a line of glyphs has been laid out on.
type BoundingBox struct {
	Width    int             // canvas width, including the border
	Height   int             // canvas height, including the border
	Baseline int             // y-coordinate of the baseline on the canvas
	Bearing  image.Point     // x- and y-bearing of the ink, relative to the first pen position
	Ink      image.Rectangle // ink rectangle on the canvas
}

func (bbox BoundingBox) String() string {
	return fmt.Sprintf("[%dx%d baseline=%d bearing=%v]", bbox.Width, bbox.Height, bbox.Baseline, bbox.Bearing)
}

// Size returns the size of the canvas.
func (bbox BoundingBox) Size() image.Point {
	return image.Pt(bbox.Width, bbox.Height)
}

// Result is the outcome of a layout run. Warnings holds non-fatal conditions,
// each carrying a code for which core.IsWarning is true.
type Result struct {
	Glyphs   []Glyph
	Box      BoundingBox
	Warnings []error
}

// Layout positions a sequence of shaped glyphs on a canvas just large enough
// to hold their ink and a one-pixel border.
//
// Glyph origins start at x = 1 and advance by the truncated pixel advances
// of the shaper. The ink is measured once for the whole line. Zero-sized
// ink is corrected to a size of 1, which is reported as a warning with code
// core.WDEGENERATE. An empty sequence is not an error, but results in a
// canvas of 3×3 pixels and a warning.
//
// Errors of the extenter are returned with code core.ERENDER.
func Layout(seq glyphing.GlyphSequence, ext Extenter) (Result, error) {
	glyphs := setLine(seq)
	var result Result
	if len(glyphs) == 0 {
		result.Warnings = append(result.Warnings,
			core.Error(core.WDEGENERATE, "no glyphs to lay out"))
		result.Box = box(image.Rectangle{}, 1, 1)
		tracer().Infof("empty glyph sequence, canvas is %dx%d", result.Box.Width, result.Box.Height)
		return result, nil
	}
	ink, err := ext.GlyphExtents(glyphs)
	if err != nil {
		return result, core.WrapError(err, core.ERENDER, "cannot measure glyph extents")
	}
	w, h := ink.Dx(), ink.Dy()
	if w < 1 {
		result.Warnings = append(result.Warnings,
			core.Error(core.WDEGENERATE, "zero ink width, corrected to 1"))
		w = 1
	}
	if h < 1 {
		result.Warnings = append(result.Warnings,
			core.Error(core.WDEGENERATE, "zero ink height, corrected to 1"))
		h = 1
	}
	if ink.Empty() {
		ink = image.Rectangle{}
	}
	result.Box = box(ink, w, h)
	tracer().Debugf("glyph baseline at %d, x bearing %d", result.Box.Baseline, ink.Min.X)
	// set vertical positioning and shift by x bearing
	for i := range glyphs {
		glyphs[i].Y = result.Box.Baseline
		glyphs[i].X = glyphs[i].X - ink.Min.X + Border
	}
	result.Glyphs = glyphs
	tracer().Debugf("laid out %d glyphs on canvas %v", len(glyphs), result.Box)
	return result, nil
}

// setLine places glyph origins on a line at y = 0, starting at x = Border.
func setLine(seq glyphing.GlyphSequence) []Glyph {
	if seq.Len() == 0 {
		return nil
	}
	glyphs := make([]Glyph, len(seq.Glyphs))
	penX := Border
	for i, g := range seq.Glyphs {
		glyphs[i] = Glyph{
			GID: g.GID,
			X:   penX + dimen.ToPixels(g.XOffset),
		}
		penX += dimen.ToPixels(g.XAdvance)
	}
	return glyphs
}

// box computes the canvas for ink of (corrected) size w×h.
func box(ink image.Rectangle, w, h int) BoundingBox {
	baseline := -ink.Min.Y + Border
	return BoundingBox{
		Width:    w + 2*Border,
		Height:   h + 2*Border,
		Baseline: baseline,
		Bearing:  ink.Min,
		Ink:      image.Rect(Border, Border, Border+w, Border+h),
	}
}
