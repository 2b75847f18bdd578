/*
Package layout places shaped glyphs onto a tightly cropped canvas.

Overview

Input is a sequence of glyphs as output by a shaper. Glyphs are set on a
single line, starting one pixel right of the canvas' left border. The ink
extents of the whole line are measured in a single query to an Extenter,
and the canvas is sized to hold the ink plus a border of one pixel on each
side. Finally, all glyphs are moved onto the canvas' baseline and shifted
left by the ink's horizontal bearing.

Layout works in whole pixels. Glyph offsets and advances, delivered by
shapers in 1/64 pixel, are truncated towards zero.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'textimg.layout'.
func tracer() tracing.Trace {
	return tracing.Select("textimg.layout")
}
