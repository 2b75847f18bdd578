/*
Package raster draws positioned glyphs onto 32-bit pixel surfaces.

The package mimics the object model of 2D rendering libraries such as
Cairo: a scaled font binds a typecase to rendering options, a surface owns
a pixel buffer, and a context connects a source color and a scaled font to
a surface. Every object carries a status, which turns into an error once
anything goes wrong and stays that way.

Glyph outlines are rasterized by golang.org/x/image/vector (see package
font) and composited with image/draw.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package raster

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'textimg.raster'.
func tracer() tracing.Trace {
	return tracing.Select("textimg.raster")
}
