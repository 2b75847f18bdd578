/*
Package monospace implements a simple shaper for monospace output.

Text is split into grapheme clusters, and every cluster is placed into
one or two cells of a fixed-width grid, depending on its East Asian
width (UAX #11). No OpenType features are applied.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>
*/
package monospace

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'textimg.glyphs'.
func tracer() tracing.Trace {
	return tracing.Select("textimg.glyphs")
}
