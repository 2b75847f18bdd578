/*
Package otquery queries metrics and other information from OpenType fonts.

Information is collected from a typecase's scalable parent font. Names,
glyph names and the character map come from package
golang.org/x/image/font/sfnt. Everything sfnt does not expose, such as table
presence, encodings, bitmap strikes or layout scripts and features, is taken
from the font's tables as parsed by package
github.com/benoitkugler/textlayout/fonts/truetype.

No variable font instances are inspected.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otquery

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'textimg.fonts'.
func tracer() tracing.Trace {
	return tracing.Select("textimg.fonts")
}
