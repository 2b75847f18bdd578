/*
Package ot provides basic OpenType types: tags and glyph indices.

Tags are 4-byte identifiers used throughout OpenType for tables, scripts,
language systems, features and baselines. Text shapers and feature
registries use them to refer to layout features such as 'liga' or 'kern'.

Parsing of font tables is left to golang.org/x/image/font/sfnt (rasterizing)
and to the HarfBuzz port of github.com/benoitkugler/textlayout (shaping).

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot
