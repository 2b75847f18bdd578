/*
Package otlayout knows about OpenType layout features.

It holds the registry of layout feature tags and may be consulted by text
shaping clients to check user-supplied feature tags before handing them
to a shaper.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout
