/*
Package report prints font metrics and glyph information for diagnostic
purposes.

Output is available as JSON, as XML or as raw "Label: value" lines. In the
structured formats, labels are turned into keys by lowercasing them and
replacing spaces by underscores, e.g. "Max Advance Width" becomes
"max_advance_width".

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package report

import (
	"io"
	"strings"

	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/core/font/otquery"
)

// Format is an output format of a printer.
type Format int

const (
	JSON Format = iota
	XML
	Raw
)

func (f Format) String() string {
	switch f {
	case JSON:
		return "json"
	case XML:
		return "xml"
	case Raw:
		return "raw"
	}
	return "<unknown format>"
}

// ParseFormat returns the format for a format name ("json", "xml" or "raw").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return JSON, nil
	case "xml":
		return XML, nil
	case "raw", "text", "txt":
		return Raw, nil
	}
	return JSON, core.Error(core.EINVALID, "unknown output format %q", s)
}

// Printer prints metrics in a format. If Codepoints is set, characters of
// the character map are printed as numeric code-points.
type Printer struct {
	Format     Format
	Codepoints bool
}

// key maps a label to a key of the printer's format.
func (p Printer) key(label string) string {
	if p.Format == Raw {
		return label + ": "
	}
	return strings.ToLower(strings.ReplaceAll(label, " ", "_"))
}

// PrintMetrics writes information about a font and its coverage of a text.
func (p Printer) PrintMetrics(w io.Writer, text string, info otquery.FontInfo, tinfo otquery.TextInfo) error {
	pt := &property{}
	pt.put(p.key("Text Input"), text)
	pt.put(p.key("Text Length"), tinfo.Length)
	pt.put(p.key("Font Name"), info.Name)
	pt.put(p.key("Font Family"), info.Family)
	pt.put(p.key("Font Style"), info.Style)
	pt.put(p.key("Font Format"), info.Format)
	pt.put(p.key("Available Glyphs"), info.Glyphs)
	pt.put(p.key("Available Sizes"), len(info.Sizes))
	pt.put(p.key("Bold"), info.Bold)
	pt.put(p.key("Italic"), info.Italic)
	pt.put(p.key("Spline"), info.Spline)
	pt.put(p.key("Horizontal"), info.Horizontal)
	pt.put(p.key("Vertical"), info.Vertical)
	pt.put(p.key("Kerning Available"), info.Kerning)
	pt.put(p.key("Scalable"), info.Scalable)
	pt.put(p.key("Have Glyph Names"), info.HaveGlyphNames)
	pt.put(p.key("Multiple Masters"), info.MultipleMasters)
	pt.put(p.key("Max Advance Width"), info.MaxAdvance)
	pt.put(p.key("Missing Empty Glyph"), tinfo.MissingEmpty)
	pt.put(p.key("Renderable Glyphs"), tinfo.Renderable)
	pt.put(p.key("Non-renderable Glyphs"), tinfo.NonRenderable)
	pt.put(p.key("Encoding"), info.Encoding)
	if len(info.SFNTNames) > 0 {
		names := &property{}
		for _, rec := range info.SFNTNames {
			names.put(p.key(rec.Label), rec.Value)
		}
		pt.putChild(p.key("SFNT Names"), names)
	}
	if len(info.Features) > 0 {
		pt.putChild(p.key("OpenType Features"), p.tagList(info.Features))
	}
	if len(info.Scripts) > 0 {
		pt.putChild(p.key("OpenType Scripts"), p.tagList(info.Scripts))
	}
	charmap := &property{}
	ckey := p.arrayKey("Char")
	for _, r := range info.CharMap {
		if p.Codepoints {
			charmap.put(ckey, int(r))
		} else {
			charmap.put(ckey, string(r))
		}
	}
	pt.putChild(p.key("Character Map"), charmap)
	glyphs := &property{}
	if info.HaveGlyphNames {
		gkey := p.arrayKey("Glyph")
		for _, name := range info.GlyphNames {
			glyphs.put(gkey, name)
		}
	}
	pt.putChild(p.key("Glyph Names"), glyphs)
	return p.write(w, "metrics", pt)
}

// PrintGlyph writes information about the glyph for a character.
func (p Printer) PrintGlyph(w io.Writer, char string, g font.Glyph) error {
	pt := &property{}
	pt.put(p.key("Empty"), g.Missing)
	if !g.Missing {
		pt.put(p.key("Glyph Character"), char)
	}
	pt.put(p.key("Index"), int(g.Index))
	pt.put(p.key("Advance.x"), int(g.Advance.X))
	pt.put(p.key("Advance.y"), int(g.Advance.Y))
	pt.put(p.key("Size.width"), g.Size.X)
	pt.put(p.key("Size.height"), g.Size.Y)
	pt.put(p.key("Position.x"), g.Origin.X)
	pt.put(p.key("Position.y"), g.Origin.Y)
	return p.write(w, "glyph", pt)
}

// arrayKey is the key of array elements: named elements for XML, anonymous
// ones otherwise.
func (p Printer) arrayKey(label string) string {
	if p.Format == XML {
		return p.key(label)
	}
	return ""
}

func (p Printer) tagList(tags []otquery.TagInfo) *property {
	list := &property{}
	for _, t := range tags {
		list.put(p.key(t.Tag.String()), t.Tables)
	}
	return list
}

func (p Printer) write(w io.Writer, root string, pt *property) error {
	var err error
	switch p.Format {
	case JSON:
		err = writeJSON(w, pt)
	case XML:
		err = writeXML(w, root, pt)
	case Raw:
		err = writeRaw(w, pt)
	default:
		return core.Error(core.EINVALID, "unknown output format %d", p.Format)
	}
	if err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write %s output", p.Format)
	}
	return nil
}
