package otquery

import (
	"sort"

	"github.com/benoitkugler/textlayout/fonts"
	"github.com/benoitkugler/textlayout/fonts/truetype"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"golang.org/x/image/font/sfnt"
)

// Detail selects optional, expensive parts of a font query.
type Detail uint8

const (
	WithCharMap    Detail = 1 << iota // enumerate all mapped code-points
	WithGlyphNames                    // list the names of all glyphs
)

// NameRecord is an entry of the font's 'name' table.
type NameRecord struct {
	ID    sfnt.NameID
	Label string
	Value string
}

// TagInfo is an OpenType layout tag together with the layout tables
// ("GSUB", "GPOS" or "GSUB GPOS") it occurs in.
type TagInfo struct {
	Tag    ot.Tag
	Tables string
}

// FontInfo collects properties of a font for diagnostic output.
type FontInfo struct {
	Name            string
	Family          string
	Style           string
	Format          string
	Glyphs          int   // number of glyphs
	Sizes           []int // ppem of embedded bitmap strikes
	Bold            bool
	Italic          bool
	Spline          bool // glyph outlines are splines
	Horizontal      bool // horizontal metrics present
	Vertical        bool // vertical metrics present
	Kerning         bool // table 'kern' present
	Scalable        bool
	HaveGlyphNames  bool
	MultipleMasters bool
	MaxAdvance      int // maximum advance width, in font units
	Encoding        string
	SFNTNames       []NameRecord
	Features        []TagInfo
	Scripts         []TagInfo
	CharMap         []rune   // only with WithCharMap
	GlyphNames      []string // only with WithGlyphNames
}

// nameLabels are the labels of the predefined name IDs.
var nameLabels = map[sfnt.NameID]string{
	sfnt.NameIDCopyright:                  "Copyright",
	sfnt.NameIDFamily:                     "Family",
	sfnt.NameIDSubfamily:                  "Subfamily",
	sfnt.NameIDUniqueIdentifier:           "Unique Identifier",
	sfnt.NameIDFull:                       "Full Name",
	sfnt.NameIDVersion:                    "Version",
	sfnt.NameIDPostScript:                 "PostScript Name",
	sfnt.NameIDTrademark:                  "Trademark",
	sfnt.NameIDManufacturer:               "Manufacturer",
	sfnt.NameIDDesigner:                   "Designer",
	sfnt.NameIDDescription:                "Description",
	sfnt.NameIDVendorURL:                  "Vendor URL",
	sfnt.NameIDDesignerURL:                "Designer URL",
	sfnt.NameIDLicense:                    "License",
	sfnt.NameIDLicenseURL:                 "License URL",
	sfnt.NameIDTypographicFamily:          "Typographic Family",
	sfnt.NameIDTypographicSubfamily:       "Typographic Subfamily",
	sfnt.NameIDCompatibleFull:             "Compatible Full",
	sfnt.NameIDSampleText:                 "Sample Text",
	sfnt.NameIDPostScriptCID:              "PostScript CID",
	sfnt.NameIDWWSFamily:                  "WWS Family",
	sfnt.NameIDWWSSubfamily:               "WWS Subfamily",
	sfnt.NameIDLightBackgroundPalette:     "Light Background Palette",
	sfnt.NameIDDarkBackgroundPalette:      "Dark Background Palette",
	sfnt.NameIDVariationsPostScriptPrefix: "Variations PostScript Prefix",
}

// Info collects information about the scalable font of a typecase.
// Flags in detail switch on enumeration of the character map and of glyph
// names, which both may be large.
func Info(tc *font.TypeCase, detail Detail) (FontInfo, error) {
	if tc == nil {
		return FontInfo{}, core.Error(core.EMISSING, "no font to query")
	}
	sf := tc.ScalableFontParent()
	face, err := sf.Tables()
	if err != nil {
		return FontInfo{}, err
	}
	var buf sfnt.Buffer
	info := FontInfo{
		Name:            sf.Fontname,
		Format:          format(face.Type),
		Glyphs:          face.NumGlyphs,
		Sizes:           strikes(face),
		Spline:          has(face, "glyf", "CFF ", "CFF2"),
		Horizontal:      has(face, "hhea"),
		Vertical:        has(face, "vhea"),
		Kerning:         has(face, "kern"),
		HaveGlyphNames:  postHasNames(face) || has(face, "CFF "),
		MultipleMasters: has(face, "fvar"),
		MaxAdvance:      maxAdvanceWidth(face),
		Encoding:        encoding(face),
	}
	info.Scalable = info.Spline
	info.Family, _ = sf.SFNT.Name(&buf, sfnt.NameIDFamily)
	info.Style, _ = sf.SFNT.Name(&buf, sfnt.NameIDSubfamily)
	style, weight := font.GuessStyleAndWeight(info.Style)
	info.Bold = font.IsBold(weight)
	info.Italic = font.IsItalic(style)
	info.SFNTNames = names(sf.SFNT, &buf)
	info.Features, info.Scripts = layoutInfo(face.LayoutTables())
	if detail&WithCharMap != 0 {
		info.CharMap = CharMap(sf.SFNT)
	}
	if detail&WithGlyphNames != 0 && info.HaveGlyphNames {
		info.GlyphNames = glyphNames(sf.SFNT, &buf)
	}
	tracer().Debugf("font %s: %d glyphs, format %s, %d features", info.Name, info.Glyphs,
		info.Format, len(info.Features))
	return info, nil
}

func names(f *sfnt.Font, buf *sfnt.Buffer) []NameRecord {
	ids := make([]sfnt.NameID, 0, len(nameLabels))
	for id := range nameLabels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var recs []NameRecord
	for _, id := range ids {
		v, err := f.Name(buf, id)
		if err != nil || v == "" {
			continue
		}
		recs = append(recs, NameRecord{ID: id, Label: nameLabels[id], Value: v})
	}
	return recs
}

// layoutInfo lists the features and scripts of a font's GSUB and GPOS tables,
// each sorted by tag.
func layoutInfo(lt truetype.LayoutTables) (features []TagInfo, scripts []TagInfo) {
	ftables := make(map[ot.Tag]string)
	stables := make(map[ot.Tag]string)
	for _, l := range []struct {
		name  string
		table truetype.TableLayout
	}{{"GSUB", lt.GSUB.TableLayout}, {"GPOS", lt.GPOS.TableLayout}} {
		scr := make([]ot.Tag, 0, len(l.table.Scripts))
		for _, script := range l.table.Scripts {
			scr = append(scr, ot.Tag(script.Tag))
		}
		feat := make([]ot.Tag, 0, len(l.table.Features))
		for _, f := range l.table.Features {
			feat = append(feat, ot.Tag(f.Tag))
		}
		addTable(stables, unique(scr), l.name)
		addTable(ftables, unique(feat), l.name)
	}
	return sortedTagInfo(ftables), sortedTagInfo(stables)
}

// unique drops repeated tags, e.g. a feature listed once per language system.
func unique(tags []ot.Tag) []ot.Tag {
	seen := make(map[ot.Tag]bool, len(tags))
	out := tags[:0]
	for _, tag := range tags {
		if !seen[tag] {
			seen[tag] = true
			out = append(out, tag)
		}
	}
	return out
}

func addTable(m map[ot.Tag]string, tags []ot.Tag, table string) {
	for _, tag := range tags {
		if t, ok := m[tag]; ok {
			m[tag] = t + " " + table
		} else {
			m[tag] = table
		}
	}
}

func sortedTagInfo(m map[ot.Tag]string) []TagInfo {
	infos := make([]TagInfo, 0, len(m))
	for tag, tables := range m {
		infos = append(infos, TagInfo{Tag: tag, Tables: tables})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Tag < infos[j].Tag })
	return infos
}

// --- Table data ------------------------------------------------------------

func has(face *truetype.Font, tags ...string) bool {
	for _, t := range tags {
		if face.HasTable(truetype.MustNewTag(t)) {
			return true
		}
	}
	return false
}

// format returns the font type of the offset table as a string.
func format(t truetype.Tag) string {
	switch t {
	case truetype.TypeTrueType:
		return "TrueType"
	case truetype.TypeOpenType:
		return "OpenType (CFF outlines)"
	case truetype.TypeAppleTrueType:
		return "TrueType (Mac legacy)"
	case truetype.TypePostScript1:
		return "Type 1 (SFNT wrapped)"
	}
	return "<unknown>"
}

// maxAdvanceWidth returns field advanceWidthMax of table 'hhea', in font units.
func maxAdvanceWidth(face *truetype.Font) int {
	hhea, err := face.HheaTable()
	if err != nil {
		return 0
	}
	return int(hhea.AdvanceMax)
}

// postHasNames is a predicate: does table 'post' carry glyph names?
func postHasNames(face *truetype.Font) bool {
	post, err := face.PostTable()
	return err == nil && post.Names != nil
}

// strikes returns the ppem sizes of embedded bitmap strikes.
func strikes(face *truetype.Font) []int {
	var sizes []int
	for _, size := range face.LoadBitmaps() {
		sizes = append(sizes, int(size.YPpem))
	}
	sort.Ints(sizes)
	return sizes
}

// encoding returns the name of the character map used for code-point
// lookup. Symbol sub-tables take precedence, as they do for shaping.
func encoding(face *truetype.Font) string {
	cmap, enc := face.Cmap()
	if cmap == nil {
		return "none"
	}
	return encodingName(enc)
}

func encodingName(enc fonts.CmapEncoding) string {
	switch enc {
	case fonts.EncUnicode:
		return "unicode"
	case fonts.EncSymbol:
		return "ms_symbol"
	}
	return "other"
}

// CharMap returns all code-points mapped to a glyph by the font, in
// ascending order.
func CharMap(f *sfnt.Font) []rune {
	var buf sfnt.Buffer
	var runes []rune
	for r := rune(0); r <= 0x10ffff; r++ {
		if r >= 0xd800 && r <= 0xdfff { // surrogates
			continue
		}
		if x, err := f.GlyphIndex(&buf, r); err == nil && x != 0 {
			runes = append(runes, r)
		}
	}
	return runes
}

func glyphNames(f *sfnt.Font, buf *sfnt.Buffer) []string {
	n := f.NumGlyphs()
	gnames := make([]string, 0, n)
	for i := 0; i < n; i++ {
		name, err := f.GlyphName(buf, sfnt.GlyphIndex(i))
		if err != nil {
			tracer().Debugf("glyph %d: %v", i, err)
		}
		gnames = append(gnames, name)
	}
	return gnames
}
