package report

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"image"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"github.com/npillmayer/textimg/core/font/otquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

var testInfo = otquery.FontInfo{
	Name:           "Test Sans",
	Family:         "Test",
	Style:          "Regular",
	Format:         "TrueType",
	Glyphs:         3,
	Spline:         true,
	Scalable:       true,
	Horizontal:     true,
	HaveGlyphNames: true,
	MaxAdvance:     1229,
	Encoding:       "unicode",
	SFNTNames: []otquery.NameRecord{
		{ID: sfnt.NameIDFamily, Label: "Family", Value: "Test"},
		{ID: sfnt.NameIDVendorURL, Label: "Vendor URL", Value: "https://example.org"},
	},
	Features:   []otquery.TagInfo{{Tag: ot.T("liga"), Tables: "GSUB"}},
	CharMap:    []rune{'A', 'B'},
	GlyphNames: []string{".notdef", "A", "B"},
}

var testText = otquery.TextInfo{Text: "AB", Length: 2, Renderable: 2}

func TestKeys(t *testing.T) {
	p := Printer{Format: JSON}
	assert.Equal(t, "max_advance_width", p.key("Max Advance Width"))
	assert.Equal(t, "non-renderable_glyphs", p.key("Non-renderable Glyphs"))
	p = Printer{Format: Raw}
	assert.Equal(t, "Max Advance Width: ", p.key("Max Advance Width"))
}

func TestParseFormat(t *testing.T) {
	for s, f := range map[string]Format{"json": JSON, "XML": XML, "raw": Raw} {
		format, err := ParseFormat(s)
		assert.NoError(t, err)
		assert.Equal(t, f, format)
	}
	_, err := ParseFormat("yaml")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestMetricsJSON(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.fonts")
	defer teardown()
	//
	var buf bytes.Buffer
	err := Printer{Format: JSON}.PrintMetrics(&buf, "AB", testInfo, testText)
	require.NoError(t, err)
	t.Logf("\n%s", buf.String())
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m), "expected valid JSON")
	assert.Equal(t, "AB", m["text_input"])
	assert.EqualValues(t, 2, m["text_length"])
	assert.EqualValues(t, 1229, m["max_advance_width"])
	assert.Equal(t, true, m["spline"])
	assert.Equal(t, false, m["missing_empty_glyph"])
	assert.Equal(t, []interface{}{"A", "B"}, m["character_map"])
	assert.Equal(t, []interface{}{".notdef", "A", "B"}, m["glyph_names"])
	names, ok := m["sfnt_names"].(map[string]interface{})
	require.True(t, ok, "expected SFNT names to be an object")
	assert.Equal(t, "https://example.org", names["vendor_url"])
	feats, ok := m["opentype_features"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "GSUB", feats["liga"])
	_, ok = m["opentype_scripts"]
	assert.False(t, ok, "expected no scripts entry for a font without scripts")
	// keys keep the order they were put in
	s := buf.String()
	assert.Less(t, strings.Index(s, "text_input"), strings.Index(s, "font_name"))
	assert.Less(t, strings.Index(s, "encoding"), strings.Index(s, "character_map"))
}

func TestMetricsCodepoints(t *testing.T) {
	var buf bytes.Buffer
	err := Printer{Format: JSON, Codepoints: true}.PrintMetrics(&buf, "AB", testInfo, testText)
	require.NoError(t, err)
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, []interface{}{65.0, 66.0}, m["character_map"])
}

func TestMetricsXML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.fonts")
	defer teardown()
	//
	var buf bytes.Buffer
	err := Printer{Format: XML}.PrintMetrics(&buf, "A<B", testInfo, testText)
	require.NoError(t, err)
	t.Logf("\n%s", buf.String())
	var doc struct {
		XMLName  xml.Name `xml:"metrics"`
		Text     string   `xml:"text_input"`
		Chars    []string `xml:"character_map>char"`
		Glyphs   []string `xml:"glyph_names>glyph"`
		Encoding string   `xml:"encoding"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc), "expected well-formed XML")
	assert.Equal(t, "A<B", doc.Text)
	assert.Equal(t, []string{"A", "B"}, doc.Chars)
	assert.Equal(t, []string{".notdef", "A", "B"}, doc.Glyphs)
	assert.Equal(t, "unicode", doc.Encoding)
}

func TestMetricsRaw(t *testing.T) {
	var buf bytes.Buffer
	err := Printer{Format: Raw}.PrintMetrics(&buf, "AB", testInfo, testText)
	require.NoError(t, err)
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "Text Input: AB", lines[0])
	assert.Contains(t, lines, "Max Advance Width: 1229")
	assert.Contains(t, lines, "  Vendor URL: https://example.org")
	assert.Contains(t, lines, "  A")
}

func TestGlyphInfo(t *testing.T) {
	g := font.Glyph{
		Index:   36,
		Advance: fixed.Point26_6{X: 1280},
		Size:    image.Pt(18, 20),
		Origin:  image.Pt(1, 20),
	}
	var buf bytes.Buffer
	require.NoError(t, Printer{Format: JSON}.PrintGlyph(&buf, "A", g))
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, false, m["empty"])
	assert.Equal(t, "A", m["glyph_character"])
	assert.EqualValues(t, 36, m["index"])
	assert.EqualValues(t, 1280, m["advance.x"])
	assert.EqualValues(t, 18, m["size.width"])
	assert.EqualValues(t, 20, m["position.y"])
	//
	g = font.Glyph{Missing: true}
	buf.Reset()
	require.NoError(t, Printer{Format: JSON}.PrintGlyph(&buf, "\U000e01ef", g))
	m = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, true, m["empty"])
	_, ok := m["glyph_character"]
	assert.False(t, ok, "expected no character for a missing glyph")
}

func TestEmptyLists(t *testing.T) {
	info := testInfo
	info.CharMap = nil
	info.HaveGlyphNames = false
	var buf bytes.Buffer
	require.NoError(t, Printer{Format: JSON}.PrintMetrics(&buf, "", info, otquery.TextInfo{}))
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	assert.Equal(t, []interface{}{}, m["character_map"])
	assert.Equal(t, []interface{}{}, m["glyph_names"])
}
