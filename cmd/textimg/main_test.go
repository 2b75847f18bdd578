package main

import (
	"bytes"
	"encoding/json"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textimg/backend/gfx"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/engine/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	cmd, ok := parseCommand(":Size  24pt ")
	assert.True(t, ok)
	assert.Equal(t, command{op: "size", arg: "24pt"}, cmd)
	_, ok = parseCommand("Hello")
	assert.False(t, ok)
	_, ok = parseCommand(":")
	assert.False(t, ok, "a lone colon is text")
}

func TestConfigure(t *testing.T) {
	conf := configure(&options{lang: "fr", trace: "Debug"})
	assert.Equal(t, "fr", conf.GetString("textimg.language"))
	assert.Equal(t, "Debug", conf.GetString("trace.textimg.render"))
	rconf, err := render.ConfigFrom(conf)
	require.NoError(t, err)
	assert.Empty(t, rconf.Features)
}

func testApp(t *testing.T) *app {
	tc, err := font.FallbackFont().PrepareCase(16)
	require.NoError(t, err)
	conf := configure(&options{trace: "Error"})
	return &app{
		conf:     conf,
		fontname: "goregular",
		tc:       tc,
		color:    gfx.Black,
		renderer: render.New(render.Config{}),
		out:      filepath.Join(t.TempDir(), "out.png"),
	}
}

func TestRenderToFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.core")
	defer teardown()
	//
	a := testApp(t)
	require.NoError(t, a.render("Hello"))
	f, err := os.Open(a.out)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.True(t, img.Bounds().Dx() > 3)
}

func TestInteractiveCommands(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.core")
	defer teardown()
	//
	a := testApp(t)
	var buf bytes.Buffer
	quit, err := a.execute(&buf, ":size 20pt")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, 20, a.tc.PointSize())
	_, err = a.execute(&buf, ":font gomono")
	require.NoError(t, err)
	assert.Equal(t, "Go Mono", a.tc.Name())
	_, err = a.execute(&buf, ":color puce-ish")
	assert.Equal(t, core.EINVALID, core.Code(err))
	_, err = a.execute(&buf, ":font No-Such-Font-4711")
	assert.Equal(t, core.EFONTLOAD, core.Code(err))
	assert.Equal(t, "Go Mono", a.tc.Name(), "expected font to be unchanged")
	//
	buf.Reset()
	_, err = a.execute(&buf, ":glyph A")
	require.NoError(t, err)
	var glyph map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &glyph), buf.String())
	assert.Equal(t, "A", glyph["glyph_character"])
	//
	buf.Reset()
	_, err = a.execute(&buf, ":help")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), ":metrics")
	quit, err = a.execute(&buf, ":quit")
	require.NoError(t, err)
	assert.True(t, quit)
}
