package resources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textimg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

func TestPackagedFonts(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.resources")
	defer teardown()
	//
	for name, expected := range map[string]string{
		"":            "Go Regular",
		"goregular":   "Go Regular",
		"Go Mono":     "Go Mono",
		"gomono":      "Go Mono",
		"LatinModern": "Latin Modern Roman",
	} {
		f, ok := Packaged(name)
		if assert.True(t, ok, "expected %q to be packaged", name) {
			assert.Equal(t, expected, f.Fontname)
		}
	}
	_, ok := Packaged("Comic Sans")
	assert.False(t, ok)
}

func TestResolvePackaged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.resources")
	defer teardown()
	//
	typecase, err := ResolveTypeCase(nil, "gomono", 20).TypeCase()
	require.NoError(t, err)
	assert.Equal(t, 20, typecase.PointSize())
	assert.Equal(t, "Go Mono", typecase.Name())
	//
	_, err = ResolveTypeCase(nil, "gomono", 0).TypeCase()
	assert.Equal(t, core.EFONTLOAD, core.Code(err), "expected bad size to be a font load error")
}

func TestResolveFile(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.resources")
	defer teardown()
	//
	fpath := filepath.Join(t.TempDir(), "gomono.ttf")
	require.NoError(t, os.WriteFile(fpath, gomono.TTF, 0644))
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	typecase, err := ResolveTypeCase(nil, fpath, 12).Await(ctx)
	require.NoError(t, err)
	assert.Equal(t, fpath, typecase.ScalableFontParent().Filepath)
}

func TestResolveMissing(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.resources")
	defer teardown()
	//
	conf := testconfig.Conf{"fontconfig": "fc-list"} // not absolute, will be ignored
	_, err := ResolveTypeCase(conf, "No-Such-Font-4711", 12).TypeCase()
	require.Error(t, err)
	assert.Equal(t, core.EFONTLOAD, core.Code(err))
}

func TestRegistry(t *testing.T) {
	f, _ := Packaged("gomono")
	reg := NewRegistry()
	reg.StoreFont("My Mono.ttf", f)
	g, ok := reg.Font("my_mono")
	assert.True(t, ok)
	assert.Same(t, f, g)
	reg.StoreFont("My Mono", nil)
	g, _ = reg.Font("My Mono")
	assert.Same(t, f, g, "expected stored font not to be overridden")
}

func TestFontConfigList(t *testing.T) {
	out := []byte(`/usr/share/fonts/DejaVuSans.ttf:DejaVu Sans:Book
/usr/share/fonts/DejaVuSans-Bold.ttf:DejaVu Sans:Bold
/usr/share/fonts/DejaVuSans-Oblique.ttf:DejaVu Sans:Oblique
/usr/share/fonts/NotoSansCJK.ttc:Noto Sans CJK JP:Regular
garbage
`)
	descs := parseFontConfigList(out)
	require.Len(t, descs, 3)
	assert.Equal(t, []string{"regular"}, descs[0].Variants)
	assert.Equal(t, []string{"bold"}, descs[1].Variants)
	assert.Equal(t, []string{"oblique"}, descs[2].Variants)
	//
	desc, variant, conf := ClosestMatch(descs, familyPattern("DejaVu Sans Bold"), xfont.StyleNormal, xfont.WeightBold)
	assert.Equal(t, "bold", variant)
	assert.Equal(t, "/usr/share/fonts/DejaVuSans-Bold.ttf", desc.Path)
	assert.True(t, conf > LowConfidence)
	desc, _, _ = ClosestMatch(descs, familyPattern("dejavu sans"), xfont.StyleNormal, xfont.WeightNormal)
	assert.Equal(t, "/usr/share/fonts/DejaVuSans.ttf", desc.Path)
	_, _, conf = ClosestMatch(descs, familyPattern("Helvetica"), xfont.StyleNormal, xfont.WeightNormal)
	assert.Equal(t, NoConfidence, conf)
}

func TestFamilyPattern(t *testing.T) {
	assert.Equal(t, "^dejavu sans", familyPattern("DejaVu Sans Bold Italic"))
	assert.Equal(t, `^c\+\+ mono`, familyPattern("C++ Mono"))
}
