package glyphing

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFeature(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.glyphs")
	defer teardown()
	//
	liga := ot.T("liga")
	for s, expected := range map[string]FeatureRange{
		"liga":      {Feature: liga, Arg: 1, On: true, End: FeatureEnd},
		"+liga":     {Feature: liga, Arg: 1, On: true, End: FeatureEnd},
		"-liga":     {Feature: liga, On: false, End: FeatureEnd},
		"liga=0":    {Feature: liga, On: false, End: FeatureEnd},
		"liga=1":    {Feature: liga, Arg: 1, On: true, End: FeatureEnd},
		"aalt=2":    {Feature: ot.T("aalt"), Arg: 2, On: true, End: FeatureEnd},
		"liga[3:5]": {Feature: liga, Arg: 1, On: true, Start: 3, End: 5},
		"aalt[3:5]=2": {Feature: ot.T("aalt"), Arg: 2, On: true, Start: 3, End: 5},
		"liga[3]":   {Feature: liga, Arg: 1, On: true, Start: 3, End: 4},
		"liga[3:]":  {Feature: liga, Arg: 1, On: true, Start: 3, End: FeatureEnd},
		"-kern[:2]": {Feature: ot.T("kern"), On: false, Start: 0, End: 2},
		" ss02 ":    {Feature: ot.T("ss02"), Arg: 1, On: true, End: FeatureEnd},
		"liga[]=1":  {Feature: liga, Arg: 1, On: true, End: FeatureEnd},
		"smcp[:]":   {Feature: ot.T("smcp"), Arg: 1, On: true, End: FeatureEnd},
		"cv42[1:2]": {Feature: ot.T("cv42"), Arg: 1, On: true, Start: 1, End: 2},
	} {
		frng, err := ParseFeature(s)
		require.NoError(t, err, "feature setting %q", s)
		if diff := cmp.Diff(expected, frng); diff != "" {
			t.Errorf("feature setting %q: mismatch (-want +got):\n%s", s, diff)
		}
	}
}

func TestParseFeatureErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.glyphs")
	defer teardown()
	//
	for _, s := range []string{"abc1", "lig", "ligatures", "liga[5:3]", "liga[3", "+-liga", "xxxx", ""} {
		_, err := ParseFeature(s)
		if assert.Error(t, err, "feature setting %q", s) {
			assert.Equal(t, core.WFEATURE, core.Code(err), "feature setting %q", s)
			assert.True(t, core.IsWarning(err))
		}
	}
}

func TestParseFeaturesSkipsInvalid(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.glyphs")
	defer teardown()
	//
	feats, warnings := ParseFeatures([]string{"abc1", "liga", "", "-kern"})
	require.Len(t, feats, 2)
	assert.Equal(t, "liga", feats[0].Feature.String())
	assert.Equal(t, "kern", feats[1].Feature.String())
	assert.False(t, feats[1].On)
	require.Len(t, warnings, 1)
	assert.Equal(t, core.WFEATURE, core.Code(warnings[0]))
}

func TestFeatureRangeString(t *testing.T) {
	for s, expected := range map[string]string{
		"liga":      "liga",
		"-liga":     "-liga",
		"aalt=3":    "aalt=3",
		"kern[2:4]": "kern[2:4]",
		"kern[2:]":  "kern[2:]",
	} {
		frng, err := ParseFeature(s)
		require.NoError(t, err)
		assert.Equal(t, expected, frng.String())
	}
}

func TestSplitFeatureList(t *testing.T) {
	list := SplitFeatureList("liga, -kern,,smcp  onum")
	assert.Equal(t, []string{"liga", "-kern", "smcp", "onum"}, list)
}

func TestParseDirection(t *testing.T) {
	for s, d := range map[string]Direction{
		"":     DirectionAuto,
		"auto": DirectionAuto,
		"LTR":  LeftToRight,
		"rtl":  RightToLeft,
		"ttb":  TopToBottom,
		"btt":  BottomToTop,
	} {
		dir, err := ParseDirection(s)
		assert.NoError(t, err)
		assert.Equal(t, d, dir, "direction %q", s)
	}
	_, err := ParseDirection("sideways")
	assert.Equal(t, core.EINVALID, core.Code(err))
}

func TestSequenceAdvance(t *testing.T) {
	seq := GlyphSequence{Glyphs: []GlyphRecord{
		{XAdvance: 640}, {XAdvance: 320, YAdvance: 64},
	}}
	assert.Equal(t, 2, seq.Len())
	adv := seq.Advance()
	assert.EqualValues(t, 960, adv.X)
	assert.EqualValues(t, 64, adv.Y)
}
