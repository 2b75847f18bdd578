package otlayout

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"github.com/stretchr/testify/assert"
)

func TestIdentifyFeatureTag(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "textimg.fonts")
	defer teardown()
	//
	for tag, typ := range map[string]LayoutTagType{
		"liga": GSubFeatureType,
		"kern": GPosFeatureType,
		"ss01": GSubFeatureType,
		"ss20": GSubFeatureType,
		"ss21": 0,
		"cv99": GSubFeatureType,
		"cv00": 0,
		"abc1": 0,
		"lig":  0,
	} {
		assert.Equal(t, typ, IdentifyFeatureTag(ot.T(tag)), "feature tag %q", tag)
	}
	assert.True(t, IsRegisteredFeature(ot.T("smcp")))
	assert.False(t, IsRegisteredFeature(ot.T("xxxx")))
}
