package glyphing

import (
	"strings"

	hb "github.com/benoitkugler/textlayout/harfbuzz"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font/opentype/ot"
	"github.com/npillmayer/textimg/core/font/opentype/otlayout"
)

// ParseFeature parses a single feature setting. Feature settings follow the
// syntax of hb-shape:
//
//	liga        turn feature on
//	+liga       turn feature on
//	-liga       turn feature off
//	liga=0      turn feature off
//	aalt=2      select alternate #2
//	kern[3:5]   turn feature on for code-points 3 and 4
//	kern[3]     turn feature on for code-point 3
//	kern[3:]    turn feature on from code-point 3 to the end
//
// Tags not registered as OpenType layout features are rejected, as are
// empty ranges.
func ParseFeature(s string) (FeatureRange, error) {
	s = strings.TrimSpace(s)
	feat, err := hb.ParseFeature(s)
	if err != nil {
		return FeatureRange{}, core.WrapError(err, core.WFEATURE, "cannot parse feature setting %q", s)
	}
	frng := FeatureRange4Glyphing(feat)
	if !otlayout.IsRegisteredFeature(frng.Feature) {
		return FeatureRange{}, core.Error(core.WFEATURE, "not an OpenType feature: %q",
			strings.TrimSpace(frng.Feature.String()))
	}
	if frng.End <= frng.Start {
		return FeatureRange{}, core.Error(core.WFEATURE, "empty range in feature setting %q", s)
	}
	return frng, nil
}

// FeatureRange4Glyphing converts a HarfBuzz feature setting to a feature range.
func FeatureRange4Glyphing(feat hb.Feature) FeatureRange {
	frng := FeatureRange{
		Feature: ot.Tag(feat.Tag),
		Arg:     int(feat.Value),
		On:      feat.Value != 0,
		Start:   feat.Start,
		End:     feat.End,
	}
	if feat.End == hb.FeatureGlobalEnd {
		frng.End = FeatureEnd
	}
	return frng
}

// ParseFeatures parses a list of feature settings. Settings which cannot be
// parsed or name tags unknown to OpenType are skipped; for each of them a
// warning with code core.WFEATURE is returned. Skipping a feature never
// prevents the others from being used.
func ParseFeatures(settings []string) ([]FeatureRange, []error) {
	var feats []FeatureRange
	var warnings []error
	for _, s := range settings {
		if strings.TrimSpace(s) == "" {
			continue
		}
		frng, err := ParseFeature(s)
		if err != nil {
			tracer().Infof("skipping feature: %v", err)
			warnings = append(warnings, err)
			continue
		}
		tracer().Debugf("feature %s enabled", frng)
		feats = append(feats, frng)
	}
	return feats, warnings
}

// SplitFeatureList splits a comma- or blank-separated list of feature settings.
func SplitFeatureList(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
