package resources

import (
	"regexp"
	"strconv"
	"strings"

	xfont "golang.org/x/image/font"
)

// Descriptor describes an installed font family and the variants it comes in.
type Descriptor struct {
	Family   string
	Path     string
	Variants []string
}

// MatchConfidence is a type for expressing the confidence level of font matching.
type MatchConfidence int

const (
	NoConfidence      MatchConfidence = 0
	LowConfidence     MatchConfidence = 2
	HighConfidence    MatchConfidence = 3
	PerfectConfidence MatchConfidence = 4
)

// styleWords are words of a font name which denote a variant, not a family.
var styleWords = map[string]bool{
	"regular": true, "normal": true, "book": true, "medium": true, "text": true,
	"bold": true, "black": true, "light": true, "thin": true,
	"italic": true, "oblique": true,
}

// familyPattern returns a pattern matching the family part of a font name,
// e.g. "^dejavu sans" for "DejaVu Sans Bold".
func familyPattern(name string) string {
	var family []string
	for _, w := range strings.Fields(strings.ToLower(name)) {
		if styleWords[w] {
			break
		}
		family = append(family, w)
	}
	return "^" + regexp.QuoteMeta(strings.Join(family, " "))
}

// ClosestMatch scans a list of font desriptors and returns the closest match
// for a given set of parameters. pattern is a regular expression matched against
// lowercase family names.
// If no variant matches, returns `NoConfidence`.
func ClosestMatch(fdescs []Descriptor, pattern string, style xfont.Style,
	weight xfont.Weight) (match Descriptor, variant string, confidence MatchConfidence) {
	//
	r, err := regexp.Compile(strings.ToLower(pattern))
	if err != nil {
		tracer().Errorf("invalid font name pattern %q", pattern)
		return
	}
	for _, fdesc := range fdescs {
		if !r.MatchString(strings.ToLower(fdesc.Family)) {
			continue
		}
		for _, v := range fdesc.Variants {
			s := MatchStyle(v, style)
			w := MatchWeight(v, weight)
			if (s+w)/2 > confidence {
				confidence = (s + w) / 2
				variant = v
				match = fdesc
			}
		}
	}
	return
}

// MatchStyle trys to match a font-variant to a given style.
func MatchStyle(variantName string, style xfont.Style) MatchConfidence {
	variantName = strings.ToLower(variantName)
	switch style {
	case xfont.StyleNormal:
		switch variantName {
		case "regular", "400":
			return PerfectConfidence
		case "100", "200", "300", "500", "bold", "700":
			return HighConfidence
		}
	case xfont.StyleItalic:
		if strings.Contains(variantName, "italic") {
			return PerfectConfidence
		}
		if strings.Contains(variantName, "obliq") {
			return HighConfidence
		}
	case xfont.StyleOblique:
		if strings.Contains(variantName, "obliq") {
			return PerfectConfidence
		}
		if strings.Contains(variantName, "italic") {
			return HighConfidence
		}
	}
	return NoConfidence
}

// MatchWeight trys to match a font-variant to a given weight.
// Numeric variants are CSS font-weight values.
func MatchWeight(variantName string, weight xfont.Weight) MatchConfidence {
	if strconv.Itoa((int(weight)+4)*100) == variantName {
		return PerfectConfidence
	}
	switch variantName {
	case "regular", "400", "italic", "oblique", "normal", "text":
		switch weight {
		case xfont.WeightNormal, xfont.WeightMedium:
			return PerfectConfidence
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight:
			return LowConfidence
		}
	case "light", "100", "200", "300":
		switch weight {
		case xfont.WeightThin, xfont.WeightExtraLight, xfont.WeightLight:
			return PerfectConfidence
		case xfont.WeightNormal, xfont.WeightMedium:
			return LowConfidence
		}
	case "500":
		switch weight {
		case xfont.WeightMedium:
			return PerfectConfidence
		case xfont.WeightSemiBold:
			return HighConfidence
		case xfont.WeightNormal, xfont.WeightBold:
			return LowConfidence
		}
	case "bold", "700":
		switch weight {
		case xfont.WeightBold:
			return PerfectConfidence
		case xfont.WeightSemiBold, xfont.WeightExtraBold:
			return HighConfidence
		}
	case "extrabold", "600", "800", "900":
		switch weight {
		case xfont.WeightSemiBold:
			return LowConfidence
		case xfont.WeightBold:
			return HighConfidence
		}
	}
	return NoConfidence
}
