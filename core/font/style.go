package font

import (
	"path"
	"strings"

	xfont "golang.org/x/image/font"
)

// NormalizeFontname returns a font name suitable for matching: lowercase,
// without file extension, spaces replaced by underscores.
func NormalizeFontname(fname string) string {
	fname = strings.TrimSpace(path.Base(fname))
	fname = strings.ReplaceAll(fname, " ", "_")
	if dot := strings.LastIndex(fname, "."); dot > 0 {
		fname = fname[:dot]
	}
	fname = strings.ToLower(fname)
	return fname
}

// GuessStyleAndWeight trys to guess a font's style and weight from either
// the font's file name or its sub-family name (e.g., "Bold Italic").
func GuessStyleAndWeight(name string) (xfont.Style, xfont.Weight) {
	name = NormalizeFontname(name)
	s := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_'
	})
	if len(s) > 0 {
		switch s[len(s)-1] {
		case "light", "xlight":
			return xfont.StyleNormal, xfont.WeightLight
		case "normal", "medium", "regular", "r", "book":
			return xfont.StyleNormal, xfont.WeightNormal
		case "bold", "b":
			return xfont.StyleNormal, xfont.WeightBold
		case "xbold", "black":
			return xfont.StyleNormal, xfont.WeightExtraBold
		}
	}
	style, weight := xfont.StyleNormal, xfont.WeightNormal
	if strings.Contains(name, "italic") {
		style = xfont.StyleItalic
	} else if strings.Contains(name, "oblique") {
		style = xfont.StyleOblique
	}
	if strings.Contains(name, "light") {
		weight = xfont.WeightLight
	}
	if strings.Contains(name, "bold") {
		weight = xfont.WeightBold
	}
	return style, weight
}

// IsBold is a predicate for weights from semi-bold upwards.
func IsBold(weight xfont.Weight) bool {
	return weight >= xfont.WeightSemiBold
}

// IsItalic is a predicate for italic and oblique styles.
func IsItalic(style xfont.Style) bool {
	return style == xfont.StyleItalic || style == xfont.StyleOblique
}
