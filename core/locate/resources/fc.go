package resources

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/textimg/core"
	xfont "golang.org/x/image/font"
)

// fcFormat makes fc-list print one "file:family:style" line per font.
const fcFormat = "--format=%{file}:%{family[0]}:%{style[0]}\n"

func findFontConfigBinary(conf schuko.Configuration) (path string, err error) {
	path = conf.GetString("fontconfig")
	if path == "" {
		tracer().Infof("fontconfig not configured: key 'fontconfig' should point location of 'fc-list' binary")
		err = errors.New("fontconfig not configured")
	}
	return
}

func runFontConfigList(conf schuko.Configuration) ([]byte, error) {
	fcpath, err := findFontConfigBinary(conf)
	if err != nil {
		return nil, err
	}
	if !filepath.IsAbs(fcpath) {
		return nil, core.Error(core.EINVALID, "fontconfig binary fc-list must point to absolute path: %s", fcpath)
	}
	if fi, err := os.Stat(fcpath); err != nil || (fi.Mode().Perm()&0100) == 0 {
		return nil, core.WrapError(err, core.EINVALID,
			"fontconfig configuration points to an invalid binary: %s", fcpath)
	}
	out, err := exec.Command(fcpath, fcFormat).Output()
	if err != nil {
		return nil, core.WrapError(err, core.EINVALID, "fontconfig font list cannot be created")
	}
	return out, nil
}

// parseFontConfigList reads the output of fc-list. Font collections are
// skipped.
func parseFontConfigList(out []byte) []Descriptor {
	var descs []Descriptor
	ttc := 0
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		fields := strings.Split(line, ":")
		if len(fields) < 3 {
			continue
		}
		fontpath := strings.TrimSpace(fields[0])
		if strings.HasSuffix(strings.ToLower(fontpath), ".ttc") {
			ttc++
			continue
		}
		desc := Descriptor{
			Family: strings.TrimPrefix(strings.TrimSpace(fields[1]), "."),
			Path:   fontpath,
		}
		if v := variantOf(fields[2]); v != "" {
			desc.Variants = []string{v}
		}
		descs = append(descs, desc)
	}
	if ttc > 0 {
		tracer().Infof("skipping %d platform fonts: TTC not supported", ttc)
	}
	return descs
}

func variantOf(style string) string {
	style = strings.ToLower(style)
	switch {
	case strings.Contains(style, "italic"):
		return "italic"
	case strings.Contains(style, "oblique"):
		return "oblique"
	case strings.Contains(style, "bold"), strings.Contains(style, "black"):
		return "bold"
	case strings.Contains(style, "light"):
		return "light"
	case strings.Contains(style, "regular"), strings.Contains(style, "book"),
		strings.Contains(style, "text"), strings.Contains(style, "normal"):
		return "regular"
	}
	return ""
}

var loadFontConfigListTask sync.Once
var fontConfigDescriptors []Descriptor

// findFontConfigFont searches for a locally installed font variant using the fontconfig
// system (https://www.freedesktop.org/wiki/Software/fontconfig/).
// fontconfig has to be configured by setting key 'fontconfig' to the absolute
// path of the 'fc-list' binary.
//
// The output of fc-list is read once. Subsequent calls will use the cached
// entries to search for a font, given a family pattern, a style and a weight.
//
// We call the binary instead of using the C library because of possible version
// issues. If fontconfig is not configured, findFontConfigFont will silently return an
// empty font descriptor and an empty variant name.
func findFontConfigFont(conf schuko.Configuration, pattern string, style xfont.Style, weight xfont.Weight) (
	desc Descriptor, variant string) {
	//
	loadFontConfigListTask.Do(func() {
		out, err := runFontConfigList(conf)
		if err != nil {
			tracer().Infof("%v", err)
			return
		}
		fontConfigDescriptors = parseFontConfigList(out)
		tracer().Infof("loaded fontconfig list with %d fonts", len(fontConfigDescriptors))
	})
	var confidence MatchConfidence
	desc, variant, confidence = ClosestMatch(fontConfigDescriptors, pattern, style, weight)
	tracer().Debugf("closest fontconfig match confidence for %s|%s = %d", desc.Family, variant, confidence)
	if confidence > LowConfidence {
		return
	}
	return Descriptor{}, ""
}
