package resources

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/flopp/go-findfont"
	"github.com/go-fonts/latin-modern/lmroman10regular"
	"github.com/npillmayer/schuko"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
)

// NotFound returns an application error for a font which cannot be located.
func NotFound(name string) error {
	e := fmt.Errorf("resource missing: %v", name)
	return core.WrapError(e, core.EFONTLOAD, "font not found: %s", name)
}

var latinModernLoading sync.Once
var latinModern *font.ScalableFont
var latinModernErr error

// Packaged returns a font packaged with the application. Names are compared
// in normalized form, i.e. "Go Mono" will find "gomono". An empty name
// denotes the fallback font.
func Packaged(name string) (*font.ScalableFont, bool) {
	if strings.TrimSpace(name) == "" {
		return font.FallbackFont(), true
	}
	switch font.NormalizeFontname(name) {
	case "goregular", "go_regular", "go":
		return font.FallbackFont(), true
	case "gomono", "go_mono":
		return font.FallbackMonoFont(), true
	case "latinmodern", "latin_modern", "lmroman", "lmroman10", "latin_modern_roman":
		latinModernLoading.Do(func() {
			latinModern, latinModernErr = font.ParseOpenTypeFont(lmroman10regular.TTF)
			if latinModernErr == nil {
				latinModern.Fontname = "Latin Modern Roman"
				latinModern.Filepath = "internal"
			}
		})
		return latinModern, latinModernErr == nil
	}
	return nil, false
}

// --- Fonts -----------------------------------------------------------------

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

// TypeCasePromise is a typecase which will be available in the future.
type TypeCasePromise interface {
	TypeCase() (*font.TypeCase, error)
	Await(ctx context.Context) (*font.TypeCase, error)
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*font.TypeCase, error) {
	return loader.await(ctx)
}

// ResolveTypeCase resolves a font and scales it to a point size. conf may be
// nil; if it is not, key 'fontconfig' may point to the 'fc-list' binary.
//
// Fonts are searched for in the following order: font files, fonts packaged
// with the application, fonts registered by earlier calls, fonts found by
// fontconfig and fonts found in the system's font directories. Errors have
// code core.EFONTLOAD.
func ResolveTypeCase(conf schuko.Configuration, name string, size int) TypeCasePromise {
	ch := make(chan fontPlusErr, 1)
	go func(ch chan<- fontPlusErr) {
		defer close(ch)
		result := fontPlusErr{}
		var f *font.ScalableFont
		f, result.err = resolveFont(conf, name)
		if result.err == nil {
			result.font, result.err = f.PrepareCase(size)
		}
		ch <- result
	}(ch)
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case r := <-ch:
				return r.font, r.err
			}
		},
	}
}

func resolveFont(conf schuko.Configuration, name string) (*font.ScalableFont, error) {
	if fi, err := os.Stat(name); err == nil && !fi.IsDir() {
		tracer().Debugf("loading font file %s", name)
		return font.LoadOpenTypeFont(name)
	}
	if f, ok := Packaged(name); ok {
		tracer().Debugf("found font %q as packaged font %s", name, f.Fontname)
		return f, nil
	}
	if f, ok := GlobalRegistry().Font(name); ok {
		return f, nil
	}
	var fpath string
	if conf != nil {
		style, weight := font.GuessStyleAndWeight(name)
		if desc, variant := findFontConfigFont(conf, familyPattern(name), style, weight); desc.Path != "" {
			tracer().Debugf("fontconfig found %s variant %s", desc.Family, variant)
			fpath = desc.Path
		}
	}
	if fpath == "" {
		if p, err := findfont.Find(name); err == nil && p != "" {
			tracer().Debugf("%s is a system font", name)
			fpath = p
		}
	}
	if fpath == "" {
		return nil, NotFound(name)
	}
	f, err := font.LoadOpenTypeFont(fpath)
	if err != nil {
		return nil, err
	}
	GlobalRegistry().StoreFont(name, f)
	return f, nil
}
