/*
Package render turns a line of text into an image.

Rendering is a strictly linear pipeline: the text is shaped into a sequence of
glyphs, the glyphs are laid out on a canvas tightly enclosing their ink, and
finally the glyphs are rasterized onto an image of the canvas' size.

	                shaper            layout           raster
	text + font ──────────▶ glyphs ─────────▶ canvas ─────────▶ image

Problems which do not prevent rendering, such as unknown OpenType features
or text without visible ink, are collected as warnings in a Report.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package render

import (
	"errors"
	"strings"

	"github.com/npillmayer/schuko"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/textimg/backend/gfx"
	"github.com/npillmayer/textimg/backend/gfx/raster"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/engine/glyphing"
	"github.com/npillmayer/textimg/engine/glyphing/harfbuzz"
	"github.com/npillmayer/textimg/engine/layout"
	"golang.org/x/text/language"
)

// tracer traces with key 'textimg.render'.
func tracer() tracing.Trace {
	return tracing.Select("textimg.render")
}

// Config holds the settings of a renderer. Zero values select defaults:
// HarfBuzz shaping, language en-US, and direction and script guessed from
// the text.
type Config struct {
	Shaper    glyphing.Shaper
	Features  []string // OpenType feature settings, e.g. "liga" or "-kern"
	Language  language.Tag
	Direction glyphing.Direction
	Script    language.Script
	Raster    raster.Options
}

// ConfigFrom reads renderer settings from a configuration. Keys are
// 'textimg.language', 'textimg.features' (a list separated by commas or
// blanks), 'textimg.direction' and 'textimg.script'. Invalid settings are
// reported as errors with code core.EINVALID.
func ConfigFrom(conf schuko.Configuration) (Config, error) {
	var c Config
	if conf == nil {
		return c, nil
	}
	var err error
	if l := conf.GetString("textimg.language"); l != "" {
		if c.Language, err = language.Parse(l); err != nil {
			return c, core.WrapError(err, core.EINVALID, "invalid language %q", l)
		}
	}
	if f := conf.GetString("textimg.features"); f != "" {
		c.Features = glyphing.SplitFeatureList(f)
	}
	if d := conf.GetString("textimg.direction"); d != "" {
		if c.Direction, err = glyphing.ParseDirection(d); err != nil {
			return c, err
		}
	}
	if s := strings.TrimSpace(conf.GetString("textimg.script")); s != "" {
		if c.Script, err = language.ParseScript(s); err != nil {
			return c, core.WrapError(err, core.EINVALID, "invalid script %q", s)
		}
	}
	return c, nil
}

// Report tells about a render call.
type Report struct {
	Glyphs   int                // number of glyphs drawn
	Box      layout.BoundingBox // canvas and ink
	Warnings []error            // non-fatal problems, see core.IsWarning
}

// Renderer renders lines of text. A renderer holds no state between calls
// except its configuration; it is safe for concurrent use as long as its
// shaper is and each call uses a typecase of its own.
type Renderer struct {
	conf     Config
	features []glyphing.FeatureRange
	warnings []error // from parsing the feature settings
}

// New creates a renderer. Feature settings which cannot be used are skipped
// and will be reported as warnings with every render call.
func New(conf Config) *Renderer {
	r := &Renderer{conf: conf}
	if r.conf.Shaper == nil {
		r.conf.Shaper = harfbuzz.Shaper()
	}
	r.features, r.warnings = glyphing.ParseFeatures(conf.Features)
	for _, w := range r.warnings {
		tracer().Infof("%v", w)
	}
	if len(r.features) > 0 {
		tracer().Debugf("enabled %d OpenType feature settings", len(r.features))
	}
	return r
}

// Render renders text in a font and a color. The font is scaled so that its
// em is as many pixels as its point size. The image returned is exclusively
// owned by the caller.
//
// A missing font results in an error with code core.EFONTLOAD. Failures to
// shape, measure or draw glyphs are returned as errors with code core.ERENDER,
// and no image is returned.
func (r *Renderer) Render(tc *font.TypeCase, c gfx.Color, text string) (*gfx.Image, Report, error) {
	report := Report{Warnings: append([]error(nil), r.warnings...)}
	if tc == nil {
		return nil, report, core.Error(core.EFONTLOAD, "no font to render text with")
	}
	tc = tc.UserSpaceCase() // em = point size in pixels
	params := glyphing.Params{
		Font:      tc,
		Direction: r.conf.Direction,
		Script:    r.conf.Script,
		Language:  r.conf.Language,
		Features:  r.features,
	}
	seq, err := r.conf.Shaper.Shape(strings.NewReader(text), nil, nil, params)
	if err != nil {
		return nil, report, asRenderError(err, "cannot shape text")
	}
	tracer().Debugf("shaped %d code-points into %d glyphs", len([]rune(text)), seq.Len())
	sf, err := raster.NewScaledFont(tc, r.conf.Raster)
	if err != nil {
		return nil, report, err
	}
	defer sf.Close()
	result, err := layout.Layout(seq, sf)
	report.Warnings = append(report.Warnings, result.Warnings...)
	if err != nil {
		return nil, report, err
	}
	report.Box = result.Box
	report.Glyphs = len(result.Glyphs)
	img, err := raster.Rasterize(result.Box.Size(), tc, c, result.Glyphs, r.conf.Raster)
	if err != nil {
		return nil, report, err
	}
	tracer().Infof("rendered %d glyphs onto %dx%d image", report.Glyphs, img.Width, img.Height)
	return img, report, nil
}

// asRenderError keeps application errors and wraps any other error as a
// render error.
func asRenderError(err error, msg string) error {
	var appErr core.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return core.WrapError(err, core.ERENDER, msg)
}
