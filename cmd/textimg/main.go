/*
Command textimg renders a line of text into a tightly cropped PNG image, or
reports metrics of a font.

	textimg -font gomono -size 32pt -text "Hello" -color "#202020ff" -out hello.png
	textimg -font "DejaVu Sans" -text "Hello" -metrics json
	textimg -font latinmodern -glyph fi -metrics xml
	textimg -font goregular -i

In interactive mode (flag -i) every line entered is rendered to the output
file. Lines starting with a colon are commands; enter ":help" for a list.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/textimg/backend/gfx"
	"github.com/npillmayer/textimg/backend/gfx/raster"
	"github.com/npillmayer/textimg/backend/report"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/dimen"
	"github.com/npillmayer/textimg/core/locate/resources"
	"github.com/npillmayer/textimg/engine/glyphing/monospace"
	"github.com/npillmayer/textimg/engine/render"
	"github.com/pterm/pterm"
)

// tracer traces with key 'textimg.core'
func tracer() tracing.Trace {
	return tracing.Select("textimg.core")
}

// tracing keys of the packages of this module
var tracingKeys = []string{
	"textimg.core", "textimg.fonts", "textimg.glyphs", "textimg.layout",
	"textimg.raster", "textimg.render", "textimg.resources",
}

// options collects the command line flags.
type options struct {
	font       string
	size       string
	text       string
	color      string
	out        string
	features   string
	lang       string
	dir        string
	script     string
	metrics    string
	glyph      string
	codepoints bool
	mono       bool
	antialias  string
	fclist     string
	repl       bool
	trace      string
}

func main() {
	initDisplay()
	opts := parseFlags()
	conf := configure(opts)
	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())
	tracer().Infof("Trace level is %s", opts.trace)
	//
	if err := run(opts, conf); err != nil {
		tracer().Errorf(err.Error())
		pterm.Error.Println(core.UserMessage(err))
		os.Exit(core.Code(err))
	}
}

func parseFlags() *options {
	opts := &options{}
	flag.StringVar(&opts.font, "font", "goregular", "Font file, packaged font (goregular|gomono|latinmodern) or system font name")
	flag.StringVar(&opts.size, "size", "32", "Font size in points or pixels, e.g. 32, 32pt or 44px")
	flag.StringVar(&opts.text, "text", "", "Text to render")
	flag.StringVar(&opts.color, "color", "#000000ff", "Text color as #RRGGBBAA, #RRGGBB, #RGB or color name")
	flag.StringVar(&opts.out, "out", "out.png", "Output PNG file")
	flag.StringVar(&opts.features, "features", "", "OpenType features, e.g. \"liga,-kern,ss01\"")
	flag.StringVar(&opts.lang, "lang", "", "Language of the text as BCP 47 tag")
	flag.StringVar(&opts.dir, "dir", "", "Text direction [ltr|rtl|ttb|btt]")
	flag.StringVar(&opts.script, "script", "", "Script of the text as ISO 15924 code, e.g. Latn")
	flag.StringVar(&opts.metrics, "metrics", "", "Print font metrics instead of rendering [json|xml|raw]")
	flag.StringVar(&opts.glyph, "glyph", "", "Print information about the glyph for a character (with -metrics)")
	flag.BoolVar(&opts.codepoints, "codepoints", false, "Print the character map as numeric code-points")
	flag.BoolVar(&opts.mono, "mono", false, "Set text on a monospace cell grid")
	flag.StringVar(&opts.antialias, "antialias", "subpixel", "Antialiasing [subpixel|gray|none]")
	flag.StringVar(&opts.fclist, "fc", "", "Absolute path of fontconfig's fc-list binary")
	flag.BoolVar(&opts.repl, "i", false, "Interactive mode")
	flag.StringVar(&opts.trace, "trace", "Error", "Trace level [Debug|Info|Error]")
	flag.Parse()
	return opts
}

// configure creates the application configuration from defaults and flags.
func configure(opts *options) testconfig.Conf {
	conf := testconfig.Conf{
		"tracing.adapter":   "go",
		"textimg.language":  opts.lang,
		"textimg.features":  opts.features,
		"textimg.direction": opts.dir,
		"textimg.script":    opts.script,
		"fontconfig":        opts.fclist,
	}
	for _, key := range tracingKeys {
		conf["trace."+key] = opts.trace
	}
	return conf
}

func run(opts *options, conf testconfig.Conf) error {
	size, err := dimen.ParseSize(opts.size, dimen.DPI)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "invalid font size %q", opts.size)
	}
	color, err := gfx.ParseColor(opts.color)
	if err != nil {
		return err
	}
	rconf, err := render.ConfigFrom(conf)
	if err != nil {
		return err
	}
	if rconf.Raster.Antialias, err = raster.ParseAntialias(opts.antialias); err != nil {
		return err
	}
	if opts.mono {
		rconf.Shaper = monospace.Shaper(0, nil)
	}
	tc, err := resources.ResolveTypeCase(conf, opts.font, size).TypeCase()
	if err != nil {
		return err
	}
	tracer().Infof("using font %s at %dpt", tc.Name(), tc.PointSize())
	app := &app{
		conf:     conf,
		fontname: opts.font,
		tc:       tc,
		color:    color,
		renderer: render.New(rconf),
		rconf:    rconf,
		out:      opts.out,
	}
	if opts.metrics != "" {
		format, err := report.ParseFormat(opts.metrics)
		if err != nil {
			return err
		}
		app.printer = &report.Printer{Format: format, Codepoints: opts.codepoints}
	}
	if opts.repl {
		repl, err := readline.New("textimg > ")
		if err != nil {
			return core.WrapError(err, core.EINTERNAL, "cannot start interactive mode")
		}
		defer repl.Close()
		pterm.Info.Println("Welcome to textimg")
		pterm.Info.Println("Quit with <ctrl>D")
		app.REPL(repl)
		return nil
	}
	switch {
	case app.printer != nil && opts.glyph != "":
		return app.printGlyph(os.Stdout, opts.glyph)
	case app.printer != nil:
		return app.printMetrics(os.Stdout, opts.text)
	case opts.text == "":
		pterm.Warning.Println("no text given, rendering an empty image")
	}
	return app.render(opts.text)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}
