package main

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/textimg/backend/gfx"
	"github.com/npillmayer/textimg/backend/report"
	"github.com/npillmayer/textimg/core"
	"github.com/npillmayer/textimg/core/dimen"
	"github.com/npillmayer/textimg/core/font"
	"github.com/npillmayer/textimg/core/font/otquery"
	"github.com/npillmayer/textimg/core/locate/resources"
	"github.com/npillmayer/textimg/engine/glyphing"
	"github.com/npillmayer/textimg/engine/render"
	"github.com/pterm/pterm"
	"golang.org/x/image/math/fixed"
)

// app holds the state of a textimg session. In interactive mode commands
// change it between lines of text.
type app struct {
	conf     testconfig.Conf
	fontname string
	tc       *font.TypeCase
	color    gfx.Color
	renderer *render.Renderer
	rconf    render.Config
	out      string
	printer  *report.Printer // nil unless metrics are requested
}

// render renders text and writes the image to the output file.
func (a *app) render(text string) error {
	img, rep, err := a.renderer.Render(a.tc, a.color, text)
	for _, w := range rep.Warnings {
		pterm.Warning.Println(core.UserMessage(w))
	}
	if err != nil {
		return err
	}
	f, err := os.Create(a.out)
	if err != nil {
		return core.WrapError(err, core.EINVALID, "cannot create output file %q", a.out)
	}
	defer f.Close()
	if err = png.Encode(f, img.ToRGBA()); err != nil {
		return core.WrapError(err, core.EINTERNAL, "cannot write PNG to %q", a.out)
	}
	pterm.Success.Printfln("%d glyphs rendered to %s (%dx%d)", rep.Glyphs, a.out, img.Width, img.Height)
	return nil
}

// printMetrics prints font information and the coverage of text.
func (a *app) printMetrics(w io.Writer, text string) error {
	info, err := otquery.Info(a.tc, otquery.WithCharMap|otquery.WithGlyphNames)
	if err != nil {
		return err
	}
	return a.reporter().PrintMetrics(w, text, info, otquery.Coverage(a.tc, text))
}

// printGlyph prints information about the glyph for the first character of s.
func (a *app) printGlyph(w io.Writer, s string) error {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return core.Error(core.EINVALID, "need a character to print glyph information for")
	}
	g, err := a.tc.GlyphFor(r, fixed.Point26_6{})
	if err != nil {
		return err
	}
	return a.reporter().PrintGlyph(w, string(r), g)
}

func (a *app) reporter() *report.Printer {
	if a.printer == nil {
		a.printer = &report.Printer{Format: report.JSON}
	}
	return a.printer
}

// --- Interactive mode ------------------------------------------------------

// REPL starts interactive mode.
func (a *app) REPL(repl *readline.Instance) {
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		quit, err := a.execute(os.Stdout, line)
		if err != nil {
			tracer().Errorf(err.Error())
			pterm.Error.Println(core.UserMessage(err))
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// command is a line of input starting with a colon, e.g. ":size 24pt".
type command struct {
	op  string
	arg string
}

// parseCommand splits a command line into operation and argument. Lines not
// starting with a colon are text to render and yield ok = false.
func parseCommand(line string) (cmd command, ok bool) {
	if !strings.HasPrefix(line, ":") || line == ":" {
		return cmd, false
	}
	op, arg, _ := strings.Cut(line[1:], " ")
	return command{op: strings.ToLower(op), arg: strings.TrimSpace(arg)}, true
}

func (a *app) execute(w io.Writer, line string) (bool, error) {
	cmd, ok := parseCommand(line)
	if !ok {
		return false, a.render(line)
	}
	tracer().Debugf("command %q with argument %q", cmd.op, cmd.arg)
	switch cmd.op {
	case "quit", "q":
		return true, nil
	case "font":
		return false, a.setFont(cmd.arg, a.tc.PointSize())
	case "size":
		size, err := dimen.ParseSize(cmd.arg, dimen.DPI)
		if err != nil {
			return false, core.WrapError(err, core.EINVALID, "invalid font size %q", cmd.arg)
		}
		return false, a.setFont(a.fontname, size)
	case "features":
		a.rconf.Features = glyphing.SplitFeatureList(cmd.arg)
		a.renderer = render.New(a.rconf)
	case "color":
		c, err := gfx.ParseColor(cmd.arg)
		if err != nil {
			return false, err
		}
		a.color = c
	case "out":
		if cmd.arg == "" {
			return false, core.Error(core.EMISSING, "need a file name for output")
		}
		a.out = cmd.arg
	case "metrics":
		if cmd.arg != "" {
			format, err := report.ParseFormat(cmd.arg)
			if err != nil {
				return false, err
			}
			a.reporter().Format = format
		}
		return false, a.printMetrics(w, "")
	case "glyph":
		return false, a.printGlyph(w, cmd.arg)
	default:
		help(w)
	}
	return false, nil
}

// setFont switches to another font or size. On failure the current font
// stays in place.
func (a *app) setFont(name string, size int) error {
	tc, err := resources.ResolveTypeCase(a.conf, name, size).TypeCase()
	if err != nil {
		return err
	}
	a.fontname, a.tc = name, tc
	pterm.Info.Printfln("using font %s at %dpt", tc.Name(), tc.PointSize())
	return nil
}

func help(w io.Writer) {
	fmt.Fprint(w, `Enter a line of text to render it, or one of the following commands:
  :font <name>       switch to a font file, packaged font or system font
  :size <size>       set the font size, e.g. 24pt or 32px
  :features <list>   set OpenType features, e.g. "liga,-kern"
  :color <color>     set the text color
  :out <file>        set the output PNG file
  :metrics [format]  print font metrics (json, xml or raw)
  :glyph <char>      print information about the glyph for a character
  :quit              leave interactive mode
`)
}
