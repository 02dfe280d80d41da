// Package render turns matched hints into styled text on an output sink.
// Renderers are opaque, side-effecting callables; the registry invokes
// them only when their owning signature matched a failed invocation.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Options is the display option set forwarded verbatim from registration
// to the renderer. Unrecognized options travel in Extra untouched; the
// registry never validates them.
type Options struct {
	Color     string
	Bold      bool
	Italic    bool
	Underline bool
	NoColor   bool
	Extra     map[string]interface{}
}

// Renderer writes hint output to a sink
type Renderer interface {
	Render(w io.Writer, opts Options)
}

// Func adapts a plain function to the Renderer interface
type Func func(w io.Writer, opts Options)

// Render implements Renderer
func (f Func) Render(w io.Writer, opts Options) {
	f(w, opts)
}

// colorNames maps option color names to ANSI foreground attributes
var colorNames = map[string]color.Attribute{
	"black":   color.FgBlack,
	"red":     color.FgRed,
	"green":   color.FgGreen,
	"yellow":  color.FgYellow,
	"blue":    color.FgBlue,
	"magenta": color.FgMagenta,
	"cyan":    color.FgCyan,
	"white":   color.FgWhite,
}

// Text returns a renderer that writes a fixed message styled according
// to the options. The message is terminated with a newline so multiple
// matching hints stack cleanly in the failure report.
func Text(message string) Renderer {
	return Func(func(w io.Writer, opts Options) {
		styled := Style(message, opts)
		fmt.Fprintln(w, styled)
	})
}

// Textf returns a renderer that writes a formatted message
func Textf(format string, args ...interface{}) Renderer {
	return Text(fmt.Sprintf(format, args...))
}

// Style applies the display options to a string
func Style(s string, opts Options) string {
	attrs := attributes(opts)
	if opts.NoColor || len(attrs) == 0 {
		return s
	}

	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// attributes collects the recognized options as color attributes.
// Unknown color names are ignored rather than rejected.
func attributes(opts Options) []color.Attribute {
	var attrs []color.Attribute

	if opts.Color != "" {
		if attr, ok := colorNames[strings.ToLower(opts.Color)]; ok {
			attrs = append(attrs, attr)
		}
	}
	if opts.Bold {
		attrs = append(attrs, color.Bold)
	}
	if opts.Italic {
		attrs = append(attrs, color.Italic)
	}
	if opts.Underline {
		attrs = append(attrs, color.Underline)
	}

	return attrs
}
