// Package ui formats operator-facing output: highlighted command markers,
// confirmation prompts, fatal error lines and the final OK line.
package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color is the closed set of highlight colors used on the console.
type Color int

const (
	Green Color = iota
	Yellow
	Red
)

// Markers printed in front of commands and confirmation requests.
const (
	CommandPrefix = "--> "
	ConfirmPrefix = "--? "
)

// Bright ANSI variants (92m, 93m, 91m).
var palette = map[Color]lipgloss.Color{
	Green:  "10",
	Yellow: "11",
	Red:    "9",
}

func (c Color) String() string {
	switch c {
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	default:
		return fmt.Sprintf("Color(%d)", int(c))
	}
}

// Highlight renders text in the given color using the default renderer,
// which detects color support from stdout.
func Highlight(text string, c Color) string {
	return render(lipgloss.DefaultRenderer(), text, c)
}

func render(r *lipgloss.Renderer, text string, c Color) string {
	fg, ok := palette[c]
	if !ok {
		return text
	}
	return r.NewStyle().Foreground(fg).Render(text)
}

// Printer writes highlighted lines to a single writer.
type Printer struct {
	w        io.Writer
	renderer *lipgloss.Renderer
}

// NewPrinter creates a printer for w. Color support is detected from w and
// the NO_COLOR/CLICOLOR environment; noColor forces plain text.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	profile := termenv.NewOutput(w).EnvColorProfile()
	if noColor {
		profile = termenv.Ascii
	}
	return NewPrinterWithProfile(w, profile)
}

// NewPrinterWithProfile creates a printer with a fixed color profile.
func NewPrinterWithProfile(w io.Writer, profile termenv.Profile) *Printer {
	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(profile)
	return &Printer{w: w, renderer: r}
}

// Writer returns the underlying writer.
func (p *Printer) Writer() io.Writer {
	return p.w
}

// Highlight renders text with this printer's color profile.
func (p *Printer) Highlight(text string, c Color) string {
	return render(p.renderer, text, c)
}

// Command prints a command that is about to run.
func (p *Printer) Command(text string) {
	fmt.Fprintln(p.w, p.Highlight(CommandPrefix+text, Green))
}

// Confirm prints a confirmation request for text.
func (p *Printer) Confirm(text string) {
	fmt.Fprintln(p.w, p.Highlight(ConfirmPrefix+text, Yellow))
}

// Error prints a fatal error line.
func (p *Printer) Error(text string) {
	fmt.Fprintln(p.w, p.Highlight(text, Red))
}

// OK prints the success marker.
func (p *Printer) OK() {
	fmt.Fprintln(p.w, p.Highlight("OK", Green))
}
