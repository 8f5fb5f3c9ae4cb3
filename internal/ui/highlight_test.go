package ui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestPrinter_Highlight(t *testing.T) {
	tests := []struct {
		name     string
		color    Color
		expected string
	}{
		{name: "green", color: Green, expected: "\x1b[92mhello\x1b[0m"},
		{name: "yellow", color: Yellow, expected: "\x1b[93mhello\x1b[0m"},
		{name: "red", color: Red, expected: "\x1b[91mhello\x1b[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPrinterWithProfile(&bytes.Buffer{}, termenv.ANSI)

			assert.Equal(t, tt.expected, p.Highlight("hello", tt.color))
		})
	}
}

func TestPrinter_HighlightUnknownColor(t *testing.T) {
	p := NewPrinterWithProfile(&bytes.Buffer{}, termenv.ANSI)

	assert.Equal(t, "hello", p.Highlight("hello", Color(42)))
}

func TestPrinter_NoColor(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Command("git status")
	p.Confirm("bundle update")
	p.Error("boom")
	p.OK()

	assert.Equal(t, "--> git status\n--? bundle update\nboom\nOK\n", buf.String())
}

func TestPrinter_Markers(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinterWithProfile(&buf, termenv.ANSI)

	p.Command("git status")
	assert.Equal(t, "\x1b[92m--> git status\x1b[0m\n", buf.String())

	buf.Reset()
	p.Confirm("bundle update")
	assert.Equal(t, "\x1b[93m--? bundle update\x1b[0m\n", buf.String())

	buf.Reset()
	p.OK()
	assert.Equal(t, "\x1b[92mOK\x1b[0m\n", buf.String())
}

func TestColor_String(t *testing.T) {
	assert.Equal(t, "green", Green.String())
	assert.Equal(t, "yellow", Yellow.String())
	assert.Equal(t, "red", Red.String())
	assert.Equal(t, "Color(7)", Color(7).String())
}
