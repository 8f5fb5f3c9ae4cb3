package command

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/cjfuller/labdb-manager/internal/ui"
)

// ErrDeclined is returned by a Gate when the operator does not approve.
var ErrDeclined = errors.New("confirmation declined by operator")

var affirmativeResponses = []string{"yes", "y"}

// IsAffirmative reports whether an operator response approves a command.
func IsAffirmative(response string) bool {
	return slices.Contains(affirmativeResponses, strings.ToLower(strings.TrimSpace(response)))
}

// PromptGate asks for confirmation by printing the command and reading one
// line of input.
//
// The reader is usually the same stdin the child shells inherit, so the gate
// never reads past the end of the answer line.
type PromptGate struct {
	in  io.Reader
	out *ui.Printer
}

// NewPromptGate creates a gate reading responses from in.
func NewPromptGate(in io.Reader, out *ui.Printer) *PromptGate {
	return &PromptGate{
		in:  in,
		out: out,
	}
}

// ReadLine consumes input through the next newline one byte at a time,
// leaving everything after it unread in r. The newline is not returned.
func ReadLine(r io.Reader) (string, error) {
	var line strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return line.String(), nil
			}
			line.WriteByte(buf[0])
		}
		if err != nil {
			return line.String(), err
		}
	}
}

// Confirm returns text unchanged when the operator answers yes or y (any
// case). Any other answer, including an empty line or end of input, returns
// ErrDeclined.
func (g *PromptGate) Confirm(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g.out.Confirm(text)

	response, err := ReadLine(g.in)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read confirmation: %w", err)
	}

	if !IsAffirmative(response) {
		return "", ErrDeclined
	}
	return text, nil
}
