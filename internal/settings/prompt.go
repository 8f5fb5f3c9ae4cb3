package settings

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/cjfuller/labdb-manager/internal/command"
)

const (
	hostnameTitle       = "Please enter the full hostname of the machine."
	hostnameDescription = "The part of a URL after https:// and before any other slashes."
)

// HostnamePrompt asks the operator for the full hostname.
type HostnamePrompt interface {
	Hostname() (string, error)
}

// NewHostnamePrompt returns an interactive form when in and out are both
// terminals and a plain line reader otherwise.
func NewHostnamePrompt(in io.Reader, out io.Writer) HostnamePrompt {
	if isTerminal(in) && isTerminal(out) {
		return formPrompt{}
	}
	return &LinePrompt{In: in, Out: out}
}

func isTerminal(v any) bool {
	file, ok := v.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

type formPrompt struct{}

func (formPrompt) Hostname() (string, error) {
	var hostname string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(hostnameTitle).
				Description(hostnameDescription).
				Placeholder("labdb.example.org").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("hostname is required")
					}
					return nil
				}).
				Value(&hostname),
		),
	)

	if err := form.Run(); err != nil {
		return "", err
	}
	return strings.TrimSpace(hostname), nil
}

// LinePrompt prints the question and reads one line. Input after that line
// is left for whoever reads In next.
type LinePrompt struct {
	In  io.Reader
	Out io.Writer
}

// Hostname reads the hostname. End of input with nothing typed returns an
// empty string.
func (p *LinePrompt) Hostname() (string, error) {
	_, _ = fmt.Fprintf(p.Out, "%s\n%s\n", hostnameTitle, hostnameDescription)

	line, err := command.ReadLine(p.In)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read hostname: %w", err)
	}
	return strings.TrimSpace(line), nil
}
