package command

import (
	"bytes"
	"context"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/cjfuller/labdb-manager/internal/ui"
)

// mockShellRunner records every text it is asked to run and returns exit
// codes keyed by text (default 0).
type mockShellRunner struct {
	ran       []string
	exitCodes map[string]int
	err       error
}

func newMockShellRunner() *mockShellRunner {
	return &mockShellRunner{exitCodes: make(map[string]int)}
}

func (m *mockShellRunner) Run(_ context.Context, text string) (int, error) {
	m.ran = append(m.ran, text)
	if m.err != nil {
		return -1, m.err
	}
	return m.exitCodes[text], nil
}

// mockGate approves or declines every confirmation.
type mockGate struct {
	approve bool
	err     error
	asked   []string
}

func (g *mockGate) Confirm(_ context.Context, text string) (string, error) {
	g.asked = append(g.asked, text)
	if g.err != nil {
		return "", g.err
	}
	if !g.approve {
		return "", ErrDeclined
	}
	return text, nil
}

func newTestExecutor(shell ShellRunner, gate Gate) (*Executor, *bytes.Buffer) {
	var out bytes.Buffer
	printer := ui.NewPrinterWithProfile(&out, termenv.Ascii)
	return NewExecutor(shell, gate, printer, zerolog.Nop()), &out
}
