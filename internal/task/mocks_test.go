package task

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/muesli/termenv"
	"github.com/rs/zerolog"

	"github.com/cjfuller/labdb-manager/internal/command"
	"github.com/cjfuller/labdb-manager/internal/config"
	"github.com/cjfuller/labdb-manager/internal/ui"
)

var fixedTime = time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

// mockShellRunner records every command text and returns the exit code of
// the first registered prefix the text starts with (default 0).
type mockShellRunner struct {
	ran   []string
	exits map[string]int
}

func newMockShellRunner() *mockShellRunner {
	return &mockShellRunner{exits: make(map[string]int)}
}

func (m *mockShellRunner) Run(_ context.Context, text string) (int, error) {
	m.ran = append(m.ran, text)
	for prefix, code := range m.exits {
		if strings.HasPrefix(text, prefix) {
			return code, nil
		}
	}
	return 0, nil
}

type mockGate struct {
	approve bool
	asked   []string
}

func (g *mockGate) Confirm(_ context.Context, text string) (string, error) {
	g.asked = append(g.asked, text)
	if !g.approve {
		return "", command.ErrDeclined
	}
	return text, nil
}

type mockPrompt struct {
	hostname string
	err      error
}

func (p mockPrompt) Hostname() (string, error) {
	return p.hostname, p.err
}

type testEnv struct {
	runner *Runner
	shell  *mockShellRunner
	gate   *mockGate
	out    *bytes.Buffer
	cfg    *config.Config
}

func newTestEnv(t *testing.T, opts ...Option) *testEnv {
	t.Helper()
	cfg := config.Default()
	cfg.RepoPath = t.TempDir()
	cfg.BackupDir = "/backups"

	shell := newMockShellRunner()
	gate := &mockGate{approve: true}
	var out bytes.Buffer
	printer := ui.NewPrinterWithProfile(&out, termenv.Ascii)
	exec := command.NewExecutor(shell, gate, printer, zerolog.Nop())

	opts = append([]Option{WithClock(func() time.Time { return fixedTime }), WithPgDump("pg_dump")}, opts...)
	return &testEnv{
		runner: NewRunner(cfg, exec, printer, zerolog.Nop(), opts...),
		shell:  shell,
		gate:   gate,
		out:    &out,
		cfg:    cfg,
	}
}
