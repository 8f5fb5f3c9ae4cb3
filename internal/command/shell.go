package command

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"slices"
	"time"
)

// Default login shell invocation. A login shell loads the operator's profile
// so version managers (rbenv and friends) and PATH are set up even when the
// tool runs from a supervisor or cron.
const DefaultShellPath = "/bin/bash"

// waitDelay bounds how long an interrupted run waits for grandchildren that
// still hold the output pipes.
const waitDelay = 2 * time.Second

// DefaultShellArgs are the flags placed before the command text.
var DefaultShellArgs = []string{"--login", "-c"}

// LoginShell implements ShellRunner by running text in a login shell.
type LoginShell struct {
	Path   string
	Args   []string
	Dir    string
	Env    []string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewLoginShell creates a login shell runner working in dir and attached to
// the process's standard streams.
func NewLoginShell(path string, args []string, dir string) *LoginShell {
	if path == "" {
		path = DefaultShellPath
	}
	if len(args) == 0 {
		args = DefaultShellArgs
	}
	return &LoginShell{
		Path:   path,
		Args:   slices.Clone(args),
		Dir:    dir,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Argv returns the full argument vector used to run text.
func (s *LoginShell) Argv(text string) []string {
	argv := make([]string, 0, len(s.Args)+2)
	argv = append(argv, s.Path)
	argv = append(argv, s.Args...)
	return append(argv, text)
}

// Run executes text and blocks until the shell exits. A non-zero exit status
// is returned as a value; err is only set when the shell could not be run
// at all or ctx was cancelled.
func (s *LoginShell) Run(ctx context.Context, text string) (int, error) {
	argv := s.Argv(text)
	// #nosec G204 - command text is built from the tool's own templates and config
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = s.Dir
	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}
	cmd.Stdin = s.Stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	// a background child kept the pipes open after the shell exited
	if errors.Is(err, exec.ErrWaitDelay) && cmd.ProcessState != nil && ctx.Err() == nil {
		return cmd.ProcessState.ExitCode(), nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, ctxErr
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if code := exitErr.ExitCode(); code >= 0 {
			return code, nil
		}
		// terminated by a signal
		return 1, nil
	}

	return -1, err
}
