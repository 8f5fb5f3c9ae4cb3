package command

import (
	"context"
	"fmt"
)

// Kind tags the type of deferred work a Command describes.
type Kind int

const (
	// KindShell is a command string executed in a login shell.
	KindShell Kind = iota
)

func (k Kind) String() string {
	if k == KindShell {
		return "shell"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// RenderFunc produces the command text from the bound arguments. It must
// tolerate being called with no arguments so a command can be displayed
// without its real invocation context.
type RenderFunc func(args ...string) string

// Command is a deferred unit of work. It is a value: once constructed it is
// never modified, and queues store it by value.
type Command struct {
	Kind         Kind
	Name         string     // short step name used in logs (e.g. "create-staging")
	Render       RenderFunc // produces the text to run
	Args         []string   // bound arguments passed to Render
	RequiresSudo bool       // informational only, not enforced
	HardFail     bool       // non-zero exit aborts the run
	Confirm      bool       // operator must approve before it runs
}

// Option configures a Command at construction.
type Option func(*Command)

// WithArgs binds arguments passed to the render function.
func WithArgs(args ...string) Option {
	return func(c *Command) {
		c.Args = append([]string(nil), args...)
	}
}

// RequiresSudo marks the command as needing elevated privileges.
func RequiresSudo() Option {
	return func(c *Command) {
		c.RequiresSudo = true
	}
}

// SoftFail makes a non-zero exit status a value for the caller to inspect
// instead of a fatal error. Used for probes.
func SoftFail() Option {
	return func(c *Command) {
		c.HardFail = false
	}
}

// NeedsConfirmation gates the command behind the operator confirmation.
func NeedsConfirmation() Option {
	return func(c *Command) {
		c.Confirm = true
	}
}

// New creates a shell command. Commands hard-fail by default.
func New(name string, render RenderFunc, opts ...Option) Command {
	c := Command{
		Kind:     KindShell,
		Name:     name,
		Render:   render,
		HardFail: true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Static creates a command whose text does not depend on arguments.
func Static(name, text string, opts ...Option) Command {
	return New(name, func(...string) string { return text }, opts...)
}

// Text renders the command with its bound arguments.
func (c Command) Text() string {
	if c.Render == nil {
		return ""
	}
	return c.Render(c.Args...)
}

// String renders the command without arguments, for display only.
func (c Command) String() string {
	if c.Render == nil {
		return ""
	}
	return c.Render()
}

// Outcome classifies how a command execution ended.
type Outcome int

const (
	// OutcomeCompleted means the command ran. ExitCode may be non-zero for
	// soft-fail commands.
	OutcomeCompleted Outcome = iota
	// OutcomeDeclined means the operator refused the confirmation and the
	// command never ran.
	OutcomeDeclined
	// OutcomeFailed means a hard-fail command exited non-zero.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeDeclined:
		return "declined"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome of executing one command, or of draining a queue
// (in which case it describes the last command that ran).
type Result struct {
	Command  Command
	Text     string
	ExitCode int
	Outcome  Outcome
}

// Succeeded reports whether the command ran and exited zero.
func (r Result) Succeeded() bool {
	return r.Outcome == OutcomeCompleted && r.ExitCode == 0
}

// ShellRunner abstracts the actual process execution.
type ShellRunner interface {
	Run(ctx context.Context, text string) (exitCode int, err error)
}

// Gate asks the operator to approve a command before it runs.
type Gate interface {
	Confirm(ctx context.Context, text string) (string, error)
}
