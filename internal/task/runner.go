// Package task dispatches named tasks to workflows. A workflow fills a
// fresh command queue; the runner drains it and turns the outcome into the
// process result.
package task

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/cjfuller/labdb-manager/internal/command"
	"github.com/cjfuller/labdb-manager/internal/config"
	"github.com/cjfuller/labdb-manager/internal/deploy"
	apperrors "github.com/cjfuller/labdb-manager/internal/errors"
	"github.com/cjfuller/labdb-manager/internal/git"
	"github.com/cjfuller/labdb-manager/internal/settings"
	"github.com/cjfuller/labdb-manager/internal/ui"
)

// ExitError reports that a hard-fail command exited non-zero. Code is the
// status the process should exit with.
type ExitError struct {
	Code int
	Step string
}

func (e *ExitError) Error() string {
	if e.Step == "" {
		return fmt.Sprintf("command failed with exit status %d", e.Code)
	}
	return fmt.Sprintf("%s failed with exit status %d", e.Step, e.Code)
}

// Runner runs tasks against one application checkout.
type Runner struct {
	cfg    *config.Config
	exec   command.CommandExecutor
	out    *ui.Printer
	log    zerolog.Logger
	repo   *git.Repository
	prompt settings.HostnamePrompt
	now    func() time.Time
	pgDump string
}

// Option configures a Runner.
type Option func(*Runner)

// WithClock overrides the clock used to name backups.
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		r.now = now
	}
}

// WithRepository sets the checkout used by tasks that query git directly.
func WithRepository(repo *git.Repository) Option {
	return func(r *Runner) {
		r.repo = repo
	}
}

// WithHostnamePrompt sets how the hostname task asks for a missing name.
func WithHostnamePrompt(prompt settings.HostnamePrompt) Option {
	return func(r *Runner) {
		r.prompt = prompt
	}
}

// WithPgDump overrides the pg_dump path resolved from the configuration.
func WithPgDump(path string) Option {
	return func(r *Runner) {
		r.pgDump = path
	}
}

// NewRunner creates a runner. pg_dump is resolved once here.
func NewRunner(cfg *config.Config, exec command.CommandExecutor, out *ui.Printer, log zerolog.Logger, opts ...Option) *Runner {
	r := &Runner{
		cfg:  cfg,
		exec: exec,
		out:  out,
		log:  log,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.pgDump == "" {
		r.pgDump = deploy.ResolvePgDump(cfg.Database)
	}
	return r
}

// Run executes the named task.
//
// A declined confirmation ends the run without error and without the OK
// line. A hard failure returns *ExitError carrying the failing status.
func (r *Runner) Run(ctx context.Context, name string, args []string) error {
	wf, ok := Lookup(name)
	if !ok {
		return apperrors.UnknownTask(name, Names())
	}

	logger := r.log.With().Str("task", name).Logger()
	logger.Debug().Strs("args", args).Msg("starting task")

	queue := command.NewQueue()
	if err := wf.run(ctx, r, queue, args); err != nil {
		return err
	}

	logger.Debug().Int("queued", queue.Len()).Msg("draining queue")
	result, err := queue.Drain(ctx, r.exec)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case command.OutcomeDeclined:
		logger.Info().Str("step", result.Command.Name).Msg("stopped at declined confirmation")
		return nil
	case command.OutcomeFailed:
		return &ExitError{Code: result.ExitCode, Step: result.Command.Name}
	}

	r.out.OK()
	return nil
}

func (r *Runner) backup() (command.Command, error) {
	dir, err := r.cfg.ResolveBackupDir()
	if err != nil {
		return command.Command{}, err
	}
	return deploy.CreateBackup(deploy.Backup{
		PgDump:   r.pgDump,
		Host:     r.cfg.Database.Host,
		Database: r.cfg.Database.Name,
		Dir:      dir,
		Taken:    r.now(),
	}), nil
}

func (r *Runner) gitNames() git.Names {
	return git.NamesFromConfig(r.cfg.Git)
}
