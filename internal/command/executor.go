package command

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	apperrors "github.com/cjfuller/labdb-manager/internal/errors"
	"github.com/cjfuller/labdb-manager/internal/ui"
)

// CommandExecutor runs a single command.
type CommandExecutor interface {
	Execute(ctx context.Context, cmd Command) (Result, error)
}

// Executor applies the confirmation and failure policy of a Command around
// a ShellRunner.
type Executor struct {
	shell ShellRunner
	gate  Gate
	out   *ui.Printer
	log   zerolog.Logger
}

// NewExecutor creates an executor. gate may be nil if no command requires
// confirmation.
func NewExecutor(shell ShellRunner, gate Gate, out *ui.Printer, log zerolog.Logger) *Executor {
	return &Executor{
		shell: shell,
		gate:  gate,
		out:   out,
		log:   log,
	}
}

// Execute runs cmd synchronously.
//
// Confirmation, when required, happens before anything is printed or run. A
// hard-fail command that exits non-zero prints the standard error line and
// yields OutcomeFailed; the caller must not run anything after it. The
// returned error is reserved for problems that are not exit statuses (no
// gate, the shell could not start, cancellation).
func (e *Executor) Execute(ctx context.Context, cmd Command) (Result, error) {
	text := cmd.Text()
	result := Result{Command: cmd, Text: text}

	logger := e.log.With().
		Str("step", cmd.Name).
		Str("kind", cmd.Kind.String()).
		Bool("requires_sudo", cmd.RequiresSudo).
		Bool("hard_fail", cmd.HardFail).
		Logger()

	if cmd.Confirm {
		if e.gate == nil {
			return result, fmt.Errorf("command %q requires confirmation but no gate is configured", cmd.Name)
		}
		if _, err := e.gate.Confirm(ctx, text); err != nil {
			if errors.Is(err, ErrDeclined) {
				logger.Info().Msg("operator declined confirmation")
				result.Outcome = OutcomeDeclined
				return result, nil
			}
			return result, err
		}
	}

	e.out.Command(text)
	logger.Debug().Str("command", text).Msg("running")

	start := time.Now()
	code, err := e.shell.Run(ctx, text)
	if err != nil {
		if ctx.Err() != nil {
			logger.Warn().Err(err).Str("command", text).Msg("interrupted")
			return result, err
		}
		return result, apperrors.ShellStartFailed(text, err)
	}
	result.ExitCode = code

	logger.Debug().
		Int("exit_code", code).
		Dur("elapsed", time.Since(start)).
		Msg("finished")

	if code > 0 && cmd.HardFail {
		e.out.Error(apperrors.UnresolvableCommandMessage(text))
		logger.Error().Int("exit_code", code).Str("command", text).Msg("hard failure")
		result.Outcome = OutcomeFailed
	}

	return result, nil
}
