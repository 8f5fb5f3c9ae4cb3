package main

import (
	"context"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/cjfuller/labdb-manager/internal/command"
	"github.com/cjfuller/labdb-manager/internal/config"
	apperrors "github.com/cjfuller/labdb-manager/internal/errors"
	"github.com/cjfuller/labdb-manager/internal/git"
	"github.com/cjfuller/labdb-manager/internal/logging"
	"github.com/cjfuller/labdb-manager/internal/settings"
	"github.com/cjfuller/labdb-manager/internal/task"
	"github.com/cjfuller/labdb-manager/internal/ui"
)

// Flag names
const (
	flagConfig  = "config"
	flagRepo    = "repo"
	flagDebug   = "debug"
	flagNoColor = "no-color"
)

// streams are the process's standard streams, injectable for tests.
type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func newApp(s *streams) *cli.Command {
	commands := make([]*cli.Command, 0, len(task.Names()))
	for _, wf := range task.Workflows() {
		commands = append(commands, newTaskCommand(wf, s))
	}

	return &cli.Command{
		Name:  "labdb-manager",
		Usage: "Deploy and maintain a labdb installation",
		Description: "labdb-manager backs up the database, merges upstream changes into the deploy " +
			"branch through a staging branch, updates dependencies and restarts the server. " +
			"Every step runs in a login shell inside the application checkout and the run stops " +
			"at the first step that fails.",
		Version:               version,
		EnableShellCompletion: true,
		Writer:                s.out,
		ErrWriter:             s.err,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "Path to the configuration file",
				Value:   config.DefaultConfigPath,
				Sources: cli.EnvVars(config.ConfigEnvVar),
			},
			&cli.StringFlag{
				Name:  flagRepo,
				Usage: "Path to the application checkout (overrides repo_path)",
			},
			&cli.BoolFlag{
				Name:  flagDebug,
				Usage: "Log every command with its exit status and duration",
			},
			&cli.BoolFlag{
				Name:  flagNoColor,
				Usage: "Disable colored output",
			},
		},
		Commands: commands,
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() > 0 {
				return apperrors.UnknownTask(cmd.Args().First(), task.Names())
			}
			return cli.ShowAppHelp(cmd)
		},
	}
}

func newTaskCommand(wf task.Workflow, s *streams) *cli.Command {
	return &cli.Command{
		Name:      wf.Name,
		Usage:     wf.Usage,
		ArgsUsage: wf.ArgsUsage,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			runner, closeLog, err := newRunner(cmd, s)
			if err != nil {
				return err
			}
			defer func() { _ = closeLog.Close() }()

			return runner.Run(ctx, wf.Name, cmd.Args().Slice())
		},
	}
}

// newRunner wires configuration, logging, the login shell and the
// confirmation gate into a task runner.
func newRunner(cmd *cli.Command, s *streams) (*task.Runner, io.Closer, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	noColor := cmd.Bool(flagNoColor)
	logOpts := logging.OptionsFromConfig(cfg.Log, cmd.Bool(flagDebug), noColor)
	logOpts.Console = s.err
	logger, closeLog, err := logging.New(logOpts)
	if err != nil {
		return nil, nil, err
	}

	repoPath, err := cfg.ResolveRepoPath()
	if err != nil {
		_ = closeLog.Close()
		return nil, nil, err
	}
	repo, err := git.NewRepository(repoPath)
	if err != nil {
		_ = closeLog.Close()
		return nil, nil, err
	}

	printer := ui.NewPrinter(s.out, noColor)
	shell := command.NewLoginShell(cfg.Shell.Path, cfg.Shell.Args, repo.Path())
	shell.Stdin = s.in
	shell.Stdout = s.out
	shell.Stderr = s.err

	gate := command.NewPromptGate(s.in, printer)
	executor := command.NewExecutor(shell, gate, printer, logger)

	logger.Debug().
		Str("repo", repo.Path()).
		Strs("shell", shell.Argv("")).
		Msg("configured")

	return task.NewRunner(cfg, executor, printer, logger,
		task.WithRepository(repo),
		task.WithHostnamePrompt(settings.NewHostnamePrompt(s.in, s.out)),
	), closeLog, nil
}

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	path := cmd.String(flagConfig)
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, apperrors.ConfigLoadFailed(path, err)
	}
	if repo := cmd.String(flagRepo); repo != "" {
		cfg.RepoPath = repo
	}
	return cfg, nil
}
