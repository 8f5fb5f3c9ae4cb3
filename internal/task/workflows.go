package task

import (
	"context"
	"fmt"

	"github.com/cjfuller/labdb-manager/internal/command"
	"github.com/cjfuller/labdb-manager/internal/deploy"
	apperrors "github.com/cjfuller/labdb-manager/internal/errors"
	"github.com/cjfuller/labdb-manager/internal/git"
	"github.com/cjfuller/labdb-manager/internal/settings"
)

// Workflow is a named task.
type Workflow struct {
	Name      string
	Usage     string
	ArgsUsage string
	run       func(ctx context.Context, r *Runner, q *command.Queue, args []string) error
}

var workflows = []Workflow{
	{Name: "update", Usage: "Back up, merge upstream changes through staging and restart", run: runUpdate},
	{Name: "backup", Usage: "Dump and compress the database", run: runBackup},
	{Name: "force-update-deps", Usage: "Upgrade gems past the lock file", run: enqueueOne(deploy.BundleUpdate)},
	{Name: "secret", Usage: "Generate a new application secret", run: runSecret},
	{Name: "hostname", Usage: "Set the full hostname of the machine", ArgsUsage: "[hostname]", run: runHostname},
	{Name: "install", Usage: "Set up the production database", run: enqueueOne(deploy.CreateProductionDB)},
	{Name: "revert-failure", Usage: "Abandon a failed merge and return to production", run: runRevertFailure},
	{Name: "restart", Usage: "Restart the application server", run: runRestart},
	{Name: "devserver", Usage: "Run the development server", run: runDevServer},
	{Name: "status", Usage: "Show the staging state of the checkout", run: runStatus},
}

// Workflows returns every task in display order.
func Workflows() []Workflow {
	out := make([]Workflow, len(workflows))
	copy(out, workflows)
	return out
}

// Names returns the task names in display order.
func Names() []string {
	names := make([]string, 0, len(workflows))
	for _, wf := range workflows {
		names = append(names, wf.Name)
	}
	return names
}

// Lookup finds a task by name.
func Lookup(name string) (Workflow, bool) {
	for _, wf := range workflows {
		if wf.Name == name {
			return wf, true
		}
	}
	return Workflow{}, false
}

func enqueueOne(build func() command.Command) func(context.Context, *Runner, *command.Queue, []string) error {
	return func(_ context.Context, _ *Runner, q *command.Queue, _ []string) error {
		q.Enqueue(build())
		return nil
	}
}

// runUpdate probes for a leftover staging branch right away; everything else
// is queued and runs in order once the probe has decided whether cleanup is
// needed.
func runUpdate(ctx context.Context, r *Runner, q *command.Queue, _ []string) error {
	backup, err := r.backup()
	if err != nil {
		return err
	}
	q.Enqueue(backup)

	names := r.gitNames()
	exists, err := git.StagingExists(ctx, r.exec, names)
	if err != nil {
		return err
	}

	initial := git.NoStaging
	if exists {
		initial = git.Staging
	}
	r.log.Debug().Str("state", initial.String()).Msg("detected staging state")

	plan := git.NewPlan(initial, names, q)
	var ops []git.Operation
	if exists {
		ops = append(ops, git.OpCleanUpStaging)
	}
	ops = append(ops, git.OpCreateStaging, git.OpFetchRemote, git.OpMergeIntoStaging)
	if err := applyAll(plan, ops...); err != nil {
		return err
	}

	q.Enqueue(deploy.BundleInstall(), deploy.PrecompileAssets())

	if err := plan.Apply(git.OpMergeIntoProduction); err != nil {
		return err
	}

	q.Enqueue(deploy.RestartServer(r.cfg.Server))
	if !r.cfg.HasHooks() {
		return nil
	}
	for i, hook := range r.cfg.Hooks.PostUpdate {
		q.Enqueue(deploy.Hook(i, hook))
	}
	r.log.Debug().Int("hooks", len(r.cfg.Hooks.PostUpdate)).Msg("queued post-update hooks")
	return nil
}

func applyAll(plan *git.Plan, ops ...git.Operation) error {
	for _, op := range ops {
		if err := plan.Apply(op); err != nil {
			return err
		}
	}
	return nil
}

func runBackup(_ context.Context, r *Runner, q *command.Queue, _ []string) error {
	backup, err := r.backup()
	if err != nil {
		return err
	}
	q.Enqueue(backup)
	return nil
}

func runRevertFailure(_ context.Context, r *Runner, q *command.Queue, _ []string) error {
	return git.NewPlan(git.Reverting, r.gitNames(), q).Apply(git.OpRevertMerge)
}

func runRestart(_ context.Context, r *Runner, q *command.Queue, _ []string) error {
	q.Enqueue(deploy.RestartServer(r.cfg.Server))
	return nil
}

func runDevServer(_ context.Context, r *Runner, q *command.Queue, _ []string) error {
	q.Enqueue(deploy.RunDevServer(r.cfg.Server))
	return nil
}

func runSecret(_ context.Context, r *Runner, _ *command.Queue, _ []string) error {
	path, err := settings.WriteSecret(r.cfg)
	if err != nil {
		return err
	}
	r.log.Info().Str("path", path).Msg("wrote application secret")
	_, _ = fmt.Fprintf(r.out.Writer(), "Wrote new secret to %s\n", path)
	return nil
}

func runHostname(_ context.Context, r *Runner, _ *command.Queue, args []string) error {
	var hostname string
	if len(args) > 0 {
		hostname = args[0]
	} else {
		if r.prompt == nil {
			return apperrors.HostnameRequired()
		}
		prompted, err := r.prompt.Hostname()
		if err != nil {
			return fmt.Errorf("failed to read hostname: %w", err)
		}
		hostname = prompted
	}

	path, err := settings.WriteHostname(r.cfg, hostname)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(r.out.Writer(), "Wrote hostname to %s\n", path)
	return nil
}

func runStatus(ctx context.Context, r *Runner, _ *command.Queue, _ []string) error {
	names := r.gitNames()
	state, err := git.DetectState(ctx, r.exec, names)
	if err != nil {
		return err
	}

	w := r.out.Writer()
	if r.repo != nil {
		branch, err := r.repo.CurrentBranch(ctx)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(w, "Branch:  %s\n", branch)
	}
	_, _ = fmt.Fprintf(w, "State:   %s\n", state)

	switch state {
	case git.Reverting:
		_, _ = fmt.Fprintln(w, "A merge is in progress. Run 'labdb-manager revert-failure' to return to "+names.Production+".")
	case git.Staging:
		_, _ = fmt.Fprintln(w, "Branch "+names.Staging+" exists. The next update will ask to remove it.")
	}
	return nil
}
