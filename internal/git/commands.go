package git

import (
	"fmt"
	"strings"

	"github.com/cjfuller/labdb-manager/internal/command"
	"github.com/cjfuller/labdb-manager/internal/config"
)

// Names are the branch and remote names the staging workflow uses.
type Names struct {
	Production   string
	Staging      string
	RemoteBranch string
	Remote       string
	MergeMessage string
}

// NamesFromConfig builds Names from the git configuration section.
func NamesFromConfig(cfg config.Git) Names {
	return Names{
		Production:   cfg.ProductionBranch,
		Staging:      cfg.StagingBranch,
		RemoteBranch: cfg.RemoteBranch,
		Remote:       cfg.RemoteName,
		MergeMessage: cfg.MergeMessage,
	}
}

// arg returns args[i], or a placeholder when the command is rendered
// without its arguments.
func arg(args []string, i int, placeholder string) string {
	if i < len(args) {
		return args[i]
	}
	return "<" + placeholder + ">"
}

// shellQuote wraps s in single quotes for sh.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// CheckStaging probes whether the staging branch exists. Exit status 0
// means it does.
func CheckStaging(n Names) command.Command {
	return command.New(string(OpCheckStaging), func(a ...string) string {
		return "git show-ref --verify --quiet refs/heads/" + arg(a, 0, "staging")
	}, command.WithArgs(n.Staging), command.SoftFail())
}

// CheckMergeInProgress probes for an unfinished merge. Exit status 0 means
// MERGE_HEAD exists.
func CheckMergeInProgress() command.Command {
	return command.Static("check-merge-in-progress", "git rev-parse -q --verify MERGE_HEAD", command.SoftFail())
}

// CleanUpStaging deletes the staging branch after returning to production.
// It does not check that the branch exists and asks the operator first.
func CleanUpStaging(n Names) command.Command {
	return command.New(string(OpCleanUpStaging), func(a ...string) string {
		return fmt.Sprintf("git checkout %s && git branch -d %s",
			arg(a, 0, "production"), arg(a, 1, "staging"))
	}, command.WithArgs(n.Production, n.Staging), command.NeedsConfirmation())
}

// CreateStaging branches staging from production. It does not check that
// the branch is absent.
func CreateStaging(n Names) command.Command {
	return command.New(string(OpCreateStaging), func(a ...string) string {
		return fmt.Sprintf("git checkout %s && git branch %s",
			arg(a, 0, "production"), arg(a, 1, "staging"))
	}, command.WithArgs(n.Production, n.Staging))
}

// FetchRemote updates the local copy of the remote branch.
func FetchRemote(n Names) command.Command {
	return command.New(string(OpFetchRemote), func(a ...string) string {
		return fmt.Sprintf("git checkout %s && git pull %s %s",
			arg(a, 0, "remote-branch"), arg(a, 1, "remote"), arg(a, 0, "remote-branch"))
	}, command.WithArgs(n.RemoteBranch, n.Remote))
}

// MergeIntoStaging merges the fetched branch into staging. This is where
// conflicts surface; revert-failure recovers from them.
func MergeIntoStaging(n Names) command.Command {
	return command.New(string(OpMergeIntoStaging), func(a ...string) string {
		return fmt.Sprintf("git checkout %s && git merge -m %s %s",
			arg(a, 0, "staging"), shellQuote(arg(a, 2, "message")), arg(a, 1, "remote-branch"))
	}, command.WithArgs(n.Staging, n.RemoteBranch, n.MergeMessage))
}

// MergeIntoProduction promotes staging into production.
func MergeIntoProduction(n Names) command.Command {
	return command.New(string(OpMergeIntoProduction), func(a ...string) string {
		return fmt.Sprintf("git checkout %s && git merge -m %s %s",
			arg(a, 0, "production"), shellQuote(arg(a, 2, "message")), arg(a, 1, "staging"))
	}, command.WithArgs(n.Production, n.Staging, n.MergeMessage))
}

// RevertMerge abandons an in-progress merge and returns to production.
func RevertMerge(n Names) command.Command {
	return command.New(string(OpRevertMerge), func(a ...string) string {
		return "git reset --merge && git checkout " + arg(a, 0, "production")
	}, command.WithArgs(n.Production))
}

// CommandFor returns the command implementing op.
func CommandFor(op Operation, n Names) (command.Command, error) {
	switch op {
	case OpCheckStaging:
		return CheckStaging(n), nil
	case OpCleanUpStaging:
		return CleanUpStaging(n), nil
	case OpCreateStaging:
		return CreateStaging(n), nil
	case OpFetchRemote:
		return FetchRemote(n), nil
	case OpMergeIntoStaging:
		return MergeIntoStaging(n), nil
	case OpMergeIntoProduction:
		return MergeIntoProduction(n), nil
	case OpRevertMerge:
		return RevertMerge(n), nil
	default:
		return command.Command{}, fmt.Errorf("unknown git operation: %s", op)
	}
}
