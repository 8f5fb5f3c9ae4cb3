// Package testutil provides helpers shared across tests.
package testutil

import "testing"

// DeployerName and DeployerEmail identify commits made by test repositories.
const (
	DeployerName  = "labdb deployer"
	DeployerEmail = "deploy@labdb.test"
)

// ConfigureTestRepo sets up a repository so the deploy workflows can run in
// it without a terminal: commits are unsigned, pull merges instead of
// rebasing, and merge commits never open an editor.
//
// runner executes one git command in dir and must fail the test on error.
func ConfigureTestRepo(t *testing.T, repoDir string, runner func(dir string, args ...string)) {
	t.Helper()

	for _, args := range repoSettings() {
		runner(repoDir, append([]string{"config"}, args...)...)
	}
}

func repoSettings() [][]string {
	return [][]string{
		{"user.name", DeployerName},
		{"user.email", DeployerEmail},
		{"commit.gpgsign", "false"},
		{"pull.rebase", "false"},
		{"core.editor", "true"},
		{"advice.detachedHead", "false"},
	}
}
