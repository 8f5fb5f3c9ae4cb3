package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	apperrors "github.com/cjfuller/labdb-manager/internal/errors"
)

// Repository is the application checkout the staging workflow operates on.
type Repository struct {
	path string
}

// NewRepository checks that path is a git work tree.
func NewRepository(path string) (*Repository, error) {
	if !isGitRepository(path) {
		return nil, apperrors.NotInGitRepository(path)
	}
	return &Repository{path: path}, nil
}

func (r *Repository) Path() string {
	return r.path
}

// CurrentBranch returns the checked out branch, or "HEAD" when detached.
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "git", "rev-parse", "--abbrev-ref", "HEAD")
	cmd.Dir = r.path
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// isGitRepository accepts both a .git directory and the .git file used by
// linked worktrees.
func isGitRepository(path string) bool {
	gitDir := filepath.Join(path, ".git")
	_, err := os.Stat(gitDir)
	return err == nil
}
