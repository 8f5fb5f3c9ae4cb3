package framework

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/cjfuller/labdb-manager/internal/testutil"
)

const (
	dirPerm  = 0755
	filePerm = 0600
	execPerm = 0755
)

// Stubbed programs the deploy steps call. Each appends its argv to the call
// log and exits with the code in <stub>.exit when that file exists.
var stubs = []string{"bundle", "supervisorctl", "pg_dump"}

type TestEnvironment struct {
	t       *testing.T
	tmpDir  string
	binary  string
	binDir  string
	callLog string
}

func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	for _, tool := range []string{"git", "sh", "tar", "bzip2"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not available", tool)
		}
	}

	tmpDir := t.TempDir()
	env := &TestEnvironment{
		t:       t,
		tmpDir:  tmpDir,
		binDir:  filepath.Join(tmpDir, "bin"),
		callLog: filepath.Join(tmpDir, "calls.log"),
	}

	env.build()
	env.installStubs()

	return env
}

func (e *TestEnvironment) build() {
	e.t.Helper()

	binary := filepath.Join(e.tmpDir, "labdb-manager")
	if prebuilt := os.Getenv("LABDB_MANAGER_E2E_BINARY"); prebuilt != "" {
		binary = prebuilt
		if _, err := os.Stat(binary); err != nil {
			e.t.Fatalf("Specified binary not found: %s", binary)
		}
	} else {
		cmd := exec.Command("go", "build", "-o", binary, "./cmd/labdb-manager")
		cmd.Dir = e.findProjectRoot()
		if output, err := cmd.CombinedOutput(); err != nil {
			e.t.Fatalf("Failed to build labdb-manager: %v\nOutput: %s", err, output)
		}
	}

	abs, err := filepath.Abs(filepath.Clean(binary))
	if err != nil {
		e.t.Fatalf("Failed to get absolute path for binary: %v", err)
	}
	e.binary = abs
}

func (e *TestEnvironment) findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		e.t.Fatalf("Failed to get working directory: %v", err)
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			e.t.Fatal("Could not find project root (go.mod)")
		}
		dir = parent
	}
}

func (e *TestEnvironment) installStubs() {
	e.t.Helper()

	for _, name := range stubs {
		script := fmt.Sprintf(`#!/bin/sh
echo "%s $*" >> %q
if [ "%s" = "pg_dump" ]; then
  echo "-- dump of $3"
fi
if [ -f "$0.exit" ]; then
  exit "$(cat "$0.exit")"
fi
`, name, e.callLog, name)
		e.writeFile(filepath.Join(e.binDir, name), script, execPerm)
	}
}

// FailStub makes a stubbed program exit with code.
func (e *TestEnvironment) FailStub(name string, code int) {
	e.writeFile(filepath.Join(e.binDir, name+".exit"), fmt.Sprintf("%d\n", code), filePerm)
}

// Calls returns every stub invocation in order.
func (e *TestEnvironment) Calls() []string {
	content, err := os.ReadFile(e.callLog)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		e.t.Fatalf("Failed to read call log: %v", err)
	}
	return strings.Split(strings.TrimSpace(string(content)), "\n")
}

// ResetCalls clears the call log between runs.
func (e *TestEnvironment) ResetCalls() {
	_ = os.Remove(e.callLog)
}

// Run invokes the binary with stdin and returns the combined output and the
// exit status.
func (e *TestEnvironment) Run(stdin string, args ...string) (string, int) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.tmpDir
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = append(os.Environ(),
		"HOME="+e.tmpDir,
		"PATH="+e.binDir+string(os.PathListSeparator)+os.Getenv("PATH"),
		"NO_COLOR=1",
	)

	output, err := cmd.CombinedOutput()
	if err == nil {
		return string(output), 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(output), exitErr.ExitCode()
	}
	e.t.Fatalf("Failed to run labdb-manager: %v", err)
	return "", -1
}

func (e *TestEnvironment) runInDir(dir, command string, args ...string) string {
	e.t.Helper()

	cmd := exec.Command(command, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("Command failed in %s: %s %s\nOutput: %s\nError: %v",
			dir, command, strings.Join(args, " "), output, err)
	}
	return string(output)
}

func (e *TestEnvironment) writeFile(path, content string, perm os.FileMode) {
	e.t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		e.t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func (e *TestEnvironment) configureRepo(dir string) {
	testutil.ConfigureTestRepo(e.t, dir, func(dir string, args ...string) {
		e.runInDir(dir, "git", args...)
	})
}

// CreateDeployment sets up an upstream repository on master and a clone of
// it with the deploy branch checked out, plus a config file for the clone.
func (e *TestEnvironment) CreateDeployment(name string) *Deployment {
	e.t.Helper()

	root := filepath.Join(e.tmpDir, name)
	upstream := filepath.Join(root, "upstream")
	checkout := filepath.Join(root, "labdb")

	e.runInDir(e.tmpDir, "git", "init", "-q", upstream)
	e.runInDir(upstream, "git", "symbolic-ref", "HEAD", "refs/heads/master")
	e.configureRepo(upstream)
	e.writeFile(filepath.Join(upstream, "README.md"), "# labdb\n", filePerm)
	e.runInDir(upstream, "git", "add", ".")
	e.runInDir(upstream, "git", "commit", "-q", "-m", "Initial commit")

	e.runInDir(e.tmpDir, "git", "clone", "-q", upstream, checkout)
	e.configureRepo(checkout)
	e.runInDir(checkout, "git", "checkout", "-q", "-b", "deploy")

	d := &Deployment{
		env:        e,
		upstream:   upstream,
		checkout:   checkout,
		backupDir:  filepath.Join(root, "backups"),
		configPath: filepath.Join(root, "config.yml"),
	}
	e.writeFile(d.configPath, fmt.Sprintf(`repo_path: %s
backup_dir: %s
shell:
  path: sh
  args: ["-c"]
`, checkout, d.backupDir), filePerm)

	return d
}

// CreateNonRepoDir creates a plain directory.
func (e *TestEnvironment) CreateNonRepoDir(name string) string {
	e.t.Helper()

	dir := filepath.Join(e.tmpDir, name)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		e.t.Fatalf("Failed to create directory: %v", err)
	}
	return dir
}

type Deployment struct {
	env        *TestEnvironment
	upstream   string
	checkout   string
	backupDir  string
	configPath string
}

// Run invokes a task against this deployment.
func (d *Deployment) Run(stdin string, args ...string) (string, int) {
	return d.env.Run(stdin, append([]string{"--config", d.configPath}, args...)...)
}

func (d *Deployment) CommitUpstream(filename, content, message string) {
	d.commit(d.upstream, filename, content, message)
}

// CommitDeploy commits directly on the deploy branch of the checkout.
func (d *Deployment) CommitDeploy(filename, content, message string) {
	d.env.runInDir(d.checkout, "git", "checkout", "-q", "deploy")
	d.commit(d.checkout, filename, content, message)
}

func (d *Deployment) commit(dir, filename, content, message string) {
	d.env.writeFile(filepath.Join(dir, filename), content, filePerm)
	d.env.runInDir(dir, "git", "add", filename)
	d.env.runInDir(dir, "git", "commit", "-q", "-m", message)
}

func (d *Deployment) Git(args ...string) string {
	return strings.TrimSpace(d.env.runInDir(d.checkout, "git", args...))
}

func (d *Deployment) CurrentBranch() string {
	return d.Git("rev-parse", "--abbrev-ref", "HEAD")
}

func (d *Deployment) BranchExists(name string) bool {
	cmd := exec.Command("git", "show-ref", "--verify", "--quiet", "refs/heads/"+name)
	cmd.Dir = d.checkout
	return cmd.Run() == nil
}

func (d *Deployment) MergeInProgress() bool {
	_, err := os.Stat(filepath.Join(d.checkout, ".git", "MERGE_HEAD"))
	return err == nil
}

// FileOnBranch returns the content of filename at the tip of branch.
func (d *Deployment) FileOnBranch(branch, filename string) string {
	return d.Git("show", branch+":"+filename)
}

func (d *Deployment) ReadFile(path string) string {
	content, err := os.ReadFile(filepath.Join(d.checkout, path))
	if err != nil {
		d.env.t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func (d *Deployment) FileMode(path string) os.FileMode {
	info, err := os.Stat(filepath.Join(d.checkout, path))
	if err != nil {
		d.env.t.Fatalf("Failed to stat file %s: %v", path, err)
	}
	return info.Mode().Perm()
}

// Backups lists the files in the backup directory.
func (d *Deployment) Backups() []string {
	entries, err := os.ReadDir(d.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		d.env.t.Fatalf("Failed to read backup dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
