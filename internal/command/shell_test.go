package command

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T) (*LoginShell, *bytes.Buffer) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
	var out bytes.Buffer
	shell := NewLoginShell("sh", []string{"-c"}, t.TempDir())
	shell.Stdin = nil
	shell.Stdout = &out
	shell.Stderr = &out
	return shell, &out
}

func TestNewLoginShell_Defaults(t *testing.T) {
	shell := NewLoginShell("", nil, "/srv/labdb")

	assert.Equal(t, "/bin/bash", shell.Path)
	assert.Equal(t, []string{"--login", "-c"}, shell.Args)
	assert.Equal(t, "/srv/labdb", shell.Dir)
	assert.Equal(t,
		[]string{"/bin/bash", "--login", "-c", "git checkout deploy && git branch deploy_staging"},
		shell.Argv("git checkout deploy && git branch deploy_staging"))
}

func TestLoginShell_Run(t *testing.T) {
	t.Run("should return zero on success and stream output", func(t *testing.T) {
		shell, out := newTestShell(t)

		code, err := shell.Run(context.Background(), "echo hello && echo world")

		require.NoError(t, err)
		assert.Equal(t, 0, code)
		assert.Equal(t, "hello\nworld\n", out.String())
	})

	t.Run("should return the exact exit status", func(t *testing.T) {
		shell, _ := newTestShell(t)

		code, err := shell.Run(context.Background(), "exit 7")

		require.NoError(t, err)
		assert.Equal(t, 7, code)
	})

	t.Run("should run in the configured directory", func(t *testing.T) {
		shell, out := newTestShell(t)

		_, err := shell.Run(context.Background(), "pwd")

		require.NoError(t, err)
		assert.Contains(t, out.String(), shell.Dir)
	})

	t.Run("should pass extra environment", func(t *testing.T) {
		shell, out := newTestShell(t)
		shell.Env = []string{"LABDB_TEST_VALUE=42"}

		_, err := shell.Run(context.Background(), "echo $LABDB_TEST_VALUE")

		require.NoError(t, err)
		assert.Equal(t, "42\n", out.String())
	})

	t.Run("should return error when shell is missing", func(t *testing.T) {
		shell := NewLoginShell("/nonexistent/shell-xyz", []string{"-c"}, "")

		_, err := shell.Run(context.Background(), "true")

		assert.Error(t, err)
	})
}
