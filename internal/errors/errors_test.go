package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnresolvableCommandMessage(t *testing.T) {
	msg := UnresolvableCommandMessage("git merge master")

	assert.Equal(t,
		"Encountered an unresolvable error while running git merge master.  "+
			"Please resolve the problem manually and re-run",
		msg)
}

func TestNotInGitRepository(t *testing.T) {
	err := NotInGitRepository("/srv/labdb")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a git repository: /srv/labdb")
	assert.Contains(t, err.Error(), "--repo")
	assert.Contains(t, err.Error(), "Solutions:")
}

func TestUnknownTask(t *testing.T) {
	tests := []struct {
		name      string
		task      string
		available []string
		expected  []string
		absent    []string
	}{
		{
			name:      "with available tasks",
			task:      "deploy",
			available: []string{"update", "backup"},
			expected:  []string{"unknown task 'deploy'", "Available tasks:", "• update", "• backup", "--help"},
		},
		{
			name:     "without available tasks",
			task:     "deploy",
			expected: []string{"unknown task 'deploy'", "--help"},
			absent:   []string{"Available tasks:"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := UnknownTask(tt.task, tt.available)

			assert.Error(t, err)
			for _, expected := range tt.expected {
				assert.Contains(t, err.Error(), expected)
			}
			for _, absent := range tt.absent {
				assert.NotContains(t, err.Error(), absent)
			}
		})
	}
}

func TestHostnameRequired(t *testing.T) {
	err := HostnameRequired()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "hostname is required")
	assert.Contains(t, err.Error(), "Examples:")
}

func TestShellStartFailed(t *testing.T) {
	tests := []struct {
		name     string
		original error
		expected string
	}{
		{
			name:     "shell missing",
			original: fmt.Errorf("exec: \"/bin/zsh\": executable file not found in $PATH"),
			expected: "Login shell not found",
		},
		{
			name:     "permission denied",
			original: fmt.Errorf("fork/exec /bin/bash: permission denied"),
			expected: "Cause: Permission denied",
		},
		{
			name:     "other",
			original: fmt.Errorf("something odd"),
			expected: "Original error: something odd",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShellStartFailed("bundle install", tt.original)

			assert.Error(t, err)
			assert.Contains(t, err.Error(), "failed to run command: bundle install")
			assert.Contains(t, err.Error(), tt.expected)
		})
	}
}

func TestConfigLoadFailed(t *testing.T) {
	tests := []struct {
		name     string
		original error
		expected string
	}{
		{name: "yaml", original: fmt.Errorf("yaml: line 3: mapping values are not allowed"), expected: "YAML syntax error"},
		{name: "invalid", original: fmt.Errorf("invalid configuration: git.staging_branch is empty"), expected: "inconsistent"},
		{name: "permission", original: fmt.Errorf("open config.yml: permission denied"), expected: "Permission denied"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ConfigLoadFailed("/etc/labdb.yml", tt.original)

			assert.Contains(t, err.Error(), "failed to load configuration from '/etc/labdb.yml'")
			assert.Contains(t, err.Error(), tt.expected)
			assert.Contains(t, err.Error(), "Original error:")
		})
	}
}

func TestSettingsWriteFailed(t *testing.T) {
	err := SettingsWriteFailed("config/secret_token.txt", fmt.Errorf("open: no such file or directory"))

	assert.Contains(t, err.Error(), "failed to write settings file: config/secret_token.txt")
	assert.Contains(t, err.Error(), "Directory does not exist")
}

func TestDirectoryAccessFailed(t *testing.T) {
	err := DirectoryAccessFailed("create backup", "/backups", fmt.Errorf("mkdir /backups: permission denied"))

	assert.Contains(t, err.Error(), "failed to create backup directory: /backups")
	assert.Contains(t, err.Error(), "Cause: Permission denied")
}
