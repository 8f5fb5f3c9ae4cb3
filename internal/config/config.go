package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Config represents the labdb-manager configuration
type Config struct {
	RepoPath  string   `yaml:"repo_path,omitempty"`
	BackupDir string   `yaml:"backup_dir,omitempty"`
	Shell     Shell    `yaml:"shell,omitempty"`
	Git       Git      `yaml:"git,omitempty"`
	Database  Database `yaml:"database,omitempty"`
	Server    Server   `yaml:"server,omitempty"`
	Files     Files    `yaml:"files,omitempty"`
	Log       Log      `yaml:"log,omitempty"`
	Hooks     Hooks    `yaml:"hooks,omitempty"`
}

// Shell configures the login shell commands run in
type Shell struct {
	Path string   `yaml:"path,omitempty"`
	Args []string `yaml:"args,omitempty"`
}

// Git holds the branch and remote names used by the staging workflow
type Git struct {
	ProductionBranch string `yaml:"production_branch,omitempty"`
	StagingBranch    string `yaml:"staging_branch,omitempty"`
	RemoteBranch     string `yaml:"remote_branch,omitempty"`
	RemoteName       string `yaml:"remote_name,omitempty"`
	MergeMessage     string `yaml:"merge_message,omitempty"`
}

// Database configures the backup source
type Database struct {
	Name   string `yaml:"name,omitempty"`
	Host   string `yaml:"host,omitempty"`
	PgDump string `yaml:"pg_dump,omitempty"` // empty = look up on PATH
}

// Server configures the application process
type Server struct {
	Program    string `yaml:"program,omitempty"` // supervisor program name
	PumaConfig string `yaml:"puma_config,omitempty"`
}

// Files are the plaintext settings files, relative to the repository
type Files struct {
	Hostname string `yaml:"hostname,omitempty"`
	Secret   string `yaml:"secret,omitempty"`
}

// Log configures diagnostic logging
type Log struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

// Hooks are extra commands appended to workflows
type Hooks struct {
	PostUpdate []Hook `yaml:"post_update,omitempty"`
}

// Hook represents a single hook command
type Hook struct {
	Command  string `yaml:"command"`
	SoftFail bool   `yaml:"soft_fail,omitempty"`
	Sudo     bool   `yaml:"sudo,omitempty"`
}

const (
	ConfigEnvVar            = "LABDB_MANAGER_CONFIG"
	DefaultConfigPath       = "~/.config/labdb-manager/config.yml"
	DefaultRepoPath         = "~/labdb"
	DefaultBackupDir        = "~/backups"
	DefaultShellPath        = "/bin/bash"
	DefaultProductionBranch = "deploy"
	DefaultStagingBranch    = "deploy_staging"
	DefaultRemoteBranch     = "master"
	DefaultRemoteName       = "origin"
	DefaultMergeMessage     = "auto merge by labdb-manager"
	DefaultDatabaseName     = "labdb"
	DefaultDatabaseHost     = "localhost"
	DefaultServerProgram    = "labdb"
	DefaultPumaConfig       = "config/puma.rb"
	DefaultHostnameFile     = "config/full_hostname.txt"
	DefaultSecretFile       = "config/secret_token.txt"
	DefaultLogLevel         = "warn"
)

// DefaultShellArgs run the command text in a login shell
var DefaultShellArgs = []string{"--login", "-c"}

// Default returns a configuration with every default applied
func Default() *Config {
	c := &Config{}
	_ = c.Validate()
	return c
}

// LoadConfig loads configuration from path. A missing file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	configPath, err := ExpandPath(path)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate fills in defaults and checks the configuration
func (c *Config) Validate() error {
	setDefault(&c.RepoPath, DefaultRepoPath)
	setDefault(&c.BackupDir, DefaultBackupDir)
	setDefault(&c.Shell.Path, DefaultShellPath)
	if len(c.Shell.Args) == 0 {
		c.Shell.Args = append([]string(nil), DefaultShellArgs...)
	}
	setDefault(&c.Git.ProductionBranch, DefaultProductionBranch)
	setDefault(&c.Git.StagingBranch, DefaultStagingBranch)
	setDefault(&c.Git.RemoteBranch, DefaultRemoteBranch)
	setDefault(&c.Git.RemoteName, DefaultRemoteName)
	setDefault(&c.Git.MergeMessage, DefaultMergeMessage)
	setDefault(&c.Database.Name, DefaultDatabaseName)
	setDefault(&c.Database.Host, DefaultDatabaseHost)
	setDefault(&c.Server.Program, DefaultServerProgram)
	setDefault(&c.Server.PumaConfig, DefaultPumaConfig)
	setDefault(&c.Files.Hostname, DefaultHostnameFile)
	setDefault(&c.Files.Secret, DefaultSecretFile)
	setDefault(&c.Log.Level, DefaultLogLevel)

	if c.Git.StagingBranch == c.Git.ProductionBranch {
		return fmt.Errorf("git.staging_branch must differ from git.production_branch (%s)", c.Git.ProductionBranch)
	}
	for _, name := range []string{c.Git.ProductionBranch, c.Git.StagingBranch, c.Git.RemoteBranch, c.Git.RemoteName} {
		if strings.ContainsAny(name, " \t\n") {
			return fmt.Errorf("invalid git name '%s': must not contain whitespace", name)
		}
	}

	for i, hook := range c.Hooks.PostUpdate {
		if strings.TrimSpace(hook.Command) == "" {
			return fmt.Errorf("invalid hook %d: command hook requires 'command' field", i+1)
		}
	}

	return nil
}

// HasHooks returns true if the configuration has any post-update hooks
func (c *Config) HasHooks() bool {
	return len(c.Hooks.PostUpdate) > 0
}

// ResolveRepoPath returns the absolute repository path
func (c *Config) ResolveRepoPath() (string, error) {
	return ExpandPath(c.RepoPath)
}

// ResolveBackupDir returns the absolute backup directory
func (c *Config) ResolveBackupDir() (string, error) {
	return ExpandPath(c.BackupDir)
}

// ResolveRepoFile resolves a settings file relative to the repository
func (c *Config) ResolveRepoFile(name string) (string, error) {
	if filepath.IsAbs(name) {
		return name, nil
	}
	repo, err := c.ResolveRepoPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(repo, name), nil
}

// ExpandPath expands a leading ~ and makes the path absolute
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to resolve home directory: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path '%s': %w", path, err)
	}
	return abs, nil
}

func setDefault(field *string, value string) {
	if *field == "" {
		*field = value
	}
}
