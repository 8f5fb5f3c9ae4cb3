package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Common error messages with helpful context and suggestions

// UnresolvableCommandMessage is the line printed when a hard-fail command
// exits non-zero.
func UnresolvableCommandMessage(command string) string {
	return fmt.Sprintf("Encountered an unresolvable error while running %s.  "+
		"Please resolve the problem manually and re-run", command)
}

// Git Repository Errors
func NotInGitRepository(path string) error {
	msg := fmt.Sprintf(`not a git repository: %s

Solutions:
  • Pass the application checkout with '--repo <path>'
  • Set 'repo_path' in the configuration file
  • Check that the checkout was cloned with git`, path)
	return errors.New(msg)
}

// Task Errors
func UnknownTask(name string, availableTasks []string) error {
	msg := fmt.Sprintf("unknown task '%s'", name)

	if len(availableTasks) > 0 {
		msg += "\n\nAvailable tasks:"
		for _, task := range availableTasks {
			msg += fmt.Sprintf("\n  • %s", task)
		}
	}

	msg += "\n\nTip: Run 'labdb-manager --help' for usage"
	return errors.New(msg)
}

func HostnameRequired() error {
	msg := `hostname is required

Usage: labdb-manager hostname <full-hostname>

Examples:
  • labdb-manager hostname labdb.example.org
  • labdb-manager hostname   (prompts interactively)`
	return errors.New(msg)
}

// Shell Errors
func ShellStartFailed(command string, originalError error) error {
	msg := fmt.Sprintf("failed to run command: %s", command)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "executable file not found") || strings.Contains(errorStr, "no such file") {
		msg += `

Cause: Login shell not found
Solutions:
  • Check 'shell.path' in the configuration file
  • Install bash or point 'shell.path' at another login shell`
	} else if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check permissions of the shell and the repository directory
  • Run as the user that owns the application checkout`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

// Configuration Errors
func ConfigLoadFailed(configPath string, parseError error) error {
	msg := fmt.Sprintf("failed to load configuration from '%s'", configPath)

	parseErrorStr := parseError.Error()
	if strings.Contains(parseErrorStr, "yaml") || strings.Contains(parseErrorStr, "unmarshal") {
		msg += `

Cause: YAML syntax error in configuration file
Solutions:
  • Check YAML syntax and indentation
  • Remove the file to fall back to built-in defaults`
	} else if strings.Contains(parseErrorStr, "invalid configuration") {
		msg += `

Cause: Configuration values are inconsistent
Solution: Fix the reported field and re-run`
	} else if strings.Contains(parseErrorStr, "permission denied") {
		msg += `

Cause: Permission denied reading configuration file
Solution: Check file permissions with 'ls -la'`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", parseError)
	return errors.New(msg)
}

// File System Errors
func SettingsWriteFailed(path string, originalError error) error {
	msg := fmt.Sprintf("failed to write settings file: %s", path)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check permissions of the config directory
  • Run as the user that owns the application checkout`
	} else if strings.Contains(errorStr, "no such file or directory") {
		msg += `

Cause: Directory does not exist
Solutions:
  • Run the task from the application checkout
  • Check 'repo_path' in the configuration file`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}

func DirectoryAccessFailed(operation, path string, originalError error) error {
	msg := fmt.Sprintf("failed to %s directory: %s", operation, path)

	errorStr := originalError.Error()
	if strings.Contains(errorStr, "permission denied") {
		msg += `

Cause: Permission denied
Solutions:
  • Check directory permissions
  • Run with appropriate privileges
  • Ensure you own the directory`
	} else if strings.Contains(errorStr, "no such file or directory") {
		msg += `

Cause: Directory does not exist
Solutions:
  • Create the parent directory first
  • Check the path spelling
  • Use an absolute path`
	}

	msg += fmt.Sprintf("\n\nOriginal error: %v", originalError)
	return errors.New(msg)
}
