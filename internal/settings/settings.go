// Package settings writes the single-value plaintext settings files the
// application reads at boot: the full hostname and the secret token.
package settings

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cjfuller/labdb-manager/internal/config"
	apperrors "github.com/cjfuller/labdb-manager/internal/errors"
)

const (
	// SecretBytes is the amount of entropy in a generated secret (512 bits).
	SecretBytes = 64

	secretFilePermissions   = 0o600
	hostnameFilePermissions = 0o644
	settingsDirPermissions  = 0o755
)

// GenerateSecret returns a hex-encoded random secret read from r.
func GenerateSecret(r io.Reader) (string, error) {
	buf := make([]byte, SecretBytes)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("failed to generate secret: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// WriteSecret generates a new application secret and writes it to the
// configured secret file, readable only by the owner. It returns the path
// written.
func WriteSecret(cfg *config.Config) (string, error) {
	secret, err := GenerateSecret(rand.Reader)
	if err != nil {
		return "", err
	}

	path, err := cfg.ResolveRepoFile(cfg.Files.Secret)
	if err != nil {
		return "", err
	}
	if err := writeFile(path, secret, secretFilePermissions); err != nil {
		return "", err
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, secretFilePermissions); err != nil {
		return "", apperrors.SettingsWriteFailed(path, err)
	}
	return path, nil
}

// WriteHostname writes hostname to the configured hostname file. It returns
// the path written.
func WriteHostname(cfg *config.Config, hostname string) (string, error) {
	hostname = strings.TrimSpace(hostname)
	if hostname == "" {
		return "", apperrors.HostnameRequired()
	}
	if strings.ContainsAny(hostname, " \t/") {
		return "", fmt.Errorf("invalid hostname '%s': expected the host part of a URL, e.g. labdb.example.org", hostname)
	}

	path, err := cfg.ResolveRepoFile(cfg.Files.Hostname)
	if err != nil {
		return "", err
	}
	if err := writeFile(path, hostname+"\n", hostnameFilePermissions); err != nil {
		return "", err
	}
	return path, nil
}

func writeFile(path, content string, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), settingsDirPermissions); err != nil {
		return apperrors.DirectoryAccessFailed("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), perm); err != nil {
		return apperrors.SettingsWriteFailed(path, err)
	}
	return nil
}
