//go:build tools
// +build tools

// Package tools pins the lint, import, coverage and release tools in go.mod.
// It is never built into labdb-manager.
package tools

import (
	// Linting tool
	_ "github.com/golangci/golangci-lint/cmd/golangci-lint"

	// Import management tool
	_ "golang.org/x/tools/cmd/goimports"

	// Test coverage reporting
	_ "golang.org/x/tools/cmd/cover"

	// Release tool
	_ "github.com/goreleaser/goreleaser"
)
