package main

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func withBuildInfo(t *testing.T, preset, moduleVersion string) {
	t.Helper()
	prevVersion := version
	prevReader := readBuildInfo
	t.Cleanup(func() {
		version = prevVersion
		readBuildInfo = prevReader
	})

	version = preset
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{
			Main: debug.Module{
				Path:    "github.com/cjfuller/labdb-manager",
				Version: moduleVersion,
			},
		}, true
	}
}

func TestInitVersion(t *testing.T) {
	tests := []struct {
		name          string
		preset        string
		moduleVersion string
		want          string
	}{
		{name: "uses build info when dev", preset: defaultVersion, moduleVersion: "v0.4.1", want: "v0.4.1"},
		{name: "ignores devel version", preset: defaultVersion, moduleVersion: "(devel)", want: defaultVersion},
		{name: "respects preset version", preset: "1.2.0", moduleVersion: "v0.4.1", want: "1.2.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withBuildInfo(t, tt.preset, tt.moduleVersion)

			initVersion()

			assert.Equal(t, tt.want, version)
		})
	}
}
