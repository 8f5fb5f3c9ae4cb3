package main

import (
	"runtime/debug"
)

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// initVersion settles the version printed by `labdb-manager --version`.
//
// Release archives are built by GoReleaser, which stamps the tag into
// main.version with -ldflags and leaves nothing for this function to do.
// Lab servers that track the repository instead install with
// `go install github.com/cjfuller/labdb-manager/cmd/labdb-manager@<tag>`,
// and there the tag is only available as the main module version. A local
// `go build` reports "(devel)" and keeps the "dev" default.
func initVersion() {
	if version != defaultVersion {
		return
	}

	info, ok := readBuildInfo()
	if !ok || info == nil {
		return
	}

	if info.Main.Version == "" || info.Main.Version == "(devel)" {
		return
	}

	version = info.Main.Version
}
