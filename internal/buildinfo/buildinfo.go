// Package buildinfo exposes version data stamped in at link time, e.g.
//
//	go build -ldflags "-X github.com/nanatgrail/prodigyspace/internal/buildinfo.Version=1.2.0"
package buildinfo

import (
	"fmt"
	"io"
)

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String formats the build data on one line.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}

// PrintBuildData writes the startup banner to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build version: %s\n", Version)
	fmt.Fprintf(w, "Build date: %s\n", BuildTime)
	fmt.Fprintf(w, "Build commit: %s\n", Commit)
}
