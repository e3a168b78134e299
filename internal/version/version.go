package version

import (
	"fmt"
	"runtime"
)

// Set at build time with -ldflags "-X github.com/minidocs/minidocs/internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func GetInfo() string {
	return fmt.Sprintf("%s (commit %s, built %s, %s)", Version, Commit, BuildDate, runtime.Version())
}
