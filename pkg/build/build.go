// Package build carries the version information stamped in at link time.
package build

import (
	"runtime/debug"

	"github.com/prometheus/common/version"
)

// Program is the name reported in version output and metrics.
const Program = "symdiff"

// Version information passed to Prometheus version package. Set with
// -ldflags "-X github.com/grafana/symdiff/pkg/build.Version=...".
var (
	Version   string
	Revision  string
	Branch    string
	BuildUser string
	BuildDate string
)

func init() {
	if Version == "" {
		if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
			Version = info.Main.Version
		}
	}

	version.Version = Version
	version.Revision = Revision
	version.Branch = Branch
	version.BuildUser = BuildUser
	version.BuildDate = BuildDate
}

// Print returns the version banner for the symdiff binary.
func Print() string {
	return version.Print(Program)
}
