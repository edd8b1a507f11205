package version

import (
	"runtime"
	"time"
)

// AppName is the product name shown in page titles and logs.
const AppName = "Ytdown Soraa"

var (
	Version   = "dev"                           // ex: v2.6.0
	Commit    = "none"                          // ex: abcd123
	BuildDate = time.Now().Format(time.RFC3339) // ex: 2026-10-19T18:42:00Z
	GoVersion = runtime.Version()               // go version
)

// String returns a one-line build description.
func String() string {
	return AppName + " " + Version + " (commit=" + Commit + ", built=" + BuildDate + ", go=" + GoVersion + ")"
}
