package version

import (
	"fmt"
	"os"
	"runtime/debug"
)

func GetVersion() *debug.BuildInfo {
	bi, _ := debug.ReadBuildInfo()
	return bi
}

// Short returns the main module version, or "devel" for untagged builds.
func Short() string {
	bi := GetVersion()
	if bi == nil || bi.Main.Version == "" || bi.Main.Version == "(devel)" {
		return "devel"
	}

	return bi.Main.Version
}

// PrintVersion prints build information and exits when requested on the
// command line or via JREPL_VERSION.
func PrintVersion(requested bool) {
	if !requested && os.Getenv("JREPL_VERSION") == "" {
		return
	}

	bi := GetVersion()
	if bi == nil {
		fmt.Fprintf(os.Stderr, "ReadBuildInfo() failed\n")
		os.Exit(1)
	}

	fmt.Printf("%s", bi)
	os.Exit(0)
}
