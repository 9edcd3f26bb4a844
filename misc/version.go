// Package misc holds program identity.
package misc

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
)

// set by linker
var (
	version = "dev"
	gitHash = ""
)

const appName = "flexcss"

// GetAppName returns name of the running program without extension.
func GetAppName() string {
	exe, err := os.Executable()
	if err != nil {
		return appName
	}
	base := filepath.Base(exe)
	// go test binaries are named after the package
	if strings.HasSuffix(strings.TrimSuffix(base, ".exe"), ".test") {
		return appName
	}
	if name := strings.TrimSuffix(base, filepath.Ext(base)); len(name) != 0 {
		return name
	}
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash returns commit program was built from, falling back to VCS
// information recorded by the go tool.
func GetGitHash() string {
	if len(gitHash) != 0 {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
