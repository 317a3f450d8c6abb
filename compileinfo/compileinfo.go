// Package compileinfo reports how a segoverlap binary was built, so that
// results can be traced back to the code that produced them.
package compileinfo

import (
	"fmt"
	"os"
	"runtime/debug"
)

type CompileInfo struct {
	Package    string
	Module     string
	Version    string
	GoVersion  string
	Commit     string
	CommitTime string
	Modified   bool
}

func (c CompileInfo) String() string {
	if c.Package == "" {
		return "No build information is embedded in this binary."
	}

	version := ""
	if c.Version != "" && c.Version != "(devel)" {
		version = fmt.Sprintf(" (%s %s)", c.Module, c.Version)
	}

	commit := "an unknown commit"
	if c.Commit != "" {
		commit = fmt.Sprintf("commit %s at time %s", c.Commit, c.CommitTime)
	}

	dirty := ""
	if c.Modified {
		dirty = " The working tree had uncommitted changes."
	}

	return fmt.Sprintf("%s%s was built with %s from %s.%s", c.Package, version, c.GoVersion, commit, dirty)
}

// Get reads the build information that the Go toolchain embeds in binaries.
func Get() CompileInfo {
	out := CompileInfo{}

	z, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.GoVersion = z.GoVersion
	out.Package = z.Path
	out.Module = z.Main.Path
	out.Version = z.Main.Version
	for _, s := range z.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Commit = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Modified = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintln(os.Stderr, Get())
}
