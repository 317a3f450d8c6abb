package segoverlap

import (
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading ~ to the current user's home directory. Paths
// on Google Storage and paths without a leading ~ are returned unchanged.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}

	usr, err := user.Current()
	if err != nil {
		return path
	}

	if path == "~" {
		return usr.HomeDir
	}

	return filepath.Join(usr.HomeDir, path[2:])
}
