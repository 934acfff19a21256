package paths

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// AppName is the directory name used under XDG base directories.
const AppName = "frontmatter-lint"

// DefaultDirPerm is the permission used when creating directories.
const DefaultDirPerm = 0o700

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// Home returns the current user's home directory.
func Home() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrHomeDirNotFound
	}
	return home, nil
}

// ResolveHome expands a leading ~ or ~/ in path to the user's home directory.
// Paths without a tilde prefix are returned unchanged.
func ResolveHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	home, err := Home()
	if err != nil {
		return "", err
	}
	if path == "~" {
		return home, nil
	}
	return filepath.Join(home, path[2:]), nil
}

// ConfigDir returns the application's config directory.
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultLogFile returns the default path for the rotating log file.
func DefaultLogFile() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

// EnsureDir creates the directory and any missing parents. A perm of 0
// uses DefaultDirPerm.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}
