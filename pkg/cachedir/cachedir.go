// Package cachedir encapsulates all path knowledge for the per-user cache
// directory. It provides a Dir value object; actual reading and writing lives
// in pkg/diskcache.
package cachedir

import (
	"os"
	"path/filepath"
	"runtime"
)

// appName names the directory on disk: "Dehancer" under %LOCALAPPDATA% on
// Windows, ".dehancer" in the home directory elsewhere.
const appName = "Dehancer"

// Dir is a value object that resolves paths within the cache directory.
type Dir struct {
	root string
}

// New creates a Dir rooted at the given path. The path is converted to an
// absolute path. No I/O is performed; use Ensure to create the directory.
func New(root string) Dir {
	abs, err := filepath.Abs(root)
	if err != nil {
		abs = root
	}

	return Dir{root: abs}
}

// Default resolves the per-user cache location for the current platform.
func Default() (Dir, error) {
	if runtime.GOOS == "windows" {
		return New(filepath.Join(os.Getenv("LOCALAPPDATA"), appName)), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Dir{}, err
	}

	return New(filepath.Join(home, ".dehancer")), nil
}

// Root returns the absolute path to the cache directory.
func (d Dir) Root() string { return d.root }

// EntryPath returns the file path for a cache key. One key maps to one file,
// which keeps write atomicity and lock scope per key.
func (d Dir) EntryPath(key string) string {
	return filepath.Join(d.root, key+".json")
}

// EntryFiles returns the paths of all entry files currently on disk.
func (d Dir) EntryFiles() []string {
	matches, err := filepath.Glob(filepath.Join(d.root, "*.json"))
	if err != nil {
		return nil
	}
	return matches
}

// Ensure creates the directory if it does not exist yet.
func (d Dir) Ensure() error {
	return os.MkdirAll(d.root, 0o750)
}

// Exists reports whether the cache directory exists on disk.
func (d Dir) Exists() bool {
	info, err := os.Stat(d.root)

	return err == nil && info.IsDir()
}
