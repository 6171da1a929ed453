// Package detect works out which version-control system manages a directory.
package detect

import (
	"os"
	"path/filepath"
)

// Fallback is returned when no marker directory is found up to the root.
const Fallback = "svk"

type marker struct {
	dir    string
	system string
}

// markers are tested in order at every level of the walk.
var markers = []marker{
	{dir: ".git", system: "git"},
	{dir: ".hg", system: "hg"},
	{dir: "_darcs", system: "darcs"},
	{dir: ".svn", system: "svn"},
}

// Guess walks from dir towards the filesystem root and returns the system name
// of the first marker directory found. The nearest directory wins; within one
// directory the order of markers decides.
func Guess(dir string) (string, error) {
	current, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, m := range markers {
			info, err := os.Stat(filepath.Join(current, m.dir))
			if err == nil && info.IsDir() {
				return m.system, nil
			}
		}
		parent := filepath.Dir(current)
		if parent == current {
			return Fallback, nil
		}
		current = parent
	}
}
