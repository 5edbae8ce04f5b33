// Package store persists boards, snapshots and the label/group/category/
// tag vocabularies in a workspace SQLite database under .pinboard/.
package store

import (
	"errors"
	"os"
	"path/filepath"
)

const dbFileName = "index.sqlite"

var ErrNotFound = errors.New("not found")

type Store struct {
	Dir string
}

// DiscoverDir walks upward from start looking for a .pinboard directory,
// so commands work from anywhere inside a workspace.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".pinboard")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, ".pinboard"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}
