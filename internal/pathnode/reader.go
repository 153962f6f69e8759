package pathnode

import (
	"io/fs"
	"os"
	"path/filepath"

	"twilight/internal/errors"

	"github.com/gobwas/glob"
)

// Entry is one immediate child of a directory as reported by a DirReader.
type Entry struct {
	Name  string
	IsDir bool
}

// DirReader lists the immediate entries of a directory.
type DirReader interface {
	ReadDir(path string) ([]Entry, error)
}

// OSReader reads directories from the local filesystem. Symlinks are
// followed to decide whether an entry is a directory; dangling links are
// listed as files.
type OSReader struct{}

// ReadDir implements DirReader.
func (OSReader) ReadDir(path string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, fsError("cannot read directory", path, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		isDir := de.IsDir()
		if de.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(path, de.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		entries = append(entries, Entry{Name: de.Name(), IsDir: isDir})
	}
	return entries, nil
}

// FilteredReader drops entries whose name matches any of its patterns.
type FilteredReader struct {
	next     DirReader
	patterns []glob.Glob
}

// NewFilteredReader wraps next, hiding entries that match any of the glob
// patterns. With no patterns it returns next unchanged.
func NewFilteredReader(next DirReader, patterns []string) (DirReader, error) {
	if len(patterns) == 0 {
		return next, nil
	}

	compiled := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, errors.NewConfigError("invalid ignore pattern", p, errors.InvalidConfig, err)
		}
		compiled = append(compiled, g)
	}
	return &FilteredReader{next: next, patterns: compiled}, nil
}

// ReadDir implements DirReader.
func (r *FilteredReader) ReadDir(path string) ([]Entry, error) {
	entries, err := r.next.ReadDir(path)
	if err != nil {
		return nil, err
	}

	kept := entries[:0]
	for _, e := range entries {
		if !r.ignored(e.Name) {
			kept = append(kept, e)
		}
	}
	return kept, nil
}

func (r *FilteredReader) ignored(name string) bool {
	for _, g := range r.patterns {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// fsError maps a filesystem error onto the application error kinds.
func fsError(msg, path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errors.NewFileError(msg, path, errors.PathNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return errors.NewFileError(msg, path, errors.PathUnreadable, err)
	default:
		return errors.NewFileError(msg, path, errors.PathUnreadable, err)
	}
}
