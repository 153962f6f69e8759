// Package pathnode holds the lazily expanded directory tree behind the
// listing. Directories read their children only when expanded, and
// collapsing a directory discards everything below it.
//
// Nodes are addressed with types.TreeIndex. Row numbers in the flattened
// listing and tree indices are converted with FlatIndexToTreeIndex, which
// walks the same expand-aware depth-first order the composer uses.
package pathnode

import (
	"os"
	"path/filepath"
	"slices"

	"twilight/internal/errors"
	"twilight/internal/log"
	"twilight/pkg/types"
)

// PathNode is one filesystem entry. Children are owned by value and are
// only populated while the node is an expanded directory.
type PathNode struct {
	AbsolutePath string
	DisplayText  string
	IsDir        bool
	IsExpanded   bool
	Children     []PathNode
}

// New builds a collapsed root node for path. The path must exist and, if it
// is a directory, be openable.
func New(path string) (*PathNode, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.NewFileError("invalid path", path, errors.InvalidPath, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fsError("cannot open path", abs, err)
	}

	if info.IsDir() {
		f, err := os.Open(abs)
		if err != nil {
			return nil, fsError("cannot open path", abs, err)
		}
		f.Close()
	}

	return &PathNode{
		AbsolutePath: abs,
		DisplayText:  abs,
		IsDir:        info.IsDir(),
	}, nil
}

// GetAbsolutePath returns the node's path.
func (p *PathNode) GetAbsolutePath() string {
	return p.AbsolutePath
}

// Walk visits p and every node reachable through expanded directories in
// listing order. Returning false from fn stops the walk.
func (p *PathNode) Walk(fn func(node *PathNode, idx types.TreeIndex) bool) {
	p.walk(types.RootIndex(), fn)
}

func (p *PathNode) walk(idx types.TreeIndex, fn func(*PathNode, types.TreeIndex) bool) bool {
	if !fn(p, idx) {
		return false
	}
	if !p.IsExpanded {
		return true
	}
	for i := range p.Children {
		if !p.Children[i].walk(idx.Child(i), fn) {
			return false
		}
	}
	return true
}

// CountRows returns the length of the flattened listing rooted at p.
func (p *PathNode) CountRows() int {
	n := 0
	p.Walk(func(*PathNode, types.TreeIndex) bool {
		n++
		return true
	})
	return n
}

// FlatIndexToTreeIndex returns the index of the node shown at row in the
// current listing. Row 0 is the root. Callers must pass a row that is valid
// for the current listing; a row past the end yields the last row's index.
func (p *PathNode) FlatIndexToTreeIndex(row int) types.TreeIndex {
	var found types.TreeIndex
	n := 0
	p.Walk(func(_ *PathNode, idx types.TreeIndex) bool {
		found = idx
		if n >= row {
			return false
		}
		n++
		return true
	})
	return found
}

// GetChildPathNode resolves idx to a node. An offset that does not exist at
// its level means the index was computed against a different tree.
func (p *PathNode) GetChildPathNode(idx types.TreeIndex) (*PathNode, error) {
	node := p
	for depth := 0; depth < idx.Depth(); depth++ {
		offset := idx.At(depth)
		if offset < 0 || offset >= len(node.Children) {
			return nil, errors.NewIndexError(idx.String(), depth)
		}
		node = &node.Children[offset]
	}
	return node, nil
}

// ExpandDir reads and sorts the children of the directory at idx. It is a
// no-op for files and for directories that are already expanded. If the
// directory cannot be read the error is returned and the tree is unchanged.
func (p *PathNode) ExpandDir(idx types.TreeIndex, compare Comparator, reader DirReader) error {
	node, err := p.GetChildPathNode(idx)
	if err != nil {
		return err
	}
	if !node.IsDir || node.IsExpanded {
		return nil
	}

	if compare == nil {
		compare = CompareDirsTop
	}
	if reader == nil {
		reader = OSReader{}
	}

	entries, err := reader.ReadDir(node.AbsolutePath)
	if err != nil {
		return err
	}

	children := make([]PathNode, 0, len(entries))
	for _, e := range entries {
		children = append(children, PathNode{
			AbsolutePath: filepath.Join(node.AbsolutePath, e.Name),
			DisplayText:  e.Name,
			IsDir:        e.IsDir,
		})
	}
	slices.SortStableFunc(children, func(a, b PathNode) int {
		return compare(&a, &b)
	})

	node.Children = children
	node.IsExpanded = true
	log.LogWithFields(log.F("path", node.AbsolutePath), log.F("children", len(children))).Debug("expanded")
	return nil
}

// CollapseDir drops the children of the expanded directory at idx, along
// with any expand state below it. It is a no-op for anything else.
func (p *PathNode) CollapseDir(idx types.TreeIndex) error {
	node, err := p.GetChildPathNode(idx)
	if err != nil {
		return err
	}
	if !node.IsExpanded {
		return nil
	}

	node.Children = nil
	node.IsExpanded = false
	log.LogWithFields(log.F("path", node.AbsolutePath)).Debug("collapsed")
	return nil
}

// ExpandedDirs returns the paths of every expanded directory in listing
// order.
func (p *PathNode) ExpandedDirs() []string {
	var dirs []string
	p.Walk(func(node *PathNode, _ types.TreeIndex) bool {
		if node.IsExpanded {
			dirs = append(dirs, node.AbsolutePath)
		}
		return true
	})
	return dirs
}
