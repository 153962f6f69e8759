package types

import (
	"fmt"
	"strings"
)

// TreeIndex addresses a node by the sibling offset taken at each depth,
// starting from the root. The zero value is the root index.
//
// An index is only meaningful against the tree it was computed from:
// expanding or collapsing a directory changes which rows exist, so indices
// are recomputed from the cursor row before every mutation and never kept.
type TreeIndex struct {
	offsets []int
}

// RootIndex returns the index of the tree root.
func RootIndex() TreeIndex {
	return TreeIndex{}
}

// NewTreeIndex builds an index from explicit offsets.
func NewTreeIndex(offsets ...int) TreeIndex {
	if len(offsets) == 0 {
		return TreeIndex{}
	}
	return TreeIndex{offsets: append([]int(nil), offsets...)}
}

// Child returns a new index one level deeper. The receiver is not modified
// and the result never shares storage with it.
func (t TreeIndex) Child(offset int) TreeIndex {
	next := make([]int, len(t.offsets), len(t.offsets)+1)
	copy(next, t.offsets)
	return TreeIndex{offsets: append(next, offset)}
}

// Parent returns the index one level up. The root is its own parent.
func (t TreeIndex) Parent() TreeIndex {
	if len(t.offsets) <= 1 {
		return TreeIndex{}
	}
	return NewTreeIndex(t.offsets[:len(t.offsets)-1]...)
}

// Depth is the number of offsets, 0 for the root.
func (t TreeIndex) Depth() int {
	return len(t.offsets)
}

// IsRoot reports whether the index addresses the root.
func (t TreeIndex) IsRoot() bool {
	return len(t.offsets) == 0
}

// Offsets returns a copy of the offsets.
func (t TreeIndex) Offsets() []int {
	return append([]int(nil), t.offsets...)
}

// At returns the offset at the given depth.
func (t TreeIndex) At(depth int) int {
	return t.offsets[depth]
}

// Equal reports whether both indices hold the same offsets.
func (t TreeIndex) Equal(other TreeIndex) bool {
	return t.Compare(other) == 0
}

// Compare orders indices lexicographically by offset; a prefix sorts before
// its extensions. This matches row order only between siblings and their
// descendants, callers that need row order must walk the tree.
func (t TreeIndex) Compare(other TreeIndex) int {
	n := min(len(t.offsets), len(other.offsets))
	for i := 0; i < n; i++ {
		switch {
		case t.offsets[i] < other.offsets[i]:
			return -1
		case t.offsets[i] > other.offsets[i]:
			return 1
		}
	}
	switch {
	case len(t.offsets) < len(other.offsets):
		return -1
	case len(t.offsets) > len(other.offsets):
		return 1
	}
	return 0
}

func (t TreeIndex) String() string {
	parts := make([]string, len(t.offsets))
	for i, o := range t.offsets {
		parts[i] = fmt.Sprint(o)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
