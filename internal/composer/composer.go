// Package composer flattens a PathNode tree into the rows of the listing.
// The output depends only on the tree's expand state and the composition
// settings, so the same tree always yields the same rows in the same order.
package composer

import (
	"strings"

	"twilight/internal/config"
	"twilight/internal/pathnode"
	"twilight/pkg/types"
)

// Kind tells directories and files apart in a row.
type Kind int

const (
	KindFile Kind = iota
	KindDir
)

func (k Kind) String() string {
	if k == KindDir {
		return "dir"
	}
	return "file"
}

// Row is one line of the listing.
type Row struct {
	Name     string // Base name, or the absolute path for the root
	Path     string
	Depth    int
	Kind     Kind
	Expanded bool
	Text     string // Indent, marker and name ready to draw
}

// IsDir reports whether the row is a directory.
func (r Row) IsDir() bool {
	return r.Kind == KindDir
}

type glyphs struct {
	guide     string
	expanded  string
	collapsed string
	file      string
}

var (
	utf8Glyphs  = glyphs{guide: "│", expanded: "▾ ", collapsed: "▸ ", file: "  "}
	asciiGlyphs = glyphs{guide: "|", expanded: "v ", collapsed: "> ", file: "  "}
)

// Composer turns a tree into rows using fixed composition settings.
type Composer struct {
	level  string
	glyphs glyphs
}

// New creates a composer. An indent below one column is treated as one.
func New(cfg config.Composition) *Composer {
	g := asciiGlyphs
	if cfg.UseUTF8 {
		g = utf8Glyphs
	}

	width := cfg.Indent
	if width < 1 {
		width = 1
	}
	guide := " "
	if cfg.ShowIndent {
		guide = g.guide
	}

	return &Composer{
		level:  guide + strings.Repeat(" ", width-1),
		glyphs: g,
	}
}

// ComposePathNode returns one row per node reachable from root through
// expanded directories, in depth-first order. Row i is the node that
// root.FlatIndexToTreeIndex(i) addresses.
func (c *Composer) ComposePathNode(root *pathnode.PathNode) []Row {
	if root == nil {
		return nil
	}

	rows := make([]Row, 0, root.CountRows())
	root.Walk(func(node *pathnode.PathNode, idx types.TreeIndex) bool {
		rows = append(rows, c.row(node, idx.Depth()))
		return true
	})
	return rows
}

func (c *Composer) row(node *pathnode.PathNode, depth int) Row {
	r := Row{
		Name:     node.DisplayText,
		Path:     node.AbsolutePath,
		Depth:    depth,
		Kind:     KindFile,
		Expanded: node.IsExpanded,
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(c.level, depth))
	switch {
	case node.IsDir && node.IsExpanded:
		r.Kind = KindDir
		b.WriteString(c.glyphs.expanded)
	case node.IsDir:
		r.Kind = KindDir
		b.WriteString(c.glyphs.collapsed)
	default:
		b.WriteString(c.glyphs.file)
	}
	b.WriteString(node.DisplayText)
	if node.IsDir && !strings.HasSuffix(node.DisplayText, "/") {
		b.WriteByte('/')
	}

	r.Text = b.String()
	return r
}

// Texts returns the Text of every row.
func Texts(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Text
	}
	return out
}

// Names returns the Name of every row.
func Names(rows []Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}
