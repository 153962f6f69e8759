package pathnode

import (
	"strings"

	"twilight/internal/config"
	"twilight/internal/errors"
)

// Comparator orders two sibling nodes. It must be a total order so that the
// flattened listing is deterministic.
type Comparator func(a, b *PathNode) int

func compareNames(a, b *PathNode) int {
	return strings.Compare(a.DisplayText, b.DisplayText)
}

// CompareDirsTop lists directories before files, each group by name.
func CompareDirsTop(a, b *PathNode) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return -1
		}
		return 1
	}
	return compareNames(a, b)
}

// CompareDirsBot lists files before directories, each group by name.
func CompareDirsBot(a, b *PathNode) int {
	if a.IsDir != b.IsDir {
		if a.IsDir {
			return 1
		}
		return -1
	}
	return compareNames(a, b)
}

// CompareNone orders by name only.
func CompareNone(a, b *PathNode) int {
	return compareNames(a, b)
}

// ComparatorFor returns the comparator for a behavior.path_node_sort value.
func ComparatorFor(name string) (Comparator, error) {
	switch name {
	case config.SortDirsTop:
		return CompareDirsTop, nil
	case config.SortDirsBot:
		return CompareDirsBot, nil
	case config.SortNone:
		return CompareNone, nil
	}
	return nil, errors.NewConfigError("unknown sort policy", name, errors.InvalidConfig, nil)
}
