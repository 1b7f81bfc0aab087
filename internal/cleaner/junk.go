package cleaner

import "path/filepath"

// ListJunk returns the immediate children of each junk root (caches, logs,
// trash), roots in configured order and children in lexicographic order.
// Subdirectories are reported as single items and never descended into.
//
// The trash root is listed like any other: emptying it is a valid cleanup even
// though recoverable deletions land there.
func (c *Cleaner) ListJunk() ([]string, error) {
	var items []string

	for _, root := range c.paths.JunkRoots {
		names, err := c.listChildren(root)
		if err != nil {
			return items, err
		}

		for _, name := range names {
			items = append(items, filepath.Join(root, name))
		}
	}

	return items, nil
}
