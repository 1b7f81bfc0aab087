package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// SearchTerms derives the substrings used to match library entries against an
// application name: the name itself, its lower-cased form and the name with
// spaces removed. Empty terms are dropped since they would match every entry.
func SearchTerms(name string) []string {
	candidates := []string{
		name,
		strings.ToLower(name),
		strings.ReplaceAll(name, " ", ""),
	}

	terms := make([]string, 0, len(candidates))
	for _, term := range candidates {
		if term != "" {
			terms = append(terms, term)
		}
	}
	return terms
}

// matchesAny reports whether name contains any term. The comparison is
// case-sensitive for every term, including the lower-cased one.
func matchesAny(name string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(name, term) {
			return true
		}
	}
	return false
}

// FindAssociated returns the library entries whose names contain any search
// term derived from app's name. Library directories are visited in configured
// order and entries within one directory in lexicographic order. The bundle
// itself is not included.
//
// Missing directories and directories that cannot be read for lack of
// permission are skipped. Any other listing failure stops the scan and is
// returned together with the matches found so far.
func (c *Cleaner) FindAssociated(app Application) ([]string, error) {
	terms := SearchTerms(app.Name())
	if len(terms) == 0 {
		return nil, nil
	}

	var found []string
	for _, dir := range c.paths.LibraryDirs {
		names, err := c.listChildren(dir)
		if err != nil {
			return found, err
		}

		for _, name := range names {
			if matchesAny(name, terms) {
				found = append(found, filepath.Join(dir, name))
			}
		}
	}

	return found, nil
}

// listChildren returns the sorted entry names of dir. A missing dir or a
// permission failure yields no names and no error.
func (c *Cleaner) listChildren(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return nil, nil
		case errors.Is(err, fs.ErrPermission):
			c.logger.Debug("skipping unreadable directory", "dir", dir, "error", err)
			return nil, nil
		default:
			return nil, fmt.Errorf("failed to list %s: %w", dir, err)
		}
	}

	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = entry.Name()
	}
	return names, nil
}
