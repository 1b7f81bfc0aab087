// Package config provides path and settings configuration for appprune.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BundleSuffix is the name suffix that marks a directory as an application bundle.
const BundleSuffix = ".app"

// SystemAppsDir is the system-wide applications root.
const SystemAppsDir = "/Applications"

// librarySubdirs are the per-user library locations searched for
// application leftovers, in visitation order.
var librarySubdirs = []string{
	"Application Support",
	"Caches",
	"Preferences",
	"Saved Application State",
	"Logs",
	"Cookies",
	"Containers",
	"Group Containers",
	"WebKit",
}

// Paths holds every filesystem location the cleaner reads from.
// All values are absolute and derived from a single home directory.
type Paths struct {
	Home         string
	BundleSuffix string

	// AppRoots are scanned for bundles: system root first, then the user root.
	AppRoots []string

	// LibraryDirs are searched, in order, for entries related to an application.
	LibraryDirs []string

	// JunkRoots are listed one level deep, in order: caches, logs, trash.
	JunkRoots []string

	// TrashDir receives recoverable deletions when the directory trash backend is used.
	TrashDir string
}

// DefaultPaths returns the standard macOS layout rooted at home.
func DefaultPaths(home string) Paths {
	library := filepath.Join(home, "Library")

	libs := make([]string, len(librarySubdirs))
	for i, sub := range librarySubdirs {
		libs[i] = filepath.Join(library, sub)
	}

	trash := filepath.Join(home, ".Trash")

	return Paths{
		Home:         home,
		BundleSuffix: BundleSuffix,
		AppRoots:     []string{SystemAppsDir, filepath.Join(home, "Applications")},
		LibraryDirs:  libs,
		JunkRoots: []string{
			filepath.Join(library, "Caches"),
			filepath.Join(library, "Logs"),
			trash,
		},
		TrashDir: trash,
	}
}

// ResolvePaths builds the default layout for home, falling back to the
// current user's home directory when home is empty.
func ResolvePaths(home string) (Paths, error) {
	if home == "" {
		h, err := os.UserHomeDir()
		if err != nil {
			return Paths{}, fmt.Errorf("failed to get user home directory: %w", err)
		}
		home = h
	}

	abs, err := filepath.Abs(home)
	if err != nil {
		return Paths{}, fmt.Errorf("failed to resolve home %s: %w", home, err)
	}

	return DefaultPaths(abs), nil
}

// Validate checks that every configured location is absolute.
func (p Paths) Validate() error {
	if p.BundleSuffix == "" {
		return errors.New("bundle suffix must not be empty")
	}

	check := func(kind, path string) error {
		if !filepath.IsAbs(path) {
			return fmt.Errorf("%s path %q is not absolute", kind, path)
		}
		return nil
	}

	for _, p := range p.AppRoots {
		if err := check("application root", p); err != nil {
			return err
		}
	}
	for _, p := range p.LibraryDirs {
		if err := check("library", p); err != nil {
			return err
		}
	}
	for _, p := range p.JunkRoots {
		if err := check("junk root", p); err != nil {
			return err
		}
	}
	if p.TrashDir != "" {
		if err := check("trash", p.TrashDir); err != nil {
			return err
		}
	}
	return nil
}
