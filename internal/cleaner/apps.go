package cleaner

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrAppNotFound is returned when an application cannot be resolved by name or path.
var ErrAppNotFound = errors.New("application not found")

// Application is an installed application bundle identified by its absolute path.
type Application struct {
	Path   string
	suffix string
}

// Name returns the bundle's base name with the bundle suffix stripped.
func (a Application) Name() string {
	return strings.TrimSuffix(filepath.Base(a.Path), a.suffix)
}

// App wraps a bundle path as an Application using the configured suffix.
func (c *Cleaner) App(path string) Application {
	return Application{Path: path, suffix: c.paths.BundleSuffix}
}

// RemovedApp builds the Application a query refers to when its bundle no
// longer exists. query may be a display name, a name with the bundle suffix,
// or a bundle path.
func (c *Cleaner) RemovedApp(query string) Application {
	cleaned := filepath.Clean(strings.TrimSpace(query))
	return c.App(strings.TrimSuffix(cleaned, c.paths.BundleSuffix) + c.paths.BundleSuffix)
}

// ListApplications returns the bundles found directly under each application
// root, sorted by full path. Roots that do not exist are skipped. Unlike the
// library and junk scans, a failure to list an existing root is returned.
func (c *Cleaner) ListApplications() ([]Application, error) {
	var apps []Application

	for _, root := range c.paths.AppRoots {
		entries, err := os.ReadDir(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to list applications in %s: %w", root, err)
		}

		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), c.paths.BundleSuffix) {
				apps = append(apps, c.App(filepath.Join(root, entry.Name())))
			}
		}
	}

	sort.Slice(apps, func(i, j int) bool {
		return apps[i].Path < apps[j].Path
	})

	return apps, nil
}

// FindApplication resolves query to an installed application. query may be a
// bundle path, an exact display name, or a display name differing only in case.
// Exact matches win over case-insensitive ones; the first match in sorted order
// is returned.
func (c *Cleaner) FindApplication(query string) (Application, error) {
	apps, err := c.ListApplications()
	if err != nil {
		return Application{}, err
	}

	query = strings.TrimSpace(query)
	cleaned := filepath.Clean(query)
	name := strings.TrimSuffix(cleaned, c.paths.BundleSuffix)

	for _, app := range apps {
		if app.Path == cleaned || app.Name() == name {
			return app, nil
		}
	}
	for _, app := range apps {
		if strings.EqualFold(app.Name(), name) {
			return app, nil
		}
	}

	return Application{}, fmt.Errorf("%w: %s", ErrAppNotFound, query)
}

// Candidates returns the full deletion set for app: the bundle itself followed
// by every associated library entry.
func (c *Cleaner) Candidates(app Application) ([]string, error) {
	related, err := c.FindAssociated(app)
	paths := make([]string, 0, len(related)+1)
	paths = append(paths, app.Path)
	paths = append(paths, related...)
	return paths, err
}
