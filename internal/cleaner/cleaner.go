// Package cleaner locates and removes application leftovers and generic junk.
//
// The Cleaner is synchronous and holds no state between calls beyond its
// configured paths: every operation is a function of its arguments and the
// live filesystem. Long scans, size walks and deletions block the caller and
// cannot be cancelled once started.
//
// Error policy:
//   - a configured root that does not exist is treated as empty
//   - a permission error while listing a library or junk root skips that root
//   - SizeOf collapses every failure to 0
//   - Delete converts every failure into a failed Outcome
//   - ListApplications returns listing failures as errors
package cleaner

import (
	"fmt"
	"log/slog"

	"github.com/blackwell-systems/appprune/internal/config"
)

// Cleaner is the scanning, matching and deletion engine.
type Cleaner struct {
	paths   config.Paths
	trasher Trasher
	logger  *slog.Logger
}

// Option customizes a Cleaner.
type Option func(*Cleaner)

// WithTrasher sets the backend used for recoverable deletions.
func WithTrasher(t Trasher) Option {
	return func(c *Cleaner) {
		c.trasher = t
	}
}

// WithLogger sets the logger used for debug output about skipped roots.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cleaner) {
		c.logger = l
	}
}

// New creates a Cleaner over the given paths. Without WithTrasher, recoverable
// deletions use DefaultTrasher for the configured trash directory.
func New(paths config.Paths, opts ...Option) (*Cleaner, error) {
	if err := paths.Validate(); err != nil {
		return nil, fmt.Errorf("invalid paths: %w", err)
	}

	c := &Cleaner{paths: paths}
	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}
	if c.trasher == nil {
		c.trasher = DefaultTrasher(paths.TrashDir)
	}

	return c, nil
}

// Paths returns the configuration the Cleaner was built with.
func (c *Cleaner) Paths() config.Paths {
	return c.paths
}
