package snapshots

import (
	"time"

	"github.com/blackwell-systems/appprune/internal/store"
)

// Kinds of deletion runs.
const (
	KindApp  = "app"
	KindJunk = "junk"
)

// SnapshotData represents the JSON manifest written before a deletion run.
type SnapshotData struct {
	CreatedAt time.Time
	Kind      string
	Target    string
	Mode      string
	Items     []*ItemSnapshot
}

// ItemSnapshot is one path scheduled for deletion.
type ItemSnapshot struct {
	Path      string
	SizeBytes int64
}

// Manager manages snapshot creation, outcome recording, and cleanup.
type Manager struct {
	store       *store.Store
	snapshotDir string
}

// New creates a new snapshot Manager.
func New(store *store.Store, snapshotDir string) *Manager {
	return &Manager{
		store:       store,
		snapshotDir: snapshotDir,
	}
}
