package store

import "time"

// Snapshot records one deletion run: what was targeted, how, and where its
// JSON manifest was written.
type Snapshot struct {
	ID           int64
	CreatedAt    time.Time
	Kind         string // "app" or "junk"
	Target       string // application name for app runs
	Mode         string // "permanent" or "recoverable"
	ItemCount    int
	TotalBytes   int64
	SnapshotPath string
}

// SnapshotItem is one path in a snapshot. OK and Message are nil until the
// deletion outcome has been recorded.
type SnapshotItem struct {
	SnapshotID int64
	Position   int
	Path       string
	SizeBytes  int64
	OK         *bool
	Message    *string
}
