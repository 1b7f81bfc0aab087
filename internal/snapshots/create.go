package snapshots

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/blackwell-systems/appprune/internal/cleaner"
	"github.com/blackwell-systems/appprune/internal/store"
)

// CreateSnapshot writes a JSON manifest of the items about to be deleted and
// records it in the database. It returns the snapshot ID.
func (m *Manager) CreateSnapshot(kind, target string, mode cleaner.Mode, items []*ItemSnapshot) (int64, error) {
	if err := os.MkdirAll(m.snapshotDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	now := time.Now()
	data := &SnapshotData{
		CreatedAt: now,
		Kind:      kind,
		Target:    target,
		Mode:      mode.String(),
		Items:     items,
	}

	var total int64
	for _, item := range items {
		total += item.SizeBytes
	}

	snapshotPath, err := m.manifestPath(now)
	if err != nil {
		return 0, err
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return 0, fmt.Errorf("failed to marshal snapshot data: %w", err)
	}

	if err := os.WriteFile(snapshotPath, jsonData, 0644); err != nil {
		return 0, fmt.Errorf("failed to write snapshot file: %w", err)
	}

	snapshotID, err := m.store.InsertSnapshot(&store.Snapshot{
		CreatedAt:    now,
		Kind:         kind,
		Target:       target,
		Mode:         mode.String(),
		ItemCount:    len(items),
		TotalBytes:   total,
		SnapshotPath: snapshotPath,
	})
	if err != nil {
		// Try to clean up the JSON file if DB insert fails
		os.Remove(snapshotPath)
		return 0, fmt.Errorf("failed to insert snapshot into database: %w", err)
	}

	rows := make([]*store.SnapshotItem, len(items))
	for i, item := range items {
		rows[i] = &store.SnapshotItem{Path: item.Path, SizeBytes: item.SizeBytes}
	}
	if err := m.store.InsertSnapshotItems(snapshotID, rows); err != nil {
		m.store.DeleteSnapshot(snapshotID)
		os.Remove(snapshotPath)
		return 0, fmt.Errorf("failed to insert snapshot items: %w", err)
	}

	return snapshotID, nil
}

// manifestPath returns YYYY-MM-DD-HHMMSS.json in the snapshot directory,
// adding a counter when two runs land in the same second.
func (m *Manager) manifestPath(now time.Time) (string, error) {
	timestamp := now.Format("2006-01-02-150405")
	for i := 0; i < 1000; i++ {
		name := timestamp + ".json"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.json", timestamp, i)
		}
		path := filepath.Join(m.snapshotDir, name)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return path, nil
		}
	}
	return "", fmt.Errorf("too many snapshots for %s", timestamp)
}

// RecordOutcomes stores per-item deletion results. outcomes must be in the
// same order as the items passed to CreateSnapshot.
func (m *Manager) RecordOutcomes(snapshotID int64, outcomes []cleaner.Outcome) error {
	for i, o := range outcomes {
		if err := m.store.RecordOutcome(snapshotID, i, o.OK, o.Message); err != nil {
			return fmt.Errorf("failed to record outcome for %s: %w", o.Path, err)
		}
	}
	return nil
}

// ListSnapshots returns all snapshots from the database.
func (m *Manager) ListSnapshots() ([]*store.Snapshot, error) {
	snapshots, err := m.store.ListSnapshots()
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// CleanupOldSnapshots removes manifest files older than maxAge and returns
// how many were removed. Database rows are kept as an audit log.
func (m *Manager) CleanupOldSnapshots(maxAge time.Duration) (int, error) {
	snapshots, err := m.store.ListSnapshots()
	if err != nil {
		return 0, fmt.Errorf("failed to list snapshots: %w", err)
	}

	cutoffDate := time.Now().Add(-maxAge)
	deletedCount := 0

	for _, snapshot := range snapshots {
		if !snapshot.CreatedAt.Before(cutoffDate) {
			continue
		}
		err := os.Remove(snapshot.SnapshotPath)
		if err == nil {
			deletedCount++
			continue
		}
		if !os.IsNotExist(err) {
			return deletedCount, fmt.Errorf("failed to delete snapshot file %s: %w", snapshot.SnapshotPath, err)
		}
	}

	return deletedCount, nil
}

// LoadManifest reads and parses a snapshot JSON file.
func LoadManifest(path string) (*SnapshotData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot file: %w", err)
	}

	var snapshotData SnapshotData
	if err := json.Unmarshal(data, &snapshotData); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot JSON: %w", err)
	}

	return &snapshotData, nil
}
