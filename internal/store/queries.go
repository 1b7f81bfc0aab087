package store

import (
	"database/sql"
	"fmt"
	"time"
)

// Snapshot operations

// InsertSnapshot creates a new snapshot record and returns its ID.
// A zero CreatedAt is replaced by the current time.
func (s *Store) InsertSnapshot(snap *Snapshot) (int64, error) {
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now()
	}

	query := `
		INSERT INTO snapshots (created_at, kind, target, mode, item_count, total_bytes, snapshot_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		snap.CreatedAt.UTC().Format(time.RFC3339),
		snap.Kind,
		snap.Target,
		snap.Mode,
		snap.ItemCount,
		snap.TotalBytes,
		snap.SnapshotPath,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert snapshot: %w", wrapSchemaErr(err))
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get snapshot ID: %w", err)
	}

	snap.ID = id
	return id, nil
}

const snapshotColumns = `id, created_at, kind, target, mode, item_count, total_bytes, snapshot_path`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (*Snapshot, error) {
	var snapshot Snapshot
	var createdAt string

	err := row.Scan(
		&snapshot.ID,
		&createdAt,
		&snapshot.Kind,
		&snapshot.Target,
		&snapshot.Mode,
		&snapshot.ItemCount,
		&snapshot.TotalBytes,
		&snapshot.SnapshotPath,
	)
	if err != nil {
		return nil, err
	}

	snapshot.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for snapshot %d: %w", snapshot.ID, err)
	}

	return &snapshot, nil
}

// GetSnapshot retrieves a snapshot by ID.
func (s *Store) GetSnapshot(id int64) (*Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots WHERE id = ?`

	snapshot, err := scanSnapshot(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("snapshot %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot %d: %w", id, wrapSchemaErr(err))
	}

	return snapshot, nil
}

// ListSnapshots returns all snapshots ordered by creation time (newest first).
func (s *Store) ListSnapshots() ([]*Snapshot, error) {
	query := `SELECT ` + snapshotColumns + ` FROM snapshots ORDER BY created_at DESC, id DESC`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", wrapSchemaErr(err))
	}
	defer rows.Close()

	var snapshots []*Snapshot
	for rows.Next() {
		snapshot, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot row: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}

	return snapshots, nil
}

// DeleteSnapshot removes a snapshot and its items.
func (s *Store) DeleteSnapshot(id int64) error {
	result, err := s.db.Exec(`DELETE FROM snapshots WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot %d: %w", id, wrapSchemaErr(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("snapshot %d not found", id)
	}

	return nil
}

// Snapshot item operations

// InsertSnapshotItems adds the items of a snapshot in a single transaction.
// Positions are assigned from the slice order.
func (s *Store) InsertSnapshotItems(snapshotID int64, items []*SnapshotItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO snapshot_items (snapshot_id, position, path, size_bytes)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare item insert: %w", wrapSchemaErr(err))
	}
	defer stmt.Close()

	for i, item := range items {
		item.SnapshotID = snapshotID
		item.Position = i
		if _, err := stmt.Exec(snapshotID, i, item.Path, item.SizeBytes); err != nil {
			return fmt.Errorf("failed to insert snapshot item %s: %w", item.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot items: %w", err)
	}
	return nil
}

// RecordOutcome stores the deletion result of the item at position.
func (s *Store) RecordOutcome(snapshotID int64, position int, ok bool, message string) error {
	result, err := s.db.Exec(`
		UPDATE snapshot_items SET ok = ?, message = ?
		WHERE snapshot_id = ? AND position = ?
	`, ok, message, snapshotID, position)
	if err != nil {
		return fmt.Errorf("failed to record outcome: %w", wrapSchemaErr(err))
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("snapshot %d has no item at position %d", snapshotID, position)
	}
	return nil
}

// GetSnapshotItems returns the items of a snapshot in their original order.
func (s *Store) GetSnapshotItems(snapshotID int64) ([]*SnapshotItem, error) {
	query := `
		SELECT snapshot_id, position, path, size_bytes, ok, message
		FROM snapshot_items
		WHERE snapshot_id = ?
		ORDER BY position
	`

	rows, err := s.db.Query(query, snapshotID)
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot items: %w", wrapSchemaErr(err))
	}
	defer rows.Close()

	var items []*SnapshotItem
	for rows.Next() {
		var item SnapshotItem
		var ok sql.NullBool
		var message sql.NullString

		err := rows.Scan(
			&item.SnapshotID,
			&item.Position,
			&item.Path,
			&item.SizeBytes,
			&ok,
			&message,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan snapshot item row: %w", err)
		}

		if ok.Valid {
			v := ok.Bool
			item.OK = &v
		}
		if message.Valid {
			v := message.String
			item.Message = &v
		}

		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot items: %w", err)
	}

	return items, nil
}
