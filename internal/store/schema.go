package store

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP NOT NULL,
    kind TEXT NOT NULL,
    target TEXT,
    mode TEXT NOT NULL,
    item_count INTEGER,
    total_bytes INTEGER,
    snapshot_path TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_items (
    snapshot_id INTEGER NOT NULL,
    position INTEGER NOT NULL,
    path TEXT NOT NULL,
    size_bytes INTEGER,
    ok BOOLEAN,
    message TEXT,
    PRIMARY KEY (snapshot_id, position),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_snapshots_created ON snapshots(created_at);
CREATE INDEX IF NOT EXISTS idx_snapshot_items ON snapshot_items(snapshot_id);
`
