package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

// Note: topics.subject_id is deliberately not a foreign key. Referential
// rules (topic creation requires an existing subject, subject deletion
// cascades) are enforced by the tracker, and an interrupted cascade may
// legitimately leave orphaned topic rows behind.
var migrations = []migration{
	{
		Version:     1,
		Description: "subjects: top-level study categories",
		SQL: `
CREATE TABLE subjects (
    id         TEXT PRIMARY KEY,
    name       TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE INDEX idx_subjects_created_at ON subjects(created_at DESC);
`,
	},
	{
		Version:     2,
		Description: "topics: study material with stored revision schedule",
		SQL: `
CREATE TABLE topics (
    id             TEXT PRIMARY KEY,
    subject_id     TEXT NOT NULL,
    name           TEXT NOT NULL,
    notes          TEXT NOT NULL DEFAULT '',
    created_at     INTEGER NOT NULL,

    -- JSON array of {date, day_number, completed}, written whole at
    -- creation and replaced whole on revision completion
    revision_dates TEXT NOT NULL
);

CREATE INDEX idx_topics_subject    ON topics(subject_id);
CREATE INDEX idx_topics_created_at ON topics(created_at DESC);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the highest applied migration version.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&v)
	if err != nil {
		return 0, fmt.Errorf("schema version: %w", err)
	}
	return v, nil
}
