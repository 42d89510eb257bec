package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/revisehq/revise/internal/models"
)

// InsertTopic persists a new topic with a generated id and the given revision
// schedule, and returns it. SubjectName is not persisted; the caller attaches
// it on read paths.
func (db *DB) InsertTopic(subjectID, name, notes string, createdAt time.Time, entries []models.RevisionEntry) (*models.Topic, error) {
	encoded, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode revision dates: %w", err)
	}

	id := uuid.NewString()
	_, err = db.Exec(`
		INSERT INTO topics (id, subject_id, name, notes, created_at, revision_dates)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id, subjectID, name, notes, createdAt.UnixMilli(), string(encoded))
	if err != nil {
		return nil, fmt.Errorf("insert topic: %w", err)
	}

	return &models.Topic{
		ID:            id,
		SubjectID:     subjectID,
		Name:          name,
		Notes:         notes,
		CreatedAt:     createdAt.UTC(),
		RevisionDates: entries,
	}, nil
}

func scanTopic(scan func(dest ...any) error) (*models.Topic, error) {
	var t models.Topic
	var createdAt int64
	var encoded string
	if err := scan(&t.ID, &t.SubjectID, &t.Name, &t.Notes, &createdAt, &encoded); err != nil {
		return nil, err
	}
	t.CreatedAt = time.UnixMilli(createdAt).UTC()
	if err := json.Unmarshal([]byte(encoded), &t.RevisionDates); err != nil {
		return nil, fmt.Errorf("decode revision dates: %w", err)
	}
	return &t, nil
}

// GetTopic returns a topic by id, or nil if not found.
func (db *DB) GetTopic(id string) (*models.Topic, error) {
	row := db.QueryRow(`
		SELECT id, subject_id, name, notes, created_at, revision_dates
		FROM topics WHERE id = ?
	`, id)
	t, err := scanTopic(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get topic: %w", err)
	}
	return t, nil
}

func (db *DB) queryTopics(query string, args ...any) ([]models.Topic, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	var topics []models.Topic
	for rows.Next() {
		t, err := scanTopic(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, *t)
	}
	return topics, rows.Err()
}

// ListTopics returns all topics, newest first.
func (db *DB) ListTopics() ([]models.Topic, error) {
	return db.queryTopics(`
		SELECT id, subject_id, name, notes, created_at, revision_dates
		FROM topics ORDER BY created_at DESC LIMIT ?
	`, maxListResults)
}

// ListTopicsBySubject returns a subject's topics, newest first.
func (db *DB) ListTopicsBySubject(subjectID string) ([]models.Topic, error) {
	return db.queryTopics(`
		SELECT id, subject_id, name, notes, created_at, revision_dates
		FROM topics WHERE subject_id = ? ORDER BY created_at DESC LIMIT ?
	`, subjectID, maxListResults)
}

// UpdateTopicFields applies a partial update of name and/or notes and returns
// the updated topic, or nil if the id did not match anything. Nil fields are
// left untouched. Callers must pass at least one non-nil field.
func (db *DB) UpdateTopicFields(id string, name, notes *string) (*models.Topic, error) {
	set := ""
	args := []any{}
	if name != nil {
		set = "name = ?"
		args = append(args, *name)
	}
	if notes != nil {
		if set != "" {
			set += ", "
		}
		set += "notes = ?"
		args = append(args, *notes)
	}
	if set == "" {
		return nil, fmt.Errorf("update topic: no fields")
	}
	args = append(args, id)

	result, err := db.Exec(`UPDATE topics SET `+set+` WHERE id = ?`, args...)
	if err != nil {
		return nil, fmt.Errorf("update topic: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, nil
	}
	return db.GetTopic(id)
}

// ReplaceRevisionDates overwrites a topic's entire revision_dates array.
// Completing a revision persists the whole array, not a single element;
// SQLite serializes concurrent writers so the last writer wins.
func (db *DB) ReplaceRevisionDates(id string, entries []models.RevisionEntry) error {
	encoded, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode revision dates: %w", err)
	}
	_, err = db.Exec(`UPDATE topics SET revision_dates = ? WHERE id = ?`, string(encoded), id)
	if err != nil {
		return fmt.Errorf("replace revision dates: %w", err)
	}
	return nil
}

// DeleteTopic removes a topic row and returns the number of rows deleted
// (0 or 1).
func (db *DB) DeleteTopic(id string) (int64, error) {
	result, err := db.Exec(`DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete topic: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// DeleteTopicsBySubject removes all topics under a subject and returns the
// number of rows deleted. Zero deletions is not an error.
func (db *DB) DeleteTopicsBySubject(subjectID string) (int64, error) {
	result, err := db.Exec(`DELETE FROM topics WHERE subject_id = ?`, subjectID)
	if err != nil {
		return 0, fmt.Errorf("delete topics by subject: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
