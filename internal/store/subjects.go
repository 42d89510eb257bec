package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/revisehq/revise/internal/models"
)

// InsertSubject persists a new subject with a generated id and returns it.
func (db *DB) InsertSubject(name string, createdAt time.Time) (*models.Subject, error) {
	id := uuid.NewString()
	_, err := db.Exec(`
		INSERT INTO subjects (id, name, created_at)
		VALUES (?, ?, ?)
	`, id, name, createdAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("insert subject: %w", err)
	}

	return &models.Subject{
		ID:        id,
		Name:      name,
		CreatedAt: createdAt.UTC(),
	}, nil
}

// GetSubject returns a subject by id, or nil if not found.
func (db *DB) GetSubject(id string) (*models.Subject, error) {
	var s models.Subject
	var createdAt int64
	err := db.QueryRow(`
		SELECT id, name, created_at FROM subjects WHERE id = ?
	`, id).Scan(&s.ID, &s.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get subject: %w", err)
	}
	s.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &s, nil
}

// ListSubjects returns all subjects, newest first.
func (db *DB) ListSubjects() ([]models.Subject, error) {
	rows, err := db.Query(`
		SELECT id, name, created_at FROM subjects
		ORDER BY created_at DESC LIMIT ?
	`, maxListResults)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var s models.Subject
		var createdAt int64
		if err := rows.Scan(&s.ID, &s.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		s.CreatedAt = time.UnixMilli(createdAt).UTC()
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// UpdateSubjectName renames a subject and returns the updated row, or nil
// if the id did not match anything.
func (db *DB) UpdateSubjectName(id, name string) (*models.Subject, error) {
	result, err := db.Exec(`UPDATE subjects SET name = ? WHERE id = ?`, name, id)
	if err != nil {
		return nil, fmt.Errorf("update subject: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, nil
	}
	return db.GetSubject(id)
}

// DeleteSubject removes a subject row and returns the number of rows deleted
// (0 or 1). It does not touch the subject's topics; the tracker cascades
// those separately, before this call.
func (db *DB) DeleteSubject(id string) (int64, error) {
	result, err := db.Exec(`DELETE FROM subjects WHERE id = ?`, id)
	if err != nil {
		return 0, fmt.Errorf("delete subject: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}
