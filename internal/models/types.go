package models

import "time"

// Subject is a top-level study category grouping topics.
type Subject struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// RevisionEntry is one scheduled review point for a topic. The date is
// computed once at topic creation and stored, never recomputed.
type RevisionEntry struct {
	Date      time.Time `json:"date"`
	DayNumber int       `json:"day_number"`
	Completed bool      `json:"completed"`
}

// Topic is a unit of study material under a subject. RevisionDates always
// holds exactly three entries (days 2, 7 and 14), fixed at creation.
// SubjectName is denormalized onto read responses; it is never persisted.
type Topic struct {
	ID            string          `json:"id"`
	SubjectID     string          `json:"subject_id"`
	SubjectName   string          `json:"subject_name"`
	Name          string          `json:"name"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
	RevisionDates []RevisionEntry `json:"revision_dates"`
}

// DueItem is one incomplete revision falling on the current calendar day.
type DueItem struct {
	TopicID      string    `json:"id"`
	TopicName    string    `json:"topic_name"`
	SubjectName  string    `json:"subject_name"`
	SubjectID    string    `json:"subject_id"`
	Notes        string    `json:"notes"`
	DayNumber    int       `json:"day_number"`
	RevisionDate time.Time `json:"revision_date"`
}

// UpcomingItem is a topic's nearest future incomplete revision.
type UpcomingItem struct {
	TopicID      string    `json:"id"`
	TopicName    string    `json:"topic_name"`
	SubjectName  string    `json:"subject_name"`
	SubjectID    string    `json:"subject_id"`
	Notes        string    `json:"notes"`
	DayNumber    int       `json:"day_number"`
	RevisionDate time.Time `json:"revision_date"`
	CreatedAt    time.Time `json:"created_at"`
}

// Request payloads.

type CreateSubjectRequest struct {
	Name string `json:"name"`
}

type UpdateSubjectRequest struct {
	Name string `json:"name"`
}

type CreateTopicRequest struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
	Notes     string `json:"notes"`
}

// UpdateTopicRequest is a partial update; nil fields are left untouched.
type UpdateTopicRequest struct {
	Name  *string `json:"name"`
	Notes *string `json:"notes"`
}

type CompleteRevisionRequest struct {
	TopicID   string `json:"topic_id"`
	DayNumber int    `json:"day_number"`
}
