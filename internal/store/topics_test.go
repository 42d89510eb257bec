package store

import (
	"testing"
	"time"

	"github.com/revisehq/revise/internal/models"
	"github.com/revisehq/revise/internal/revision"
)

func insertTestTopic(t *testing.T, db *DB, subjectID, name string, createdAt time.Time) *models.Topic {
	t.Helper()
	topic, err := db.InsertTopic(subjectID, name, "some notes", createdAt, revision.Schedule(createdAt))
	if err != nil {
		t.Fatalf("InsertTopic: %v", err)
	}
	return topic
}

func TestTopicRoundTrip(t *testing.T) {
	db := testDB(t)

	createdAt := time.Date(2025, 3, 10, 9, 30, 15, 0, time.UTC)
	topic := insertTestTopic(t, db, "2f9c1a34-0000-0000-0000-000000000001", "Algebra", createdAt)

	got, err := db.GetTopic(topic.ID)
	if err != nil {
		t.Fatalf("GetTopic: %v", err)
	}
	if got == nil {
		t.Fatal("GetTopic = nil, want topic")
	}
	if got.Name != "Algebra" || got.Notes != "some notes" {
		t.Errorf("got = %+v", got)
	}
	if !got.CreatedAt.Equal(createdAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, createdAt)
	}

	// The fetched schedule must be identical to the one generated at creation.
	if len(got.RevisionDates) != len(topic.RevisionDates) {
		t.Fatalf("len(RevisionDates) = %d, want %d", len(got.RevisionDates), len(topic.RevisionDates))
	}
	for i, e := range got.RevisionDates {
		orig := topic.RevisionDates[i]
		if !e.Date.Equal(orig.Date) || e.DayNumber != orig.DayNumber || e.Completed != orig.Completed {
			t.Errorf("RevisionDates[%d] = %+v, want %+v", i, e, orig)
		}
	}
}

func TestGetTopicMissing(t *testing.T) {
	db := testDB(t)

	got, err := db.GetTopic("2f9c1a34-0000-0000-0000-000000000000")
	if err != nil {
		t.Fatalf("GetTopic: %v", err)
	}
	if got != nil {
		t.Errorf("GetTopic = %+v, want nil", got)
	}
}

func TestListTopicsBySubject(t *testing.T) {
	db := testDB(t)

	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	s1 := "2f9c1a34-0000-0000-0000-000000000001"
	s2 := "2f9c1a34-0000-0000-0000-000000000002"
	insertTestTopic(t, db, s1, "Algebra", base)
	insertTestTopic(t, db, s1, "Calculus", base.Add(time.Hour))
	insertTestTopic(t, db, s2, "Waves", base)

	topics, err := db.ListTopicsBySubject(s1)
	if err != nil {
		t.Fatalf("ListTopicsBySubject: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("len(topics) = %d, want 2", len(topics))
	}
	if topics[0].Name != "Calculus" || topics[1].Name != "Algebra" {
		t.Errorf("order = %q, %q; want Calculus, Algebra", topics[0].Name, topics[1].Name)
	}

	all, err := db.ListTopics()
	if err != nil {
		t.Fatalf("ListTopics: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("len(all) = %d, want 3", len(all))
	}
}

func TestUpdateTopicFieldsPartial(t *testing.T) {
	db := testDB(t)

	topic := insertTestTopic(t, db, "2f9c1a34-0000-0000-0000-000000000001", "Algebra", nowUTC())

	name := "Linear Algebra"
	updated, err := db.UpdateTopicFields(topic.ID, &name, nil)
	if err != nil {
		t.Fatalf("UpdateTopicFields: %v", err)
	}
	if updated.Name != "Linear Algebra" {
		t.Errorf("Name = %q, want Linear Algebra", updated.Name)
	}
	if updated.Notes != "some notes" {
		t.Errorf("Notes = %q, want untouched", updated.Notes)
	}

	notes := "revised notes"
	updated, err = db.UpdateTopicFields(topic.ID, nil, &notes)
	if err != nil {
		t.Fatalf("UpdateTopicFields: %v", err)
	}
	if updated.Name != "Linear Algebra" || updated.Notes != "revised notes" {
		t.Errorf("updated = %+v", updated)
	}
}

func TestUpdateTopicFieldsMissing(t *testing.T) {
	db := testDB(t)

	name := "X"
	updated, err := db.UpdateTopicFields("2f9c1a34-0000-0000-0000-000000000000", &name, nil)
	if err != nil {
		t.Fatalf("UpdateTopicFields: %v", err)
	}
	if updated != nil {
		t.Errorf("UpdateTopicFields = %+v, want nil", updated)
	}
}

func TestReplaceRevisionDates(t *testing.T) {
	db := testDB(t)

	topic := insertTestTopic(t, db, "2f9c1a34-0000-0000-0000-000000000001", "Algebra", nowUTC())

	entries := revision.Complete(topic.RevisionDates, 7)
	if err := db.ReplaceRevisionDates(topic.ID, entries); err != nil {
		t.Fatalf("ReplaceRevisionDates: %v", err)
	}

	got, err := db.GetTopic(topic.ID)
	if err != nil {
		t.Fatalf("GetTopic: %v", err)
	}
	for _, e := range got.RevisionDates {
		want := e.DayNumber == 7
		if e.Completed != want {
			t.Errorf("day %d: Completed = %v, want %v", e.DayNumber, e.Completed, want)
		}
	}
}

func TestDeleteTopicsBySubject(t *testing.T) {
	db := testDB(t)

	s1 := "2f9c1a34-0000-0000-0000-000000000001"
	insertTestTopic(t, db, s1, "Algebra", nowUTC())
	insertTestTopic(t, db, s1, "Calculus", nowUTC())

	deleted, err := db.DeleteTopicsBySubject(s1)
	if err != nil {
		t.Fatalf("DeleteTopicsBySubject: %v", err)
	}
	if deleted != 2 {
		t.Errorf("deleted = %d, want 2", deleted)
	}

	// Deleting again is fine: zero rows is not an error.
	deleted, err = db.DeleteTopicsBySubject(s1)
	if err != nil {
		t.Fatalf("DeleteTopicsBySubject again: %v", err)
	}
	if deleted != 0 {
		t.Errorf("deleted = %d, want 0", deleted)
	}
}

func TestDeleteTopic(t *testing.T) {
	db := testDB(t)

	topic := insertTestTopic(t, db, "2f9c1a34-0000-0000-0000-000000000001", "Algebra", nowUTC())

	deleted, err := db.DeleteTopic(topic.ID)
	if err != nil {
		t.Fatalf("DeleteTopic: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}

	got, err := db.GetTopic(topic.ID)
	if err != nil {
		t.Fatalf("GetTopic: %v", err)
	}
	if got != nil {
		t.Errorf("GetTopic after delete = %+v, want nil", got)
	}
}
