// Package tracker is the lifecycle manager for subjects and topics. It owns
// the referential rules the store doesn't enforce: a topic can only be created
// under an existing subject, and deleting a subject cascades to its topics.
package tracker

import (
	"errors"
	"time"

	"github.com/revisehq/revise/internal/models"
	"github.com/revisehq/revise/internal/revision"
	"github.com/revisehq/revise/internal/store"
)

// Sentinel errors surfaced to the transport layer with stable messages.
var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrTopicNotFound   = errors.New("topic not found")
	ErrInvalidID       = errors.New("invalid id")
	ErrNoFields        = errors.New("no fields to update")
)

// NotFound reports whether err is one of the not-found sentinels.
func NotFound(err error) bool {
	return errors.Is(err, ErrSubjectNotFound) || errors.Is(err, ErrTopicNotFound)
}

// Tracker orchestrates store operations for the study tracker.
type Tracker struct {
	db *store.DB
}

// New creates a Tracker over the given store.
func New(db *store.DB) *Tracker {
	return &Tracker{db: db}
}

// CreateSubject persists a new subject stamped with the current time.
// Names are not required to be unique.
func (t *Tracker) CreateSubject(name string) (*models.Subject, error) {
	return t.db.InsertSubject(name, time.Now().UTC())
}

// ListSubjects returns all subjects, newest first.
func (t *Tracker) ListSubjects() ([]models.Subject, error) {
	return t.db.ListSubjects()
}

// GetSubject returns a subject by id.
func (t *Tracker) GetSubject(id string) (*models.Subject, error) {
	if !store.ValidID(id) {
		return nil, ErrInvalidID
	}
	subject, err := t.db.GetSubject(id)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrSubjectNotFound
	}
	return subject, nil
}

// UpdateSubject renames a subject.
func (t *Tracker) UpdateSubject(id, name string) (*models.Subject, error) {
	if !store.ValidID(id) {
		return nil, ErrInvalidID
	}
	subject, err := t.db.UpdateSubjectName(id, name)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrSubjectNotFound
	}
	return subject, nil
}

// DeleteSubject removes a subject and all of its topics. The topics go first;
// the two deletes are not one transaction, so a crash in between leaves
// orphaned topics, which the system tolerates. Only the subject's deleted
// count is checked; a subject with zero topics is normal.
func (t *Tracker) DeleteSubject(id string) error {
	if !store.ValidID(id) {
		return ErrInvalidID
	}
	if _, err := t.db.DeleteTopicsBySubject(id); err != nil {
		return err
	}
	deleted, err := t.db.DeleteSubject(id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrSubjectNotFound
	}
	return nil
}

// CreateTopic persists a new topic under an existing subject, generating its
// revision schedule from the creation timestamp. The returned topic carries
// the subject name from the existence check, with no second lookup.
func (t *Tracker) CreateTopic(subjectID, name, notes string) (*models.Topic, error) {
	if !store.ValidID(subjectID) {
		return nil, ErrInvalidID
	}
	subject, err := t.db.GetSubject(subjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, ErrSubjectNotFound
	}

	createdAt := time.Now().UTC()
	topic, err := t.db.InsertTopic(subjectID, name, notes, createdAt, revision.Schedule(createdAt))
	if err != nil {
		return nil, err
	}
	topic.SubjectName = subject.Name
	return topic, nil
}

// ListTopics returns all topics, newest first, with subject names resolved
// from a single subjects scan rather than a lookup per topic.
func (t *Tracker) ListTopics() ([]models.Topic, error) {
	topics, err := t.db.ListTopics()
	if err != nil {
		return nil, err
	}
	subjects, err := t.db.ListSubjects()
	if err != nil {
		return nil, err
	}
	attachSubjectNames(topics, revision.SubjectNames(subjects))
	return topics, nil
}

// TopicsBySubject returns a subject's topics, newest first. The subject must
// exist; its name is attached to every topic from that one lookup.
func (t *Tracker) TopicsBySubject(subjectID string) ([]models.Topic, error) {
	subject, err := t.GetSubject(subjectID)
	if err != nil {
		return nil, err
	}
	topics, err := t.db.ListTopicsBySubject(subjectID)
	if err != nil {
		return nil, err
	}
	for i := range topics {
		topics[i].SubjectName = subject.Name
	}
	return topics, nil
}

// GetTopic returns a topic by id with its subject name resolved by a fresh
// point lookup.
func (t *Tracker) GetTopic(id string) (*models.Topic, error) {
	if !store.ValidID(id) {
		return nil, ErrInvalidID
	}
	topic, err := t.db.GetTopic(id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	if err := t.resolveSubjectName(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// UpdateTopic applies a partial update of name and/or notes. At least one
// field must be set. The subject name on the returned topic is re-resolved,
// not the one cached at creation: the subject may have been renamed since.
func (t *Tracker) UpdateTopic(id string, name, notes *string) (*models.Topic, error) {
	if !store.ValidID(id) {
		return nil, ErrInvalidID
	}
	if name == nil && notes == nil {
		return nil, ErrNoFields
	}
	topic, err := t.db.UpdateTopicFields(id, name, notes)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, ErrTopicNotFound
	}
	if err := t.resolveSubjectName(topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// DeleteTopic removes a topic. Its subject is untouched.
func (t *Tracker) DeleteTopic(id string) error {
	if !store.ValidID(id) {
		return ErrInvalidID
	}
	deleted, err := t.db.DeleteTopic(id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrTopicNotFound
	}
	return nil
}

// CompleteRevision marks one of a topic's revision entries completed and
// persists the full revision_dates array back. A day number that matches no
// entry leaves the schedule as it was; only a missing topic is an error.
func (t *Tracker) CompleteRevision(topicID string, dayNumber int) error {
	if !store.ValidID(topicID) {
		return ErrInvalidID
	}
	topic, err := t.db.GetTopic(topicID)
	if err != nil {
		return err
	}
	if topic == nil {
		return ErrTopicNotFound
	}
	entries := revision.Complete(topic.RevisionDates, dayNumber)
	return t.db.ReplaceRevisionDates(topicID, entries)
}

// DueToday returns every revision due on the UTC calendar day of now.
func (t *Tracker) DueToday(now time.Time) ([]models.DueItem, error) {
	topics, names, err := t.topicsWithNames()
	if err != nil {
		return nil, err
	}
	return revision.DueToday(topics, names, now), nil
}

// Upcoming returns each topic's next future revision, soonest first.
func (t *Tracker) Upcoming(now time.Time) ([]models.UpcomingItem, error) {
	topics, names, err := t.topicsWithNames()
	if err != nil {
		return nil, err
	}
	return revision.Upcoming(topics, names, now), nil
}

func (t *Tracker) topicsWithNames() ([]models.Topic, map[string]string, error) {
	topics, err := t.db.ListTopics()
	if err != nil {
		return nil, nil, err
	}
	subjects, err := t.db.ListSubjects()
	if err != nil {
		return nil, nil, err
	}
	return topics, revision.SubjectNames(subjects), nil
}

func attachSubjectNames(topics []models.Topic, names map[string]string) {
	for i := range topics {
		name, ok := names[topics[i].SubjectID]
		if !ok {
			name = revision.UnknownSubject
		}
		topics[i].SubjectName = name
	}
}

func (t *Tracker) resolveSubjectName(topic *models.Topic) error {
	subject, err := t.db.GetSubject(topic.SubjectID)
	if err != nil {
		return err
	}
	if subject == nil {
		// Orphan from an interrupted cascade delete; still readable.
		topic.SubjectName = revision.UnknownSubject
		return nil
	}
	topic.SubjectName = subject.Name
	return nil
}
