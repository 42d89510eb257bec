package revision

import (
	"sort"
	"time"

	"github.com/revisehq/revise/internal/models"
)

// UnknownSubject is the display name used when a topic's subject id does not
// resolve (an orphan left behind by an interrupted cascade delete).
const UnknownSubject = "Unknown"

// SubjectNames builds the id→name lookup the query functions consume. Callers
// build it once per query from a single subjects scan instead of doing a point
// lookup per topic.
func SubjectNames(subjects []models.Subject) map[string]string {
	names := make(map[string]string, len(subjects))
	for _, s := range subjects {
		names[s.ID] = s.Name
	}
	return names
}

// startOfDay truncates t to midnight of its UTC calendar day.
func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DueToday returns every incomplete revision entry whose date falls on the
// UTC calendar day of now. The window covers the full day: an entry dated
// exactly at midnight counts, as does one at the last instant before the next
// midnight. Items appear in topic/entry scan order.
func DueToday(topics []models.Topic, subjectNames map[string]string, now time.Time) []models.DueItem {
	dayStart := startOfDay(now)
	dayEnd := dayStart.AddDate(0, 0, 1)

	due := []models.DueItem{}
	for _, t := range topics {
		subjectName, ok := subjectNames[t.SubjectID]
		if !ok {
			subjectName = UnknownSubject
		}
		for _, e := range t.RevisionDates {
			if e.Completed {
				continue
			}
			d := e.Date.UTC()
			if d.Before(dayStart) || !d.Before(dayEnd) {
				continue
			}
			due = append(due, models.DueItem{
				TopicID:      t.ID,
				TopicName:    t.Name,
				SubjectName:  subjectName,
				SubjectID:    t.SubjectID,
				Notes:        t.Notes,
				DayNumber:    e.DayNumber,
				RevisionDate: e.Date,
			})
		}
	}
	return due
}

// Upcoming returns, per topic, the earliest incomplete revision entry that is
// strictly later than the calendar day of now (today's entries belong to
// DueToday, not here). Topics with no qualifying entry contribute nothing.
// The result is sorted ascending by revision date across all topics.
func Upcoming(topics []models.Topic, subjectNames map[string]string, now time.Time) []models.UpcomingItem {
	today := startOfDay(now)

	upcoming := []models.UpcomingItem{}
	for _, t := range topics {
		subjectName, ok := subjectNames[t.SubjectID]
		if !ok {
			subjectName = UnknownSubject
		}

		var next *models.RevisionEntry
		for i := range t.RevisionDates {
			e := &t.RevisionDates[i]
			if e.Completed {
				continue
			}
			if !startOfDay(e.Date).After(today) {
				continue
			}
			if next == nil || e.Date.Before(next.Date) {
				next = e
			}
		}
		if next == nil {
			continue
		}

		upcoming = append(upcoming, models.UpcomingItem{
			TopicID:      t.ID,
			TopicName:    t.Name,
			SubjectName:  subjectName,
			SubjectID:    t.SubjectID,
			Notes:        t.Notes,
			DayNumber:    next.DayNumber,
			RevisionDate: next.Date,
			CreatedAt:    t.CreatedAt,
		})
	}

	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].RevisionDate.Before(upcoming[j].RevisionDate)
	})
	return upcoming
}
