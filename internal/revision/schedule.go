// Package revision holds the pure scheduling and query logic for the study
// tracker: generating a topic's revision dates and deriving the due-today and
// upcoming views. Nothing in this package touches the store.
package revision

import (
	"time"

	"github.com/revisehq/revise/internal/models"
)

// DayOffsets are the fixed revision intervals, in days after topic creation.
// They are constants of the system, not adjusted by recall performance.
var DayOffsets = []int{2, 7, 14}

// Schedule returns the three revision entries for a topic created at
// createdAt: one per day offset, all incomplete. Dates are stored once at
// creation; they are never recomputed afterward.
func Schedule(createdAt time.Time) []models.RevisionEntry {
	entries := make([]models.RevisionEntry, 0, len(DayOffsets))
	for _, days := range DayOffsets {
		entries = append(entries, models.RevisionEntry{
			Date:      createdAt.AddDate(0, 0, days),
			DayNumber: days,
			Completed: false,
		})
	}
	return entries
}

// Complete marks the first entry matching dayNumber as completed, in place,
// and returns the slice. A dayNumber that matches no entry is a silent no-op:
// callers get the entries back unchanged, never an error. The flag only ever
// flips false to true.
func Complete(entries []models.RevisionEntry, dayNumber int) []models.RevisionEntry {
	for i := range entries {
		if entries[i].DayNumber == dayNumber {
			entries[i].Completed = true
			break
		}
	}
	return entries
}
