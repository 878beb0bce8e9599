package domain

import (
	"fmt"
	"time"
)

// TimeEntry records a span of work against a ticket. Manual entries come from
// the backdated entry form; the rest are stopped live timers. AuthorID is nil
// when the authoring user has since been deleted.
type TimeEntry struct {
	ID              string
	TicketID        string
	AuthorID        *string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Note            *string
	IsManualEntry   bool
	CreatedAt       time.Time
}

// DurationBetween returns the whole minutes between start and end, truncating
// any partial minute.
func DurationBetween(start, end time.Time) int {
	return int(end.Sub(start) / time.Minute)
}

// TotalMinutes sums the recorded duration across entries. Always recomputed
// from the entries themselves, never persisted.
func TotalMinutes(entries []TimeEntry) int {
	total := 0
	for _, entry := range entries {
		total += entry.DurationMinutes
	}
	return total
}

// FormatMinutes renders a minute total as "2h 30m", collapsing to "45m" when
// there are no whole hours and "2h" when there is no remainder.
func FormatMinutes(total int) string {
	hours := total / 60
	minutes := total % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", minutes)
	}
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
