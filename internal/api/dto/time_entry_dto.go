package dto

import "time"

// CreateManualEntryRequest carries the backdated entry form. Dates and times
// are separate fields, combined server-side.
type CreateManualEntryRequest struct {
	StartDate string `json:"start_date"`
	StartTime string `json:"start_time"`
	EndDate   string `json:"end_date"`
	EndTime   string `json:"end_time"`
	Note      string `json:"note"`
}

// StopTimerRequest payload.
type StopTimerRequest struct {
	Note string `json:"note"`
}

// TimeEntryResponse represents a recorded work span.
type TimeEntryResponse struct {
	ID              string    `json:"id"`
	TicketID        string    `json:"ticket_id"`
	AuthorID        *string   `json:"author_id"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Note            *string   `json:"note"`
	IsManualEntry   bool      `json:"is_manual_entry"`
	CreatedAt       time.Time `json:"created_at"`
}
