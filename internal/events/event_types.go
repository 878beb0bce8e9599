package events

import (
	"time"

	"github.com/techdesk/helpdesk-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketCommentAdded  EventType = "ticket_comment_added"
	EventTimeEntryAdded      EventType = "time_entry_added"
	EventTimeEntryDeleted    EventType = "time_entry_deleted"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	CategoryID string                `json:"category_id"`
	Priority   domain.TicketPriority `json:"priority"`
	Title      string                `json:"title"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketCommentAddedPayload payload.
type TicketCommentAddedPayload struct {
	CommentID      string `json:"comment_id"`
	ContentPreview string `json:"content_preview"`
}

// TimeEntryAddedPayload payload.
type TimeEntryAddedPayload struct {
	EntryID         string `json:"entry_id"`
	DurationMinutes int    `json:"duration_minutes"`
	IsManualEntry   bool   `json:"is_manual_entry"`
}

// TimeEntryDeletedPayload payload.
type TimeEntryDeletedPayload struct {
	EntryID string `json:"entry_id"`
}
