package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen       TicketStatus = "OPEN"
	TicketStatusInProgress TicketStatus = "IN_PROGRESS"
	TicketStatusCompleted  TicketStatus = "COMPLETED"
	TicketStatusClosed     TicketStatus = "CLOSED"
)

// TicketStatuses lists every valid status in lifecycle order.
var TicketStatuses = []TicketStatus{
	TicketStatusOpen,
	TicketStatusInProgress,
	TicketStatusCompleted,
	TicketStatusClosed,
}

// ParseTicketStatus resolves a raw value to a status. The second return
// reports whether the value was recognized.
func ParseTicketStatus(raw string) (TicketStatus, bool) {
	for _, status := range TicketStatuses {
		if string(status) == raw {
			return status, true
		}
	}
	return "", false
}

// TicketPriority enumerates urgency levels.
type TicketPriority string

const (
	TicketPriorityLow      TicketPriority = "LOW"
	TicketPriorityMedium   TicketPriority = "MEDIUM"
	TicketPriorityHigh     TicketPriority = "HIGH"
	TicketPriorityCritical TicketPriority = "CRITICAL"
)

// TicketPriorities lists every valid priority.
var TicketPriorities = []TicketPriority{
	TicketPriorityLow,
	TicketPriorityMedium,
	TicketPriorityHigh,
	TicketPriorityCritical,
}

// ParseTicketPriority resolves a raw value to a priority.
func ParseTicketPriority(raw string) (TicketPriority, bool) {
	for _, priority := range TicketPriorities {
		if string(priority) == raw {
			return priority, true
		}
	}
	return "", false
}

// Ticket is the aggregate for reported issues. UpdatedAt stays nil until the
// first mutation after creation. OwnerID is nil only for tickets orphaned by
// user deletion. TimerStartedAt is set while the owner has a live timer
// running against the ticket.
type Ticket struct {
	ID             string
	Title          string
	Description    string
	Status         TicketStatus
	Priority       TicketPriority
	CategoryID     string
	OwnerID        *string
	TimerStartedAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}

// IsOwnedBy reports whether the given user owns the ticket.
func (t *Ticket) IsOwnedBy(userID string) bool {
	return t.OwnerID != nil && *t.OwnerID == userID
}

// Touch records a mutation timestamp.
func (t *Ticket) Touch(now time.Time) {
	t.UpdatedAt = &now
}
