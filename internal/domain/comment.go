package domain

import "time"

// TicketComment captures a note left on a ticket thread. AuthorID is nil when
// the authoring user has since been deleted.
type TicketComment struct {
	ID        string
	TicketID  string
	AuthorID  *string
	Content   string
	CreatedAt time.Time
}
