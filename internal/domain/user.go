package domain

import "time"

// User is the domain model for people who submit and work tickets. Admins are
// distinguished by a capability flag rather than a separate subtype.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
