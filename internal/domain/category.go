package domain

import "time"

// Category is static reference data used to classify tickets.
type Category struct {
	ID        string
	Name      string
	CreatedAt time.Time
}
