package dto

import "time"

// DashboardSummaryResponse holds status counts over the unfiltered set.
type DashboardSummaryResponse struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Closed     int `json:"closed"`
}

// AdminTicketListResponse is the triage board payload.
type AdminTicketListResponse struct {
	Tickets []TicketSummary          `json:"tickets"`
	Summary DashboardSummaryResponse `json:"summary"`
}

// AdminUserResponse pairs an account with its ticket figures.
type AdminUserResponse struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	IsAdmin      bool       `json:"is_admin"`
	TicketCount  int        `json:"ticket_count"`
	LastTicketAt *time.Time `json:"last_ticket_at"`
}
