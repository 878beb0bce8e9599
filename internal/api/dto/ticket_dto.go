package dto

import (
	"time"

	"github.com/techdesk/helpdesk-service/internal/domain"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	Title       string                `json:"title"`
	Description string                `json:"description"`
	Priority    domain.TicketPriority `json:"priority"`
	CategoryID  string                `json:"category_id"`
}

// SetStatusRequest payload for the admin override.
type SetStatusRequest struct {
	Status string `json:"status"`
}

// CreateCommentRequest payload.
type CreateCommentRequest struct {
	Content string `json:"content"`
}

// TicketSummary response.
type TicketSummary struct {
	ID         string                `json:"id"`
	Title      string                `json:"title"`
	Status     domain.TicketStatus   `json:"status"`
	Priority   domain.TicketPriority `json:"priority"`
	CategoryID string                `json:"category_id"`
	OwnerID    *string               `json:"owner_id"`
	CreatedAt  time.Time             `json:"created_at"`
	UpdatedAt  *time.Time            `json:"updated_at"`
}

// TicketDetailResponse provides the full aggregate.
type TicketDetailResponse struct {
	ID                 string                `json:"id"`
	Title              string                `json:"title"`
	Description        string                `json:"description"`
	Status             domain.TicketStatus   `json:"status"`
	Priority           domain.TicketPriority `json:"priority"`
	CategoryID         string                `json:"category_id"`
	OwnerID            *string               `json:"owner_id"`
	TimerStartedAt     *time.Time            `json:"timer_started_at"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          *time.Time            `json:"updated_at"`
	Comments           []CommentResponse     `json:"comments"`
	TimeEntries        []TimeEntryResponse   `json:"time_entries"`
	TotalMinutes       int                   `json:"total_minutes"`
	TotalTimeFormatted string                `json:"total_time_formatted"`
	IsOwner            bool                  `json:"is_owner"`
	IsAdmin            bool                  `json:"is_admin"`
}

// CommentResponse represents a ticket comment.
type CommentResponse struct {
	ID        string    `json:"id"`
	AuthorID  *string   `json:"author_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryResponse metadata for form population.
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
