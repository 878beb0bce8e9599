package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/techdesk/helpdesk-service/internal/domain"
	"github.com/techdesk/helpdesk-service/internal/events"
	"github.com/techdesk/helpdesk-service/internal/repository"
	apperrors "github.com/techdesk/helpdesk-service/pkg/util"
)

// TicketService owns the ticket lifecycle: creation, status transitions,
// comments and visibility rules.
type TicketService struct {
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	entries    repository.TimeEntryRepository
	categories repository.CategoryRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo    repository.TicketRepository
	CommentRepo   repository.CommentRepository
	TimeEntryRepo repository.TimeEntryRepository
	CategoryRepo  repository.CategoryRepository
	Dispatcher    events.Dispatcher
	Now           func() time.Time
}

// NewTicketService constructs the service. Now defaults to time.Now.
func NewTicketService(deps TicketDependencies) *TicketService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TicketService{
		tickets:    deps.TicketRepo,
		comments:   deps.CommentRepo,
		entries:    deps.TimeEntryRepo,
		categories: deps.CategoryRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Priority    domain.TicketPriority
	CategoryID  string
}

// TicketDetail is the full aggregate view returned for a single ticket. The
// time totals are recomputed from the entries on every read.
type TicketDetail struct {
	Ticket             *domain.Ticket
	Comments           []domain.TicketComment
	TimeEntries        []domain.TimeEntry
	TotalMinutes       int
	TotalTimeFormatted string
	IsOwner            bool
	IsAdmin            bool
}

// CreateTicket opens a new ticket owned by the actor.
func (s *TicketService) CreateTicket(ctx context.Context, actor domain.Actor, input TicketCreateInput) (*domain.Ticket, error) {
	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" || description == "" {
		return nil, apperrors.NewValidationError("title and description required", nil)
	}
	if _, err := s.categories.GetByID(ctx, input.CategoryID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("category", map[string]any{"category_id": input.CategoryID})
		}
		return nil, apperrors.MapError(err)
	}

	ownerID := actor.UserID
	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Status:      domain.TicketStatusOpen,
		Priority:    input.Priority,
		CategoryID:  input.CategoryID,
		OwnerID:     &ownerID,
	}
	if ticket.Priority == "" {
		ticket.Priority = domain.TicketPriorityLow
	}

	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketCreatedPayload{
			CategoryID: ticket.CategoryID,
			Priority:   ticket.Priority,
			Title:      ticket.Title,
		},
	})
	return ticket, nil
}

// ListOwnTickets returns the tickets owned by the actor.
func (s *TicketService) ListOwnTickets(ctx context.Context, actor domain.Actor) ([]domain.Ticket, error) {
	ownerID := actor.UserID
	tickets, err := s.tickets.ListWithFilter(ctx, repository.TicketFilter{OwnerID: &ownerID})
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return tickets, nil
}

// GetTicket loads the full aggregate, enforcing the visibility rule: only the
// owner and admins may view a ticket.
func (s *TicketService) GetTicket(ctx context.Context, actor domain.Actor, ticketID string) (*TicketDetail, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(ticket) {
		return nil, apperrors.NewForbidden("not allowed to view this ticket")
	}

	comments, err := s.comments.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	entries, err := s.entries.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	total := domain.TotalMinutes(entries)
	return &TicketDetail{
		Ticket:             ticket,
		Comments:           comments,
		TimeEntries:        entries,
		TotalMinutes:       total,
		TotalTimeFormatted: domain.FormatMinutes(total),
		IsOwner:            ticket.IsOwnedBy(actor.UserID),
		IsAdmin:            actor.IsAdmin,
	}, nil
}

// Complete marks a ticket as completed. Only legal while the ticket is open
// or in progress.
func (s *TicketService) Complete(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error) {
	return s.applyTransition(ctx, actor, ticketID, domain.TicketStatusCompleted,
		[]domain.TicketStatus{domain.TicketStatusOpen, domain.TicketStatusInProgress})
}

// Close closes a ticket from any state.
func (s *TicketService) Close(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error) {
	return s.applyTransition(ctx, actor, ticketID, domain.TicketStatusClosed, nil)
}

// Reopen returns a ticket to the open state from any state.
func (s *TicketService) Reopen(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error) {
	return s.applyTransition(ctx, actor, ticketID, domain.TicketStatusOpen, nil)
}

// SetStatus is the admin override: any target status from any source state.
// It shares the transition routine with the guarded events and skips only the
// source-state guard, never the authorization guard.
func (s *TicketService) SetStatus(ctx context.Context, actor domain.Actor, ticketID string, status domain.TicketStatus) (*domain.Ticket, error) {
	if !actor.IsAdmin {
		return nil, apperrors.NewForbidden("admin required to set status directly")
	}
	if _, ok := domain.ParseTicketStatus(string(status)); !ok {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": string(status)})
	}
	return s.applyTransition(ctx, actor, ticketID, status, nil)
}

// applyTransition is the single routine through which every status change
// flows. allowedSources nil means any source state is legal.
func (s *TicketService) applyTransition(ctx context.Context, actor domain.Actor, ticketID string, target domain.TicketStatus, allowedSources []domain.TicketStatus) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(ticket) {
		return nil, apperrors.NewForbidden("not allowed to modify this ticket")
	}
	if allowedSources != nil && !statusIn(ticket.Status, allowedSources) {
		return nil, apperrors.NewIllegalTransition("ticket cannot move to "+string(target)+" from "+string(ticket.Status), map[string]any{
			"current_status": string(ticket.Status),
			"target_status":  string(target),
		})
	}

	oldStatus := ticket.Status
	ticket.Status = target
	ticket.Touch(s.now())
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: target,
		},
	})
	return ticket, nil
}

// AddComment appends a comment authored by the actor and touches the ticket.
func (s *TicketService) AddComment(ctx context.Context, actor domain.Actor, ticketID, content string) (*domain.TicketComment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("comment cannot be empty", nil)
	}

	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(ticket) {
		return nil, apperrors.NewForbidden("not allowed to comment on this ticket")
	}

	authorID := actor.UserID
	comment := &domain.TicketComment{
		TicketID: ticket.ID,
		AuthorID: &authorID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, apperrors.MapError(err)
	}

	ticket.Touch(s.now())
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCommentAdded,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TicketCommentAddedPayload{
			CommentID:      comment.ID,
			ContentPreview: stringPreview(comment.Content, 120),
		},
	})
	return comment, nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func eventActor(actor domain.Actor) events.Actor {
	return events.Actor{UserID: actor.UserID, IsAdmin: actor.IsAdmin}
}

func statusIn(status domain.TicketStatus, set []domain.TicketStatus) bool {
	for _, candidate := range set {
		if candidate == status {
			return true
		}
	}
	return false
}

// stringPreview truncates on rune boundaries so multi-byte content never
// yields invalid UTF-8 in event payloads.
func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	runes := []rune(body)
	if len(runes) <= max {
		return body
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
