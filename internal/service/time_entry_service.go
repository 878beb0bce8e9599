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

// manualEntryLayout combines the separate date and time form fields.
const manualEntryLayout = "2006-01-02 15:04"

// TimeEntryService validates and records work spans against tickets.
type TimeEntryService struct {
	tickets    repository.TicketRepository
	entries    repository.TimeEntryRepository
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TimeEntryDependencies bundles collaborators for the time entry service.
type TimeEntryDependencies struct {
	TicketRepo    repository.TicketRepository
	TimeEntryRepo repository.TimeEntryRepository
	Dispatcher    events.Dispatcher
	Now           func() time.Time
}

// NewTimeEntryService constructs the service. Now defaults to time.Now.
func NewTimeEntryService(deps TimeEntryDependencies) *TimeEntryService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &TimeEntryService{
		tickets:    deps.TicketRepo,
		entries:    deps.TimeEntryRepo,
		dispatcher: deps.Dispatcher,
		now:        now,
	}
}

// ManualEntryInput carries the backdated entry form fields. Date and time
// arrive as separate components and are combined before parsing.
type ManualEntryInput struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
	Note      string
}

// AddManualEntry records a hand-entered work span. Allowed for the ticket
// owner or an admin. Nothing is persisted when validation fails.
func (s *TimeEntryService) AddManualEntry(ctx context.Context, actor domain.Actor, ticketID string, input ManualEntryInput) (*domain.TimeEntry, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(ticket) {
		return nil, apperrors.NewForbidden("not allowed to log time on this ticket")
	}

	start, err := time.Parse(manualEntryLayout, input.StartDate+" "+input.StartTime)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date or time format", nil)
	}
	end, err := time.Parse(manualEntryLayout, input.EndDate+" "+input.EndTime)
	if err != nil {
		return nil, apperrors.NewValidationError("invalid date or time format", nil)
	}
	if !end.After(start) {
		return nil, apperrors.NewValidationError("end time must be after start time", nil)
	}

	entry := s.buildEntry(actor, ticket.ID, start, end, input.Note, true)
	return s.persistEntry(ctx, actor, ticket, entry)
}

// StartTimer begins a live timer on the ticket. Owner only: the timer tracks
// the caller's own session, so admins do not get the override here.
func (s *TimeEntryService) StartTimer(ctx context.Context, actor domain.Actor, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticket.IsOwnedBy(actor.UserID) {
		return nil, apperrors.NewForbidden("only the ticket owner can run a timer")
	}
	if ticket.TimerStartedAt != nil {
		return nil, apperrors.NewValidationError("a timer is already running for this ticket", nil)
	}

	started := s.now()
	ticket.TimerStartedAt = &started
	ticket.Touch(started)
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

// StopTimer ends the live timer and records the span as a time entry. Owner
// only. Unlike the manual path there is no end-after-start guard; the stop
// timestamp comes from the clock, not user input.
func (s *TimeEntryService) StopTimer(ctx context.Context, actor domain.Actor, ticketID string, note string) (*domain.TimeEntry, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !ticket.IsOwnedBy(actor.UserID) {
		return nil, apperrors.NewForbidden("only the ticket owner can run a timer")
	}
	if ticket.TimerStartedAt == nil {
		return nil, apperrors.NewValidationError("no timer is running for this ticket", nil)
	}

	start := *ticket.TimerStartedAt
	end := s.now()
	ticket.TimerStartedAt = nil

	entry := s.buildEntry(actor, ticket.ID, start, end, note, false)
	return s.persistEntry(ctx, actor, ticket, entry)
}

// DeleteEntry removes a time entry. Allowed for the entry's author or an
// admin; the owning ticket is touched.
func (s *TimeEntryService) DeleteEntry(ctx context.Context, actor domain.Actor, entryID string) error {
	entry, err := s.entries.GetByID(ctx, entryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("time entry", map[string]any{"entry_id": entryID})
		}
		return apperrors.MapError(err)
	}

	isAuthor := entry.AuthorID != nil && *entry.AuthorID == actor.UserID
	if !isAuthor && !actor.IsAdmin {
		return apperrors.NewForbidden("not allowed to delete this time entry")
	}

	if err := s.entries.Delete(ctx, entryID); err != nil {
		return apperrors.MapError(err)
	}

	ticket, err := s.loadTicket(ctx, entry.TicketID)
	if err != nil {
		return err
	}
	ticket.Touch(s.now())
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTimeEntryDeleted,
		TicketID: entry.TicketID,
		Actor:    eventActor(actor),
		Payload:  events.TimeEntryDeletedPayload{EntryID: entry.ID},
	})
	return nil
}

func (s *TimeEntryService) buildEntry(actor domain.Actor, ticketID string, start, end time.Time, note string, manual bool) *domain.TimeEntry {
	authorID := actor.UserID
	entry := &domain.TimeEntry{
		TicketID:        ticketID,
		AuthorID:        &authorID,
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: domain.DurationBetween(start, end),
		IsManualEntry:   manual,
	}
	if trimmed := strings.TrimSpace(note); trimmed != "" {
		entry.Note = &trimmed
	}
	return entry
}

func (s *TimeEntryService) persistEntry(ctx context.Context, actor domain.Actor, ticket *domain.Ticket, entry *domain.TimeEntry) (*domain.TimeEntry, error) {
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, apperrors.MapError(err)
	}

	ticket.Touch(s.now())
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, events.Event{
		Type:     events.EventTimeEntryAdded,
		TicketID: ticket.ID,
		Actor:    eventActor(actor),
		Payload: events.TimeEntryAddedPayload{
			EntryID:         entry.ID,
			DurationMinutes: entry.DurationMinutes,
			IsManualEntry:   entry.IsManualEntry,
		},
	})
	return entry, nil
}

func (s *TimeEntryService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.MapError(err)
	}
	return ticket, nil
}

func (s *TimeEntryService) publish(ctx context.Context, event events.Event) {
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
