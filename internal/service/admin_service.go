package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/techdesk/helpdesk-service/internal/domain"
	"github.com/techdesk/helpdesk-service/internal/repository"
	apperrors "github.com/techdesk/helpdesk-service/pkg/util"
)

const summaryCacheKey = "helpdesk:dashboard:summary"

// AdminService serves the admin triage board and user management.
type AdminService struct {
	tickets  repository.TicketRepository
	users    repository.UserRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   *zap.Logger
}

// AdminDependencies bundles collaborators for the admin service. Cache is
// optional; without it the dashboard summary is computed on every request.
type AdminDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Cache      *redis.Client
	CacheTTL   time.Duration
	Logger     *zap.Logger
}

// NewAdminService constructs the service.
func NewAdminService(deps AdminDependencies) *AdminService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminService{
		tickets:  deps.TicketRepo,
		users:    deps.UserRepo,
		cache:    deps.Cache,
		cacheTTL: deps.CacheTTL,
		logger:   logger,
	}
}

// AdminTicketFilter carries raw filter values from the query string. Values
// that do not parse to a known status or priority are ignored, not rejected.
type AdminTicketFilter struct {
	Status   string
	Priority string
	OwnerID  string
}

// DashboardSummary holds per-status counts over the full unfiltered set.
type DashboardSummary struct {
	Total      int `json:"total"`
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Closed     int `json:"closed"`
}

// AdminTicketList is the triage board payload: the filtered rows plus the
// always-unfiltered summary counts.
type AdminTicketList struct {
	Tickets []domain.Ticket
	Summary DashboardSummary
}

// UserOverview pairs a user with their ticket figures.
type UserOverview struct {
	User         domain.User
	TicketCount  int
	LastTicketAt *time.Time
}

// ListAllTickets returns every ticket matching the filter, admin only.
func (s *AdminService) ListAllTickets(ctx context.Context, actor domain.Actor, filter AdminTicketFilter) (*AdminTicketList, error) {
	if !actor.IsAdmin {
		return nil, apperrors.NewForbidden("admin required")
	}

	repoFilter := repository.TicketFilter{}
	if status, ok := domain.ParseTicketStatus(filter.Status); ok {
		repoFilter.Status = &status
	}
	if priority, ok := domain.ParseTicketPriority(filter.Priority); ok {
		repoFilter.Priority = &priority
	}
	if filter.OwnerID != "" {
		ownerID := filter.OwnerID
		repoFilter.OwnerID = &ownerID
	}

	tickets, err := s.tickets.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	summary, err := s.dashboardSummary(ctx)
	if err != nil {
		return nil, err
	}
	return &AdminTicketList{Tickets: tickets, Summary: summary}, nil
}

// ListUsers returns every user with their ticket count and most recent
// ticket date, admin only.
func (s *AdminService) ListUsers(ctx context.Context, actor domain.Actor) ([]UserOverview, error) {
	if !actor.IsAdmin {
		return nil, apperrors.NewForbidden("admin required")
	}

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	overviews := make([]UserOverview, 0, len(users))
	for _, user := range users {
		stats, err := s.tickets.StatsByOwner(ctx, user.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		overviews = append(overviews, UserOverview{
			User:         user,
			TicketCount:  stats.TicketCount,
			LastTicketAt: stats.LastTicketAt,
		})
	}
	return overviews, nil
}

// ToggleAdmin flips the admin flag on a user. Admins cannot change their own
// flag.
func (s *AdminService) ToggleAdmin(ctx context.Context, actor domain.Actor, userID string) (*domain.User, error) {
	if !actor.IsAdmin {
		return nil, apperrors.NewForbidden("admin required")
	}
	if userID == actor.UserID {
		return nil, apperrors.NewValidationError("you cannot change your own admin status", nil)
	}

	user, err := s.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.IsAdmin = !user.IsAdmin
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes a user and all their tickets. Comments and time entries
// on those tickets go with them. Admins cannot delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, actor domain.Actor, userID string) error {
	if !actor.IsAdmin {
		return apperrors.NewForbidden("admin required")
	}
	if userID == actor.UserID {
		return apperrors.NewValidationError("you cannot delete your own account", nil)
	}

	if _, err := s.loadUser(ctx, userID); err != nil {
		return err
	}
	if err := s.tickets.DeleteByOwner(ctx, userID); err != nil {
		return apperrors.MapError(err)
	}
	if err := s.users.Delete(ctx, userID); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// dashboardSummary computes the unfiltered status counts, reading through a
// short-lived cache so the triage board does not hammer the counts query.
func (s *AdminService) dashboardSummary(ctx context.Context) (DashboardSummary, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, summaryCacheKey).Bytes()
		if err == nil {
			var cached DashboardSummary
			if json.Unmarshal(raw, &cached) == nil {
				return cached, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			s.logger.Warn("summary cache read failed", zap.Error(err))
		}
	}

	counts, err := s.tickets.CountByStatus(ctx)
	if err != nil {
		return DashboardSummary{}, apperrors.MapError(err)
	}
	summary := DashboardSummary{
		Open:       counts[domain.TicketStatusOpen],
		InProgress: counts[domain.TicketStatusInProgress],
		Completed:  counts[domain.TicketStatusCompleted],
		Closed:     counts[domain.TicketStatusClosed],
	}
	summary.Total = summary.Open + summary.InProgress + summary.Completed + summary.Closed

	if s.cache != nil {
		if raw, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, summaryCacheKey, raw, s.cacheTTL).Err(); err != nil {
				s.logger.Warn("summary cache write failed", zap.Error(err))
			}
		}
	}
	return summary, nil
}

func (s *AdminService) loadUser(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"user_id": userID})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}
