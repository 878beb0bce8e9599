package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techdesk/helpdesk-service/internal/domain"
	"github.com/techdesk/helpdesk-service/internal/repository"
)

func newTestAdminService(tickets *fakeTicketRepo, users *fakeUserRepo) *AdminService {
	return NewAdminService(AdminDependencies{
		TicketRepo: tickets,
		UserRepo:   users,
	})
}

func seedUser(t *testing.T, repo *fakeUserRepo, name string, isAdmin bool) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: name + "@example.com", IsAdmin: isAdmin}
	require.NoError(t, repo.Create(context.Background(), user))
	return user
}

func TestListAllTickets(t *testing.T) {
	admin := domain.Actor{UserID: "admin-1", IsAdmin: true}

	seedBoard := func(t *testing.T) (*AdminService, *fakeTicketRepo) {
		tickets := newFakeTicketRepo()
		seedTicket(t, tickets, "user-1", domain.TicketStatusOpen)
		seedTicket(t, tickets, "user-1", domain.TicketStatusClosed)
		seedTicket(t, tickets, "user-2", domain.TicketStatusClosed)
		seedTicket(t, tickets, "user-2", domain.TicketStatusInProgress)
		return newTestAdminService(tickets, newFakeUserRepo()), tickets
	}

	t.Run("requires admin", func(t *testing.T) {
		svc, _ := seedBoard(t)
		_, err := svc.ListAllTickets(context.Background(), domain.Actor{UserID: "user-1"}, AdminTicketFilter{})
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})

	t.Run("summary stays unfiltered while rows are filtered", func(t *testing.T) {
		svc, _ := seedBoard(t)
		list, err := svc.ListAllTickets(context.Background(), admin, AdminTicketFilter{Status: "CLOSED"})
		require.NoError(t, err)
		require.Len(t, list.Tickets, 2)
		for _, ticket := range list.Tickets {
			assert.Equal(t, domain.TicketStatusClosed, ticket.Status)
		}
		assert.Equal(t, 4, list.Summary.Total)
		assert.Equal(t, 1, list.Summary.Open)
		assert.Equal(t, 1, list.Summary.InProgress)
		assert.Equal(t, 2, list.Summary.Closed)
	})

	t.Run("unrecognized filter values are ignored", func(t *testing.T) {
		svc, _ := seedBoard(t)
		list, err := svc.ListAllTickets(context.Background(), admin, AdminTicketFilter{Status: "closed", Priority: "urgent-ish"})
		require.NoError(t, err)
		assert.Len(t, list.Tickets, 4)
	})

	t.Run("owner filter", func(t *testing.T) {
		svc, _ := seedBoard(t)
		list, err := svc.ListAllTickets(context.Background(), admin, AdminTicketFilter{OwnerID: "user-2"})
		require.NoError(t, err)
		require.Len(t, list.Tickets, 2)
		for _, ticket := range list.Tickets {
			assert.True(t, ticket.IsOwnedBy("user-2"))
		}
	})
}

func TestListUsers(t *testing.T) {
	tickets := newFakeTicketRepo()
	users := newFakeUserRepo()
	svc := newTestAdminService(tickets, users)
	alice := seedUser(t, users, "alice", false)
	seedUser(t, users, "bob", false)
	seedTicket(t, tickets, alice.ID, domain.TicketStatusOpen)
	seedTicket(t, tickets, alice.ID, domain.TicketStatusClosed)

	overviews, err := svc.ListUsers(context.Background(), domain.Actor{UserID: "admin-1", IsAdmin: true})
	require.NoError(t, err)
	require.Len(t, overviews, 2)

	byName := make(map[string]UserOverview, len(overviews))
	for _, overview := range overviews {
		byName[overview.User.Name] = overview
	}
	assert.Equal(t, 2, byName["alice"].TicketCount)
	assert.NotNil(t, byName["alice"].LastTicketAt)
	assert.Equal(t, 0, byName["bob"].TicketCount)
	assert.Nil(t, byName["bob"].LastTicketAt)
}

func TestToggleAdmin(t *testing.T) {
	t.Run("flips the flag", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := newTestAdminService(newFakeTicketRepo(), users)
		target := seedUser(t, users, "alice", false)

		updated, err := svc.ToggleAdmin(context.Background(), domain.Actor{UserID: "admin-1", IsAdmin: true}, target.ID)
		require.NoError(t, err)
		assert.True(t, updated.IsAdmin)

		updated, err = svc.ToggleAdmin(context.Background(), domain.Actor{UserID: "admin-1", IsAdmin: true}, target.ID)
		require.NoError(t, err)
		assert.False(t, updated.IsAdmin)
	})

	t.Run("self guard", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := newTestAdminService(newFakeTicketRepo(), users)
		self := seedUser(t, users, "root", true)

		_, err := svc.ToggleAdmin(context.Background(), domain.Actor{UserID: self.ID, IsAdmin: true}, self.ID)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))

		stored, getErr := users.GetByID(context.Background(), self.ID)
		require.NoError(t, getErr)
		assert.True(t, stored.IsAdmin)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc := newTestAdminService(newFakeTicketRepo(), newFakeUserRepo())
		_, err := svc.ToggleAdmin(context.Background(), domain.Actor{UserID: "admin-1", IsAdmin: true}, "user-404")
		assert.Equal(t, "NOT_FOUND", errCode(t, err))
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("removes the user and their tickets", func(t *testing.T) {
		tickets := newFakeTicketRepo()
		users := newFakeUserRepo()
		svc := newTestAdminService(tickets, users)
		target := seedUser(t, users, "alice", false)
		other := seedUser(t, users, "bob", false)
		seedTicket(t, tickets, target.ID, domain.TicketStatusOpen)
		seedTicket(t, tickets, other.ID, domain.TicketStatusOpen)

		require.NoError(t, svc.DeleteUser(context.Background(), domain.Actor{UserID: "admin-1", IsAdmin: true}, target.ID))

		_, err := users.GetByID(context.Background(), target.ID)
		assert.Error(t, err)

		remaining, err := tickets.ListWithFilter(context.Background(), repository.TicketFilter{})
		require.NoError(t, err)
		require.Len(t, remaining, 1)
		assert.True(t, remaining[0].IsOwnedBy(other.ID))
	})

	t.Run("self guard", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := newTestAdminService(newFakeTicketRepo(), users)
		self := seedUser(t, users, "root", true)

		err := svc.DeleteUser(context.Background(), domain.Actor{UserID: self.ID, IsAdmin: true}, self.ID)
		assert.Equal(t, "VALIDATION_FAILED", errCode(t, err))
	})

	t.Run("requires admin", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := newTestAdminService(newFakeTicketRepo(), users)
		target := seedUser(t, users, "alice", false)

		err := svc.DeleteUser(context.Background(), domain.Actor{UserID: "user-9"}, target.ID)
		assert.Equal(t, "FORBIDDEN", errCode(t, err))
	})
}
