package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/techdesk/helpdesk-service/internal/api/dto"
	"github.com/techdesk/helpdesk-service/internal/domain"
	"github.com/techdesk/helpdesk-service/internal/service"
	apperrors "github.com/techdesk/helpdesk-service/pkg/util"
)

// AdminHandler exposes the triage board and user management endpoints.
type AdminHandler struct {
	admin   *service.AdminService
	tickets *service.TicketService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(adminService *service.AdminService, ticketService *service.TicketService) *AdminHandler {
	return &AdminHandler{admin: adminService, tickets: ticketService}
}

// ListTickets GET /admin/tickets. Unknown filter values are ignored.
func (h *AdminHandler) ListTickets(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	list, err := h.admin.ListAllTickets(c.UserContext(), actor, service.AdminTicketFilter{
		Status:   c.Query("status"),
		Priority: c.Query("priority"),
		OwnerID:  c.Query("owner_id"),
	})
	if err != nil {
		return err
	}

	items := make([]dto.TicketSummary, 0, len(list.Tickets))
	for i := range list.Tickets {
		items = append(items, ticketSummary(&list.Tickets[i]))
	}
	return c.JSON(fiber.Map{"data": dto.AdminTicketListResponse{
		Tickets: items,
		Summary: dto.DashboardSummaryResponse{
			Total:      list.Summary.Total,
			Open:       list.Summary.Open,
			InProgress: list.Summary.InProgress,
			Completed:  list.Summary.Completed,
			Closed:     list.Summary.Closed,
		},
	}})
}

// SetStatus POST /admin/tickets/:id/status — the unguarded override.
func (h *AdminHandler) SetStatus(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	var req dto.SetStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	ticket, err := h.tickets.SetStatus(c.UserContext(), actor, c.Params("id"), domain.TicketStatus(req.Status))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummary(ticket)})
}

// ListUsers GET /admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	overviews, err := h.admin.ListUsers(c.UserContext(), actor)
	if err != nil {
		return err
	}
	items := make([]dto.AdminUserResponse, 0, len(overviews))
	for _, overview := range overviews {
		items = append(items, dto.AdminUserResponse{
			ID:           overview.User.ID,
			Name:         overview.User.Name,
			Email:        overview.User.Email,
			IsAdmin:      overview.User.IsAdmin,
			TicketCount:  overview.TicketCount,
			LastTicketAt: overview.LastTicketAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// ToggleAdmin POST /admin/users/:id/toggle-admin.
func (h *AdminHandler) ToggleAdmin(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	user, err := h.admin.ToggleAdmin(c.UserContext(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.UserResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}})
}

// DeleteUser DELETE /admin/users/:id.
func (h *AdminHandler) DeleteUser(c *fiber.Ctx) error {
	actor, err := requireActor(c)
	if err != nil {
		return err
	}
	if err := h.admin.DeleteUser(c.UserContext(), actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
