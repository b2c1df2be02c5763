package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/spec-kit/helpdesk/internal/api/dto"
	"github.com/spec-kit/helpdesk/internal/apperrors"
	"github.com/spec-kit/helpdesk/internal/auth"
	"github.com/spec-kit/helpdesk/internal/service"
)

// TicketsHandler manages the ticket endpoints.
type TicketsHandler struct {
	service *service.TicketService
}

// NewTicketsHandler constructs the handler.
func NewTicketsHandler(ticketService *service.TicketService) *TicketsHandler {
	return &TicketsHandler{service: ticketService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return apperrors.NewAuthRequired("You must be logged in to create a ticket")
	}

	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("All fields are required")
	}

	// the repository retains these past the request, so detach them
	// from fiber's request buffer
	_, err := h.service.CreateTicket(c.UserContext(), user.ID, service.TicketCreateInput{
		Subject:     utils.CopyString(req.Subject),
		Description: utils.CopyString(req.Description),
		Priority:    utils.CopyString(req.Priority),
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.ActionResult{
		Success: true,
		Message: "Ticket created successfully",
	})
}

// ListTickets GET /tickets. Listing is best-effort: an anonymous
// caller gets an empty list, not an error.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	userID := ""
	if user, ok := auth.UserFromContext(c); ok {
		userID = user.ID
	}

	tickets := h.service.ListTickets(c.UserContext(), userID)
	items := make([]dto.TicketResponse, 0, len(tickets))
	for i := range tickets {
		items = append(items, dto.NewTicketResponse(&tickets[i]))
	}
	return c.JSON(fiber.Map{"success": true, "data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	userID := ""
	if user, ok := auth.UserFromContext(c); ok {
		userID = user.ID
	}

	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}

	ticket, err := h.service.GetTicket(c.UserContext(), userID, ticketID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"success": true, "data": dto.NewTicketResponse(ticket)})
}

// CloseTicket POST /tickets/:id/close.
func (h *TicketsHandler) CloseTicket(c *fiber.Ctx) error {
	ticketID, err := parseTicketID(c)
	if err != nil {
		return err
	}

	userID := ""
	if user, ok := auth.UserFromContext(c); ok {
		userID = user.ID
	}

	if _, err := h.service.CloseTicket(c.UserContext(), userID, ticketID); err != nil {
		return err
	}
	return c.JSON(dto.ActionResult{Success: true, Message: "Ticket closed successfully"})
}

func parseTicketID(c *fiber.Ctx) (int64, error) {
	raw := c.Params("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidation("A valid ticket id is required")
	}
	return id, nil
}
