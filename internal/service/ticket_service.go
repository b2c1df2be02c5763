package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/helpdesk/internal/apperrors"
	"github.com/spec-kit/helpdesk/internal/domain"
	"github.com/spec-kit/helpdesk/internal/events"
	"github.com/spec-kit/helpdesk/internal/observability"
	"github.com/spec-kit/helpdesk/internal/repository"
)

// TicketService coordinates the ticket workflows: create, list, fetch
// and close.
type TicketService struct {
	tickets    repository.TicketRepository
	cache      repository.TicketListingCache
	dispatcher events.Dispatcher
	log        *observability.EventLogger
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	Cache      repository.TicketListingCache
	Dispatcher events.Dispatcher
	EventLog   *observability.EventLogger
}

// TicketCreateInput describes the ticket creation payload.
type TicketCreateInput struct {
	Subject     string
	Description string
	Priority    string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		log:        deps.EventLog,
	}
}

// CreateTicket creates an open ticket owned by the given user.
func (s *TicketService) CreateTicket(ctx context.Context, userID string, input TicketCreateInput) (*domain.Ticket, error) {
	if userID == "" {
		return nil, apperrors.NewAuthRequired("You must be logged in to create a ticket")
	}

	subject := strings.TrimSpace(input.Subject)
	description := strings.TrimSpace(input.Description)
	priority := strings.TrimSpace(input.Priority)
	if subject == "" || description == "" || priority == "" {
		s.log.LogEvent("Validation error: Missing fields in ticket creation", "ticket",
			map[string]any{"user_id": userID}, observability.SeverityWarning)
		return nil, apperrors.NewValidation("All fields are required")
	}

	ticket := &domain.Ticket{
		Subject:     subject,
		Description: description,
		Priority:    priority,
		Status:      domain.TicketStatusOpen,
		UserID:      userID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		s.log.LogEvent("Unexpected error creating ticket", "ticket",
			map[string]any{"user_id": userID, "subject": subject}, observability.SeverityError, err)
		return nil, apperrors.NewUnexpected("An error occurred while creating the ticket", err)
	}

	s.invalidateListing(ctx, userID)
	s.publish(ctx, events.Event{
		Type:   events.EventTicketCreated,
		UserID: userID,
		Payload: events.TicketCreatedPayload{
			TicketID: ticket.ID,
			Subject:  ticket.Subject,
			Priority: ticket.Priority,
		},
	})
	s.log.LogEvent("Ticket created successfully", "ticket",
		map[string]any{"ticket_id": ticket.ID, "user_id": userID}, observability.SeverityInfo)
	return ticket, nil
}

// ListTickets returns the user's tickets, newest first. Listing is
// read-only and best-effort: an unauthenticated caller or a store
// fault yields an empty slice, never an error.
func (s *TicketService) ListTickets(ctx context.Context, userID string) []domain.Ticket {
	if userID == "" {
		return []domain.Ticket{}
	}

	if cached, ok := s.cache.Get(ctx, userID); ok {
		return cached
	}

	tickets, err := s.tickets.ListByOwner(ctx, userID)
	if err != nil {
		s.log.LogEvent("Unexpected error listing tickets", "ticket",
			map[string]any{"user_id": userID}, observability.SeverityError, err)
		return []domain.Ticket{}
	}
	if tickets == nil {
		tickets = []domain.Ticket{}
	}

	s.cache.Set(ctx, userID, tickets)
	return tickets
}

// GetTicket fetches one ticket for its owner. Reads are owner-scoped,
// matching the close path: a ticket someone else owns is simply absent.
func (s *TicketService) GetTicket(ctx context.Context, userID string, ticketID int64) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("Ticket not found")
	} else if err != nil {
		s.log.LogEvent("Unexpected error fetching ticket", "ticket",
			map[string]any{"ticket_id": ticketID}, observability.SeverityError, err)
		return nil, apperrors.NewUnexpected("An error occurred while fetching the ticket", err)
	}
	if ticket.UserID != userID {
		return nil, apperrors.NewNotFound("Ticket not found")
	}
	return ticket, nil
}

// CloseTicket transitions a ticket to Closed. Only the owner may close
// it; closing an already-closed ticket still succeeds.
func (s *TicketService) CloseTicket(ctx context.Context, userID string, ticketID int64) (*domain.Ticket, error) {
	if userID == "" {
		return nil, apperrors.NewAuthRequired("You must be logged in to close a ticket")
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err == pgx.ErrNoRows {
		return nil, apperrors.NewNotFound("Ticket not found")
	} else if err != nil {
		s.log.LogEvent("Unexpected error closing ticket", "ticket",
			map[string]any{"ticket_id": ticketID}, observability.SeverityError, err)
		return nil, apperrors.NewUnexpected("Error closing ticket", err)
	}

	if ticket.UserID != userID {
		s.log.LogEvent("Authorization error: Ticket owned by another user", "ticket",
			map[string]any{"ticket_id": ticketID, "user_id": userID}, observability.SeverityWarning)
		return nil, apperrors.NewForbidden("You are not authorized to close this ticket")
	}

	if err := s.tickets.UpdateStatus(ctx, ticketID, domain.TicketStatusClosed); err != nil {
		s.log.LogEvent("Unexpected error closing ticket", "ticket",
			map[string]any{"ticket_id": ticketID}, observability.SeverityError, err)
		return nil, apperrors.NewUnexpected("Error closing ticket", err)
	}
	ticket.Status = domain.TicketStatusClosed

	s.invalidateListing(ctx, userID)
	s.publish(ctx, events.Event{
		Type:    events.EventTicketClosed,
		UserID:  userID,
		Payload: events.TicketClosedPayload{TicketID: ticketID},
	})
	s.log.LogEvent("Ticket closed successfully", "ticket",
		map[string]any{"ticket_id": ticketID, "user_id": userID}, observability.SeverityInfo)
	return ticket, nil
}

func (s *TicketService) invalidateListing(ctx context.Context, userID string) {
	s.cache.Invalidate(ctx, userID)
}

func (s *TicketService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
