package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusOpen   TicketStatus = "Open"
	TicketStatusClosed TicketStatus = "Closed"
)

// Ticket is a support request owned by exactly one user. Status moves
// one way, Open to Closed; there is no reopen.
type Ticket struct {
	ID          int64
	Subject     string
	Description string
	Priority    string
	Status      TicketStatus
	UserID      string
	CreatedAt   time.Time
}
