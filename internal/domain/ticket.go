package domain

import "time"

// TicketNumberLimit is the exclusive upper bound for display numbers.
const TicketNumberLimit = 9999

// Ticket is the aggregate for helpdesk requests.
type Ticket struct {
	ID           string
	Number       int
	Title        string
	Description  string
	Priority     string
	Status       TicketStatus
	OpenedBy     string
	AssignedUser *string
	CreatedAt    time.Time
	Changes      []ChangeStatus
}

// ChangeStatus is an immutable audit entry for one status transition.
type ChangeStatus struct {
	ID        string
	TicketID  string
	Status    TicketStatus
	ChangedBy string
	ChangedAt time.Time
}
