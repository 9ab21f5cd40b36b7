package domain

import "errors"

// ErrInvalidStatus is returned when a status name is not part of the model.
var ErrInvalidStatus = errors.New("invalid status")

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNew         TicketStatus = "New"
	TicketStatusAssigned    TicketStatus = "Assigned"
	TicketStatusResolved    TicketStatus = "Resolved"
	TicketStatusApproved    TicketStatus = "Approved"
	TicketStatusDisapproved TicketStatus = "Disapproved"
	TicketStatusClosed      TicketStatus = "Closed"
)

// TicketStatuses lists every status in display order.
var TicketStatuses = []TicketStatus{
	TicketStatusNew,
	TicketStatusAssigned,
	TicketStatusResolved,
	TicketStatusApproved,
	TicketStatusDisapproved,
	TicketStatusClosed,
}

// ParseStatus resolves a status by its exact, case-sensitive name.
func ParseStatus(name string) (TicketStatus, error) {
	for _, status := range TicketStatuses {
		if string(status) == name {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// Valid reports whether the status belongs to the model.
func (s TicketStatus) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

func (s TicketStatus) String() string {
	return string(s)
}
