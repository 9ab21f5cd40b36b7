package dto

import (
	"time"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// TicketRequest is the payload for creating and updating tickets. Server-held
// fields such as status, opener, number and creation time are accepted but
// ignored.
type TicketRequest struct {
	ID           string              `json:"id"`
	Number       int                 `json:"number"`
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Priority     string              `json:"priority"`
	Status       domain.TicketStatus `json:"status"`
	OpenedBy     string              `json:"opened_by"`
	AssignedUser *string             `json:"assigned_user"`
}

// ToDomain converts the payload into a ticket for the service layer.
func (r TicketRequest) ToDomain() *domain.Ticket {
	return &domain.Ticket{
		ID:           r.ID,
		Number:       r.Number,
		Title:        r.Title,
		Description:  r.Description,
		Priority:     r.Priority,
		Status:       r.Status,
		OpenedBy:     r.OpenedBy,
		AssignedUser: r.AssignedUser,
	}
}

// TicketResponse represents a ticket. Changes is only filled on detail reads.
type TicketResponse struct {
	ID           string                 `json:"id"`
	Number       int                    `json:"number"`
	Title        string                 `json:"title"`
	Description  string                 `json:"description"`
	Priority     string                 `json:"priority"`
	Status       domain.TicketStatus    `json:"status"`
	OpenedBy     string                 `json:"opened_by"`
	AssignedUser *string                `json:"assigned_user"`
	CreatedAt    time.Time              `json:"created_at"`
	Changes      []ChangeStatusResponse `json:"changes,omitempty"`
}

// ChangeStatusResponse is one audit entry of a ticket.
type ChangeStatusResponse struct {
	ID        string              `json:"id"`
	Status    domain.TicketStatus `json:"status"`
	ChangedBy string              `json:"changed_by"`
	ChangedAt time.Time           `json:"changed_at"`
}

// TicketPageResponse is one page of a ticket listing.
type TicketPageResponse struct {
	Items      []TicketResponse `json:"items"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalItems int              `json:"total_items"`
	TotalPages int              `json:"total_pages"`
}

// SummaryResponse holds ticket counts per status.
type SummaryResponse struct {
	New         int `json:"new"`
	Assigned    int `json:"assigned"`
	Resolved    int `json:"resolved"`
	Approved    int `json:"approved"`
	Disapproved int `json:"disapproved"`
	Closed      int `json:"closed"`
}

// NewTicketResponse maps a ticket with any loaded changes.
func NewTicketResponse(ticket *domain.Ticket) TicketResponse {
	resp := TicketResponse{
		ID:           ticket.ID,
		Number:       ticket.Number,
		Title:        ticket.Title,
		Description:  ticket.Description,
		Priority:     ticket.Priority,
		Status:       ticket.Status,
		OpenedBy:     ticket.OpenedBy,
		AssignedUser: ticket.AssignedUser,
		CreatedAt:    ticket.CreatedAt,
	}
	if ticket.Changes != nil {
		resp.Changes = make([]ChangeStatusResponse, 0, len(ticket.Changes))
		for _, change := range ticket.Changes {
			resp.Changes = append(resp.Changes, ChangeStatusResponse{
				ID:        change.ID,
				Status:    change.Status,
				ChangedBy: change.ChangedBy,
				ChangedAt: change.ChangedAt,
			})
		}
	}
	return resp
}

// NewTicketPageResponse maps a page of tickets.
func NewTicketPageResponse(page domain.Page[domain.Ticket]) TicketPageResponse {
	items := make([]TicketResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, NewTicketResponse(&page.Items[i]))
	}
	return TicketPageResponse{
		Items:      items,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalItems: page.TotalItems,
		TotalPages: page.TotalPages,
	}
}

// NewSummaryResponse maps status counts.
func NewSummaryResponse(summary domain.Summary) SummaryResponse {
	return SummaryResponse{
		New:         summary.New,
		Assigned:    summary.Assigned,
		Resolved:    summary.Resolved,
		Approved:    summary.Approved,
		Disapproved: summary.Disapproved,
		Closed:      summary.Closed,
	}
}
