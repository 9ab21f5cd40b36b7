package service

import (
	"context"
	"sort"
	"strings"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// Uninformed is the placeholder clients send for a text filter they leave empty.
const Uninformed = "uninformed"

// ListFilter describes a ticket listing request. Page is zero-based.
type ListFilter struct {
	Page         int
	PageSize     int
	Number       int
	Title        string
	Status       string
	Priority     string
	AssignedOnly bool
}

// List returns the page of tickets visible to caller.
//
// A positive Number wins over every other filter and over role scoping,
// whatever the caller's role.
// Otherwise technicians see every ticket (or only their own assignments when
// AssignedOnly is set) and customers see only tickets they opened.
func (s *TicketService) List(ctx context.Context, caller domain.Caller, filter ListFilter) (domain.Page[domain.Ticket], error) {
	page, pageSize := repository.NormalizePaging(filter.Page, filter.PageSize)

	if filter.Number > 0 {
		result, err := s.store.FindByNumber(ctx, page, pageSize, filter.Number)
		if err != nil {
			return domain.Page[domain.Ticket]{}, apperrors.NewInternalError(err)
		}
		return result, nil
	}

	query := repository.TicketQuery{
		Page:     page,
		PageSize: pageSize,
		Title:    informed(filter.Title),
		Status:   informed(filter.Status),
		Priority: informed(filter.Priority),
	}
	switch caller.Role {
	case domain.RoleTechnician:
		if filter.AssignedOnly {
			query.Scope = repository.Scope{Kind: repository.ScopeAssignedUser, UserID: caller.ID}
		}
	case domain.RoleCustomer:
		query.Scope = repository.Scope{Kind: repository.ScopeOpenedBy, UserID: caller.ID}
	default:
		return domain.Page[domain.Ticket]{}, apperrors.NewForbidden("unknown role")
	}

	result, err := s.store.Query(ctx, query)
	if err != nil {
		return domain.Page[domain.Ticket]{}, apperrors.NewInternalError(err)
	}
	return result, nil
}

// FindByID loads a ticket with its status changes, oldest first.
func (s *TicketService) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.NewValidationErrors([]string{"ticket id is required"})
	}
	ticket, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, ticketStoreError(err, id)
	}

	changes, err := s.store.ListChangeStatus(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].ChangedAt.Before(changes[j].ChangedAt)
	})
	ticket.Changes = append([]domain.ChangeStatus{}, changes...)
	return ticket, nil
}

func informed(val string) string {
	val = strings.TrimSpace(val)
	if val == Uninformed {
		return ""
	}
	return val
}
