package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

// MemoryTicketStore is a process-local TicketStore used in tests and when no
// database is configured.
type MemoryTicketStore struct {
	mu      sync.RWMutex
	tickets map[string]domain.Ticket
	changes map[string][]domain.ChangeStatus
}

// NewMemoryTicketStore returns an empty in-memory store.
func NewMemoryTicketStore() *MemoryTicketStore {
	return &MemoryTicketStore{
		tickets: make(map[string]domain.Ticket),
		changes: make(map[string][]domain.ChangeStatus),
	}
}

func (s *MemoryTicketStore) Save(_ context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	stored := copyTicket(*ticket)
	stored.Changes = nil
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.tickets[stored.ID] = stored
	s.mu.Unlock()

	out := copyTicket(stored)
	return &out, nil
}

func (s *MemoryTicketStore) FindByID(_ context.Context, id string) (*domain.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ticket, ok := s.tickets[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copyTicket(ticket)
	return &out, nil
}

// Delete removes the ticket together with its status changes.
func (s *MemoryTicketStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[id]; !ok {
		return ErrNotFound
	}
	delete(s.tickets, id)
	delete(s.changes, id)
	return nil
}

func (s *MemoryTicketStore) SaveChangeStatus(_ context.Context, change *domain.ChangeStatus) (*domain.ChangeStatus, error) {
	stored := *change
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tickets[stored.TicketID]; !ok {
		return nil, ErrNotFound
	}
	s.changes[stored.TicketID] = append(s.changes[stored.TicketID], stored)
	return &stored, nil
}

func (s *MemoryTicketStore) ListChangeStatus(_ context.Context, ticketID string) ([]domain.ChangeStatus, error) {
	s.mu.RLock()
	result := append([]domain.ChangeStatus(nil), s.changes[ticketID]...)
	s.mu.RUnlock()

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].ChangedAt.Before(result[j].ChangedAt)
	})
	return result, nil
}

func (s *MemoryTicketStore) Query(_ context.Context, q TicketQuery) (domain.Page[domain.Ticket], error) {
	title := normalizeFilter(q.Title)
	status := normalizeFilter(q.Status)
	priority := normalizeFilter(q.Priority)

	return s.page(q.Page, q.PageSize, func(t domain.Ticket) bool {
		if !containsFold(t.Title, title) || !containsFold(string(t.Status), status) || !containsFold(t.Priority, priority) {
			return false
		}
		switch q.Scope.Kind {
		case ScopeOpenedBy:
			return t.OpenedBy == q.Scope.UserID
		case ScopeAssignedUser:
			return t.AssignedUser != nil && *t.AssignedUser == q.Scope.UserID
		default:
			return true
		}
	}), nil
}

func (s *MemoryTicketStore) FindByNumber(_ context.Context, page, pageSize, number int) (domain.Page[domain.Ticket], error) {
	return s.page(page, pageSize, func(t domain.Ticket) bool {
		return t.Number == number
	}), nil
}

func (s *MemoryTicketStore) ListAll(_ context.Context) ([]domain.Ticket, error) {
	return s.sorted(func(domain.Ticket) bool { return true }), nil
}

func (s *MemoryTicketStore) page(page, pageSize int, match func(domain.Ticket) bool) domain.Page[domain.Ticket] {
	page, pageSize = NormalizePaging(page, pageSize)
	matched := s.sorted(match)

	start := page * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	return domain.NewPage(matched[start:end], page, pageSize, len(matched))
}

func (s *MemoryTicketStore) sorted(match func(domain.Ticket) bool) []domain.Ticket {
	s.mu.RLock()
	result := make([]domain.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		if match(t) {
			result = append(result, copyTicket(t))
		}
	}
	s.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func containsFold(val, lowered string) bool {
	return lowered == "" || strings.Contains(strings.ToLower(val), lowered)
}

func copyTicket(t domain.Ticket) domain.Ticket {
	if t.AssignedUser != nil {
		assigned := *t.AssignedUser
		t.AssignedUser = &assigned
	}
	if t.Changes != nil {
		t.Changes = append([]domain.ChangeStatus(nil), t.Changes...)
	}
	return t
}
