package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// TicketService owns the ticket lifecycle and the role-scoped ticket queries.
type TicketService struct {
	store      repository.TicketStore
	numbers    NumberGenerator
	dispatcher events.Dispatcher
	now        func() time.Time
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	Store      repository.TicketStore
	Numbers    NumberGenerator
	Dispatcher events.Dispatcher
	Clock      func() time.Time
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	numbers := deps.Numbers
	if numbers == nil {
		numbers = NewRandomNumberGenerator(0)
	}
	clock := deps.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}
	return &TicketService{
		store:      deps.Store,
		numbers:    numbers,
		dispatcher: deps.Dispatcher,
		now:        clock,
	}
}

// Create opens a new ticket on behalf of caller. Status, opener, creation
// time and number are always decided here, never by the payload.
func (s *TicketService) Create(ctx context.Context, input *domain.Ticket, caller domain.Caller) (*domain.Ticket, error) {
	if input == nil || strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidationErrors([]string{"title is required"})
	}

	number, err := s.numbers.Next(ctx)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	ticket := &domain.Ticket{
		Number:      number,
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Priority:    strings.TrimSpace(input.Priority),
		Status:      domain.TicketStatusNew,
		OpenedBy:    caller.ID,
		CreatedAt:   s.now(),
	}

	saved, err := s.store.Save(ctx, ticket)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: saved.ID,
		Actor:    actor(caller),
		Payload: events.TicketCreatedPayload{
			Number:   saved.Number,
			Title:    saved.Title,
			Priority: saved.Priority,
		},
	})
	return saved, nil
}

// Update replaces the editable fields of an existing ticket. Status, opener,
// creation time and number are taken from the stored ticket, and a stored
// assignee is never cleared. An id the store cannot resolve is a validation
// failure rather than NotFound.
func (s *TicketService) Update(ctx context.Context, input *domain.Ticket, caller domain.Caller) (*domain.Ticket, error) {
	if input == nil {
		input = &domain.Ticket{}
	}
	var problems []string
	if strings.TrimSpace(input.ID) == "" {
		problems = append(problems, "id is required")
	}
	if strings.TrimSpace(input.Title) == "" {
		problems = append(problems, "title is required")
	}
	if err := apperrors.NewValidationErrors(problems); err != nil {
		return nil, err
	}

	current, err := s.store.FindByID(ctx, input.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewValidationErrors([]string{"ticket not found"})
	}
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	merged := &domain.Ticket{
		ID:           current.ID,
		Number:       current.Number,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Priority:     strings.TrimSpace(input.Priority),
		Status:       current.Status,
		OpenedBy:     current.OpenedBy,
		AssignedUser: input.AssignedUser,
		CreatedAt:    current.CreatedAt,
	}
	if current.AssignedUser != nil {
		merged.AssignedUser = current.AssignedUser
	}

	saved, err := s.store.Save(ctx, merged)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketUpdated,
		TicketID: saved.ID,
		Actor:    actor(caller),
		Payload: events.TicketUpdatedPayload{
			Title:    saved.Title,
			Priority: saved.Priority,
		},
	})
	return saved, nil
}

// ChangeStatus moves a ticket to the named status and appends an audit entry.
// Moving to Assigned also assigns the ticket to caller. Any status may follow
// any other.
func (s *TicketService) ChangeStatus(ctx context.Context, ticketID, statusName string, caller domain.Caller) (*domain.Ticket, error) {
	var problems []string
	if strings.TrimSpace(ticketID) == "" {
		problems = append(problems, "ticket id is required")
	}
	if strings.TrimSpace(statusName) == "" {
		problems = append(problems, "status is required")
	}
	if err := apperrors.NewValidationErrors(problems); err != nil {
		return nil, err
	}

	status, err := domain.ParseStatus(statusName)
	if err != nil {
		return nil, apperrors.NewInvalidStatus(statusName)
	}

	var (
		updated   *domain.Ticket
		oldStatus domain.TicketStatus
	)
	err = s.withinTx(ctx, func(store repository.TicketStore) error {
		ticket, err := store.FindByID(ctx, ticketID)
		if err != nil {
			return err
		}
		oldStatus = ticket.Status
		ticket.Status = status
		if status == domain.TicketStatusAssigned {
			assignee := caller.ID
			ticket.AssignedUser = &assignee
		}

		saved, err := store.Save(ctx, ticket)
		if err != nil {
			return err
		}
		if _, err := store.SaveChangeStatus(ctx, &domain.ChangeStatus{
			TicketID:  saved.ID,
			Status:    status,
			ChangedBy: caller.ID,
			ChangedAt: s.now(),
		}); err != nil {
			return err
		}
		updated = saved
		return nil
	})
	if err != nil {
		return nil, ticketStoreError(err, ticketID)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: updated.ID,
		Actor:    actor(caller),
		Payload: events.TicketStatusChangedPayload{
			OldStatus:    oldStatus,
			NewStatus:    updated.Status,
			AssignedUser: updated.AssignedUser,
		},
	})
	return updated, nil
}

// Delete removes a ticket. Its audit entries are left to the store.
func (s *TicketService) Delete(ctx context.Context, ticketID string, caller domain.Caller) error {
	if strings.TrimSpace(ticketID) == "" {
		return apperrors.NewValidationErrors([]string{"ticket id is required"})
	}
	if err := s.store.Delete(ctx, ticketID); err != nil {
		return ticketStoreError(err, ticketID)
	}
	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketDeleted,
		TicketID: ticketID,
		Actor:    actor(caller),
	})
	return nil
}

// withinTx runs fn atomically when the store supports transactions and
// sequentially otherwise.
func (s *TicketService) withinTx(ctx context.Context, fn func(repository.TicketStore) error) error {
	if tx, ok := s.store.(repository.Transactor); ok {
		return tx.WithinTx(ctx, fn)
	}
	return fn(s.store)
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func actor(caller domain.Caller) events.Actor {
	return events.Actor{UserID: caller.ID, Role: caller.Role}
}

func ticketStoreError(err error, ticketID string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
	}
	return apperrors.NewInternalError(err)
}
