package service

import (
	"context"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// SummaryService counts tickets per status across the whole store.
type SummaryService struct {
	store repository.TicketStore
}

// NewSummaryService constructs the service.
func NewSummaryService(store repository.TicketStore) *SummaryService {
	return &SummaryService{store: store}
}

// Summarize counts every ticket, ignoring paging and caller scope.
func (s *SummaryService) Summarize(ctx context.Context) (domain.Summary, error) {
	var summary domain.Summary
	if s.store == nil {
		return summary, nil
	}
	tickets, err := s.store.ListAll(ctx)
	if err != nil {
		return domain.Summary{}, apperrors.NewInternalError(err)
	}
	for _, ticket := range tickets {
		summary.Add(ticket.Status)
	}
	return summary, nil
}
