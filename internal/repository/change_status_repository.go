package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

func (s *ticketStore) SaveChangeStatus(ctx context.Context, change *domain.ChangeStatus) (*domain.ChangeStatus, error) {
	const query = `
        INSERT INTO ticket_status_changes (id, ticket_id, status, changed_by, changed_at)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, ticket_id, status, changed_by, changed_at`

	id := change.ID
	if id == "" {
		id = uuid.NewString()
	}
	var saved domain.ChangeStatus
	if err := s.db.QueryRow(ctx, query,
		id,
		change.TicketID,
		change.Status,
		change.ChangedBy,
		change.ChangedAt,
	).Scan(&saved.ID, &saved.TicketID, &saved.Status, &saved.ChangedBy, &saved.ChangedAt); err != nil {
		return nil, translateError(err)
	}
	return &saved, nil
}

func (s *ticketStore) ListChangeStatus(ctx context.Context, ticketID string) ([]domain.ChangeStatus, error) {
	const query = `
        SELECT id, ticket_id, status, changed_by, changed_at
        FROM ticket_status_changes WHERE ticket_id=$1 ORDER BY changed_at ASC, seq ASC`
	rows, err := s.db.Query(ctx, query, ticketID)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var result []domain.ChangeStatus
	for rows.Next() {
		var change domain.ChangeStatus
		if err := rows.Scan(
			&change.ID,
			&change.TicketID,
			&change.Status,
			&change.ChangedBy,
			&change.ChangedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, change)
	}
	return result, rows.Err()
}
