package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

const ticketColumns = `id, number, title, description, priority, status, opened_by, assigned_user, created_at`

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type ticketStore struct {
	db dbtx
}

// NewTicketStore returns a Postgres-backed TicketStore.
func NewTicketStore(pool *pgxpool.Pool) TicketStore {
	return &ticketStore{db: pool}
}

// WithinTx runs fn against a store bound to a single transaction.
func (s *ticketStore) WithinTx(ctx context.Context, fn func(TicketStore) error) error {
	return pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		return fn(&ticketStore{db: tx})
	})
}

func (s *ticketStore) Save(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error) {
	const query = `
        INSERT INTO tickets (id, number, title, description, priority, status, opened_by, assigned_user, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        ON CONFLICT (id) DO UPDATE SET
            number=EXCLUDED.number, title=EXCLUDED.title, description=EXCLUDED.description,
            priority=EXCLUDED.priority, status=EXCLUDED.status, opened_by=EXCLUDED.opened_by,
            assigned_user=EXCLUDED.assigned_user, created_at=EXCLUDED.created_at
        RETURNING ` + ticketColumns

	id := ticket.ID
	if id == "" {
		id = uuid.NewString()
	}
	saved, err := scanTicket(s.db.QueryRow(ctx, query,
		id,
		ticket.Number,
		ticket.Title,
		ticket.Description,
		ticket.Priority,
		ticket.Status,
		ticket.OpenedBy,
		ticket.AssignedUser,
		ticket.CreatedAt,
	))
	if err != nil {
		return nil, translateError(err)
	}
	return saved, nil
}

func (s *ticketStore) FindByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := `SELECT ` + ticketColumns + ` FROM tickets WHERE id=$1`
	ticket, err := scanTicket(s.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, translateError(err)
	}
	return ticket, nil
}

func (s *ticketStore) Delete(ctx context.Context, id string) error {
	cmd, err := s.db.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return translateError(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *ticketStore) Query(ctx context.Context, q TicketQuery) (domain.Page[domain.Ticket], error) {
	where, args := ticketFilter(q)
	return s.page(ctx, where, args, q.Page, q.PageSize)
}

// ticketFilter renders the WHERE clause and positional args for q.
func ticketFilter(q TicketQuery) (string, []any) {
	clauses := []string{"1=1"}
	args := []any{}

	addLike := func(column, val string) {
		val = normalizeFilter(val)
		if val == "" {
			return
		}
		args = append(args, likePattern(val))
		clauses = append(clauses, fmt.Sprintf(`LOWER(%s) LIKE $%d ESCAPE '\'`, column, len(args)))
	}
	addLike("title", q.Title)
	addLike("status", q.Status)
	addLike("priority", q.Priority)

	switch q.Scope.Kind {
	case ScopeOpenedBy:
		args = append(args, q.Scope.UserID)
		clauses = append(clauses, fmt.Sprintf("opened_by=$%d", len(args)))
	case ScopeAssignedUser:
		args = append(args, q.Scope.UserID)
		clauses = append(clauses, fmt.Sprintf("assigned_user=$%d", len(args)))
	}
	return strings.Join(clauses, " AND "), args
}

func (s *ticketStore) FindByNumber(ctx context.Context, page, pageSize, number int) (domain.Page[domain.Ticket], error) {
	return s.page(ctx, "number=$1", []any{number}, page, pageSize)
}

func (s *ticketStore) ListAll(ctx context.Context) ([]domain.Ticket, error) {
	rows, err := s.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (s *ticketStore) page(ctx context.Context, where string, args []any, page, pageSize int) (domain.Page[domain.Ticket], error) {
	page, pageSize = NormalizePaging(page, pageSize)

	var total int
	if err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM tickets WHERE `+where, args...).Scan(&total); err != nil {
		return domain.Page[domain.Ticket]{}, translateError(err)
	}

	rows, err := s.db.Query(ctx, pageQuery(where, page, pageSize), args...)
	if err != nil {
		return domain.Page[domain.Ticket]{}, translateError(err)
	}
	defer rows.Close()

	tickets, err := scanTickets(rows)
	if err != nil {
		return domain.Page[domain.Ticket]{}, translateError(err)
	}
	return domain.NewPage(tickets, page, pageSize, total), nil
}

func pageQuery(where string, page, pageSize int) string {
	return fmt.Sprintf(`SELECT %s FROM tickets WHERE %s ORDER BY created_at DESC, id DESC LIMIT %d OFFSET %d`,
		ticketColumns, where, pageSize, page*pageSize)
}

func scanTicket(row pgx.Row) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := row.Scan(
		&ticket.ID,
		&ticket.Number,
		&ticket.Title,
		&ticket.Description,
		&ticket.Priority,
		&ticket.Status,
		&ticket.OpenedBy,
		&ticket.AssignedUser,
		&ticket.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(val string) string {
	return "%" + likeEscaper.Replace(val) + "%"
}
