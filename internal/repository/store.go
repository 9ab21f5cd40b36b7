package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/helpdesk-service/internal/domain"
)

var (
	// ErrNotFound is returned when a keyed record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("record already exists")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ScopeKind selects which identity column restricts a query.
type ScopeKind int

const (
	ScopeNone ScopeKind = iota
	ScopeOpenedBy
	ScopeAssignedUser
)

// Scope restricts a query to tickets linked to one user.
type Scope struct {
	Kind   ScopeKind
	UserID string
}

// TicketQuery captures text filters, identity scope and paging.
// Empty text filters match everything.
type TicketQuery struct {
	Page     int
	PageSize int
	Title    string
	Status   string
	Priority string
	Scope    Scope
}

// TicketStore is durable keyed storage for tickets and their status changes.
// Listings are ordered by creation time, most recent first.
type TicketStore interface {
	Save(ctx context.Context, ticket *domain.Ticket) (*domain.Ticket, error)
	FindByID(ctx context.Context, id string) (*domain.Ticket, error)
	Delete(ctx context.Context, id string) error
	SaveChangeStatus(ctx context.Context, change *domain.ChangeStatus) (*domain.ChangeStatus, error)
	ListChangeStatus(ctx context.Context, ticketID string) ([]domain.ChangeStatus, error)
	Query(ctx context.Context, query TicketQuery) (domain.Page[domain.Ticket], error)
	FindByNumber(ctx context.Context, page, pageSize, number int) (domain.Page[domain.Ticket], error)
	ListAll(ctx context.Context) ([]domain.Ticket, error)
}

// Transactor is implemented by stores able to run several writes atomically.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(TicketStore) error) error
}

// NormalizePaging clamps page and page size to supported values.
func NormalizePaging(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

func normalizeFilter(val string) string {
	return strings.ToLower(strings.TrimSpace(val))
}

func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrConflict
	}
	return err
}
