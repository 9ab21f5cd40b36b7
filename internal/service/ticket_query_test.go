package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-service/internal/domain"
	"github.com/spec-kit/helpdesk-service/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-service/pkg/util/errorutil"
)

// countingNumbers hands out 1, 2, 3... so numbers never collide in a test.
type countingNumbers struct{ n int }

func (c *countingNumbers) Next(context.Context) (int, error) {
	c.n++
	return c.n, nil
}

type queryFixture struct {
	svc     *TicketService
	tickets map[string]*domain.Ticket
}

// newQueryFixture seeds:
//
//	printer jam  c1  Assigned to t1  High
//	vpn down     c1  New             Low
//	laptop dead  c2  Assigned to t2  High
//	Printer low  c2  Closed          Medium
func newQueryFixture(t *testing.T) queryFixture {
	t.Helper()
	ctx := context.Background()
	clock := &testClock{t: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewTicketService(TicketDependencies{
		Store:   repository.NewMemoryTicketStore(),
		Numbers: &countingNumbers{},
		Clock:   clock.Now,
	})

	f := queryFixture{svc: svc, tickets: map[string]*domain.Ticket{}}
	create := func(title, priority string, caller domain.Caller) *domain.Ticket {
		ticket, err := svc.Create(ctx, &domain.Ticket{Title: title, Priority: priority}, caller)
		require.NoError(t, err)
		f.tickets[title] = ticket
		return ticket
	}
	move := func(ticket *domain.Ticket, status string, caller domain.Caller) {
		_, err := svc.ChangeStatus(ctx, ticket.ID, status, caller)
		require.NoError(t, err)
	}

	move(create("printer jam", "High", customer1), "Assigned", technician1)
	create("vpn down", "Low", customer1)
	move(create("laptop dead", "High", customer2), "Assigned", technician2)
	move(create("Printer low", "Medium", customer2), "Closed", technician1)
	return f
}

func titles(page domain.Page[domain.Ticket]) []string {
	out := make([]string, 0, len(page.Items))
	for _, ticket := range page.Items {
		out = append(out, ticket.Title)
	}
	return out
}

func TestListScoping(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		caller domain.Caller
		filter ListFilter
		want   []string
	}{
		{
			name:   "technician sees everything newest first",
			caller: technician1,
			want:   []string{"Printer low", "laptop dead", "vpn down", "printer jam"},
		},
		{
			name:   "technician assigned only",
			caller: technician1,
			filter: ListFilter{AssignedOnly: true},
			want:   []string{"printer jam"},
		},
		{
			name:   "customer sees own tickets",
			caller: customer1,
			want:   []string{"vpn down", "printer jam"},
		},
		{
			name:   "customer ignores assigned only",
			caller: customer2,
			filter: ListFilter{AssignedOnly: true},
			want:   []string{"Printer low", "laptop dead"},
		},
		{
			name:   "title filter is case insensitive",
			caller: technician2,
			filter: ListFilter{Title: "PRINTER"},
			want:   []string{"Printer low", "printer jam"},
		},
		{
			name:   "filters are combined",
			caller: technician2,
			filter: ListFilter{Title: "printer", Priority: "high"},
			want:   []string{"printer jam"},
		},
		{
			name:   "status substring",
			caller: technician2,
			filter: ListFilter{Status: "sign"},
			want:   []string{"laptop dead", "printer jam"},
		},
		{
			name:   "uninformed means no restriction",
			caller: customer1,
			filter: ListFilter{Title: Uninformed, Status: Uninformed, Priority: Uninformed},
			want:   []string{"vpn down", "printer jam"},
		},
		{
			name:   "customer filter stays inside own tickets",
			caller: customer1,
			filter: ListFilter{Title: "laptop"},
			want:   []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := f.svc.List(ctx, tt.caller, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(page))
			assert.Equal(t, len(tt.want), page.TotalItems)
		})
	}
}

func TestListNumberDominatesFiltersAndScope(t *testing.T) {
	f := newQueryFixture(t)
	target := f.tickets["laptop dead"]

	page, err := f.svc.List(context.Background(), customer1, ListFilter{
		Number:       target.Number,
		Title:        "does not match",
		Status:       "Closed",
		AssignedOnly: true,
	})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, target.ID, page.Items[0].ID)

	page, err = f.svc.List(context.Background(), technician1, ListFilter{Number: 9998})
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestListPaging(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()

	first, err := f.svc.List(ctx, technician1, ListFilter{Page: 0, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"Printer low", "laptop dead", "vpn down"}, titles(first))
	assert.Equal(t, 4, first.TotalItems)
	assert.Equal(t, 2, first.TotalPages)

	second, err := f.svc.List(ctx, technician1, ListFilter{Page: 1, PageSize: 3})
	require.NoError(t, err)
	assert.Equal(t, []string{"printer jam"}, titles(second))

	beyond, err := f.svc.List(ctx, technician1, ListFilter{Page: 5, PageSize: 3})
	require.NoError(t, err)
	assert.Empty(t, beyond.Items)

	defaulted, err := f.svc.List(ctx, technician1, ListFilter{PageSize: -1})
	require.NoError(t, err)
	assert.Equal(t, repository.DefaultPageSize, defaulted.PageSize)
}

func TestListUnknownRole(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()
	admin := domain.Caller{ID: "x", Role: "ADMIN"}

	_, err := f.svc.List(ctx, admin, ListFilter{})
	assertCode(t, err, apperrors.CodeForbidden)

	byNumber, err := f.svc.List(ctx, admin, ListFilter{Number: f.tickets["vpn down"].Number})
	require.NoError(t, err)
	assert.Equal(t, []string{"vpn down"}, titles(byNumber))
}

func TestFindByIDOrdersChanges(t *testing.T) {
	f := newQueryFixture(t)
	ctx := context.Background()
	ticket := f.tickets["vpn down"]

	for _, status := range []string{"Assigned", "Resolved", "Approved"} {
		_, err := f.svc.ChangeStatus(ctx, ticket.ID, status, technician1)
		require.NoError(t, err)
	}

	detail, err := f.svc.FindByID(ctx, ticket.ID)
	require.NoError(t, err)
	require.Len(t, detail.Changes, 3)
	for i := 1; i < len(detail.Changes); i++ {
		assert.False(t, detail.Changes[i].ChangedAt.Before(detail.Changes[i-1].ChangedAt))
	}
	assert.Equal(t, domain.TicketStatusApproved, detail.Changes[2].Status)

	_, err = f.svc.FindByID(ctx, "missing")
	assertCode(t, err, apperrors.CodeNotFound)
}
