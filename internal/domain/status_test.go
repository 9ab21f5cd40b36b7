package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, status := range TicketStatuses {
		got, err := ParseStatus(string(status))
		require.NoError(t, err)
		assert.Equal(t, status, got)
	}

	for _, name := range []string{"", "new", "ASSIGNED", "Reopened", " Closed"} {
		_, err := ParseStatus(name)
		assert.ErrorIs(t, err, ErrInvalidStatus, "name %q", name)
	}
}

func TestSummaryAdd(t *testing.T) {
	var s Summary
	s.Add(TicketStatusNew)
	s.Add(TicketStatusNew)
	s.Add(TicketStatusClosed)
	s.Add(TicketStatus("bogus"))

	assert.Equal(t, Summary{New: 2, Closed: 1}, s)
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 0, 10, 21)
	assert.Equal(t, 3, p.TotalPages)
	assert.NotNil(t, p.Items)

	p = NewPage([]int{1}, 0, 0, 1)
	assert.Equal(t, 0, p.TotalPages)
}
