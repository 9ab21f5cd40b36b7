package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
	"github.com/spec-kit/helpdesk-service/internal/repository"
)

func TestAuditLogRecordsLifecycle(t *testing.T) {
	ctx := context.Background()
	core, logs := observer.New(zap.InfoLevel)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditLogService(dispatcher, zap.New(core), metrics).RegisterHandlers()

	svc := NewTicketService(TicketDependencies{Store: repository.NewMemoryTicketStore(), Dispatcher: dispatcher})
	created := mustCreate(t, svc, "printer jam", customer1)
	_, err := svc.ChangeStatus(ctx, created.ID, "Assigned", technician1)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, created.ID, technician1))

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "TicketCreated", entries[0].Message)
	assert.Equal(t, "TicketStatusChanged", entries[1].Message)
	assert.Equal(t, "TicketDeleted", entries[2].Message)
	assert.Equal(t, created.ID, entries[1].ContextMap()["ticket_id"])
	assert.Equal(t, "t1", entries[1].ContextMap()["actor"])

	snapshot := metrics.Snapshot()
	assert.Equal(t, int64(1), snapshot.Events["ticket_status_changed|Assigned"])
	assert.Equal(t, int64(1), snapshot.Events["ticket_created"])
}
