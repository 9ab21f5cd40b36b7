package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-service/internal/events"
	"github.com/spec-kit/helpdesk-service/internal/observability"
)

// AuditLogService writes ticket lifecycle events to the structured log and
// counts them in metrics.
type AuditLogService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditLogService creates the service.
func NewAuditLogService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditLogService {
	return &AuditLogService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditLogService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketCreated, a.handleTicketCreated)
	a.dispatcher.Subscribe(events.EventTicketUpdated, a.handleTicketUpdated)
	a.dispatcher.Subscribe(events.EventTicketStatusChanged, a.handleTicketStatusChanged)
	a.dispatcher.Subscribe(events.EventTicketDeleted, a.handleTicketDeleted)
}

func (a *AuditLogService) handleTicketCreated(_ context.Context, event events.Event) error {
	a.logger.Info("TicketCreated", a.fields(event, zap.Any("payload", event.Payload))...)
	a.metrics.RecordEvent(string(event.Type), "")
	return nil
}

func (a *AuditLogService) handleTicketUpdated(_ context.Context, event events.Event) error {
	a.logger.Info("TicketUpdated", a.fields(event, zap.Any("payload", event.Payload))...)
	a.metrics.RecordEvent(string(event.Type), "")
	return nil
}

func (a *AuditLogService) handleTicketStatusChanged(_ context.Context, event events.Event) error {
	label := ""
	if payload, ok := event.Payload.(events.TicketStatusChangedPayload); ok {
		label = string(payload.NewStatus)
	}
	a.logger.Info("TicketStatusChanged", a.fields(event, zap.Any("payload", event.Payload))...)
	a.metrics.RecordEvent(string(event.Type), label)
	return nil
}

func (a *AuditLogService) handleTicketDeleted(_ context.Context, event events.Event) error {
	a.logger.Info("TicketDeleted", a.fields(event)...)
	a.metrics.RecordEvent(string(event.Type), "")
	return nil
}

func (a *AuditLogService) fields(event events.Event, extra ...zap.Field) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("ticket_id", event.TicketID),
		zap.String("actor", event.Actor.UserID),
		zap.String("actor_role", string(event.Actor.Role)),
		zap.Time("at", event.Timestamp),
	}
	return append(fields, extra...)
}
