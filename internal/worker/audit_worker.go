package worker

import (
	"github.com/spec-kit/helpdesk-service/internal/service"
)

// StartAuditLogWorker registers audit log handlers.
func StartAuditLogWorker(auditLog *service.AuditLogService) {
	if auditLog == nil {
		return
	}
	auditLog.RegisterHandlers()
}
