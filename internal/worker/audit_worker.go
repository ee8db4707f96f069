package worker

import (
	"github.com/lrms/workforce-service/internal/service"
)

// StartAuditWorker subscribes the audit trail to user lifecycle events.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
