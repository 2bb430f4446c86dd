package auditlog

import (
	"go.uber.org/zap"

	"inventory/pkg/apperrors"
	"inventory/pkg/models"
)

// Auditlog is the observability channel for committed writes and for
// cascade failures, which signal consistency drift between collections.
type Auditlog struct {
	logger *zap.Logger
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

func NewAuditLog(logger *zap.Logger) *Auditlog {
	return &Auditlog{logger: logger}
}

func (a *Auditlog) Log(action string, data map[string]interface{}, item Auditable) {
	view := item.CreateLogView()
	view.Action = action

	a.logger.Info("audit",
		zap.String("action", view.Action),
		zap.String("resource_type", view.ResourceType),
		zap.Int64("resource_id", view.ResourceID),
		zap.Any("data", data),
	)
}

// LogCascadeFailure records a dependent-collection write that failed after
// its trigger had already committed. The triggering caller never sees this
// error, so the log entry is the only trace of the drift.
func (a *Auditlog) LogCascadeFailure(err *apperrors.CascadeFailureError) {
	a.logger.Error("cascade failure, dependent data may be inconsistent",
		zap.String("source", err.Source),
		zap.String("target", err.Target),
		zap.Error(err.Err),
	)
}
