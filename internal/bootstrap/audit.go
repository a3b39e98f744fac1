package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// AuditLog registra eventos operacionais do ciclo de vida do servidor.
type AuditLog struct {
	Action  string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}

type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(_ context.Context, entry AuditLog) {
	zap.L().Named("audit").Info("evento de auditoria",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.Any("meta", entry.Meta),
	)
}
