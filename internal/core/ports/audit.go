package ports

import (
	"context"

	"github.com/studentdiscount/marketplace-api/internal/core/domain"
)

// AuditRecorder persists a single audit event.
type AuditRecorder interface {
	Record(ctx context.Context, event *domain.AuditEvent) error
}

// AuditEmitter is the fire-and-forget side services use. Emit must never
// block the request path beyond the dispatcher's channel buffer.
type AuditEmitter interface {
	Emit(event domain.AuditEvent)
}
