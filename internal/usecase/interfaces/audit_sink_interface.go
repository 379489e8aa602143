package interfaces

import (
	"context"
	"servicedesk/internal/domain/entities"
)

// IAuditSink receives audit events after a commit. Publish must not block
// on the downstream system; callers log and drop its errors.
type IAuditSink interface {
	Publish(ctx context.Context, event entities.AuditEvent) error
}
