package audit

import (
	"context"
	"errors"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"
)

// LogSink writes events as structured log lines.
type LogSink struct{}

var _ interfaces.IAuditSink = LogSink{}

func (LogSink) Publish(ctx context.Context, e entities.AuditEvent) error {
	ev := logger.Info(ctx).
		Str("event_id", e.ID).
		Str("actor", e.Actor).
		Str("actor_role", string(e.ActorRole)).
		Str("entity", e.Entity).
		Str("entity_id", e.EntityID).
		Str("transition", e.Transition).
		Time("at", e.Timestamp)
	if e.From != "" || e.To != "" {
		ev = ev.Str("from", e.From).Str("to", e.To)
	}
	if len(e.Metadata) > 0 {
		ev = ev.Interface("metadata", e.Metadata)
	}
	ev.Msg("[audit] transition")
	return nil
}

// Fanout publishes to every sink and joins their errors.
type Fanout []interfaces.IAuditSink

var _ interfaces.IAuditSink = Fanout(nil)

func (f Fanout) Publish(ctx context.Context, e entities.AuditEvent) error {
	var errs []error
	for _, s := range f {
		if err := s.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
