package usecase

import (
	"context"
	"errors"
	"time"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"

	"github.com/google/uuid"
)

// DefaultCommitAttempts bounds how often an operation is re-planned after
// losing an optimistic version race.
const DefaultCommitAttempts = 5

var ErrUnitOfWorkNotConfigured = errors.New("unit of work not configured")

// PlanFunc loads current state and records the writes of one operation in
// cs. It runs again from scratch on every attempt, so guards always see
// fresh state.
type PlanFunc func(ctx context.Context, cs *entities.ChangeSet) error

// UnitRunner executes operations as load, plan, commit. Audit events and
// metrics are emitted only after a successful commit and never fail the
// operation.
type UnitRunner struct {
	uow         interfaces.IUnitOfWork
	audit       interfaces.IAuditSink
	metrics     interfaces.IMetricsRecorder
	now         func() time.Time
	maxAttempts int
}

func NewUnitRunner(uow interfaces.IUnitOfWork, audit interfaces.IAuditSink, metrics interfaces.IMetricsRecorder) *UnitRunner {
	return &UnitRunner{
		uow:         uow,
		audit:       audit,
		metrics:     metrics,
		now:         func() time.Time { return time.Now().UTC() },
		maxAttempts: DefaultCommitAttempts,
	}
}

// Now returns the runner clock. Plans use it for every timestamp they set.
func (r *UnitRunner) Now() time.Time {
	return r.now()
}

func (r *UnitRunner) Run(ctx context.Context, actor entities.Actor, op string, plan PlanFunc) error {
	if r == nil || r.uow == nil {
		return ErrUnitOfWorkNotConfigured
	}
	for attempt := 1; ; attempt++ {
		cs := &entities.ChangeSet{}
		if err := plan(ctx, cs); err != nil {
			return err
		}
		if err := cs.Validate(); err != nil {
			return err
		}

		err := r.uow.Commit(ctx, cs)
		if err == nil {
			r.emit(ctx, actor, cs)
			return nil
		}
		if !errors.Is(err, entities.ErrConcurrentUpdate) {
			logger.Warn(ctx).Err(err).Str("op", op).Str("actor", actor.ID).Msg("[workflow][usecase] commit failed")
			return err
		}

		if r.metrics != nil {
			r.metrics.ObserveConflict(op)
		}
		if attempt >= r.maxAttempts {
			logger.Warn(ctx).Str("op", op).Int("attempts", attempt).Msg("[workflow][usecase] giving up after version conflicts")
			return err
		}
		logger.Debug(ctx).Str("op", op).Int("attempt", attempt).Msg("[workflow][usecase] version conflict; re-planning")
	}
}

func (r *UnitRunner) emit(ctx context.Context, actor entities.Actor, cs *entities.ChangeSet) {
	now := r.now()

	if r.metrics != nil {
		for _, adj := range cs.MergedStock() {
			if adj.Delta < 0 {
				r.metrics.ObserveStockAdjustment(entities.TransitionStockReserve, -adj.Delta)
			} else {
				r.metrics.ObserveStockAdjustment(entities.TransitionStockRelease, adj.Delta)
			}
		}
	}

	for _, e := range cs.Events {
		e.ID = uuid.NewString()
		e.Actor = actor.ID
		e.ActorRole = actor.Role
		if e.Timestamp.IsZero() {
			e.Timestamp = now
		}
		if r.metrics != nil {
			r.metrics.ObserveTransition(e.Entity, e.Transition)
		}
		if r.audit == nil {
			continue
		}
		if err := r.audit.Publish(ctx, e); err != nil {
			logger.Warn(ctx).Err(err).
				Str("entity", e.Entity).
				Str("entity_id", e.EntityID).
				Str("transition", e.Transition).
				Msg("[audit][usecase] publish failed; event dropped")
		}
	}
}
