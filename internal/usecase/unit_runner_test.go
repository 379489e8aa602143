package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"servicedesk/internal/domain/entities"
	mock_interfaces "servicedesk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestUnitRunner_Run(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		r := NewUnitRunner(nil, nil, nil)
		err := r.Run(context.Background(), tech1, "op", func(context.Context, *entities.ChangeSet) error { return nil })
		if !errors.Is(err, ErrUnitOfWorkNotConfigured) {
			t.Fatalf("expected ErrUnitOfWorkNotConfigured, got %v", err)
		}
	})

	t.Run("plan error is returned without commit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uow := mock_interfaces.NewMockIUnitOfWork(ctrl)
		r := NewUnitRunner(uow, nil, nil)

		err := r.Run(context.Background(), tech1, "op", func(context.Context, *entities.ChangeSet) error {
			return entities.ErrNotAvailable
		})
		if !errors.Is(err, entities.ErrNotAvailable) {
			t.Fatalf("expected ErrNotAvailable, got %v", err)
		}
	})

	t.Run("success emits stamped events and metrics", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uow := mock_interfaces.NewMockIUnitOfWork(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		metrics := mock_interfaces.NewMockIMetricsRecorder(ctrl)
		r := NewUnitRunner(uow, audit, metrics)

		uow.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil)
		metrics.EXPECT().ObserveStockAdjustment(entities.TransitionStockReserve, 2)
		metrics.EXPECT().ObserveTransition(entities.EntityServiceOrder, "claim")
		audit.EXPECT().Publish(gomock.Any(), gomock.AssignableToTypeOf(entities.AuditEvent{})).DoAndReturn(
			func(_ context.Context, e entities.AuditEvent) error {
				if e.ID == "" || e.Actor != tech1.ID || e.ActorRole != entities.RoleTechnician || e.Timestamp.IsZero() {
					t.Fatalf("event not stamped: %+v", e)
				}
				return nil
			},
		)

		err := r.Run(context.Background(), tech1, "order.claim", func(_ context.Context, cs *entities.ChangeSet) error {
			cs.AdjustStock(entities.StockAdjustment{ItemID: "a", Delta: -2})
			cs.Emit(entities.AuditEvent{Entity: entities.EntityServiceOrder, EntityID: "so-1", Transition: "claim"})
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("audit failure does not fail the operation", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uow := mock_interfaces.NewMockIUnitOfWork(ctrl)
		audit := mock_interfaces.NewMockIAuditSink(ctrl)
		r := NewUnitRunner(uow, audit, nil)

		uow.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(nil)
		audit.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		err := r.Run(context.Background(), tech1, "op", func(_ context.Context, cs *entities.ChangeSet) error {
			cs.CreateOrder(entities.ServiceOrder{ID: "so-1"})
			cs.Emit(entities.AuditEvent{Entity: entities.EntityServiceOrder, EntityID: "so-1", Transition: "create"})
			return nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("non-conflict commit error is not retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uow := mock_interfaces.NewMockIUnitOfWork(ctrl)
		r := NewUnitRunner(uow, nil, nil)
		stockErr := &entities.InsufficientStockError{ItemID: "a", Requested: 2, Available: 1}

		uow.EXPECT().Commit(gomock.Any(), gomock.Any()).Return(stockErr).Times(1)

		plans := 0
		err := r.Run(context.Background(), tech1, "op", func(_ context.Context, cs *entities.ChangeSet) error {
			plans++
			cs.AdjustStock(entities.StockAdjustment{ItemID: "a", Delta: -2})
			return nil
		})
		if !errors.Is(err, entities.ErrInsufficientStock) || plans != 1 {
			t.Fatalf("expected one plan and ErrInsufficientStock, got plans=%d err=%v", plans, err)
		}
	})

	t.Run("gives up after bounded conflicts", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uow := mock_interfaces.NewMockIUnitOfWork(ctrl)
		metrics := mock_interfaces.NewMockIMetricsRecorder(ctrl)
		r := NewUnitRunner(uow, nil, metrics)

		uow.EXPECT().Commit(gomock.Any(), gomock.Any()).
			Return(fmt.Errorf("%w: order so-1", entities.ErrConcurrentUpdate)).
			Times(DefaultCommitAttempts)
		metrics.EXPECT().ObserveConflict("order.claim").Times(DefaultCommitAttempts)

		plans := 0
		err := r.Run(context.Background(), tech1, "order.claim", func(_ context.Context, cs *entities.ChangeSet) error {
			plans++
			o := entities.ServiceOrder{ID: "so-1", Version: 1}
			cs.UpdateOrder(&o)
			return nil
		})
		if !errors.Is(err, entities.ErrConcurrentUpdate) {
			t.Fatalf("expected ErrConcurrentUpdate, got %v", err)
		}
		if plans != DefaultCommitAttempts {
			t.Fatalf("expected %d plans, got %d", DefaultCommitAttempts, plans)
		}
	})

	t.Run("invalid change set is rejected before commit", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uow := mock_interfaces.NewMockIUnitOfWork(ctrl)
		r := NewUnitRunner(uow, nil, nil)

		err := r.Run(context.Background(), tech1, "op", func(_ context.Context, cs *entities.ChangeSet) error {
			o := entities.ServiceOrder{ID: "so-1"}
			cs.UpdateOrder(&o)
			cs.UpdateOrder(&o)
			return nil
		})
		if err == nil {
			t.Fatalf("expected duplicate write error")
		}
	})
}
