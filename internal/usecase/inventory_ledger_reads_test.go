package usecase

import (
	"context"
	"errors"
	"testing"

	"servicedesk/internal/domain/entities"
	mock_interfaces "servicedesk/internal/usecase/interfaces/mocks"

	"go.uber.org/mock/gomock"
)

func TestInventoryLedger_GetItem(t *testing.T) {
	ctx := context.Background()

	t.Run("empty id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := NewInventoryLedgerUseCase(mock_interfaces.NewMockIInventoryRepository(ctrl), nil)

		if _, err := uc.GetItem(ctx, "  "); !errors.Is(err, entities.ErrValidation) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInventoryRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "it-1").Return(entities.InventoryItem{}, nil)
		uc := NewInventoryLedgerUseCase(repo, nil)

		if _, err := uc.GetItem(ctx, "it-1"); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		repo := mock_interfaces.NewMockIInventoryRepository(ctrl)
		boom := errors.New("dynamodb down")
		repo.EXPECT().GetByID(gomock.Any(), "it-1").Return(entities.InventoryItem{}, boom)
		uc := NewInventoryLedgerUseCase(repo, nil)

		if _, err := uc.GetItem(ctx, " it-1 "); !errors.Is(err, boom) {
			t.Fatalf("expected repository error, got %v", err)
		}
	})
}

func TestInventoryLedger_LowStockFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	repo := mock_interfaces.NewMockIInventoryRepository(ctrl)
	repo.EXPECT().List(gomock.Any(), entities.InventoryFilter{LowStockOnly: true}).
		Return([]entities.InventoryItem{{ID: "it-1", Stock: 0, ReorderThreshold: 1}}, nil)
	uc := NewInventoryLedgerUseCase(repo, nil)

	items, err := uc.LowStock(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "it-1" {
		t.Fatalf("unexpected items: %+v", items)
	}
}
