package usecase

import (
	"context"
	"strconv"
	"strings"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"

	"github.com/google/uuid"
)

// IInventoryLedgerUseCase owns stock counts and the admin catalog.
//
// Reserve and Release are the standalone ledger operations; quotation
// transitions plan the same adjustments inside their own unit of work.
type IInventoryLedgerUseCase interface {
	Reserve(ctx context.Context, actor entities.Actor, itemID string, qty int) (entities.InventoryItem, error)
	Release(ctx context.Context, actor entities.Actor, itemID string, qty int) (entities.InventoryItem, error)
	CreateItem(ctx context.Context, actor entities.Actor, d entities.ItemDetails, initialStock int) (entities.InventoryItem, error)
	UpdateItem(ctx context.Context, actor entities.Actor, id string, d entities.ItemDetails) (entities.InventoryItem, error)
	DeactivateItem(ctx context.Context, actor entities.Actor, id string) error
	GetItem(ctx context.Context, id string) (entities.InventoryItem, error)
	ListItems(ctx context.Context, filter entities.InventoryFilter) ([]entities.InventoryItem, error)
	LowStock(ctx context.Context) ([]entities.InventoryItem, error)
}

type InventoryLedgerUseCase struct {
	items  interfaces.IInventoryRepository
	runner *UnitRunner
	newID  func() string
}

var _ IInventoryLedgerUseCase = (*InventoryLedgerUseCase)(nil)

func NewInventoryLedgerUseCase(items interfaces.IInventoryRepository, runner *UnitRunner) *InventoryLedgerUseCase {
	return &InventoryLedgerUseCase{items: items, runner: runner, newID: uuid.NewString}
}

func (l *InventoryLedgerUseCase) Reserve(ctx context.Context, actor entities.Actor, itemID string, qty int) (entities.InventoryItem, error) {
	if err := validateMovement(qty); err != nil {
		return entities.InventoryItem{}, err
	}
	return l.adjust(ctx, actor, "inventory.reserve", itemID, -qty)
}

// Release puts qty units back into stock. Admin restocking uses it too.
func (l *InventoryLedgerUseCase) Release(ctx context.Context, actor entities.Actor, itemID string, qty int) (entities.InventoryItem, error) {
	if err := validateMovement(qty); err != nil {
		return entities.InventoryItem{}, err
	}
	return l.adjust(ctx, actor, "inventory.release", itemID, qty)
}

func validateMovement(qty int) error {
	if qty < 1 || qty > entities.MaxStockMovement {
		return entities.NewValidationError("quantity", "must be between 1 and 1000000")
	}
	return nil
}

func (l *InventoryLedgerUseCase) adjust(ctx context.Context, actor entities.Actor, op, itemID string, delta int) (entities.InventoryItem, error) {
	if err := requireRole(actor, entities.RoleAdmin); err != nil {
		return entities.InventoryItem{}, err
	}
	itemID = strings.TrimSpace(itemID)
	if itemID == "" {
		return entities.InventoryItem{}, entities.NewValidationError("inventory_item_id", "is required")
	}

	err := l.runner.Run(ctx, actor, op, func(ctx context.Context, cs *entities.ChangeSet) error {
		catalog, err := l.catalog(ctx, []string{itemID})
		if err != nil {
			return err
		}
		return planStock(cs, catalog, []entities.StockAdjustment{{ItemID: itemID, Delta: delta}})
	})
	if err != nil {
		return entities.InventoryItem{}, err
	}
	logger.Info(ctx).Str("item_id", itemID).Int("delta", delta).Str("actor", actor.ID).Msg("[inventory][usecase] stock adjusted")
	return l.items.GetByID(ctx, itemID)
}

func (l *InventoryLedgerUseCase) CreateItem(ctx context.Context, actor entities.Actor, d entities.ItemDetails, initialStock int) (entities.InventoryItem, error) {
	if err := requireRole(actor, entities.RoleAdmin); err != nil {
		return entities.InventoryItem{}, err
	}
	item, err := entities.NewInventoryItem(l.newID(), d, initialStock, l.runner.Now())
	if err != nil {
		return entities.InventoryItem{}, err
	}
	err = l.runner.Run(ctx, actor, "inventory.create", func(ctx context.Context, cs *entities.ChangeSet) error {
		cs.CreateItem(item)
		cs.Emit(entities.AuditEvent{
			Entity:     entities.EntityInventoryItem,
			EntityID:   item.ID,
			Transition: entities.TransitionCreate,
			To:         strconv.Itoa(item.Stock),
			Metadata:   map[string]string{"name": item.Name},
		})
		return nil
	})
	if err != nil {
		return entities.InventoryItem{}, err
	}
	item.Version = 1
	return item, nil
}

func (l *InventoryLedgerUseCase) UpdateItem(ctx context.Context, actor entities.Actor, id string, d entities.ItemDetails) (entities.InventoryItem, error) {
	if err := requireRole(actor, entities.RoleAdmin); err != nil {
		return entities.InventoryItem{}, err
	}
	var updated entities.InventoryItem
	err := l.runner.Run(ctx, actor, "inventory.update", func(ctx context.Context, cs *entities.ChangeSet) error {
		item, err := l.GetItem(ctx, id)
		if err != nil {
			return err
		}
		if err := item.Update(d, l.runner.Now()); err != nil {
			return err
		}
		cs.UpdateItem(&item)
		cs.Emit(entities.AuditEvent{
			Entity:     entities.EntityInventoryItem,
			EntityID:   item.ID,
			Transition: entities.TransitionUpdate,
			Metadata:   map[string]string{"name": item.Name, "unit_price": item.UnitPrice.StringFixed(2)},
		})
		updated = item
		return nil
	})
	return updated, err
}

func (l *InventoryLedgerUseCase) DeactivateItem(ctx context.Context, actor entities.Actor, id string) error {
	if err := requireRole(actor, entities.RoleAdmin); err != nil {
		return err
	}
	return l.runner.Run(ctx, actor, "inventory.delete", func(ctx context.Context, cs *entities.ChangeSet) error {
		item, err := l.GetItem(ctx, id)
		if err != nil {
			return err
		}
		if err := item.Deactivate(l.runner.Now()); err != nil {
			return err
		}
		cs.UpdateItem(&item)
		cs.Emit(entities.AuditEvent{
			Entity:     entities.EntityInventoryItem,
			EntityID:   item.ID,
			Transition: entities.TransitionDelete,
		})
		return nil
	})
}

func (l *InventoryLedgerUseCase) GetItem(ctx context.Context, id string) (entities.InventoryItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.InventoryItem{}, entities.NewValidationError("inventory_item_id", "is required")
	}
	item, err := l.items.GetByID(ctx, id)
	if err != nil {
		return entities.InventoryItem{}, err
	}
	if !item.Exists() {
		return entities.InventoryItem{}, &entities.NotFoundError{Entity: entities.EntityInventoryItem, ID: id}
	}
	return item, nil
}

func (l *InventoryLedgerUseCase) ListItems(ctx context.Context, filter entities.InventoryFilter) ([]entities.InventoryItem, error) {
	return l.items.List(ctx, filter)
}

func (l *InventoryLedgerUseCase) LowStock(ctx context.Context) ([]entities.InventoryItem, error) {
	return l.items.List(ctx, entities.InventoryFilter{LowStockOnly: true})
}

// catalog loads the referenced items, failing with NotFound for any id that
// does not exist.
func (l *InventoryLedgerUseCase) catalog(ctx context.Context, ids []string) (map[string]entities.InventoryItem, error) {
	items, err := l.items.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := items[id]; !ok {
			return nil, &entities.NotFoundError{Entity: entities.EntityInventoryItem, ID: id}
		}
	}
	return items, nil
}

// planStock records adjustments in cs after checking them against the
// loaded snapshot. The snapshot check only fails fast; storage re-checks
// every reservation at commit time.
func planStock(cs *entities.ChangeSet, catalog map[string]entities.InventoryItem, adjustments []entities.StockAdjustment) error {
	for _, adj := range adjustments {
		item, ok := catalog[adj.ItemID]
		if !ok {
			return &entities.NotFoundError{Entity: entities.EntityInventoryItem, ID: adj.ItemID}
		}
		if adj.Delta < 0 && !item.Active {
			return &entities.NotFoundError{Entity: entities.EntityInventoryItem, ID: adj.ItemID}
		}
		before := item.Stock
		wasLow := item.LowStock()
		if err := item.ApplyStock(adj.Delta); err != nil {
			return err
		}

		transition := entities.TransitionStockRelease
		if adj.Delta < 0 {
			transition = entities.TransitionStockReserve
		}
		cs.AdjustStock(adj)
		cs.Emit(stockEvent(item, transition, before, item.Stock))
		if !wasLow && item.LowStock() {
			cs.Emit(stockEvent(item, entities.TransitionStockLow, before, item.Stock))
		}
		catalog[adj.ItemID] = item
	}
	return nil
}
