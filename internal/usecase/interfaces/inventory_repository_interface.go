package interfaces

import (
	"context"
	"servicedesk/internal/domain/entities"
)

// IInventoryRepository reads the catalog. GetMany omits ids that do not exist.
type IInventoryRepository interface {
	GetByID(ctx context.Context, id string) (entities.InventoryItem, error)
	GetMany(ctx context.Context, ids []string) (map[string]entities.InventoryItem, error)
	List(ctx context.Context, filter entities.InventoryFilter) ([]entities.InventoryItem, error)
}
