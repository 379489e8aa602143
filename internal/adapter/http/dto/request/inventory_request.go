package request

import (
	"servicedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type InventoryItemRequest struct {
	Name             string          `json:"name" binding:"required"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	ReorderThreshold *int            `json:"reorder_threshold,omitempty"`
	// InitialStock is only read on creation.
	InitialStock int `json:"initial_stock"`
}

func (r InventoryItemRequest) ToDetails() entities.ItemDetails {
	return entities.ItemDetails{
		Name:             r.Name,
		Description:      r.Description,
		Category:         entities.Category(r.Category),
		UnitPrice:        r.UnitPrice,
		ReorderThreshold: r.ReorderThreshold,
	}
}

type StockMovementRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}
