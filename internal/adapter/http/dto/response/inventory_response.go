package response

import (
	"time"

	"servicedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type InventoryItemResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Category         string          `json:"category"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	Stock            int             `json:"stock"`
	ReorderThreshold int             `json:"reorder_threshold"`
	LowStock         bool            `json:"low_stock"`
	Active           bool            `json:"active"`
	Version          int64           `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

func FromInventoryItem(i entities.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ID:               i.ID,
		Name:             i.Name,
		Description:      i.Description,
		Category:         string(i.Category),
		UnitPrice:        i.UnitPrice,
		Stock:            i.Stock,
		ReorderThreshold: i.ReorderThreshold,
		LowStock:         i.LowStock(),
		Active:           i.Active,
		Version:          i.Version,
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

func FromInventoryItems(items []entities.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, 0, len(items))
	for _, i := range items {
		out = append(out, FromInventoryItem(i))
	}
	return out
}
