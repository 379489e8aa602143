package request

import (
	"servicedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type LineItemRequest struct {
	InventoryItemID string `json:"inventory_item_id"`
	Quantity        int    `json:"quantity"`
	// UnitPrice overrides the catalog price when set.
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// QuotationRequest is a technician's quotation draft. Totals are computed
// server side; any total sent by the client is ignored.
type QuotationRequest struct {
	LaborDescription string            `json:"labor_description"`
	Hours            decimal.Decimal   `json:"hours"`
	HourlyRate       decimal.Decimal   `json:"hourly_rate"`
	Discount         decimal.Decimal   `json:"discount"`
	Notes            string            `json:"notes"`
	Items            []LineItemRequest `json:"items"`
}

func (r QuotationRequest) ToDraft() entities.QuotationDraft {
	lines := make([]entities.LineItemInput, 0, len(r.Items))
	for _, it := range r.Items {
		lines = append(lines, entities.LineItemInput{
			InventoryItemID: it.InventoryItemID,
			Quantity:        it.Quantity,
			UnitPrice:       it.UnitPrice,
		})
	}
	return entities.QuotationDraft{
		LaborDescription: r.LaborDescription,
		Hours:            r.Hours,
		HourlyRate:       r.HourlyRate,
		Lines:            lines,
		Discount:         r.Discount,
		Notes:            r.Notes,
	}
}
