package response

import (
	"time"

	"servicedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type LaborResponse struct {
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type LineItemResponse struct {
	InventoryItemID string          `json:"inventory_item_id"`
	Quantity        int             `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

type QuotationResponse struct {
	ID                string             `json:"id"`
	ServiceOrderID    string             `json:"service_order_id"`
	Labor             LaborResponse      `json:"labor"`
	Items             []LineItemResponse `json:"items"`
	LaborSubtotal     decimal.Decimal    `json:"labor_subtotal"`
	MaterialsSubtotal decimal.Decimal    `json:"materials_subtotal"`
	Discount          decimal.Decimal    `json:"discount"`
	Total             decimal.Decimal    `json:"total"`
	State             string             `json:"state"`
	Notes             string             `json:"notes,omitempty"`
	CreatedBy         string             `json:"created_by"`
	ApprovedBy        string             `json:"approved_by,omitempty"`
	CreatedAt         time.Time          `json:"created_at"`
	ApprovedAt        *time.Time         `json:"approved_at,omitempty"`
	Revision          int                `json:"revision"`
	Version           int64              `json:"version"`
	UpdatedAt         time.Time          `json:"updated_at"`
}

func FromQuotation(q entities.Quotation) QuotationResponse {
	items := make([]LineItemResponse, 0, len(q.LineItems))
	for _, li := range q.LineItems {
		items = append(items, LineItemResponse{
			InventoryItemID: li.InventoryItemID,
			Quantity:        li.Quantity,
			UnitPrice:       li.UnitPrice,
			Subtotal:        li.Subtotal,
		})
	}
	return QuotationResponse{
		ID:             q.ID,
		ServiceOrderID: q.ServiceOrderID,
		Labor: LaborResponse{
			Description: q.Labor.Description,
			Hours:       q.Labor.Hours,
			HourlyRate:  q.Labor.HourlyRate,
			Subtotal:    q.Labor.Subtotal,
		},
		Items:             items,
		LaborSubtotal:     q.LaborSubtotal,
		MaterialsSubtotal: q.MaterialsSubtotal,
		Discount:          q.Discount,
		Total:             q.Total,
		State:             string(q.State),
		Notes:             q.Notes,
		CreatedBy:         q.CreatedBy,
		ApprovedBy:        q.ApprovedBy,
		CreatedAt:         q.CreatedAt,
		ApprovedAt:        q.ApprovedAt,
		Revision:          q.Revision,
		Version:           q.Version,
		UpdatedAt:         q.UpdatedAt,
	}
}

func FromQuotations(qs []entities.Quotation) []QuotationResponse {
	out := make([]QuotationResponse, 0, len(qs))
	for _, q := range qs {
		out = append(out, FromQuotation(q))
	}
	return out
}
