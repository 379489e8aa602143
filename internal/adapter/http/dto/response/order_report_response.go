package response

import (
	"time"

	"servicedesk/internal/domain/entities"

	"github.com/shopspring/decimal"
)

type ReportLineResponse struct {
	LineItemResponse
	ItemName string `json:"item_name,omitempty"`
}

type ReportTotalsResponse struct {
	Labor     decimal.Decimal `json:"labor"`
	Materials decimal.Decimal `json:"materials"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
	Paid      decimal.Decimal `json:"paid"`
	Balance   decimal.Decimal `json:"balance"`
}

// OrderReportResponse is the final report of a finished order.
type OrderReportResponse struct {
	Order       ServiceOrderResponse `json:"order"`
	Quotation   QuotationResponse    `json:"quotation"`
	Lines       []ReportLineResponse `json:"lines"`
	Totals      ReportTotalsResponse `json:"totals"`
	Device      *DeviceResponse      `json:"device,omitempty"`
	Customer    *CustomerResponse    `json:"customer,omitempty"`
	GeneratedAt time.Time            `json:"generated_at"`
}

func FromOrderReport(r entities.OrderReport) OrderReportResponse {
	lines := make([]ReportLineResponse, 0, len(r.Lines))
	for _, l := range r.Lines {
		lines = append(lines, ReportLineResponse{
			LineItemResponse: LineItemResponse{
				InventoryItemID: l.InventoryItemID,
				Quantity:        l.Quantity,
				UnitPrice:       l.UnitPrice,
				Subtotal:        l.Subtotal,
			},
			ItemName: l.ItemName,
		})
	}
	out := OrderReportResponse{
		Order:     FromServiceOrder(r.Order),
		Quotation: FromQuotation(r.Quotation),
		Lines:     lines,
		Totals: ReportTotalsResponse{
			Labor:     r.Quotation.LaborSubtotal,
			Materials: r.Quotation.MaterialsSubtotal,
			Discount:  r.Quotation.Discount,
			Total:     r.Quotation.Total,
			Paid:      r.Order.AmountPaid,
			Balance:   r.Balance,
		},
		GeneratedAt: r.GeneratedAt,
	}
	if r.Device != nil {
		d := FromDevice(*r.Device)
		out.Device = &d
	}
	if r.Customer != nil {
		c := FromCustomer(*r.Customer)
		out.Customer = &c
	}
	return out
}
