package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderReport is the read-only projection of a finished order that the
// report renderer consumes. Device and Customer are nil when the order's
// device is no longer in the registry.
type OrderReport struct {
	Order       ServiceOrder
	Quotation   Quotation
	Lines       []ReportLine
	Device      *Device
	Customer    *Customer
	Balance     decimal.Decimal
	GeneratedAt time.Time
}

// ReportLine is a quotation line with the catalog name of its item.
type ReportLine struct {
	LineItem
	ItemName string
}

// NewOrderReport projects o and its approved quotation q. names maps
// inventory item ids to catalog names; unknown ids keep an empty name.
func NewOrderReport(o ServiceOrder, q Quotation, names map[string]string, at time.Time) (OrderReport, error) {
	if !o.Active || o.State != OrderFinished {
		state := string(o.State)
		if !o.Active {
			state = "inactive"
		}
		return OrderReport{}, &TransitionError{Entity: EntityServiceOrder, State: state, Event: "report"}
	}
	if q.ID != o.LiveQuotationID || q.ServiceOrderID != o.ID || q.State != QuotationApproved {
		return OrderReport{}, &TransitionError{Entity: EntityQuotation, State: string(q.State), Event: "report"}
	}

	lines := make([]ReportLine, 0, len(q.LineItems))
	for _, l := range q.LineItems {
		lines = append(lines, ReportLine{LineItem: l, ItemName: names[l.InventoryItemID]})
	}
	return OrderReport{
		Order:       o,
		Quotation:   q,
		Lines:       lines,
		Balance:     q.Total.Sub(o.AmountPaid),
		GeneratedAt: at,
	}, nil
}
