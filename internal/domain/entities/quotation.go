package entities

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

const EntityQuotation = "quotation"

const (
	MinLaborDescriptionLength = 10
	MaxLaborDescriptionLength = 500
	MaxQuotationItems         = 25
)

var maxLaborHours = decimal.NewFromInt(100)

type QuotationState string

const (
	QuotationPending   QuotationState = "pending"
	QuotationApproved  QuotationState = "approved"
	QuotationRejected  QuotationState = "rejected"
	QuotationCancelled QuotationState = "cancelled"
)

func (s QuotationState) Valid() bool {
	switch s {
	case QuotationPending, QuotationApproved, QuotationRejected, QuotationCancelled:
		return true
	}
	return false
}

type QuotationEvent string

const (
	QuotationEventApprove QuotationEvent = "approve"
	QuotationEventReject  QuotationEvent = "reject"
	QuotationEventCancel  QuotationEvent = "cancel"
	QuotationEventRevise  QuotationEvent = "revise"
)

var quotationTransitions = map[QuotationState]map[QuotationEvent]QuotationState{
	QuotationPending: {
		QuotationEventApprove: QuotationApproved,
		QuotationEventReject:  QuotationRejected,
	},
	QuotationApproved: {
		QuotationEventCancel: QuotationCancelled,
	},
	QuotationRejected: {
		QuotationEventRevise: QuotationPending,
	},
}

func (s QuotationState) Next(e QuotationEvent) (QuotationState, error) {
	if to, ok := quotationTransitions[s][e]; ok {
		return to, nil
	}
	return s, &TransitionError{Entity: EntityQuotation, State: string(s), Event: string(e)}
}

// HoldsStock reports whether quotations in state s keep their line item
// quantities out of inventory.
func (s QuotationState) HoldsStock() bool {
	return s == QuotationPending || s == QuotationApproved
}

type Labor struct {
	Description string
	Hours       decimal.Decimal
	HourlyRate  decimal.Decimal
	Subtotal    decimal.Decimal
}

type LineItem struct {
	InventoryItemID string
	Quantity        int
	UnitPrice       decimal.Decimal
	Subtotal        decimal.Decimal
}

type Quotation struct {
	ID                string
	ServiceOrderID    string
	Labor             Labor
	LineItems         []LineItem
	LaborSubtotal     decimal.Decimal
	MaterialsSubtotal decimal.Decimal
	Discount          decimal.Decimal
	Total             decimal.Decimal
	State             QuotationState
	Notes             string
	CreatedBy         string
	ApprovedBy        string
	CreatedAt         time.Time
	ApprovedAt        *time.Time
	Revision          int
	Version           int64
	UpdatedAt         time.Time
}

func (q Quotation) Exists() bool {
	return q.ID != ""
}

// LineItemInput is a requested line. A nil UnitPrice takes the catalog price
// of the inventory item.
type LineItemInput struct {
	InventoryItemID string
	Quantity        int
	UnitPrice       *decimal.Decimal
}

// QuotationDraft is the technician's input for a new or revised quotation.
// Client totals are never part of it.
type QuotationDraft struct {
	LaborDescription string
	Hours            decimal.Decimal
	HourlyRate       decimal.Decimal
	Lines            []LineItemInput
	Discount         decimal.Decimal
	Notes            string
}

// ItemIDs returns the distinct inventory item ids referenced by the draft in
// ascending order.
func (d QuotationDraft) ItemIDs() []string {
	seen := make(map[string]struct{}, len(d.Lines))
	ids := make([]string, 0, len(d.Lines))
	for _, l := range d.Lines {
		if _, ok := seen[l.InventoryItemID]; ok {
			continue
		}
		seen[l.InventoryItemID] = struct{}{}
		ids = append(ids, l.InventoryItemID)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks the draft fields that do not depend on the catalog.
func (d QuotationDraft) Validate() error {
	desc := strings.TrimSpace(d.LaborDescription)
	n := utf8.RuneCountInString(desc)
	if n < MinLaborDescriptionLength || n > MaxLaborDescriptionLength {
		return NewValidationError("labor.description", "must be between 10 and 500 characters")
	}
	if !d.Hours.IsPositive() || d.Hours.GreaterThan(maxLaborHours) {
		return NewValidationError("labor.hours", "must be greater than 0 and at most 100")
	}
	if d.HourlyRate.IsNegative() {
		return NewValidationError("labor.hourly_rate", "must not be negative")
	}
	if d.Discount.IsNegative() {
		return NewValidationError("discount", "must not be negative")
	}
	if utf8.RuneCountInString(strings.TrimSpace(d.Notes)) > MaxNotesLength {
		return NewValidationError("notes", "must not exceed 1000 characters")
	}
	for _, l := range d.Lines {
		if strings.TrimSpace(l.InventoryItemID) == "" {
			return NewValidationError("line_items.inventory_item_id", "is required")
		}
		if l.Quantity < 1 || l.Quantity > MaxStockMovement {
			return NewValidationError("line_items.quantity", "must be between 1 and 1000000")
		}
		if l.UnitPrice != nil && l.UnitPrice.IsNegative() {
			return NewValidationError("line_items.unit_price", "must not be negative")
		}
	}
	if len(d.ItemIDs()) > MaxQuotationItems {
		return NewValidationError("line_items", "must reference at most 25 distinct inventory items")
	}
	perItem := make(map[string]int, len(d.Lines))
	for _, l := range d.Lines {
		perItem[l.InventoryItemID] = addQuantity(perItem[l.InventoryItemID], l.Quantity)
		if perItem[l.InventoryItemID] > MaxStockMovement {
			return NewValidationError("line_items.quantity", "total per inventory item must not exceed 1000000")
		}
	}
	return nil
}

// BuildLines resolves the draft lines against the catalog. Items missing
// from catalog or inactive are reported as not found.
func (d QuotationDraft) BuildLines(catalog map[string]InventoryItem) ([]LineItem, error) {
	lines := make([]LineItem, 0, len(d.Lines))
	for _, in := range d.Lines {
		item, ok := catalog[in.InventoryItemID]
		if !ok || !item.Active {
			return nil, &NotFoundError{Entity: EntityInventoryItem, ID: in.InventoryItemID}
		}
		price := item.UnitPrice
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		lines = append(lines, LineItem{
			InventoryItemID: in.InventoryItemID,
			Quantity:        in.Quantity,
			UnitPrice:       price,
		})
	}
	return lines, nil
}

// NewQuotation builds a pending quotation from a validated draft and its
// resolved lines.
func NewQuotation(id, orderID, createdBy string, d QuotationDraft, lines []LineItem, now time.Time) (Quotation, error) {
	if err := d.Validate(); err != nil {
		return Quotation{}, err
	}
	q := Quotation{
		ID:             id,
		ServiceOrderID: orderID,
		State:          QuotationPending,
		CreatedBy:      createdBy,
		CreatedAt:      now,
		Revision:       1,
		UpdatedAt:      now,
	}
	q.setContent(d, lines)
	if err := q.Recompute(); err != nil {
		return Quotation{}, err
	}
	return q, nil
}

func (q *Quotation) setContent(d QuotationDraft, lines []LineItem) {
	q.Labor = Labor{
		Description: strings.TrimSpace(d.LaborDescription),
		Hours:       d.Hours,
		HourlyRate:  d.HourlyRate,
	}
	q.LineItems = lines
	q.Discount = d.Discount
	q.Notes = strings.TrimSpace(d.Notes)
}

// Recompute derives every subtotal and the total from labor and line items.
// Stored totals are never trusted.
func (q *Quotation) Recompute() error {
	q.Labor.Subtotal = q.Labor.Hours.Mul(q.Labor.HourlyRate).Round(2)
	q.LaborSubtotal = q.Labor.Subtotal

	materials := decimal.Zero
	for i := range q.LineItems {
		li := &q.LineItems[i]
		li.Subtotal = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity))).Round(2)
		materials = materials.Add(li.Subtotal)
	}
	q.MaterialsSubtotal = materials

	total := q.LaborSubtotal.Add(q.MaterialsSubtotal).Sub(q.Discount)
	if total.IsNegative() {
		return NewValidationError("discount", "must not exceed labor and materials subtotals")
	}
	q.Total = total
	return nil
}

// Quantities aggregates line item quantities per inventory item.
func (q Quotation) Quantities() map[string]int {
	out := make(map[string]int, len(q.LineItems))
	for _, li := range q.LineItems {
		out[li.InventoryItemID] = addQuantity(out[li.InventoryItemID], li.Quantity)
	}
	return out
}

// Reservations returns the stock adjustments that take the quotation's
// quantities out of inventory.
func (q Quotation) Reservations() []StockAdjustment {
	return q.adjustments(-1)
}

// Releases returns the stock adjustments that give the quantities back.
func (q Quotation) Releases() []StockAdjustment {
	return q.adjustments(1)
}

func (q Quotation) adjustments(sign int) []StockAdjustment {
	qty := q.Quantities()
	out := make([]StockAdjustment, 0, len(qty))
	for id, n := range qty {
		if sign < 0 {
			n = -n
		}
		out = append(out, StockAdjustment{ItemID: id, Delta: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (q *Quotation) transition(e QuotationEvent, at time.Time) error {
	next, err := q.State.Next(e)
	if err != nil {
		return err
	}
	q.State = next
	q.UpdatedAt = at
	return nil
}

func (q *Quotation) Approve(approvedBy string, at time.Time) error {
	if err := q.transition(QuotationEventApprove, at); err != nil {
		return err
	}
	q.ApprovedBy = approvedBy
	q.ApprovedAt = timePtr(at)
	return nil
}

func (q *Quotation) Reject(at time.Time) error {
	return q.transition(QuotationEventReject, at)
}

func (q *Quotation) Cancel(at time.Time) error {
	return q.transition(QuotationEventCancel, at)
}

// Revise replaces the content of a rejected quotation and returns it to
// pending. Only the technician who created it may revise it.
func (q *Quotation) Revise(actorID string, d QuotationDraft, lines []LineItem, at time.Time) error {
	if q.CreatedBy != actorID {
		return Forbidden("only the creator of quotation %s may revise it", q.ID)
	}
	if _, err := q.State.Next(QuotationEventRevise); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	revised := *q
	revised.setContent(d, lines)
	if err := revised.Recompute(); err != nil {
		return err
	}
	if err := revised.transition(QuotationEventRevise, at); err != nil {
		return err
	}
	revised.ApprovedBy = ""
	revised.ApprovedAt = nil
	revised.Revision++
	*q = revised
	return nil
}

// QuotationFilter narrows quotation listings.
type QuotationFilter struct {
	ServiceOrderID string
	State          QuotationState
}

func (f QuotationFilter) Matches(q Quotation) bool {
	if f.ServiceOrderID != "" && q.ServiceOrderID != f.ServiceOrderID {
		return false
	}
	if f.State != "" && q.State != f.State {
		return false
	}
	return true
}
