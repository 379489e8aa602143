package entities

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCatalog() map[string]InventoryItem {
	return map[string]InventoryItem{
		"item-a": {ID: "item-a", Name: "Screen", UnitPrice: dec("30.00"), Stock: 5, Active: true},
		"item-b": {ID: "item-b", Name: "Battery", UnitPrice: dec("12.50"), Stock: 2, Active: true},
		"item-x": {ID: "item-x", Name: "Retired", UnitPrice: dec("1"), Stock: 9, Active: false},
	}
}

func testDraft() QuotationDraft {
	override := dec("10.00")
	return QuotationDraft{
		LaborDescription: "Replace screen and battery",
		Hours:            dec("1.5"),
		HourlyRate:       dec("40"),
		Lines: []LineItemInput{
			{InventoryItemID: "item-a", Quantity: 2},
			{InventoryItemID: "item-b", Quantity: 1, UnitPrice: &override},
			{InventoryItemID: "item-a", Quantity: 1},
		},
		Discount: dec("5"),
	}
}

func newTestQuotation(t *testing.T) Quotation {
	t.Helper()
	d := testDraft()
	lines, err := d.BuildLines(testCatalog())
	require.NoError(t, err)
	q, err := NewQuotation("q-1", "so-1", "tech-1", d, lines, testNow)
	require.NoError(t, err)
	return q
}

func TestNewQuotation_RecomputesTotals(t *testing.T) {
	q := newTestQuotation(t)

	assert.Equal(t, QuotationPending, q.State)
	assert.Equal(t, 1, q.Revision)
	assert.True(t, dec("60").Equal(q.LaborSubtotal), q.LaborSubtotal.String())
	// 2*30 + 1*10 + 1*30
	assert.True(t, dec("100").Equal(q.MaterialsSubtotal), q.MaterialsSubtotal.String())
	assert.True(t, dec("155").Equal(q.Total), q.Total.String())
	assert.True(t, dec("10").Equal(q.LineItems[1].UnitPrice))
}

func TestQuotation_RecomputeIgnoresStoredTotals(t *testing.T) {
	q := newTestQuotation(t)
	q.Total = dec("1")
	q.LineItems[0].Subtotal = dec("999")

	require.NoError(t, q.Recompute())
	assert.True(t, dec("155").Equal(q.Total))
	assert.True(t, dec("60").Equal(q.LineItems[0].Subtotal))
}

func TestQuotation_DiscountCannotMakeTotalNegative(t *testing.T) {
	d := testDraft()
	d.Discount = dec("1000")
	lines, err := d.BuildLines(testCatalog())
	require.NoError(t, err)

	_, err = NewQuotation("q-1", "so-1", "tech-1", d, lines, testNow)
	require.ErrorIs(t, err, ErrValidation)
}

func TestQuotationDraft_Validate(t *testing.T) {
	negative := dec("-1")
	tests := map[string]func(d *QuotationDraft){
		"short description": func(d *QuotationDraft) { d.LaborDescription = "fix" },
		"zero hours":        func(d *QuotationDraft) { d.Hours = decimal.Zero },
		"too many hours":    func(d *QuotationDraft) { d.Hours = dec("100.5") },
		"negative rate":     func(d *QuotationDraft) { d.HourlyRate = negative },
		"negative discount": func(d *QuotationDraft) { d.Discount = negative },
		"zero quantity":     func(d *QuotationDraft) { d.Lines[0].Quantity = 0 },
		"huge quantity":     func(d *QuotationDraft) { d.Lines[0].Quantity = MaxStockMovement + 1 },
		"negative price":    func(d *QuotationDraft) { d.Lines[0].UnitPrice = &negative },
		"missing item":      func(d *QuotationDraft) { d.Lines[0].InventoryItemID = " " },
		"wrapping total": func(d *QuotationDraft) {
			d.Lines = []LineItemInput{{InventoryItemID: "item-a", Quantity: math.MaxInt}, {InventoryItemID: "item-a", Quantity: 2}}
		},
		"item total above cap": func(d *QuotationDraft) {
			d.Lines = []LineItemInput{{InventoryItemID: "item-a", Quantity: MaxStockMovement}, {InventoryItemID: "item-a", Quantity: 1}}
		},
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			d := testDraft()
			mutate(&d)
			require.ErrorIs(t, d.Validate(), ErrValidation)
		})
	}
}

func TestQuotationDraft_TooManyItems(t *testing.T) {
	d := testDraft()
	d.Lines = nil
	for i := 0; i <= MaxQuotationItems; i++ {
		d.Lines = append(d.Lines, LineItemInput{InventoryItemID: string(rune('A' + i)), Quantity: 1})
	}
	require.ErrorIs(t, d.Validate(), ErrValidation)
}

func TestQuotationDraft_BuildLinesUnknownOrInactive(t *testing.T) {
	d := testDraft()
	d.Lines = []LineItemInput{{InventoryItemID: "item-x", Quantity: 1}}
	_, err := d.BuildLines(testCatalog())
	require.ErrorIs(t, err, ErrNotFound)

	d.Lines = []LineItemInput{{InventoryItemID: "nope", Quantity: 1}}
	_, err = d.BuildLines(testCatalog())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestQuotation_ReservationsAggregatePerItem(t *testing.T) {
	q := newTestQuotation(t)

	assert.Equal(t, []StockAdjustment{{ItemID: "item-a", Delta: -3}, {ItemID: "item-b", Delta: -1}}, q.Reservations())
	assert.Equal(t, []StockAdjustment{{ItemID: "item-a", Delta: 3}, {ItemID: "item-b", Delta: 1}}, q.Releases())
}

func TestQuotation_StateMachine(t *testing.T) {
	q := newTestQuotation(t)

	require.ErrorIs(t, q.Cancel(testNow), ErrInvalidTransition)
	require.NoError(t, q.Approve("rec-1", testNow))
	assert.Equal(t, "rec-1", q.ApprovedBy)
	require.NotNil(t, q.ApprovedAt)

	require.ErrorIs(t, q.Approve("rec-1", testNow), ErrInvalidTransition)
	require.ErrorIs(t, q.Reject(testNow), ErrInvalidTransition)
	require.NoError(t, q.Cancel(testNow))
	assert.Equal(t, QuotationCancelled, q.State)
	assert.False(t, q.State.HoldsStock())
}

func TestQuotation_Revise(t *testing.T) {
	q := newTestQuotation(t)
	require.NoError(t, q.Reject(testNow))

	d := testDraft()
	d.Lines = []LineItemInput{{InventoryItemID: "item-b", Quantity: 2}}
	d.Discount = decimal.Zero
	lines, err := d.BuildLines(testCatalog())
	require.NoError(t, err)

	err = q.Revise("tech-2", d, lines, testNow)
	require.ErrorIs(t, err, ErrForbidden)
	assert.Equal(t, QuotationRejected, q.State)

	require.NoError(t, q.Revise("tech-1", d, lines, testNow))
	assert.Equal(t, QuotationPending, q.State)
	assert.Equal(t, 2, q.Revision)
	assert.True(t, dec("85").Equal(q.Total), q.Total.String())

	require.ErrorIs(t, q.Revise("tech-1", d, lines, testNow), ErrInvalidTransition)
}

func TestQuotation_ReviseInvalidDraftLeavesQuotationUnchanged(t *testing.T) {
	q := newTestQuotation(t)
	require.NoError(t, q.Reject(testNow))
	before := q

	d := testDraft()
	d.Discount = dec("10000")
	lines, err := d.BuildLines(testCatalog())
	require.NoError(t, err)

	require.ErrorIs(t, q.Revise("tech-1", d, lines, testNow), ErrValidation)
	assert.Equal(t, before.Total, q.Total)
	assert.Equal(t, QuotationRejected, q.State)
}

func TestQuotation_QuantitiesClampInsteadOfWrapping(t *testing.T) {
	q := Quotation{LineItems: []LineItem{
		{InventoryItemID: "item-a", Quantity: math.MaxInt},
		{InventoryItemID: "item-a", Quantity: 2},
	}}

	assert.Equal(t, map[string]int{"item-a": math.MaxInt}, q.Quantities())
	assert.Equal(t, []StockAdjustment{{ItemID: "item-a", Delta: -math.MaxInt}}, q.Reservations())
}
