package entities

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeSet_UpdateBumpsVersion(t *testing.T) {
	var cs ChangeSet
	o := ServiceOrder{ID: "so-1", Version: 3}

	cs.UpdateOrder(&o)

	assert.Equal(t, int64(4), o.Version)
	require.Len(t, cs.Orders, 1)
	assert.Equal(t, int64(3), cs.Orders[0].ExpectedVersion)
	assert.Equal(t, int64(4), cs.Orders[0].Order.Version)
}

func TestChangeSet_MergedStock(t *testing.T) {
	var cs ChangeSet
	cs.AdjustStock(
		StockAdjustment{ItemID: "b", Delta: -2},
		StockAdjustment{ItemID: "a", Delta: -1},
		StockAdjustment{ItemID: "b", Delta: 1},
		StockAdjustment{ItemID: "c", Delta: 2},
		StockAdjustment{ItemID: "c", Delta: -2},
	)

	assert.Equal(t, []StockAdjustment{{ItemID: "a", Delta: -1}, {ItemID: "b", Delta: -1}}, cs.MergedStock())
	assert.Equal(t, 2, cs.OperationCount())
}

func TestChangeSet_MergedStockClamps(t *testing.T) {
	var cs ChangeSet
	cs.AdjustStock(
		StockAdjustment{ItemID: "a", Delta: math.MaxInt},
		StockAdjustment{ItemID: "a", Delta: 5},
		StockAdjustment{ItemID: "b", Delta: math.MinInt},
		StockAdjustment{ItemID: "b", Delta: -1},
	)

	assert.Equal(t, []StockAdjustment{{ItemID: "a", Delta: math.MaxInt}, {ItemID: "b", Delta: math.MinInt}}, cs.MergedStock())
}

func TestChangeSet_Validate(t *testing.T) {
	var cs ChangeSet
	cs.CreateItem(InventoryItem{ID: "a"})
	cs.AdjustStock(StockAdjustment{ItemID: "a", Delta: 1})
	require.Error(t, cs.Validate())

	cs = ChangeSet{}
	for i := 0; i <= MaxChangeSetOperations; i++ {
		cs.AddPayment(BillingPayment{ID: string(rune(0x100 + i))})
	}
	require.ErrorIs(t, cs.Validate(), ErrValidation)

	cs = ChangeSet{}
	assert.True(t, cs.Empty())
	cs.CreateOrder(ServiceOrder{ID: "so-1"})
	require.NoError(t, cs.Validate())
	assert.Equal(t, int64(1), cs.Orders[0].Order.Version)
}
