package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)

	r.ObserveTransition("service_order", "claim")
	r.ObserveTransition("service_order", "claim")
	r.ObserveStockAdjustment("stock.reserve", 3)
	r.ObserveStockAdjustment("stock.reserve", -2)
	r.ObserveConflict("quotation.approve")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.transitions.WithLabelValues("service_order", "claim")))
	assert.Equal(t, 5.0, testutil.ToFloat64(r.stockUnits.WithLabelValues("stock.reserve")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.conflicts.WithLabelValues("quotation.approve")))
}

func TestNewRecorder_DuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewRecorder(reg)
	require.NoError(t, err)

	_, err = NewRecorder(reg)
	assert.Error(t, err)
}
