package entities

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newTestOrder(t *testing.T) ServiceOrder {
	t.Helper()
	o, err := NewServiceOrder("so-1", OrderDetails{DeviceRef: "dev-1", ServiceType: ServiceTypeRepair}, "rec-1", testNow)
	require.NoError(t, err)
	return o
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewServiceOrder(t *testing.T) {
	o := newTestOrder(t)

	assert.Equal(t, OrderPending, o.State)
	assert.Equal(t, PaymentUnpaid, o.PaymentState)
	assert.Equal(t, PriorityMedium, o.Priority)
	assert.True(t, o.Active)
	assert.Empty(t, o.AssignedTechnicianID)
	assert.True(t, o.AmountPaid.IsZero())
}

func TestNewServiceOrder_Validation(t *testing.T) {
	cases := map[string]OrderDetails{
		"missing device":   {ServiceType: ServiceTypeRepair},
		"bad service type": {DeviceRef: "d", ServiceType: "wash"},
		"bad priority":     {DeviceRef: "d", ServiceType: ServiceTypeRepair, Priority: "asap"},
	}
	for name, d := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NewServiceOrder("so", d, "rec", testNow)
			require.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestOrderState_Next(t *testing.T) {
	tests := []struct {
		from  OrderState
		event OrderEvent
		to    OrderState
		ok    bool
	}{
		{OrderPending, OrderEventClaim, OrderAssigned, true},
		{OrderAssigned, OrderEventSubmitQuotation, OrderQuoted, true},
		{OrderQuoted, OrderEventApproveQuotation, OrderApproved, true},
		{OrderQuoted, OrderEventRejectQuotation, OrderAssigned, true},
		{OrderApproved, OrderEventCancelQuotation, OrderAssigned, true},
		{OrderApproved, OrderEventStartWork, OrderInProgress, true},
		{OrderApproved, OrderEventFinalize, OrderFinished, true},
		{OrderInProgress, OrderEventFinalize, OrderFinished, true},
		{OrderPending, OrderEventFinalize, OrderPending, false},
		{OrderQuoted, OrderEventSubmitQuotation, OrderQuoted, false},
		{OrderFinished, OrderEventCancelQuotation, OrderFinished, false},
		{OrderInProgress, OrderEventCancelQuotation, OrderInProgress, false},
	}
	for _, tt := range tests {
		got, err := tt.from.Next(tt.event)
		if tt.ok {
			require.NoError(t, err, "%s --%s-->", tt.from, tt.event)
		} else {
			require.ErrorIs(t, err, ErrInvalidTransition, "%s --%s-->", tt.from, tt.event)
		}
		assert.Equal(t, tt.to, got)
	}
}

func TestServiceOrder_Claim(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Claim("tech-1", testNow))

	assert.Equal(t, OrderAssigned, o.State)
	assert.Equal(t, "tech-1", o.AssignedTechnicianID)
	require.NotNil(t, o.AssignedAt)

	err := o.Claim("tech-2", testNow)
	require.ErrorIs(t, err, ErrAlreadyAssigned)
	assert.Equal(t, "tech-1", o.AssignedTechnicianID)
}

func TestServiceOrder_ClaimNotAvailable(t *testing.T) {
	o := newTestOrder(t)
	o.State = OrderFinished

	require.ErrorIs(t, o.Claim("tech-1", testNow), ErrNotAvailable)
}

func TestServiceOrder_FinalizePendingLeavesOrderUnchanged(t *testing.T) {
	o := newTestOrder(t)
	before := o

	err := o.Finalize("replaced the screen assembly", testNow.Add(time.Hour))

	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, before, o)
}

func TestServiceOrder_FinalizeShortWorkIsValidationError(t *testing.T) {
	o := newTestOrder(t)
	o.State = OrderInProgress

	err := o.Finalize("  fixed  ", testNow)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "work_performed", verr.Field)
	assert.Equal(t, OrderInProgress, o.State)
}

func TestServiceOrder_FullLifecycle(t *testing.T) {
	o := newTestOrder(t)
	total := dec("100.00")

	require.NoError(t, o.Claim("tech-1", testNow))
	require.NoError(t, o.SubmitQuotation("q-1", testNow))
	assert.Equal(t, "q-1", o.LiveQuotationID)
	require.NoError(t, o.ApproveQuotation(total, testNow))
	require.NotNil(t, o.StartedAt)
	require.NoError(t, o.StartWork(testNow))
	require.NoError(t, o.Finalize("replaced the battery and cleaned contacts", testNow))

	assert.Equal(t, OrderFinished, o.State)
	assert.Equal(t, "replaced the battery and cleaned contacts", o.WorkPerformed)
	require.NotNil(t, o.FinishedAt)

	require.NoError(t, o.Deliver(testNow))
	require.NotNil(t, o.DeliveredAt)
	require.ErrorIs(t, o.Deliver(testNow), ErrInvalidTransition)
}

func TestServiceOrder_RejectAndCancelClearLiveQuotation(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Claim("tech-1", testNow))
	require.NoError(t, o.SubmitQuotation("q-1", testNow))
	require.NoError(t, o.RejectQuotation(testNow))
	assert.Equal(t, OrderAssigned, o.State)
	assert.Empty(t, o.LiveQuotationID)

	require.NoError(t, o.SubmitQuotation("q-2", testNow))
	require.NoError(t, o.ApproveQuotation(dec("50"), testNow))
	require.NoError(t, o.RecordPayment(dec("50"), ptrDec(dec("50")), testNow))
	assert.Equal(t, PaymentPaid, o.PaymentState)

	require.NoError(t, o.CancelQuotation(testNow))
	assert.Equal(t, OrderAssigned, o.State)
	assert.Empty(t, o.LiveQuotationID)
	assert.Equal(t, PaymentUnpaid, o.PaymentState)
}

func TestServiceOrder_RecordPayment(t *testing.T) {
	o := newTestOrder(t)
	total := dec("100.00")

	require.NoError(t, o.RecordPayment(dec("40.00"), &total, testNow))
	assert.Equal(t, PaymentPartial, o.PaymentState)

	require.NoError(t, o.RecordPayment(dec("100.00"), &total, testNow))
	assert.Equal(t, PaymentPaid, o.PaymentState)

	err := o.RecordPayment(dec("-1"), &total, testNow)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "100", o.AmountPaid.String())
}

func TestDerivePaymentState(t *testing.T) {
	hundred := dec("100")
	tests := []struct {
		name  string
		paid  string
		total *decimal.Decimal
		want  PaymentState
	}{
		{"no approved quotation", "50", nil, PaymentUnpaid},
		{"zero paid", "0", &hundred, PaymentUnpaid},
		{"partial", "99.99", &hundred, PaymentPartial},
		{"exact", "100", &hundred, PaymentPaid},
		{"overpaid", "150", &hundred, PaymentPaid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DerivePaymentState(dec(tt.paid), tt.total))
		})
	}
}

func TestServiceOrder_Deactivate(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Claim("tech-1", testNow))
	require.NoError(t, o.SubmitQuotation("q-1", testNow))

	require.ErrorIs(t, o.Deactivate(testNow), ErrInvalidTransition)
	require.NoError(t, o.RejectQuotation(testNow))
	require.NoError(t, o.Deactivate(testNow))
	assert.False(t, o.Active)

	require.ErrorIs(t, o.SubmitQuotation("q-2", testNow), ErrInvalidTransition)
	require.ErrorIs(t, o.Edit(OrderDetails{DeviceRef: "d", ServiceType: ServiceTypeRepair}, testNow), ErrInvalidTransition)
	require.ErrorIs(t, o.RecordPayment(dec("1"), nil, testNow), ErrInvalidTransition)
}

func TestOrderFilter_Matches(t *testing.T) {
	o := newTestOrder(t)
	require.NoError(t, o.Claim("tech-1", testNow))

	assert.True(t, OrderFilter{}.Matches(o))
	assert.True(t, OrderFilter{TechnicianID: "tech-1", State: OrderAssigned}.Matches(o))
	assert.False(t, OrderFilter{TechnicianID: "tech-2"}.Matches(o))

	o.Active = false
	assert.False(t, OrderFilter{}.Matches(o))
	assert.True(t, OrderFilter{IncludeInactive: true}.Matches(o))
}

func ptrDec(d decimal.Decimal) *decimal.Decimal {
	return &d
}
