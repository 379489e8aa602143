package usecase

import (
	"context"
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"testing"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkflow_SubmitThenRejectRestoresStock(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	x := h.item(t, "Power board", 5, "20.00")
	orderID := h.claimedOrder(t)

	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "50", line{x, 3}))
	require.NoError(t, err)

	assert.Equal(t, 2, h.stock(t, x))
	assert.Equal(t, entities.QuotationPending, q.State)
	assert.True(t, decimal.RequireFromString("110").Equal(q.Total), q.Total.String())
	o := h.getOrder(t, orderID)
	assert.Equal(t, entities.OrderQuoted, o.State)
	assert.Equal(t, q.ID, o.LiveQuotationID)

	rejected, err := h.workflow.RejectQuotation(ctx, reception, q.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.QuotationRejected, rejected.State)
	assert.Equal(t, 5, h.stock(t, x))
	o = h.getOrder(t, orderID)
	assert.Equal(t, entities.OrderAssigned, o.State)
	assert.Empty(t, o.LiveQuotationID)
}

func TestWorkflow_RecordPaymentDerivesPaymentState(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	orderID := h.claimedOrder(t)

	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "100.00"))
	require.NoError(t, err)
	_, err = h.workflow.ApproveQuotation(ctx, reception, q.ID)
	require.NoError(t, err)

	o, err := h.workflow.RecordPayment(ctx, reception, orderID, decimal.RequireFromString("40.00"))
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentPartial, o.PaymentState)

	o, err = h.workflow.RecordPayment(ctx, reception, orderID, decimal.RequireFromString("100.00"))
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentPaid, o.PaymentState)

	history, err := h.store.Payments().ListByServiceOrderID(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	var last entities.BillingPayment
	for _, p := range history {
		if p.AmountPaidAfter.Equal(decimal.RequireFromString("100")) {
			last = p
		}
	}
	assert.True(t, decimal.RequireFromString("60").Equal(last.Amount), last.Amount.String())
	assert.Equal(t, entities.PaymentProviderManual, last.Provider)
	assert.Equal(t, q.ID, last.QuotationID)
	assert.Equal(t, reception.ID, last.RecordedBy)

	_, err = h.workflow.RecordPayment(ctx, reception, orderID, decimal.RequireFromString("-1"))
	require.ErrorIs(t, err, entities.ErrValidation)
}

func TestWorkflow_RecordPaymentWithoutApprovedQuotationIsUnpaid(t *testing.T) {
	h := newHarness(t)
	orderID := h.order(t)

	o, err := h.workflow.RecordPayment(context.Background(), reception, orderID, decimal.RequireFromString("30"))
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentUnpaid, o.PaymentState)
	assert.True(t, decimal.RequireFromString("30").Equal(o.AmountPaid))
}

func TestWorkflow_ConcurrentClaimExactlyOneWins(t *testing.T) {
	for run := 0; run < 20; run++ {
		h := newHarness(t)
		orderID := h.order(t)

		var wins atomic.Int32
		errs := make(chan error, 2)
		var wg sync.WaitGroup
		for _, tech := range []entities.Actor{tech1, tech2} {
			wg.Add(1)
			go func(actor entities.Actor) {
				defer wg.Done()
				if _, err := h.workflow.ClaimOrder(context.Background(), actor, orderID); err != nil {
					errs <- err
					return
				}
				wins.Add(1)
			}(tech)
		}
		wg.Wait()
		close(errs)

		require.Equal(t, int32(1), wins.Load())
		for err := range errs {
			require.ErrorIs(t, err, entities.ErrAlreadyAssigned)
		}
		o := h.getOrder(t, orderID)
		assert.Equal(t, entities.OrderAssigned, o.State)
		assert.NotEmpty(t, o.AssignedTechnicianID)
	}
}

func TestWorkflow_FailedMultiItemReservationIsAllOrNothing(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.item(t, "Screen", 5, "30")
	b := h.item(t, "Battery", 1, "15")
	orderID := h.claimedOrder(t)

	_, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "50", line{a, 3}, line{b, 2}))

	var stockErr *entities.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, b, stockErr.ItemID)
	assert.Equal(t, "Battery", stockErr.ItemName)
	assert.Equal(t, 5, h.stock(t, a))
	assert.Equal(t, 1, h.stock(t, b))

	o := h.getOrder(t, orderID)
	assert.Equal(t, entities.OrderAssigned, o.State)
	quotations, err := h.engine.ListByServiceOrder(ctx, orderID)
	require.NoError(t, err)
	assert.Empty(t, quotations)
}

func TestWorkflow_FinalizePendingOrderIsInvalidTransition(t *testing.T) {
	h := newHarness(t)
	orderID := h.order(t)
	before := h.getOrder(t, orderID)

	_, err := h.workflow.FinalizeOrder(context.Background(), tech1, orderID, "replaced the main board")

	require.ErrorIs(t, err, entities.ErrInvalidTransition)
	assert.Equal(t, before, h.getOrder(t, orderID))
}

func TestWorkflow_ReplayedApproveIsInvalidTransition(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	x := h.item(t, "Fan", 4, "10")
	orderID := h.claimedOrder(t)
	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("2", "30", line{x, 2}))
	require.NoError(t, err)

	approved, err := h.workflow.ApproveQuotation(ctx, reception, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.QuotationApproved, approved.State)
	assert.Equal(t, reception.ID, approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	_, err = h.workflow.ApproveQuotation(ctx, reception, q.ID)
	require.ErrorIs(t, err, entities.ErrInvalidTransition)
	assert.Equal(t, 2, h.stock(t, x))

	o := h.getOrder(t, orderID)
	assert.Equal(t, entities.OrderApproved, o.State)
	require.NotNil(t, o.StartedAt)
}

func TestWorkflow_CancelReleasesStockAndResetsPayment(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	x := h.item(t, "Keyboard", 3, "25")
	orderID := h.claimedOrder(t)
	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "25", line{x, 3}))
	require.NoError(t, err)
	assert.Equal(t, 0, h.stock(t, x))
	_, err = h.workflow.ApproveQuotation(ctx, reception, q.ID)
	require.NoError(t, err)
	_, err = h.workflow.RecordPayment(ctx, reception, orderID, decimal.RequireFromString("100"))
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentPaid, h.getOrder(t, orderID).PaymentState)

	cancelled, err := h.workflow.CancelQuotation(ctx, admin, q.ID)
	require.NoError(t, err)

	assert.Equal(t, entities.QuotationCancelled, cancelled.State)
	assert.Equal(t, 3, h.stock(t, x))
	o := h.getOrder(t, orderID)
	assert.Equal(t, entities.OrderAssigned, o.State)
	assert.Equal(t, entities.PaymentUnpaid, o.PaymentState)

	_, err = h.workflow.CancelQuotation(ctx, admin, q.ID)
	require.ErrorIs(t, err, entities.ErrInvalidTransition)
	assert.Equal(t, 3, h.stock(t, x))
}

func TestWorkflow_CancelAfterWorkStartedIsRefused(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	x := h.item(t, "Hinge", 2, "5")
	orderID := h.claimedOrder(t)
	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10", line{x, 1}))
	require.NoError(t, err)
	_, err = h.workflow.ApproveQuotation(ctx, reception, q.ID)
	require.NoError(t, err)
	_, err = h.workflow.StartWork(ctx, tech1, orderID)
	require.NoError(t, err)

	_, err = h.workflow.CancelQuotation(ctx, reception, q.ID)

	require.ErrorIs(t, err, entities.ErrInvalidTransition)
	assert.Equal(t, 1, h.stock(t, x))
	stored, err := h.engine.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.QuotationApproved, stored.State)
}

func TestWorkflow_ReviseRejectedQuotation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	x := h.item(t, "Cable", 6, "4")
	orderID := h.claimedOrder(t)
	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10", line{x, 4}))
	require.NoError(t, err)
	_, err = h.workflow.RejectQuotation(ctx, reception, q.ID)
	require.NoError(t, err)
	require.Equal(t, 6, h.stock(t, x))

	_, err = h.workflow.ReviseQuotation(ctx, tech2, q.ID, draft("1", "10", line{x, 1}))
	require.ErrorIs(t, err, entities.ErrForbidden)

	revised, err := h.workflow.ReviseQuotation(ctx, tech1, q.ID, draft("1", "10", line{x, 2}))
	require.NoError(t, err)

	assert.Equal(t, entities.QuotationPending, revised.State)
	assert.Equal(t, 2, revised.Revision)
	assert.True(t, decimal.RequireFromString("18").Equal(revised.Total), revised.Total.String())
	assert.Equal(t, 4, h.stock(t, x))
	o := h.getOrder(t, orderID)
	assert.Equal(t, entities.OrderQuoted, o.State)
	assert.Equal(t, q.ID, o.LiveQuotationID)

	_, err = h.workflow.ReviseQuotation(ctx, tech1, q.ID, draft("1", "10", line{x, 2}))
	require.ErrorIs(t, err, entities.ErrInvalidTransition)
}

func TestWorkflow_ReviseRefusedWhileAnotherQuotationIsLive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	orderID := h.claimedOrder(t)
	first, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10"))
	require.NoError(t, err)
	_, err = h.workflow.RejectQuotation(ctx, reception, first.ID)
	require.NoError(t, err)
	second, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("2", "10"))
	require.NoError(t, err)

	_, err = h.workflow.ReviseQuotation(ctx, tech1, first.ID, draft("1", "10"))
	require.ErrorIs(t, err, entities.ErrInvalidTransition)

	_, err = h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("3", "10"))
	require.ErrorIs(t, err, entities.ErrInvalidTransition)
	assert.Equal(t, second.ID, h.getOrder(t, orderID).LiveQuotationID)
}

func TestWorkflow_RoleAndOwnershipGates(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	orderID := h.order(t)

	_, err := h.workflow.ClaimOrder(ctx, reception, orderID)
	require.ErrorIs(t, err, entities.ErrForbidden)

	_, err = h.workflow.ClaimOrder(ctx, tech1, orderID)
	require.NoError(t, err)

	_, err = h.workflow.SubmitQuotation(ctx, tech2, orderID, draft("1", "10"))
	require.ErrorIs(t, err, entities.ErrForbidden)

	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10"))
	require.NoError(t, err)

	_, err = h.workflow.ApproveQuotation(ctx, tech1, q.ID)
	require.ErrorIs(t, err, entities.ErrForbidden)

	_, err = h.workflow.ApproveQuotation(ctx, reception, q.ID)
	require.NoError(t, err)

	_, err = h.workflow.StartWork(ctx, tech2, orderID)
	require.ErrorIs(t, err, entities.ErrForbidden)

	_, err = h.workflow.FinalizeOrder(ctx, tech1, orderID, "short")
	require.ErrorIs(t, err, entities.ErrValidation)

	_, err = h.workflow.FinalizeOrder(ctx, tech2, orderID, "replaced the power connector")
	require.ErrorIs(t, err, entities.ErrForbidden)

	o, err := h.workflow.FinalizeOrder(ctx, tech1, orderID, "replaced the power connector")
	require.NoError(t, err)
	assert.Equal(t, entities.OrderFinished, o.State)
	assert.Equal(t, "replaced the power connector", o.WorkPerformed)
}

func TestWorkflow_DeliverAndDelete(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	orderID := h.claimedOrder(t)
	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10"))
	require.NoError(t, err)

	err = h.workflow.DeleteOrder(ctx, reception, orderID)
	require.ErrorIs(t, err, entities.ErrInvalidTransition)

	_, err = h.workflow.DeliverOrder(ctx, reception, orderID)
	require.ErrorIs(t, err, entities.ErrInvalidTransition)

	_, err = h.workflow.ApproveQuotation(ctx, reception, q.ID)
	require.NoError(t, err)
	_, err = h.workflow.FinalizeOrder(ctx, tech1, orderID, "cleaned and recalibrated")
	require.NoError(t, err)

	o, err := h.workflow.DeliverOrder(ctx, reception, orderID)
	require.NoError(t, err)
	require.NotNil(t, o.DeliveredAt)

	require.NoError(t, h.workflow.DeleteOrder(ctx, reception, orderID))
	assert.False(t, h.getOrder(t, orderID).Active)

	_, err = h.workflow.RecordPayment(ctx, reception, orderID, decimal.RequireFromString("10"))
	require.ErrorIs(t, err, entities.ErrInvalidTransition)
}

func TestWorkflow_NotFound(t *testing.T) {
	h := newHarness(t)

	_, err := h.workflow.ClaimOrder(context.Background(), tech1, "missing")
	require.ErrorIs(t, err, entities.ErrNotFound)

	_, err = h.workflow.ApproveQuotation(context.Background(), reception, "missing")
	require.ErrorIs(t, err, entities.ErrNotFound)

	orderID := h.claimedOrder(t)
	_, err = h.workflow.SubmitQuotation(context.Background(), tech1, orderID, draft("1", "10", line{"nope", 1}))
	require.ErrorIs(t, err, entities.ErrNotFound)
}

func TestWorkflow_EmitsAuditEvents(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	x := h.item(t, "Sensor", 2, "8")
	orderID := h.claimedOrder(t)

	_, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10", line{x, 2}))
	require.NoError(t, err)

	assert.Equal(t, []string{entities.TransitionCreate}, h.audit.transitions(entities.EntityQuotation))
	assert.Equal(t, []string{
		entities.TransitionCreate,
		string(entities.OrderEventClaim),
		string(entities.OrderEventSubmitQuotation),
	}, h.audit.transitions(entities.EntityServiceOrder))
	assert.Equal(t, []string{
		entities.TransitionCreate,
		entities.TransitionStockReserve,
		entities.TransitionStockLow,
	}, h.audit.transitions(entities.EntityInventoryItem))

	for _, e := range h.audit.events {
		assert.NotEmpty(t, e.ID)
		assert.False(t, e.Timestamp.IsZero())
		assert.NotEmpty(t, e.Actor)
	}
}

// conflictOnce fails the first commit that writes a quotation with a
// version conflict, then delegates.
type conflictOnce struct {
	interfaces.IUnitOfWork
	tripped atomic.Bool
	commits atomic.Int32
}

func (c *conflictOnce) Commit(ctx context.Context, cs *entities.ChangeSet) error {
	c.commits.Add(1)
	if len(cs.Quotations) > 0 && !cs.Quotations[0].Create && c.tripped.CompareAndSwap(false, true) {
		return errors.Join(entities.ErrConcurrentUpdate, errors.New("injected"))
	}
	return c.IUnitOfWork.Commit(ctx, cs)
}

func TestWorkflow_ApproveRetriesAfterVersionConflict(t *testing.T) {
	var wrapper *conflictOnce
	h := newHarnessWithUoW(t, func(u interfaces.IUnitOfWork) interfaces.IUnitOfWork {
		wrapper = &conflictOnce{IUnitOfWork: u}
		return wrapper
	})
	ctx := context.Background()
	orderID := h.claimedOrder(t)
	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10"))
	require.NoError(t, err)
	before := wrapper.commits.Load()

	approved, err := h.workflow.ApproveQuotation(ctx, reception, q.ID)

	require.NoError(t, err)
	assert.Equal(t, entities.QuotationApproved, approved.State)
	assert.Equal(t, int32(2), wrapper.commits.Load()-before)

	_, err = h.workflow.ApproveQuotation(ctx, reception, q.ID)
	require.ErrorIs(t, err, entities.ErrInvalidTransition)
}

func TestWorkflow_ConcurrentApproveAndRejectSerialize(t *testing.T) {
	for run := 0; run < 20; run++ {
		h := newHarness(t)
		ctx := context.Background()
		x := h.item(t, "Lens", 5, "10")
		orderID := h.claimedOrder(t)
		q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10", line{x, 3}))
		require.NoError(t, err)

		var wg sync.WaitGroup
		var approveErr, rejectErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, approveErr = h.workflow.ApproveQuotation(ctx, reception, q.ID)
		}()
		go func() {
			defer wg.Done()
			_, rejectErr = h.workflow.RejectQuotation(ctx, admin, q.ID)
		}()
		wg.Wait()

		require.True(t, (approveErr == nil) != (rejectErr == nil), "approve=%v reject=%v", approveErr, rejectErr)
		stored, err := h.engine.GetByID(ctx, q.ID)
		require.NoError(t, err)
		if approveErr == nil {
			require.ErrorIs(t, rejectErr, entities.ErrInvalidTransition)
			assert.Equal(t, entities.QuotationApproved, stored.State)
			assert.Equal(t, 2, h.stock(t, x))
		} else {
			require.ErrorIs(t, approveErr, entities.ErrInvalidTransition)
			assert.Equal(t, entities.QuotationRejected, stored.State)
			assert.Equal(t, 5, h.stock(t, x))
		}
	}
}

func TestWorkflow_SubmitMergesLinesForSameItem(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	x := h.item(t, "Fan", 10, "4.00")
	y := h.item(t, "Screw kit", 3, "1.00")
	orderID := h.claimedOrder(t)

	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10", line{x, 2}, line{y, 1}, line{x, 5}))
	require.NoError(t, err)

	assert.Equal(t, 3, h.stock(t, x))
	assert.Equal(t, 2, h.stock(t, y))
	assert.Equal(t, map[string]int{x: 7, y: 1}, q.Quantities())

	_, err = h.workflow.RejectQuotation(ctx, reception, q.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, h.stock(t, x))
	assert.Equal(t, 3, h.stock(t, y))
}

func TestWorkflow_SubmitMergedLinesCheckedAgainstStock(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	x := h.item(t, "Fan", 5, "4.00")
	orderID := h.claimedOrder(t)

	_, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10", line{x, 3}, line{x, 3}))
	var stockErr *entities.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, h.stock(t, x))
	assert.Equal(t, entities.OrderAssigned, h.getOrder(t, orderID).State)
}

func TestWorkflow_SubmitRejectsWrappingQuantities(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	x := h.item(t, "Fan", 5, "4.00")
	orderID := h.claimedOrder(t)

	_, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10", line{x, math.MaxInt}, line{x, 2}))
	require.ErrorIs(t, err, entities.ErrValidation)

	_, err = h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "10", line{x, entities.MaxStockMovement}, line{x, 1}))
	require.ErrorIs(t, err, entities.ErrValidation)

	assert.Equal(t, 5, h.stock(t, x))
	o := h.getOrder(t, orderID)
	assert.Equal(t, entities.OrderAssigned, o.State)
	assert.Empty(t, o.LiveQuotationID)
}

func TestWorkflow_SubmitChecksOrderStateBeforeOwnership(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	pending := h.order(t)

	_, err := h.workflow.SubmitQuotation(ctx, tech2, pending, draft("1", "10"))
	require.ErrorIs(t, err, entities.ErrInvalidTransition)

	claimed := h.claimedOrder(t)
	_, err = h.workflow.SubmitQuotation(ctx, tech1, claimed, draft("1", "10"))
	require.NoError(t, err)

	_, err = h.workflow.SubmitQuotation(ctx, tech2, claimed, draft("1", "10"))
	require.ErrorIs(t, err, entities.ErrInvalidTransition)
	assert.Equal(t, entities.OrderPending, h.getOrder(t, pending).State)
}

func TestWorkflow_CreditPaymentRefusesStaleCredits(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	orderID := h.claimedOrder(t)
	charge := entities.BillingPayment{
		Amount:            decimal.RequireFromString("100"),
		Provider:          entities.PaymentProviderMercadoPago,
		ProviderPaymentID: "mp-1",
	}

	_, err := h.workflow.CreditPayment(ctx, reception, orderID, charge)
	require.ErrorIs(t, err, ErrOrderNotApproved)

	q, err := h.workflow.SubmitQuotation(ctx, tech1, orderID, draft("1", "100.00"))
	require.NoError(t, err)
	_, err = h.workflow.ApproveQuotation(ctx, reception, q.ID)
	require.NoError(t, err)

	o, err := h.workflow.CreditPayment(ctx, reception, orderID, charge)
	require.NoError(t, err)
	assert.Equal(t, entities.PaymentPaid, o.PaymentState)

	_, err = h.workflow.CreditPayment(ctx, reception, orderID, charge)
	require.ErrorIs(t, err, ErrStaleCredit)

	o = h.getOrder(t, orderID)
	assert.True(t, decimal.RequireFromString("100").Equal(o.AmountPaid), o.AmountPaid.String())
	history, err := h.store.Payments().ListByServiceOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
