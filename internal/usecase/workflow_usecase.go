package usecase

import (
	"context"
	"fmt"

	"servicedesk/internal/domain/entities"
	"servicedesk/pkg/logger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// IWorkflowUseCase is the callable surface of the order/quotation workflow.
// Every operation commits as one unit of work spanning the order, its
// quotation and the ledger.
type IWorkflowUseCase interface {
	ClaimOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.ServiceOrder, error)
	SubmitQuotation(ctx context.Context, actor entities.Actor, orderID string, d entities.QuotationDraft) (entities.Quotation, error)
	ApproveQuotation(ctx context.Context, actor entities.Actor, quotationID string) (entities.Quotation, error)
	RejectQuotation(ctx context.Context, actor entities.Actor, quotationID string) (entities.Quotation, error)
	CancelQuotation(ctx context.Context, actor entities.Actor, quotationID string) (entities.Quotation, error)
	ReviseQuotation(ctx context.Context, actor entities.Actor, quotationID string, d entities.QuotationDraft) (entities.Quotation, error)
	StartWork(ctx context.Context, actor entities.Actor, orderID string) (entities.ServiceOrder, error)
	FinalizeOrder(ctx context.Context, actor entities.Actor, orderID, workPerformed string) (entities.ServiceOrder, error)
	RecordPayment(ctx context.Context, actor entities.Actor, orderID string, amountPaid decimal.Decimal) (entities.ServiceOrder, error)
	CreditPayment(ctx context.Context, actor entities.Actor, orderID string, p entities.BillingPayment) (entities.ServiceOrder, error)
	DeliverOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.ServiceOrder, error)
	DeleteOrder(ctx context.Context, actor entities.Actor, orderID string) error
}

type WorkflowUseCase struct {
	orders *ServiceOrderUseCase
	engine *QuotationEngine
	runner *UnitRunner
	newID  func() string
}

var _ IWorkflowUseCase = (*WorkflowUseCase)(nil)

func NewWorkflowUseCase(orders *ServiceOrderUseCase, engine *QuotationEngine, runner *UnitRunner) *WorkflowUseCase {
	return &WorkflowUseCase{orders: orders, engine: engine, runner: runner, newID: uuid.NewString}
}

func (w *WorkflowUseCase) ClaimOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.ServiceOrder, error) {
	if err := requireRole(actor, entities.RoleTechnician); err != nil {
		return entities.ServiceOrder{}, err
	}
	return w.mutateOrder(ctx, actor, "order.claim", orderID, func(o *entities.ServiceOrder, cs *entities.ChangeSet) error {
		from := o.State
		if err := o.Claim(actor.ID, w.runner.Now()); err != nil {
			return err
		}
		cs.UpdateOrder(o)
		cs.Emit(orderEvent(*o, string(entities.OrderEventClaim), from))
		return nil
	})
}

func (w *WorkflowUseCase) StartWork(ctx context.Context, actor entities.Actor, orderID string) (entities.ServiceOrder, error) {
	if err := requireRole(actor, entities.RoleTechnician); err != nil {
		return entities.ServiceOrder{}, err
	}
	return w.mutateOrder(ctx, actor, "order.start", orderID, func(o *entities.ServiceOrder, cs *entities.ChangeSet) error {
		from := o.State
		if err := o.StartWork(w.runner.Now()); err != nil {
			return err
		}
		if !o.IsAssignedTo(actor.ID) {
			return entities.Forbidden("service order %s is not assigned to %s", o.ID, actor.ID)
		}
		cs.UpdateOrder(o)
		cs.Emit(orderEvent(*o, string(entities.OrderEventStartWork), from))
		return nil
	})
}

// FinalizeOrder reports a short work description before an illegal state,
// and an illegal state before a foreign technician.
func (w *WorkflowUseCase) FinalizeOrder(ctx context.Context, actor entities.Actor, orderID, workPerformed string) (entities.ServiceOrder, error) {
	if err := requireRole(actor, entities.RoleTechnician); err != nil {
		return entities.ServiceOrder{}, err
	}
	return w.mutateOrder(ctx, actor, "order.finalize", orderID, func(o *entities.ServiceOrder, cs *entities.ChangeSet) error {
		from := o.State
		if err := o.Finalize(workPerformed, w.runner.Now()); err != nil {
			return err
		}
		if !o.IsAssignedTo(actor.ID) {
			return entities.Forbidden("service order %s is not assigned to %s", o.ID, actor.ID)
		}
		cs.UpdateOrder(o)
		cs.Emit(orderEvent(*o, string(entities.OrderEventFinalize), from))
		return nil
	})
}

func (w *WorkflowUseCase) DeliverOrder(ctx context.Context, actor entities.Actor, orderID string) (entities.ServiceOrder, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.ServiceOrder{}, err
	}
	return w.mutateOrder(ctx, actor, "order.deliver", orderID, func(o *entities.ServiceOrder, cs *entities.ChangeSet) error {
		if err := o.Deliver(w.runner.Now()); err != nil {
			return err
		}
		cs.UpdateOrder(o)
		cs.Emit(orderEvent(*o, entities.TransitionDeliver, o.State))
		return nil
	})
}

func (w *WorkflowUseCase) DeleteOrder(ctx context.Context, actor entities.Actor, orderID string) error {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return err
	}
	_, err := w.mutateOrder(ctx, actor, "order.delete", orderID, func(o *entities.ServiceOrder, cs *entities.ChangeSet) error {
		if err := o.Deactivate(w.runner.Now()); err != nil {
			return err
		}
		cs.UpdateOrder(o)
		cs.Emit(orderEvent(*o, entities.TransitionDelete, o.State))
		return nil
	})
	return err
}

// RecordPayment sets the amount paid so far on the order. The entry written
// to the payment history carries the difference to the previous amount.
func (w *WorkflowUseCase) RecordPayment(ctx context.Context, actor entities.Actor, orderID string, amountPaid decimal.Decimal) (entities.ServiceOrder, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.ServiceOrder{}, err
	}
	if amountPaid.IsNegative() {
		return entities.ServiceOrder{}, entities.NewValidationError("amount_paid", "must not be negative")
	}
	return w.mutateOrderCtx(ctx, actor, "order.record_payment", orderID, func(ctx context.Context, o *entities.ServiceOrder, cs *entities.ChangeSet) error {
		total, err := w.approvedTotal(ctx, *o)
		if err != nil {
			return err
		}
		now := w.runner.Now()
		before, from := o.AmountPaid, o.PaymentState
		if err := o.RecordPayment(amountPaid, total, now); err != nil {
			return err
		}
		p := entities.BillingPayment{
			ID:              w.newID(),
			ServiceOrderID:  o.ID,
			QuotationID:     o.LiveQuotationID,
			Amount:          amountPaid.Sub(before),
			AmountPaidAfter: o.AmountPaid,
			Date:            now,
			Status:          entities.PaymentStatusApproved,
			Provider:        entities.PaymentProviderManual,
			RecordedBy:      actor.ID,
		}
		cs.UpdateOrder(o)
		cs.AddPayment(p)
		cs.Emit(paymentEvent(*o, p, entities.TransitionRecordPayment, from))
		return nil
	})
}

// CreditPayment adds an approved provider payment to the amount paid and
// stores p in the payment history within the same unit of work. The order must
// have an approved quotation and p.Amount must not exceed what is still
// outstanding at commit time, otherwise ErrStaleCredit is returned.
func (w *WorkflowUseCase) CreditPayment(ctx context.Context, actor entities.Actor, orderID string, p entities.BillingPayment) (entities.ServiceOrder, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.ServiceOrder{}, err
	}
	if !p.Amount.IsPositive() {
		return entities.ServiceOrder{}, entities.NewValidationError("amount", "must be greater than 0")
	}
	if p.ID == "" {
		p.ID = w.newID()
	}
	return w.mutateOrderCtx(ctx, actor, "order.credit_payment", orderID, func(ctx context.Context, o *entities.ServiceOrder, cs *entities.ChangeSet) error {
		total, err := w.approvedTotal(ctx, *o)
		if err != nil {
			return err
		}
		if total == nil {
			return ErrOrderNotApproved
		}
		if outstanding := total.Sub(o.AmountPaid); p.Amount.GreaterThan(outstanding) {
			return fmt.Errorf("%w: credit %s, outstanding %s", ErrStaleCredit, p.Amount.StringFixed(2), outstanding.StringFixed(2))
		}
		now := w.runner.Now()
		from := o.PaymentState
		if err := o.RecordPayment(o.AmountPaid.Add(p.Amount), total, now); err != nil {
			return err
		}
		entry := p
		entry.ServiceOrderID = o.ID
		entry.QuotationID = o.LiveQuotationID
		entry.AmountPaidAfter = o.AmountPaid
		entry.Status = entities.PaymentStatusApproved
		entry.RecordedBy = actor.ID
		if entry.Date.IsZero() {
			entry.Date = now
		}
		cs.UpdateOrder(o)
		cs.AddPayment(entry)
		cs.Emit(paymentEvent(*o, entry, entities.TransitionCreditPayment, from))
		return nil
	})
}

func (w *WorkflowUseCase) SubmitQuotation(ctx context.Context, actor entities.Actor, orderID string, d entities.QuotationDraft) (entities.Quotation, error) {
	if err := requireRole(actor, entities.RoleTechnician); err != nil {
		return entities.Quotation{}, err
	}
	var created entities.Quotation
	err := w.runner.Run(ctx, actor, "quotation.submit", func(ctx context.Context, cs *entities.ChangeSet) error {
		o, err := w.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		q, err := w.engine.planCreate(ctx, cs, &o, actor, d, w.runner.Now())
		if err != nil {
			return err
		}
		created = q
		return nil
	})
	if err != nil {
		return entities.Quotation{}, err
	}
	logger.Info(ctx).Str("order_id", created.ServiceOrderID).Str("quotation_id", created.ID).
		Str("total", created.Total.StringFixed(2)).Msg("[quotation][usecase] submitted")
	return created, nil
}

func (w *WorkflowUseCase) ApproveQuotation(ctx context.Context, actor entities.Actor, quotationID string) (entities.Quotation, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.Quotation{}, err
	}
	return w.mutateQuotation(ctx, actor, "quotation.approve", quotationID, func(ctx context.Context, o *entities.ServiceOrder, q *entities.Quotation, cs *entities.ChangeSet) error {
		return w.engine.planApprove(cs, o, q, actor, w.runner.Now())
	})
}

func (w *WorkflowUseCase) RejectQuotation(ctx context.Context, actor entities.Actor, quotationID string) (entities.Quotation, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.Quotation{}, err
	}
	return w.mutateQuotation(ctx, actor, "quotation.reject", quotationID, func(ctx context.Context, o *entities.ServiceOrder, q *entities.Quotation, cs *entities.ChangeSet) error {
		return w.engine.planReject(ctx, cs, o, q, w.runner.Now())
	})
}

func (w *WorkflowUseCase) CancelQuotation(ctx context.Context, actor entities.Actor, quotationID string) (entities.Quotation, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.Quotation{}, err
	}
	return w.mutateQuotation(ctx, actor, "quotation.cancel", quotationID, func(ctx context.Context, o *entities.ServiceOrder, q *entities.Quotation, cs *entities.ChangeSet) error {
		return w.engine.planCancel(ctx, cs, o, q, w.runner.Now())
	})
}

func (w *WorkflowUseCase) ReviseQuotation(ctx context.Context, actor entities.Actor, quotationID string, d entities.QuotationDraft) (entities.Quotation, error) {
	if err := requireRole(actor, entities.RoleTechnician); err != nil {
		return entities.Quotation{}, err
	}
	return w.mutateQuotation(ctx, actor, "quotation.revise", quotationID, func(ctx context.Context, o *entities.ServiceOrder, q *entities.Quotation, cs *entities.ChangeSet) error {
		return w.engine.planRevise(ctx, cs, o, q, actor, d, w.runner.Now())
	})
}

func (w *WorkflowUseCase) mutateOrder(ctx context.Context, actor entities.Actor, op, orderID string, plan func(o *entities.ServiceOrder, cs *entities.ChangeSet) error) (entities.ServiceOrder, error) {
	return w.mutateOrderCtx(ctx, actor, op, orderID, func(_ context.Context, o *entities.ServiceOrder, cs *entities.ChangeSet) error {
		return plan(o, cs)
	})
}

func (w *WorkflowUseCase) mutateOrderCtx(ctx context.Context, actor entities.Actor, op, orderID string, plan func(ctx context.Context, o *entities.ServiceOrder, cs *entities.ChangeSet) error) (entities.ServiceOrder, error) {
	var result entities.ServiceOrder
	err := w.runner.Run(ctx, actor, op, func(ctx context.Context, cs *entities.ChangeSet) error {
		o, err := w.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := plan(ctx, &o, cs); err != nil {
			return err
		}
		result = o
		return nil
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	logger.Info(ctx).Str("op", op).Str("order_id", result.ID).Str("state", string(result.State)).
		Str("actor", actor.ID).Msg("[order][usecase] committed")
	return result, nil
}

func (w *WorkflowUseCase) mutateQuotation(ctx context.Context, actor entities.Actor, op, quotationID string, plan func(ctx context.Context, o *entities.ServiceOrder, q *entities.Quotation, cs *entities.ChangeSet) error) (entities.Quotation, error) {
	var result entities.Quotation
	err := w.runner.Run(ctx, actor, op, func(ctx context.Context, cs *entities.ChangeSet) error {
		q, err := w.engine.GetByID(ctx, quotationID)
		if err != nil {
			return err
		}
		o, err := w.orders.GetByID(ctx, q.ServiceOrderID)
		if err != nil {
			return err
		}
		if err := plan(ctx, &o, &q, cs); err != nil {
			return err
		}
		result = q
		return nil
	})
	if err != nil {
		return entities.Quotation{}, err
	}
	logger.Info(ctx).Str("op", op).Str("quotation_id", result.ID).Str("state", string(result.State)).
		Str("actor", actor.ID).Msg("[quotation][usecase] committed")
	return result, nil
}

// approvedTotal returns the total of the order's approved live quotation,
// or nil when there is none.
func (w *WorkflowUseCase) approvedTotal(ctx context.Context, o entities.ServiceOrder) (*decimal.Decimal, error) {
	if o.LiveQuotationID == "" {
		return nil, nil
	}
	q, err := w.engine.GetByID(ctx, o.LiveQuotationID)
	if err != nil {
		return nil, err
	}
	if q.State != entities.QuotationApproved {
		return nil, nil
	}
	total := q.Total
	return &total, nil
}
