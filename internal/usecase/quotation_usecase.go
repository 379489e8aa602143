package usecase

import (
	"context"
	"strings"
	"time"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"

	"github.com/google/uuid"
)

// IQuotationUseCase is the read side of quotations. State changes go
// through the workflow use case.
type IQuotationUseCase interface {
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
	ListByServiceOrder(ctx context.Context, serviceOrderID string) ([]entities.Quotation, error)
	ListByState(ctx context.Context, state entities.QuotationState) ([]entities.Quotation, error)
}

// QuotationEngine prices quotations, drives their state machine and plans
// the matching ledger adjustments. It never commits by itself: every plan
// method records writes in the caller's ChangeSet.
type QuotationEngine struct {
	quotations interfaces.IQuotationRepository
	ledger     *InventoryLedgerUseCase
	newID      func() string
}

var _ IQuotationUseCase = (*QuotationEngine)(nil)

func NewQuotationEngine(quotations interfaces.IQuotationRepository, ledger *InventoryLedgerUseCase) *QuotationEngine {
	return &QuotationEngine{quotations: quotations, ledger: ledger, newID: uuid.NewString}
}

func (e *QuotationEngine) GetByID(ctx context.Context, id string) (entities.Quotation, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Quotation{}, entities.NewValidationError("quotation_id", "is required")
	}
	q, err := e.quotations.GetByID(ctx, id)
	if err != nil {
		return entities.Quotation{}, err
	}
	if !q.Exists() {
		return entities.Quotation{}, &entities.NotFoundError{Entity: entities.EntityQuotation, ID: id}
	}
	return q, nil
}

func (e *QuotationEngine) ListByServiceOrder(ctx context.Context, serviceOrderID string) ([]entities.Quotation, error) {
	serviceOrderID = strings.TrimSpace(serviceOrderID)
	if serviceOrderID == "" {
		return nil, entities.NewValidationError("service_order_id", "is required")
	}
	return e.quotations.List(ctx, entities.QuotationFilter{ServiceOrderID: serviceOrderID})
}

func (e *QuotationEngine) ListByState(ctx context.Context, state entities.QuotationState) ([]entities.Quotation, error) {
	if !state.Valid() {
		return nil, entities.NewValidationError("state", "must be pending, approved, rejected or cancelled")
	}
	return e.quotations.List(ctx, entities.QuotationFilter{State: state})
}

// planCreate builds a pending quotation for order, reserves its lines and
// moves the order to quoted.
func (e *QuotationEngine) planCreate(ctx context.Context, cs *entities.ChangeSet, order *entities.ServiceOrder, actor entities.Actor, d entities.QuotationDraft, now time.Time) (entities.Quotation, error) {
	id := e.newID()
	from := order.State
	if err := order.SubmitQuotation(id, now); err != nil {
		return entities.Quotation{}, err
	}
	if !order.IsAssignedTo(actor.ID) {
		return entities.Quotation{}, entities.Forbidden("service order %s is not assigned to %s", order.ID, actor.ID)
	}
	if err := d.Validate(); err != nil {
		return entities.Quotation{}, err
	}
	catalog, err := e.ledger.catalog(ctx, d.ItemIDs())
	if err != nil {
		return entities.Quotation{}, err
	}
	lines, err := d.BuildLines(catalog)
	if err != nil {
		return entities.Quotation{}, err
	}
	q, err := entities.NewQuotation(id, order.ID, actor.ID, d, lines, now)
	if err != nil {
		return entities.Quotation{}, err
	}
	if err := planStock(cs, catalog, q.Reservations()); err != nil {
		return entities.Quotation{}, err
	}

	cs.CreateQuotation(q)
	cs.UpdateOrder(order)
	q.Version = 1
	cs.Emit(quotationEvent(q, entities.TransitionCreate, ""))
	cs.Emit(orderEvent(*order, string(entities.OrderEventSubmitQuotation), from))
	return q, nil
}

func (e *QuotationEngine) planApprove(cs *entities.ChangeSet, order *entities.ServiceOrder, q *entities.Quotation, actor entities.Actor, now time.Time) error {
	qFrom, oFrom := q.State, order.State
	if err := q.Approve(actor.ID, now); err != nil {
		return err
	}
	if err := requireLive(order, q, entities.QuotationEventApprove); err != nil {
		return err
	}
	if err := order.ApproveQuotation(q.Total, now); err != nil {
		return err
	}

	cs.UpdateQuotation(q)
	cs.UpdateOrder(order)
	cs.Emit(quotationEvent(*q, string(entities.QuotationEventApprove), qFrom))
	cs.Emit(orderEvent(*order, string(entities.OrderEventApproveQuotation), oFrom))
	return nil
}

func (e *QuotationEngine) planReject(ctx context.Context, cs *entities.ChangeSet, order *entities.ServiceOrder, q *entities.Quotation, now time.Time) error {
	qFrom, oFrom := q.State, order.State
	if err := q.Reject(now); err != nil {
		return err
	}
	if err := requireLive(order, q, entities.QuotationEventReject); err != nil {
		return err
	}
	if err := order.RejectQuotation(now); err != nil {
		return err
	}
	if err := e.planRelease(ctx, cs, *q); err != nil {
		return err
	}

	cs.UpdateQuotation(q)
	cs.UpdateOrder(order)
	cs.Emit(quotationEvent(*q, string(entities.QuotationEventReject), qFrom))
	cs.Emit(orderEvent(*order, string(entities.OrderEventRejectQuotation), oFrom))
	return nil
}

func (e *QuotationEngine) planCancel(ctx context.Context, cs *entities.ChangeSet, order *entities.ServiceOrder, q *entities.Quotation, now time.Time) error {
	qFrom, oFrom := q.State, order.State
	if err := q.Cancel(now); err != nil {
		return err
	}
	if err := requireLive(order, q, entities.QuotationEventCancel); err != nil {
		return err
	}
	if err := order.CancelQuotation(now); err != nil {
		return err
	}
	if err := e.planRelease(ctx, cs, *q); err != nil {
		return err
	}

	cs.UpdateQuotation(q)
	cs.UpdateOrder(order)
	cs.Emit(quotationEvent(*q, string(entities.QuotationEventCancel), qFrom))
	cs.Emit(orderEvent(*order, string(entities.OrderEventCancelQuotation), oFrom))
	return nil
}

// planRevise re-prices a rejected quotation against current stock and puts
// it back in review. The order must be assigned with no live quotation.
func (e *QuotationEngine) planRevise(ctx context.Context, cs *entities.ChangeSet, order *entities.ServiceOrder, q *entities.Quotation, actor entities.Actor, d entities.QuotationDraft, now time.Time) error {
	if q.CreatedBy != actor.ID {
		return entities.Forbidden("only the creator of quotation %s may revise it", q.ID)
	}
	qFrom, oFrom := q.State, order.State
	if _, err := q.State.Next(entities.QuotationEventRevise); err != nil {
		return err
	}
	if err := order.SubmitQuotation(q.ID, now); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}
	catalog, err := e.ledger.catalog(ctx, d.ItemIDs())
	if err != nil {
		return err
	}
	lines, err := d.BuildLines(catalog)
	if err != nil {
		return err
	}
	if err := q.Revise(actor.ID, d, lines, now); err != nil {
		return err
	}
	if err := planStock(cs, catalog, q.Reservations()); err != nil {
		return err
	}

	cs.UpdateQuotation(q)
	cs.UpdateOrder(order)
	cs.Emit(quotationEvent(*q, string(entities.QuotationEventRevise), qFrom))
	cs.Emit(orderEvent(*order, string(entities.OrderEventSubmitQuotation), oFrom))
	return nil
}

func (e *QuotationEngine) planRelease(ctx context.Context, cs *entities.ChangeSet, q entities.Quotation) error {
	releases := q.Releases()
	if len(releases) == 0 {
		return nil
	}
	ids := make([]string, 0, len(releases))
	for _, r := range releases {
		ids = append(ids, r.ItemID)
	}
	catalog, err := e.ledger.catalog(ctx, ids)
	if err != nil {
		return err
	}
	return planStock(cs, catalog, releases)
}

// requireLive refuses transitions on a quotation that does not drive its
// order's current state.
func requireLive(order *entities.ServiceOrder, q *entities.Quotation, e entities.QuotationEvent) error {
	if order.ID != q.ServiceOrderID || order.LiveQuotationID != q.ID {
		return &entities.TransitionError{Entity: entities.EntityServiceOrder, State: string(order.State), Event: string(e) + " of non-live quotation"}
	}
	return nil
}
