package usecase

import (
	"context"

	"servicedesk/internal/domain/entities"
	"servicedesk/pkg/logger"
)

// IOrderReportUseCase builds the final report of a finished order.
type IOrderReportUseCase interface {
	Build(ctx context.Context, actor entities.Actor, orderID string) (entities.OrderReport, error)
}

type OrderReportUseCase struct {
	orders   *ServiceOrderUseCase
	engine   *QuotationEngine
	ledger   *InventoryLedgerUseCase
	registry *RegistryUseCase
	runner   *UnitRunner
}

var _ IOrderReportUseCase = (*OrderReportUseCase)(nil)

func NewOrderReportUseCase(orders *ServiceOrderUseCase, engine *QuotationEngine, ledger *InventoryLedgerUseCase, registry *RegistryUseCase, runner *UnitRunner) *OrderReportUseCase {
	return &OrderReportUseCase{orders: orders, engine: engine, ledger: ledger, registry: registry, runner: runner}
}

// Build reads the order, its approved quotation, the catalog names of the
// quoted items and the device with its owner. Nothing is written.
func (u *OrderReportUseCase) Build(ctx context.Context, actor entities.Actor, orderID string) (entities.OrderReport, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.OrderReport{}, err
	}
	o, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return entities.OrderReport{}, err
	}

	var q entities.Quotation
	if o.State == entities.OrderFinished && o.LiveQuotationID != "" {
		if q, err = u.engine.GetByID(ctx, o.LiveQuotationID); err != nil {
			return entities.OrderReport{}, err
		}
	}
	names, err := u.itemNames(ctx, q)
	if err != nil {
		return entities.OrderReport{}, err
	}
	report, err := entities.NewOrderReport(o, q, names, u.runner.Now())
	if err != nil {
		return entities.OrderReport{}, err
	}

	if err := u.attachOwner(ctx, &report); err != nil {
		return entities.OrderReport{}, err
	}
	logger.Info(ctx).Str("order_id", o.ID).Str("quotation_id", q.ID).Str("actor", actor.ID).Msg("[report][usecase] built")
	return report, nil
}

func (u *OrderReportUseCase) itemNames(ctx context.Context, q entities.Quotation) (map[string]string, error) {
	if len(q.LineItems) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(q.LineItems))
	for _, l := range q.LineItems {
		ids = append(ids, l.InventoryItemID)
	}
	items, err := u.ledger.items.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for id, item := range items {
		names[id] = item.Name
	}
	return names, nil
}

// attachOwner adds the device and its customer when they are still
// registered. Retired records are reported too.
func (u *OrderReportUseCase) attachOwner(ctx context.Context, report *entities.OrderReport) error {
	dev, err := u.registry.devices.GetByID(ctx, report.Order.DeviceRef)
	if err != nil {
		return err
	}
	if !dev.Exists() {
		return nil
	}
	report.Device = &dev

	c, err := u.registry.customers.GetByID(ctx, dev.CustomerID)
	if err != nil {
		return err
	}
	if c.Exists() {
		report.Customer = &c
	}
	return nil
}
