package usecase

import (
	"context"
	"sync"
	"testing"

	"servicedesk/internal/adapter/persistence/memory"
	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var (
	admin     = entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}
	reception = entities.Actor{ID: "rec-1", Role: entities.RoleReception}
	tech1     = entities.Actor{ID: "tech-1", Role: entities.RoleTechnician}
	tech2     = entities.Actor{ID: "tech-2", Role: entities.RoleTechnician}
)

type recordingSink struct {
	mu     sync.Mutex
	events []entities.AuditEvent
	err    error
}

func (s *recordingSink) Publish(_ context.Context, e entities.AuditEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return s.err
}

func (s *recordingSink) transitions(entity string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.events {
		if e.Entity == entity {
			out = append(out, e.Transition)
		}
	}
	return out
}

type harness struct {
	store    *memory.Store
	audit    *recordingSink
	runner   *UnitRunner
	ledger   *InventoryLedgerUseCase
	orders   *ServiceOrderUseCase
	engine   *QuotationEngine
	workflow *WorkflowUseCase
	registry *RegistryUseCase
	reports  *OrderReportUseCase

	deviceID string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	return newHarnessWithUoW(t, nil)
}

// newHarnessWithUoW wires the use cases over a memory store. wrap, when set,
// decorates the store's unit of work.
func newHarnessWithUoW(t *testing.T, wrap func(interfaces.IUnitOfWork) interfaces.IUnitOfWork) *harness {
	t.Helper()
	store := memory.NewStore()
	var uow interfaces.IUnitOfWork = store
	if wrap != nil {
		uow = wrap(store)
	}
	audit := &recordingSink{}
	runner := NewUnitRunner(uow, audit, nil)
	ledger := NewInventoryLedgerUseCase(store.Inventory(), runner)
	orders := NewServiceOrderUseCase(store.Orders(), store.Devices(), runner)
	engine := NewQuotationEngine(store.Quotations(), ledger)
	registry := NewRegistryUseCase(store.Customers(), store.Devices(), store.Orders(), runner)
	return &harness{
		store:    store,
		audit:    audit,
		runner:   runner,
		ledger:   ledger,
		orders:   orders,
		engine:   engine,
		workflow: NewWorkflowUseCase(orders, engine, runner),
		registry: registry,
		reports:  NewOrderReportUseCase(orders, engine, ledger, registry, runner),
	}
}

func (h *harness) customer(t *testing.T, phone string) string {
	t.Helper()
	c, err := h.registry.CreateCustomer(context.Background(), reception, entities.CustomerDetails{
		Name:  "Ana Torres",
		Phone: phone,
	})
	require.NoError(t, err)
	return c.ID
}

func (h *harness) registerDevice(t *testing.T, customerID string) string {
	t.Helper()
	d, err := h.registry.RegisterDevice(context.Background(), reception, entities.DeviceDetails{
		CustomerID:         customerID,
		Type:               entities.DeviceLaptop,
		Brand:              "Lenovo",
		Model:              "T480",
		ProblemDescription: "does not power on",
	})
	require.NoError(t, err)
	return d.ID
}

// device returns the harness's shared laptop, registering it on first use.
func (h *harness) device(t *testing.T) string {
	t.Helper()
	if h.deviceID == "" {
		h.deviceID = h.registerDevice(t, h.customer(t, "555-0100"))
	}
	return h.deviceID
}

func (h *harness) item(t *testing.T, name string, stock int, price string) string {
	t.Helper()
	item, err := h.ledger.CreateItem(context.Background(), admin, entities.ItemDetails{
		Name:      name,
		UnitPrice: decimal.RequireFromString(price),
	}, stock)
	require.NoError(t, err)
	return item.ID
}

func (h *harness) stock(t *testing.T, itemID string) int {
	t.Helper()
	item, err := h.ledger.GetItem(context.Background(), itemID)
	require.NoError(t, err)
	return item.Stock
}

func (h *harness) order(t *testing.T) string {
	t.Helper()
	o, err := h.orders.Create(context.Background(), reception, entities.OrderDetails{
		DeviceRef:        h.device(t),
		ServiceType:      entities.ServiceTypeRepair,
		InitialDiagnosis: "does not power on",
	})
	require.NoError(t, err)
	return o.ID
}

func (h *harness) claimedOrder(t *testing.T) string {
	t.Helper()
	id := h.order(t)
	_, err := h.workflow.ClaimOrder(context.Background(), tech1, id)
	require.NoError(t, err)
	return id
}

func (h *harness) getOrder(t *testing.T, id string) entities.ServiceOrder {
	t.Helper()
	o, err := h.orders.GetByID(context.Background(), id)
	require.NoError(t, err)
	return o
}

type line struct {
	itemID string
	qty    int
}

func draft(hours, rate string, lines ...line) entities.QuotationDraft {
	d := entities.QuotationDraft{
		LaborDescription: "Diagnose and replace faulty parts",
		Hours:            decimal.RequireFromString(hours),
		HourlyRate:       decimal.RequireFromString(rate),
	}
	for _, l := range lines {
		d.Lines = append(d.Lines, entities.LineItemInput{InventoryItemID: l.itemID, Quantity: l.qty})
	}
	return d
}
