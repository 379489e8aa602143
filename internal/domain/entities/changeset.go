package entities

import (
	"fmt"
	"sort"
)

// MaxChangeSetOperations bounds the number of record writes a single unit of
// work may carry. It matches the DynamoDB transaction limit.
const MaxChangeSetOperations = 100

// StockAdjustment moves the stock of one item. A negative delta is a
// reservation and is only applied if enough stock is available at commit
// time; a positive delta is a release.
type StockAdjustment struct {
	ItemID string
	Delta  int
}

type OrderWrite struct {
	Order           ServiceOrder
	ExpectedVersion int64
	Create          bool
}

type QuotationWrite struct {
	Quotation       Quotation
	ExpectedVersion int64
	Create          bool
}

// ItemWrite persists catalog fields of an inventory item. Updates never
// touch the stock count.
type ItemWrite struct {
	Item            InventoryItem
	ExpectedVersion int64
	Create          bool
}

type CustomerWrite struct {
	Customer        Customer
	ExpectedVersion int64
	Create          bool
}

type DeviceWrite struct {
	Device          Device
	ExpectedVersion int64
	Create          bool
}

// ChangeSet collects every write of one logical operation. Storage commits
// it all-or-nothing: each versioned write must still match its expected
// version and each reservation must still be covered by stock.
type ChangeSet struct {
	Orders     []OrderWrite
	Quotations []QuotationWrite
	Items      []ItemWrite
	Stock      []StockAdjustment
	Payments   []BillingPayment
	Customers  []CustomerWrite
	Devices    []DeviceWrite
	// Events are emitted after a successful commit. The runner stamps id,
	// actor and timestamp.
	Events []AuditEvent
}

func (c *ChangeSet) CreateOrder(o ServiceOrder) {
	o.Version = 1
	c.Orders = append(c.Orders, OrderWrite{Order: o, Create: true})
}

// UpdateOrder records o and bumps its version in place.
func (c *ChangeSet) UpdateOrder(o *ServiceOrder) {
	expected := o.Version
	o.Version++
	c.Orders = append(c.Orders, OrderWrite{Order: *o, ExpectedVersion: expected})
}

func (c *ChangeSet) CreateQuotation(q Quotation) {
	q.Version = 1
	c.Quotations = append(c.Quotations, QuotationWrite{Quotation: q, Create: true})
}

func (c *ChangeSet) UpdateQuotation(q *Quotation) {
	expected := q.Version
	q.Version++
	c.Quotations = append(c.Quotations, QuotationWrite{Quotation: *q, ExpectedVersion: expected})
}

func (c *ChangeSet) CreateItem(i InventoryItem) {
	i.Version = 1
	c.Items = append(c.Items, ItemWrite{Item: i, Create: true})
}

func (c *ChangeSet) UpdateItem(i *InventoryItem) {
	expected := i.Version
	i.Version++
	c.Items = append(c.Items, ItemWrite{Item: *i, ExpectedVersion: expected})
}

func (c *ChangeSet) CreateCustomer(cu Customer) {
	cu.Version = 1
	c.Customers = append(c.Customers, CustomerWrite{Customer: cu, Create: true})
}

func (c *ChangeSet) UpdateCustomer(cu *Customer) {
	expected := cu.Version
	cu.Version++
	c.Customers = append(c.Customers, CustomerWrite{Customer: *cu, ExpectedVersion: expected})
}

func (c *ChangeSet) CreateDevice(d Device) {
	d.Version = 1
	c.Devices = append(c.Devices, DeviceWrite{Device: d, Create: true})
}

func (c *ChangeSet) UpdateDevice(d *Device) {
	expected := d.Version
	d.Version++
	c.Devices = append(c.Devices, DeviceWrite{Device: *d, ExpectedVersion: expected})
}

func (c *ChangeSet) AdjustStock(adjustments ...StockAdjustment) {
	c.Stock = append(c.Stock, adjustments...)
}

func (c *ChangeSet) AddPayment(p BillingPayment) {
	c.Payments = append(c.Payments, p)
}

func (c *ChangeSet) Emit(e AuditEvent) {
	c.Events = append(c.Events, e)
}

// MergedStock aggregates adjustments per item, drops zero deltas and sorts
// by item id.
func (c *ChangeSet) MergedStock() []StockAdjustment {
	byItem := make(map[string]int, len(c.Stock))
	for _, a := range c.Stock {
		byItem[a.ItemID] = addQuantity(byItem[a.ItemID], a.Delta)
	}
	out := make([]StockAdjustment, 0, len(byItem))
	for id, d := range byItem {
		if d != 0 {
			out = append(out, StockAdjustment{ItemID: id, Delta: d})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}

func (c *ChangeSet) OperationCount() int {
	return len(c.Orders) + len(c.Quotations) + len(c.Items) + len(c.MergedStock()) + len(c.Payments) +
		len(c.Customers) + len(c.Devices)
}

func (c *ChangeSet) Empty() bool {
	return c.OperationCount() == 0
}

// Validate checks the structural rules storage relies on: a record is
// written at most once and an item is never both rewritten and adjusted.
func (c *ChangeSet) Validate() error {
	if n := c.OperationCount(); n > MaxChangeSetOperations {
		return NewValidationError("change_set", fmt.Sprintf("%d writes exceed the limit of %d", n, MaxChangeSetOperations))
	}
	seen := make(map[string]struct{})
	mark := func(kind, id string) error {
		key := kind + "/" + id
		if _, dup := seen[key]; dup {
			return fmt.Errorf("change set writes %s more than once", key)
		}
		seen[key] = struct{}{}
		return nil
	}
	for _, w := range c.Orders {
		if err := mark(EntityServiceOrder, w.Order.ID); err != nil {
			return err
		}
	}
	for _, w := range c.Quotations {
		if err := mark(EntityQuotation, w.Quotation.ID); err != nil {
			return err
		}
	}
	for _, w := range c.Items {
		if err := mark(EntityInventoryItem, w.Item.ID); err != nil {
			return err
		}
	}
	for _, a := range c.MergedStock() {
		if err := mark(EntityInventoryItem, a.ItemID); err != nil {
			return err
		}
	}
	for _, p := range c.Payments {
		if err := mark(EntityPayment, p.ID); err != nil {
			return err
		}
	}
	for _, w := range c.Customers {
		if err := mark(EntityCustomer, w.Customer.ID); err != nil {
			return err
		}
	}
	for _, w := range c.Devices {
		if err := mark(EntityDevice, w.Device.ID); err != nil {
			return err
		}
	}
	return nil
}
