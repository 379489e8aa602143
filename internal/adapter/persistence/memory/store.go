// Package memory is an in-process implementation of the storage contracts.
// It backs tests and STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
)

// Store keeps every entity in maps. Commit serializes writers per record by
// locking one mutex per touched key, always in sorted key order.
type Store struct {
	mu         sync.RWMutex
	orders     map[string]entities.ServiceOrder
	quotations map[string]entities.Quotation
	items      map[string]entities.InventoryItem
	payments   map[string]entities.BillingPayment
	customers  map[string]entities.Customer
	devices    map[string]entities.Device

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

var _ interfaces.IUnitOfWork = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		orders:     make(map[string]entities.ServiceOrder),
		quotations: make(map[string]entities.Quotation),
		items:      make(map[string]entities.InventoryItem),
		payments:   make(map[string]entities.BillingPayment),
		customers:  make(map[string]entities.Customer),
		devices:    make(map[string]entities.Device),
		locks:      make(map[string]*sync.Mutex),
	}
}

func (s *Store) Orders() *OrderRepository         { return &OrderRepository{s: s} }
func (s *Store) Quotations() *QuotationRepository { return &QuotationRepository{s: s} }
func (s *Store) Inventory() *InventoryRepository  { return &InventoryRepository{s: s} }
func (s *Store) Payments() *PaymentRepository     { return &PaymentRepository{s: s} }
func (s *Store) Customers() *CustomerRepository   { return &CustomerRepository{s: s} }
func (s *Store) Devices() *DeviceRepository       { return &DeviceRepository{s: s} }

func (s *Store) lockFor(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	m, ok := s.locks[key]
	if !ok {
		m = &sync.Mutex{}
		s.locks[key] = m
	}
	return m
}

func changeSetKeys(cs *entities.ChangeSet) []string {
	set := make(map[string]struct{})
	for _, w := range cs.Orders {
		set[entities.EntityServiceOrder+"/"+w.Order.ID] = struct{}{}
	}
	for _, w := range cs.Quotations {
		set[entities.EntityQuotation+"/"+w.Quotation.ID] = struct{}{}
	}
	for _, w := range cs.Items {
		set[entities.EntityInventoryItem+"/"+w.Item.ID] = struct{}{}
	}
	for _, a := range cs.Stock {
		set[entities.EntityInventoryItem+"/"+a.ItemID] = struct{}{}
	}
	for _, p := range cs.Payments {
		set[entities.EntityPayment+"/"+p.ID] = struct{}{}
	}
	for _, w := range cs.Customers {
		set[entities.EntityCustomer+"/"+w.Customer.ID] = struct{}{}
	}
	for _, w := range cs.Devices {
		set[entities.EntityDevice+"/"+w.Device.ID] = struct{}{}
	}
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Commit applies cs atomically. Version mismatches are reported before
// stock shortfalls; on any error nothing is written.
func (s *Store) Commit(ctx context.Context, cs *entities.ChangeSet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := cs.Validate(); err != nil {
		return err
	}

	for _, k := range changeSetKeys(cs) {
		l := s.lockFor(k)
		l.Lock()
		defer l.Unlock()
	}

	stock := cs.MergedStock()

	s.mu.RLock()
	err := s.check(cs, stock)
	s.mu.RUnlock()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.apply(cs, stock)
	s.mu.Unlock()
	return nil
}

func conflict(entity, id string, expected, actual int64) error {
	return fmt.Errorf("%w: %s %s expected version %d, found %d", entities.ErrConcurrentUpdate, entity, id, expected, actual)
}

func (s *Store) check(cs *entities.ChangeSet, stock []entities.StockAdjustment) error {
	for _, w := range cs.Orders {
		cur, ok := s.orders[w.Order.ID]
		if w.Create {
			if ok {
				return conflict(entities.EntityServiceOrder, w.Order.ID, 0, cur.Version)
			}
			continue
		}
		if !ok || cur.Version != w.ExpectedVersion {
			return conflict(entities.EntityServiceOrder, w.Order.ID, w.ExpectedVersion, cur.Version)
		}
	}
	for _, w := range cs.Quotations {
		cur, ok := s.quotations[w.Quotation.ID]
		if w.Create {
			if ok {
				return conflict(entities.EntityQuotation, w.Quotation.ID, 0, cur.Version)
			}
			continue
		}
		if !ok || cur.Version != w.ExpectedVersion {
			return conflict(entities.EntityQuotation, w.Quotation.ID, w.ExpectedVersion, cur.Version)
		}
	}
	for _, w := range cs.Items {
		cur, ok := s.items[w.Item.ID]
		if w.Create {
			if ok {
				return conflict(entities.EntityInventoryItem, w.Item.ID, 0, cur.Version)
			}
			continue
		}
		if !ok || cur.Version != w.ExpectedVersion {
			return conflict(entities.EntityInventoryItem, w.Item.ID, w.ExpectedVersion, cur.Version)
		}
	}
	for _, p := range cs.Payments {
		if _, ok := s.payments[p.ID]; ok {
			return conflict(entities.EntityPayment, p.ID, 0, 1)
		}
	}
	for _, w := range cs.Customers {
		cur, ok := s.customers[w.Customer.ID]
		if w.Create {
			if ok {
				return conflict(entities.EntityCustomer, w.Customer.ID, 0, cur.Version)
			}
			continue
		}
		if !ok || cur.Version != w.ExpectedVersion {
			return conflict(entities.EntityCustomer, w.Customer.ID, w.ExpectedVersion, cur.Version)
		}
	}
	for _, w := range cs.Devices {
		cur, ok := s.devices[w.Device.ID]
		if w.Create {
			if ok {
				return conflict(entities.EntityDevice, w.Device.ID, 0, cur.Version)
			}
			continue
		}
		if !ok || cur.Version != w.ExpectedVersion {
			return conflict(entities.EntityDevice, w.Device.ID, w.ExpectedVersion, cur.Version)
		}
	}
	for _, a := range stock {
		item, ok := s.items[a.ItemID]
		if !ok {
			return &entities.NotFoundError{Entity: entities.EntityInventoryItem, ID: a.ItemID}
		}
		if err := item.ApplyStock(a.Delta); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) apply(cs *entities.ChangeSet, stock []entities.StockAdjustment) {
	for _, w := range cs.Orders {
		s.orders[w.Order.ID] = w.Order
	}
	for _, w := range cs.Quotations {
		s.quotations[w.Quotation.ID] = cloneQuotation(w.Quotation)
	}
	for _, w := range cs.Items {
		if w.Create {
			s.items[w.Item.ID] = w.Item
			continue
		}
		cur := s.items[w.Item.ID]
		next := w.Item
		next.Stock = cur.Stock
		next.CreatedAt = cur.CreatedAt
		s.items[w.Item.ID] = next
	}
	for _, p := range cs.Payments {
		s.payments[p.ID] = p
	}
	for _, w := range cs.Customers {
		s.customers[w.Customer.ID] = w.Customer
	}
	for _, w := range cs.Devices {
		s.devices[w.Device.ID] = cloneDevice(w.Device)
	}
	for _, a := range stock {
		item := s.items[a.ItemID]
		item.Stock += a.Delta
		s.items[a.ItemID] = item
	}
}

func cloneQuotation(q entities.Quotation) entities.Quotation {
	q.LineItems = append([]entities.LineItem(nil), q.LineItems...)
	return q
}

func cloneDevice(d entities.Device) entities.Device {
	d.Photos = append([]string(nil), d.Photos...)
	return d
}
