package memory

import (
	"context"
	"sort"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
)

type OrderRepository struct{ s *Store }

var _ interfaces.IServiceOrderRepository = (*OrderRepository)(nil)

func (r *OrderRepository) GetByID(_ context.Context, id string) (entities.ServiceOrder, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.orders[id], nil
}

func (r *OrderRepository) List(_ context.Context, filter entities.OrderFilter) ([]entities.ServiceOrder, error) {
	r.s.mu.RLock()
	out := make([]entities.ServiceOrder, 0)
	for _, o := range r.s.orders {
		if filter.Matches(o) {
			out = append(out, o)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type QuotationRepository struct{ s *Store }

var _ interfaces.IQuotationRepository = (*QuotationRepository)(nil)

func (r *QuotationRepository) GetByID(_ context.Context, id string) (entities.Quotation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, ok := r.s.quotations[id]
	if !ok {
		return entities.Quotation{}, nil
	}
	return cloneQuotation(q), nil
}

func (r *QuotationRepository) List(_ context.Context, filter entities.QuotationFilter) ([]entities.Quotation, error) {
	r.s.mu.RLock()
	out := make([]entities.Quotation, 0)
	for _, q := range r.s.quotations {
		if filter.Matches(q) {
			out = append(out, cloneQuotation(q))
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

type InventoryRepository struct{ s *Store }

var _ interfaces.IInventoryRepository = (*InventoryRepository)(nil)

func (r *InventoryRepository) GetByID(_ context.Context, id string) (entities.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.items[id], nil
}

func (r *InventoryRepository) GetMany(_ context.Context, ids []string) (map[string]entities.InventoryItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make(map[string]entities.InventoryItem, len(ids))
	for _, id := range ids {
		if item, ok := r.s.items[id]; ok {
			out[id] = item
		}
	}
	return out, nil
}

func (r *InventoryRepository) List(_ context.Context, filter entities.InventoryFilter) ([]entities.InventoryItem, error) {
	r.s.mu.RLock()
	out := make([]entities.InventoryItem, 0)
	for _, item := range r.s.items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// PaymentRepository stores provider outcomes that are not credited to an
// order. Credited payments arrive through Store.Commit.
type PaymentRepository struct{ s *Store }

var _ interfaces.IBillingPaymentRepository = (*PaymentRepository)(nil)

func (r *PaymentRepository) Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error) {
	cs := &entities.ChangeSet{}
	cs.AddPayment(p)
	if err := r.s.Commit(ctx, cs); err != nil {
		return entities.BillingPayment{}, err
	}
	return p, nil
}

func (r *PaymentRepository) GetByID(_ context.Context, id string) (entities.BillingPayment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.payments[id], nil
}

func (r *PaymentRepository) ListByServiceOrderID(_ context.Context, serviceOrderID string) ([]entities.BillingPayment, error) {
	r.s.mu.RLock()
	out := make([]entities.BillingPayment, 0)
	for _, p := range r.s.payments {
		if p.ServiceOrderID == serviceOrderID {
			out = append(out, p)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	return out, nil
}

type CustomerRepository struct{ s *Store }

var _ interfaces.ICustomerRepository = (*CustomerRepository)(nil)

func (r *CustomerRepository) GetByID(_ context.Context, id string) (entities.Customer, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.customers[id], nil
}

func (r *CustomerRepository) List(_ context.Context, filter entities.CustomerFilter) ([]entities.Customer, error) {
	r.s.mu.RLock()
	out := make([]entities.Customer, 0)
	for _, c := range r.s.customers {
		if filter.Matches(c) {
			out = append(out, c)
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name == out[j].Name {
			return out[i].ID < out[j].ID
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

type DeviceRepository struct{ s *Store }

var _ interfaces.IDeviceRepository = (*DeviceRepository)(nil)

func (r *DeviceRepository) GetByID(_ context.Context, id string) (entities.Device, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.devices[id]
	if !ok {
		return entities.Device{}, nil
	}
	return cloneDevice(d), nil
}

func (r *DeviceRepository) List(_ context.Context, filter entities.DeviceFilter) ([]entities.Device, error) {
	r.s.mu.RLock()
	out := make([]entities.Device, 0)
	for _, d := range r.s.devices {
		if filter.Matches(d) {
			out = append(out, cloneDevice(d))
		}
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].ReceivedAt.Equal(out[j].ReceivedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].ReceivedAt.Before(out[j].ReceivedAt)
	})
	return out, nil
}
