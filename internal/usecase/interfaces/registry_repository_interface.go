package interfaces

import (
	"context"
	"servicedesk/internal/domain/entities"
)

// ICustomerRepository reads the customer registry. Writes go through
// IUnitOfWork. A missing customer is returned as the zero value.
type ICustomerRepository interface {
	GetByID(ctx context.Context, id string) (entities.Customer, error)
	List(ctx context.Context, filter entities.CustomerFilter) ([]entities.Customer, error)
}

// IDeviceRepository reads the device registry.
type IDeviceRepository interface {
	GetByID(ctx context.Context, id string) (entities.Device, error)
	List(ctx context.Context, filter entities.DeviceFilter) ([]entities.Device, error)
}
