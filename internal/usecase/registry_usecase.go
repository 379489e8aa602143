package usecase

import (
	"context"
	"strconv"
	"strings"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"

	"github.com/google/uuid"
)

// IRegistryUseCase keeps the customers and devices received at the counter.
type IRegistryUseCase interface {
	CreateCustomer(ctx context.Context, actor entities.Actor, d entities.CustomerDetails) (entities.Customer, error)
	EditCustomer(ctx context.Context, actor entities.Actor, id string, d entities.CustomerDetails) (entities.Customer, error)
	DeactivateCustomer(ctx context.Context, actor entities.Actor, id string) error
	GetCustomer(ctx context.Context, id string) (entities.Customer, error)
	ListCustomers(ctx context.Context, filter entities.CustomerFilter) ([]entities.Customer, error)

	RegisterDevice(ctx context.Context, actor entities.Actor, d entities.DeviceDetails) (entities.Device, error)
	EditDevice(ctx context.Context, actor entities.Actor, id string, d entities.DeviceDetails) (entities.Device, error)
	RemoveDevicePhoto(ctx context.Context, actor entities.Actor, id, photo string) (entities.Device, error)
	DeactivateDevice(ctx context.Context, actor entities.Actor, id string) error
	GetDevice(ctx context.Context, id string) (entities.Device, error)
	ListDevices(ctx context.Context, filter entities.DeviceFilter) ([]entities.Device, error)
}

type RegistryUseCase struct {
	customers interfaces.ICustomerRepository
	devices   interfaces.IDeviceRepository
	orders    interfaces.IServiceOrderRepository
	runner    *UnitRunner
	newID     func() string
}

var _ IRegistryUseCase = (*RegistryUseCase)(nil)

func NewRegistryUseCase(customers interfaces.ICustomerRepository, devices interfaces.IDeviceRepository, orders interfaces.IServiceOrderRepository, runner *UnitRunner) *RegistryUseCase {
	return &RegistryUseCase{customers: customers, devices: devices, orders: orders, runner: runner, newID: uuid.NewString}
}

func registryEvent(entity, id, transition string, metadata map[string]string) entities.AuditEvent {
	return entities.AuditEvent{Entity: entity, EntityID: id, Transition: transition, Metadata: metadata}
}

func (u *RegistryUseCase) CreateCustomer(ctx context.Context, actor entities.Actor, d entities.CustomerDetails) (entities.Customer, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.Customer{}, err
	}
	c, err := entities.NewCustomer(u.newID(), d, u.runner.Now())
	if err != nil {
		return entities.Customer{}, err
	}
	err = u.runner.Run(ctx, actor, "customer.create", func(ctx context.Context, cs *entities.ChangeSet) error {
		if err := u.checkUnique(ctx, c.ID, entities.CustomerDetails{Phone: c.Phone, Email: c.Email}); err != nil {
			return err
		}
		cs.CreateCustomer(c)
		cs.Emit(registryEvent(entities.EntityCustomer, c.ID, entities.TransitionCreate, map[string]string{"name": c.Name}))
		return nil
	})
	if err != nil {
		return entities.Customer{}, err
	}
	c.Version = 1
	logger.Info(ctx).Str("customer_id", c.ID).Str("actor", actor.ID).Msg("[registry][usecase] customer created")
	return c, nil
}

// checkUnique fails when another customer, active or not, already uses the
// phone or email of d.
func (u *RegistryUseCase) checkUnique(ctx context.Context, selfID string, d entities.CustomerDetails) error {
	all, err := u.customers.List(ctx, entities.CustomerFilter{IncludeInactive: true})
	if err != nil {
		return err
	}
	for _, other := range all {
		if other.ID == selfID {
			continue
		}
		if field, dup := d.ConflictsWith(other); dup {
			return entities.NewValidationError(field, "already registered to another customer")
		}
	}
	return nil
}

func (u *RegistryUseCase) EditCustomer(ctx context.Context, actor entities.Actor, id string, d entities.CustomerDetails) (entities.Customer, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.Customer{}, err
	}
	var edited entities.Customer
	err := u.runner.Run(ctx, actor, "customer.edit", func(ctx context.Context, cs *entities.ChangeSet) error {
		c, err := u.GetCustomer(ctx, id)
		if err != nil {
			return err
		}
		if err := c.Edit(d, u.runner.Now()); err != nil {
			return err
		}
		if err := u.checkUnique(ctx, c.ID, entities.CustomerDetails{Phone: c.Phone, Email: c.Email}); err != nil {
			return err
		}
		cs.UpdateCustomer(&c)
		cs.Emit(registryEvent(entities.EntityCustomer, c.ID, entities.TransitionUpdate, nil))
		edited = c
		return nil
	})
	return edited, err
}

// DeactivateCustomer soft-deletes a customer that has no active devices.
func (u *RegistryUseCase) DeactivateCustomer(ctx context.Context, actor entities.Actor, id string) error {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return err
	}
	return u.runner.Run(ctx, actor, "customer.delete", func(ctx context.Context, cs *entities.ChangeSet) error {
		c, err := u.GetCustomer(ctx, id)
		if err != nil {
			return err
		}
		devices, err := u.devices.List(ctx, entities.DeviceFilter{CustomerID: c.ID})
		if err != nil {
			return err
		}
		if err := c.Deactivate(len(devices), u.runner.Now()); err != nil {
			return err
		}
		cs.UpdateCustomer(&c)
		cs.Emit(registryEvent(entities.EntityCustomer, c.ID, entities.TransitionDelete, nil))
		return nil
	})
}

func (u *RegistryUseCase) GetCustomer(ctx context.Context, id string) (entities.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Customer{}, entities.NewValidationError("customer_id", "is required")
	}
	c, err := u.customers.GetByID(ctx, id)
	if err != nil {
		return entities.Customer{}, err
	}
	if !c.Exists() {
		return entities.Customer{}, &entities.NotFoundError{Entity: entities.EntityCustomer, ID: id}
	}
	return c, nil
}

func (u *RegistryUseCase) ListCustomers(ctx context.Context, filter entities.CustomerFilter) ([]entities.Customer, error) {
	return u.customers.List(ctx, filter)
}

// activeCustomer resolves the owner of a device being registered or moved.
func (u *RegistryUseCase) activeCustomer(ctx context.Context, id string) error {
	c, err := u.customers.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return err
	}
	if !c.Exists() || !c.Active {
		return entities.NewValidationError("customer_id", "unknown or inactive customer")
	}
	return nil
}

func (u *RegistryUseCase) RegisterDevice(ctx context.Context, actor entities.Actor, d entities.DeviceDetails) (entities.Device, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.Device{}, err
	}
	dev, err := entities.NewDevice(u.newID(), d, u.runner.Now())
	if err != nil {
		return entities.Device{}, err
	}
	err = u.runner.Run(ctx, actor, "device.create", func(ctx context.Context, cs *entities.ChangeSet) error {
		if err := u.activeCustomer(ctx, dev.CustomerID); err != nil {
			return err
		}
		cs.CreateDevice(dev)
		cs.Emit(registryEvent(entities.EntityDevice, dev.ID, entities.TransitionCreate, map[string]string{
			"customer_id": dev.CustomerID,
			"device":      dev.Description(),
			"photos":      strconv.Itoa(len(dev.Photos)),
		}))
		return nil
	})
	if err != nil {
		return entities.Device{}, err
	}
	dev.Version = 1
	logger.Info(ctx).Str("device_id", dev.ID).Str("customer_id", dev.CustomerID).Msg("[registry][usecase] device registered")
	return dev, nil
}

// EditDevice replaces the device details. Photos in d are appended.
func (u *RegistryUseCase) EditDevice(ctx context.Context, actor entities.Actor, id string, d entities.DeviceDetails) (entities.Device, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.Device{}, err
	}
	var edited entities.Device
	err := u.runner.Run(ctx, actor, "device.edit", func(ctx context.Context, cs *entities.ChangeSet) error {
		dev, err := u.GetDevice(ctx, id)
		if err != nil {
			return err
		}
		owner := dev.CustomerID
		if err := dev.Edit(d, u.runner.Now()); err != nil {
			return err
		}
		if dev.CustomerID != owner {
			if err := u.activeCustomer(ctx, dev.CustomerID); err != nil {
				return err
			}
		}
		cs.UpdateDevice(&dev)
		cs.Emit(registryEvent(entities.EntityDevice, dev.ID, entities.TransitionUpdate, map[string]string{"customer_id": dev.CustomerID}))
		edited = dev
		return nil
	})
	return edited, err
}

func (u *RegistryUseCase) RemoveDevicePhoto(ctx context.Context, actor entities.Actor, id, photo string) (entities.Device, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.Device{}, err
	}
	var edited entities.Device
	err := u.runner.Run(ctx, actor, "device.remove_photo", func(ctx context.Context, cs *entities.ChangeSet) error {
		dev, err := u.GetDevice(ctx, id)
		if err != nil {
			return err
		}
		if err := dev.RemovePhoto(strings.TrimSpace(photo), u.runner.Now()); err != nil {
			return err
		}
		cs.UpdateDevice(&dev)
		cs.Emit(registryEvent(entities.EntityDevice, dev.ID, entities.TransitionUpdate, map[string]string{"removed_photo": photo}))
		edited = dev
		return nil
	})
	return edited, err
}

// DeactivateDevice soft-deletes a device that no active service order
// references. Photo files are left to the blob store.
func (u *RegistryUseCase) DeactivateDevice(ctx context.Context, actor entities.Actor, id string) error {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return err
	}
	return u.runner.Run(ctx, actor, "device.delete", func(ctx context.Context, cs *entities.ChangeSet) error {
		dev, err := u.GetDevice(ctx, id)
		if err != nil {
			return err
		}
		orders, err := u.orders.List(ctx, entities.OrderFilter{DeviceRef: dev.ID})
		if err != nil {
			return err
		}
		if err := dev.Deactivate(len(orders), u.runner.Now()); err != nil {
			return err
		}
		cs.UpdateDevice(&dev)
		cs.Emit(registryEvent(entities.EntityDevice, dev.ID, entities.TransitionDelete, nil))
		return nil
	})
}

func (u *RegistryUseCase) GetDevice(ctx context.Context, id string) (entities.Device, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.Device{}, entities.NewValidationError("device_id", "is required")
	}
	dev, err := u.devices.GetByID(ctx, id)
	if err != nil {
		return entities.Device{}, err
	}
	if !dev.Exists() {
		return entities.Device{}, &entities.NotFoundError{Entity: entities.EntityDevice, ID: id}
	}
	return dev, nil
}

func (u *RegistryUseCase) ListDevices(ctx context.Context, filter entities.DeviceFilter) ([]entities.Device, error) {
	return u.devices.List(ctx, filter)
}
