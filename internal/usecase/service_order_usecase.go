package usecase

import (
	"context"
	"strings"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg/logger"

	"github.com/google/uuid"
)

// IServiceOrderUseCase covers order intake, edits and reads.
type IServiceOrderUseCase interface {
	Create(ctx context.Context, actor entities.Actor, d entities.OrderDetails) (entities.ServiceOrder, error)
	Edit(ctx context.Context, actor entities.Actor, id string, d entities.OrderDetails) (entities.ServiceOrder, error)
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.ServiceOrder, error)
	// Available lists active pending orders a technician may claim.
	Available(ctx context.Context) ([]entities.ServiceOrder, error)
	Mine(ctx context.Context, actor entities.Actor) ([]entities.ServiceOrder, error)
}

type ServiceOrderUseCase struct {
	orders  interfaces.IServiceOrderRepository
	devices interfaces.IDeviceRepository
	runner  *UnitRunner
	newID   func() string
}

var _ IServiceOrderUseCase = (*ServiceOrderUseCase)(nil)

func NewServiceOrderUseCase(orders interfaces.IServiceOrderRepository, devices interfaces.IDeviceRepository, runner *UnitRunner) *ServiceOrderUseCase {
	return &ServiceOrderUseCase{orders: orders, devices: devices, runner: runner, newID: uuid.NewString}
}

// checkDevice fails unless ref names an active registered device.
func (u *ServiceOrderUseCase) checkDevice(ctx context.Context, ref string) error {
	dev, err := u.devices.GetByID(ctx, ref)
	if err != nil {
		return err
	}
	if !dev.Exists() || !dev.Active {
		return entities.NewValidationError("device_ref", "unknown or inactive device")
	}
	return nil
}

func (u *ServiceOrderUseCase) Create(ctx context.Context, actor entities.Actor, d entities.OrderDetails) (entities.ServiceOrder, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.ServiceOrder{}, err
	}
	o, err := entities.NewServiceOrder(u.newID(), d, actor.ID, u.runner.Now())
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if err := u.checkDevice(ctx, o.DeviceRef); err != nil {
		return entities.ServiceOrder{}, err
	}
	err = u.runner.Run(ctx, actor, "order.create", func(ctx context.Context, cs *entities.ChangeSet) error {
		cs.CreateOrder(o)
		cs.Emit(orderEvent(o, entities.TransitionCreate, ""))
		return nil
	})
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	o.Version = 1
	logger.Info(ctx).Str("order_id", o.ID).Str("device_ref", o.DeviceRef).Msg("[order][usecase] created")
	return o, nil
}

func (u *ServiceOrderUseCase) Edit(ctx context.Context, actor entities.Actor, id string, d entities.OrderDetails) (entities.ServiceOrder, error) {
	if err := requireRole(actor, entities.RoleReception, entities.RoleAdmin); err != nil {
		return entities.ServiceOrder{}, err
	}
	var edited entities.ServiceOrder
	err := u.runner.Run(ctx, actor, "order.edit", func(ctx context.Context, cs *entities.ChangeSet) error {
		o, err := u.GetByID(ctx, id)
		if err != nil {
			return err
		}
		previous := o.DeviceRef
		if err := o.Edit(d, u.runner.Now()); err != nil {
			return err
		}
		if o.DeviceRef != previous {
			if err := u.checkDevice(ctx, o.DeviceRef); err != nil {
				return err
			}
		}
		cs.UpdateOrder(&o)
		cs.Emit(orderEvent(o, entities.TransitionUpdate, o.State))
		edited = o
		return nil
	})
	return edited, err
}

func (u *ServiceOrderUseCase) GetByID(ctx context.Context, id string) (entities.ServiceOrder, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.ServiceOrder{}, entities.NewValidationError("service_order_id", "is required")
	}
	o, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return entities.ServiceOrder{}, err
	}
	if !o.Exists() {
		return entities.ServiceOrder{}, &entities.NotFoundError{Entity: entities.EntityServiceOrder, ID: id}
	}
	return o, nil
}

func (u *ServiceOrderUseCase) List(ctx context.Context, filter entities.OrderFilter) ([]entities.ServiceOrder, error) {
	if filter.State != "" && !filter.State.Valid() {
		return nil, entities.NewValidationError("state", "unknown service order state")
	}
	return u.orders.List(ctx, filter)
}

func (u *ServiceOrderUseCase) Available(ctx context.Context) ([]entities.ServiceOrder, error) {
	return u.orders.List(ctx, entities.OrderFilter{State: entities.OrderPending})
}

func (u *ServiceOrderUseCase) Mine(ctx context.Context, actor entities.Actor) ([]entities.ServiceOrder, error) {
	if err := requireRole(actor, entities.RoleTechnician); err != nil {
		return nil, err
	}
	return u.orders.List(ctx, entities.OrderFilter{TechnicianID: actor.ID})
}
