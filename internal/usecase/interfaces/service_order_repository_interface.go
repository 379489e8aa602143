package interfaces

import (
	"context"
	"servicedesk/internal/domain/entities"
)

// IServiceOrderRepository is the read side of service order storage. Writes
// go through IUnitOfWork. A missing order is returned as the zero value.
type IServiceOrderRepository interface {
	GetByID(ctx context.Context, id string) (entities.ServiceOrder, error)
	List(ctx context.Context, filter entities.OrderFilter) ([]entities.ServiceOrder, error)
}
