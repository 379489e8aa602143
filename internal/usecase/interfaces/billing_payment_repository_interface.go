package interfaces

import (
	"context"
	"servicedesk/internal/domain/entities"
)

// IBillingPaymentRepository abstracts persistence of the payment history.
//
// Manual recordings are written through IUnitOfWork together with the order
// update; Create is used for provider outcomes that do not move amountPaid.

type IBillingPaymentRepository interface {
	Create(ctx context.Context, p entities.BillingPayment) (entities.BillingPayment, error)
	GetByID(ctx context.Context, id string) (entities.BillingPayment, error)
	ListByServiceOrderID(ctx context.Context, serviceOrderID string) ([]entities.BillingPayment, error)
}
