package interfaces

import (
	"context"
	"servicedesk/internal/domain/entities"
)

type IQuotationRepository interface {
	GetByID(ctx context.Context, id string) (entities.Quotation, error)
	List(ctx context.Context, filter entities.QuotationFilter) ([]entities.Quotation, error)
}
