package interfaces

import (
	"context"
	"servicedesk/internal/domain/entities"
)

// IUnitOfWork commits a ChangeSet atomically.
//
// Implementations must return:
//   - entities.ErrConcurrentUpdate (wrapped) when a versioned write lost a race
//   - *entities.InsufficientStockError when a reservation is not covered
//
// and must leave storage untouched on any error.
type IUnitOfWork interface {
	Commit(ctx context.Context, cs *entities.ChangeSet) error
}
