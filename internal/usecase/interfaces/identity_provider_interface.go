package interfaces

import (
	"context"
	"servicedesk/internal/domain/entities"
)

// IIdentityProvider resolves a bearer credential into the calling actor.
type IIdentityProvider interface {
	Authenticate(ctx context.Context, token string) (entities.Actor, error)
}
