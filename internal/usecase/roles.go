package usecase

import "servicedesk/internal/domain/entities"

// requireRole fails with ErrForbidden unless actor is authenticated and holds
// one of roles.
func requireRole(actor entities.Actor, roles ...entities.Role) error {
	if actor.ID == "" {
		return entities.Forbidden("unauthenticated actor")
	}
	if !actor.HasRole(roles...) {
		return entities.Forbidden("role %q may not perform this operation", actor.Role)
	}
	return nil
}
