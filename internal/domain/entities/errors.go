package entities

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by every use case. Callers match with errors.Is; the
// typed errors below carry details and report the matching sentinel.
var (
	ErrValidation        = errors.New("validation error")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrForbidden         = errors.New("forbidden")
	ErrNotFound          = errors.New("not found")
	ErrAlreadyAssigned   = errors.New("service order already assigned")
	ErrNotAvailable      = errors.New("service order not available")

	// ErrConcurrentUpdate is returned by storage when an optimistic version
	// check fails. Use cases re-read and re-plan on it.
	ErrConcurrentUpdate = errors.New("concurrent update")
)

type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// TransitionError reports an operation refused by a state machine. No side
// effects were applied.
type TransitionError struct {
	Entity string
	State  string
	Event  string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s in state %q does not allow %s", e.Entity, e.State, e.Event)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

type InsufficientStockError struct {
	ItemID    string
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	name := e.ItemName
	if name == "" {
		name = e.ItemID
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d", name, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// Forbidden wraps ErrForbidden with a reason.
func Forbidden(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrForbidden, fmt.Sprintf(format, args...))
}
