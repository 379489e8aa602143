package handlers

import (
	"errors"
	"net/http"

	"servicedesk/internal/domain/entities"
	"servicedesk/pkg"
	"servicedesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// mapDomainError translates the shared error taxonomy into an AppError.
func mapDomainError(err error) *pkg.AppError {
	var (
		validation *entities.ValidationError
		stock      *entities.InsufficientStockError
		notFound   *entities.NotFoundError
	)
	switch {
	case errors.As(err, &validation):
		return pkg.NewDomainError("VALIDATION_ERROR", validation.Error(), err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrValidation):
		return pkg.NewDomainError("VALIDATION_ERROR", "Invalid request", err, http.StatusBadRequest)
	case errors.Is(err, entities.ErrInvalidTransition):
		return pkg.NewDomainError("INVALID_TRANSITION", err.Error(), err, http.StatusConflict)
	case errors.As(err, &stock):
		return pkg.NewDomainError("INSUFFICIENT_STOCK", stock.Error(), err, http.StatusConflict)
	case errors.Is(err, entities.ErrForbidden):
		return pkg.NewDomainError("FORBIDDEN", "Operation not allowed for this actor", err, http.StatusForbidden)
	case errors.As(err, &notFound):
		return pkg.NewDomainError("NOT_FOUND", notFound.Error(), err, http.StatusNotFound)
	case errors.Is(err, entities.ErrNotFound):
		return pkg.NewDomainError("NOT_FOUND", "Resource not found", err, http.StatusNotFound)
	case errors.Is(err, entities.ErrAlreadyAssigned):
		return pkg.NewDomainError("ALREADY_ASSIGNED", "Service order already assigned", err, http.StatusConflict)
	case errors.Is(err, entities.ErrNotAvailable):
		return pkg.NewDomainError("NOT_AVAILABLE", "Service order not available", err, http.StatusConflict)
	case errors.Is(err, entities.ErrConcurrentUpdate):
		return pkg.NewDomainError("CONCURRENT_UPDATE", "The resource was modified concurrently, retry", err, http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func invalidRequest() *pkg.AppError {
	return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
}

// fail maps err, logs it under [component][handler] and writes the response.
func fail(c *gin.Context, component, op string, err error) {
	appErr := mapDomainError(err)
	ev := logger.Warn(c.Request.Context())
	if appErr.HTTPStatus >= http.StatusInternalServerError {
		ev = logger.Error(c.Request.Context())
	}
	ev.Err(err).Str("id", c.Param("id")).Msgf("[%s][handler] %s failed", component, op)
	writeError(c, appErr)
}
