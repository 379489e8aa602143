package handlers

import (
	"net/http"
	"strconv"

	"servicedesk/internal/adapter/http/dto/request"
	"servicedesk/internal/adapter/http/dto/response"
	"servicedesk/internal/adapter/http/middleware"
	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase"

	"github.com/gin-gonic/gin"
)

// RegistryHandler exposes the customer and device registry.
type RegistryHandler struct {
	registry usecase.IRegistryUseCase
}

func NewRegistryHandler(registry usecase.IRegistryUseCase) *RegistryHandler {
	return &RegistryHandler{registry: registry}
}

func (h *RegistryHandler) CreateCustomer(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	created, err := h.registry.CreateCustomer(c.Request.Context(), middleware.ActorFrom(c), req.ToDetails())
	if err != nil {
		fail(c, "customer", "create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromCustomer(created))
}

func (h *RegistryHandler) ListCustomers(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))
	customers, err := h.registry.ListCustomers(c.Request.Context(), entities.CustomerFilter{IncludeInactive: includeInactive})
	if err != nil {
		fail(c, "customer", "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromCustomers(customers))
}

func (h *RegistryHandler) GetCustomer(c *gin.Context) {
	customer, err := h.registry.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "customer", "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromCustomer(customer))
}

func (h *RegistryHandler) EditCustomer(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	edited, err := h.registry.EditCustomer(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.ToDetails())
	if err != nil {
		fail(c, "customer", "edit", err)
		return
	}
	c.JSON(http.StatusOK, response.FromCustomer(edited))
}

func (h *RegistryHandler) DeactivateCustomer(c *gin.Context) {
	if err := h.registry.DeactivateCustomer(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		fail(c, "customer", "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RegistryHandler) ListCustomerDevices(c *gin.Context) {
	h.listDevices(c, c.Param("id"))
}

// ListDevices filters by ?customer_id= and ?include_inactive=true.
func (h *RegistryHandler) ListDevices(c *gin.Context) {
	h.listDevices(c, c.Query("customer_id"))
}

func (h *RegistryHandler) listDevices(c *gin.Context, customerID string) {
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))
	devices, err := h.registry.ListDevices(c.Request.Context(), entities.DeviceFilter{
		CustomerID:      customerID,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		fail(c, "device", "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromDevices(devices))
}

func (h *RegistryHandler) RegisterDevice(c *gin.Context) {
	var req request.DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	created, err := h.registry.RegisterDevice(c.Request.Context(), middleware.ActorFrom(c), req.ToDetails())
	if err != nil {
		fail(c, "device", "create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromDevice(created))
}

func (h *RegistryHandler) GetDevice(c *gin.Context) {
	device, err := h.registry.GetDevice(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "device", "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromDevice(device))
}

func (h *RegistryHandler) EditDevice(c *gin.Context) {
	var req request.DeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	edited, err := h.registry.EditDevice(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.ToDetails())
	if err != nil {
		fail(c, "device", "edit", err)
		return
	}
	c.JSON(http.StatusOK, response.FromDevice(edited))
}

func (h *RegistryHandler) RemovePhoto(c *gin.Context) {
	var req request.RemovePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	edited, err := h.registry.RemoveDevicePhoto(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.Photo)
	if err != nil {
		fail(c, "device", "remove-photo", err)
		return
	}
	c.JSON(http.StatusOK, response.FromDevice(edited))
}

func (h *RegistryHandler) DeactivateDevice(c *gin.Context) {
	if err := h.registry.DeactivateDevice(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		fail(c, "device", "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}
