package handlers

import (
	"context"
	"net/http"
	"strconv"

	"servicedesk/internal/adapter/http/dto/request"
	"servicedesk/internal/adapter/http/dto/response"
	"servicedesk/internal/adapter/http/middleware"
	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase"
	"servicedesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ServiceOrderHandler exposes the service order lifecycle.
type ServiceOrderHandler struct {
	orders   usecase.IServiceOrderUseCase
	workflow usecase.IWorkflowUseCase
	reports  usecase.IOrderReportUseCase
}

func NewServiceOrderHandler(orders usecase.IServiceOrderUseCase, workflow usecase.IWorkflowUseCase, reports usecase.IOrderReportUseCase) *ServiceOrderHandler {
	return &ServiceOrderHandler{orders: orders, workflow: workflow, reports: reports}
}

func (h *ServiceOrderHandler) Create(c *gin.Context) {
	var req request.ServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	created, err := h.orders.Create(c.Request.Context(), middleware.ActorFrom(c), req.ToDetails())
	if err != nil {
		fail(c, "order", "create", err)
		return
	}
	c.JSON(http.StatusCreated, response.FromServiceOrder(created))
}

// List filters by ?state=, ?technician_id= and ?include_inactive=true.
func (h *ServiceOrderHandler) List(c *gin.Context) {
	includeInactive, _ := strconv.ParseBool(c.Query("include_inactive"))
	filter := entities.OrderFilter{
		State:           entities.OrderState(c.Query("state")),
		TechnicianID:    c.Query("technician_id"),
		IncludeInactive: includeInactive,
	}

	orders, err := h.orders.List(c.Request.Context(), filter)
	if err != nil {
		fail(c, "order", "list", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrders(orders))
}

func (h *ServiceOrderHandler) Available(c *gin.Context) {
	orders, err := h.orders.Available(c.Request.Context())
	if err != nil {
		fail(c, "order", "available", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrders(orders))
}

func (h *ServiceOrderHandler) Mine(c *gin.Context) {
	orders, err := h.orders.Mine(c.Request.Context(), middleware.ActorFrom(c))
	if err != nil {
		fail(c, "order", "mine", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrders(orders))
}

func (h *ServiceOrderHandler) Get(c *gin.Context) {
	o, err := h.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "order", "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

func (h *ServiceOrderHandler) Edit(c *gin.Context) {
	var req request.ServiceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	edited, err := h.orders.Edit(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.ToDetails())
	if err != nil {
		fail(c, "order", "edit", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(edited))
}

func (h *ServiceOrderHandler) Delete(c *gin.Context) {
	if err := h.workflow.DeleteOrder(c.Request.Context(), middleware.ActorFrom(c), c.Param("id")); err != nil {
		fail(c, "order", "delete", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ServiceOrderHandler) Claim(c *gin.Context) {
	h.transition(c, "claim", h.workflow.ClaimOrder)
}

func (h *ServiceOrderHandler) Start(c *gin.Context) {
	h.transition(c, "start", h.workflow.StartWork)
}

func (h *ServiceOrderHandler) Deliver(c *gin.Context) {
	h.transition(c, "deliver", h.workflow.DeliverOrder)
}

func (h *ServiceOrderHandler) Finalize(c *gin.Context) {
	var req request.FinalizeOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	o, err := h.workflow.FinalizeOrder(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.WorkPerformed)
	if err != nil {
		fail(c, "order", "finalize", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

// RecordPayment sets the cumulative amount paid.
func (h *ServiceOrderHandler) RecordPayment(c *gin.Context) {
	var req request.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AmountPaid == nil {
		writeError(c, invalidRequest())
		return
	}

	o, err := h.workflow.RecordPayment(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), *req.AmountPaid)
	if err != nil {
		fail(c, "order", "record-payment", err)
		return
	}
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}

// Report returns the final report of a finished order: the order, its
// approved quotation with item names, totals and the device owner.
func (h *ServiceOrderHandler) Report(c *gin.Context) {
	report, err := h.reports.Build(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, "report", "build", err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrderReport(report))
}

type orderTransition func(ctx context.Context, actor entities.Actor, orderID string) (entities.ServiceOrder, error)

func (h *ServiceOrderHandler) transition(c *gin.Context, op string, fn orderTransition) {
	o, err := fn(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, "order", op, err)
		return
	}
	logger.Info(c.Request.Context()).Str("order_id", o.ID).Str("state", string(o.State)).Msgf("[order][handler] %s success", op)
	c.JSON(http.StatusOK, response.FromServiceOrder(o))
}
