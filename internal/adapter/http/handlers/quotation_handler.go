package handlers

import (
	"context"
	"net/http"

	"servicedesk/internal/adapter/http/dto/request"
	"servicedesk/internal/adapter/http/dto/response"
	"servicedesk/internal/adapter/http/middleware"
	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase"
	"servicedesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

type QuotationHandler struct {
	quotations usecase.IQuotationUseCase
	workflow   usecase.IWorkflowUseCase
}

func NewQuotationHandler(quotations usecase.IQuotationUseCase, workflow usecase.IWorkflowUseCase) *QuotationHandler {
	return &QuotationHandler{quotations: quotations, workflow: workflow}
}

// Submit creates a quotation for the order in :id.
func (h *QuotationHandler) Submit(c *gin.Context) {
	var req request.QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	q, err := h.workflow.SubmitQuotation(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.ToDraft())
	if err != nil {
		fail(c, "quotation", "submit", err)
		return
	}
	logger.Info(c.Request.Context()).Str("order_id", q.ServiceOrderID).Str("quotation_id", q.ID).Msg("[quotation][handler] submitted")
	c.JSON(http.StatusCreated, response.FromQuotation(q))
}

func (h *QuotationHandler) ListByServiceOrder(c *gin.Context) {
	qs, err := h.quotations.ListByServiceOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "quotation", "list-by-order", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotations(qs))
}

// ListByState requires ?state=.
func (h *QuotationHandler) ListByState(c *gin.Context) {
	qs, err := h.quotations.ListByState(c.Request.Context(), entities.QuotationState(c.Query("state")))
	if err != nil {
		fail(c, "quotation", "list-by-state", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotations(qs))
}

func (h *QuotationHandler) Get(c *gin.Context) {
	q, err := h.quotations.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, "quotation", "get", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotation(q))
}

func (h *QuotationHandler) Approve(c *gin.Context) {
	h.transition(c, "approve", h.workflow.ApproveQuotation)
}

func (h *QuotationHandler) Reject(c *gin.Context) {
	h.transition(c, "reject", h.workflow.RejectQuotation)
}

func (h *QuotationHandler) Cancel(c *gin.Context) {
	h.transition(c, "cancel", h.workflow.CancelQuotation)
}

func (h *QuotationHandler) Revise(c *gin.Context) {
	var req request.QuotationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, invalidRequest())
		return
	}

	q, err := h.workflow.ReviseQuotation(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"), req.ToDraft())
	if err != nil {
		fail(c, "quotation", "revise", err)
		return
	}
	c.JSON(http.StatusOK, response.FromQuotation(q))
}

type quotationTransition func(ctx context.Context, actor entities.Actor, quotationID string) (entities.Quotation, error)

func (h *QuotationHandler) transition(c *gin.Context, op string, fn quotationTransition) {
	q, err := fn(c.Request.Context(), middleware.ActorFrom(c), c.Param("id"))
	if err != nil {
		fail(c, "quotation", op, err)
		return
	}
	logger.Info(c.Request.Context()).Str("quotation_id", q.ID).Str("state", string(q.State)).Msgf("[quotation][handler] %s success", op)
	c.JSON(http.StatusOK, response.FromQuotation(q))
}
