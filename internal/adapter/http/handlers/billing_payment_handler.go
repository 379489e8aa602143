package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"servicedesk/internal/adapter/http/dto/response"
	"servicedesk/internal/adapter/http/middleware"
	"servicedesk/internal/usecase"
	"servicedesk/pkg"
	"servicedesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

// BillingPaymentHandler handles HTTP requests for provider payments.
type BillingPaymentHandler struct {
	usecase usecase.IBillingPaymentUseCase
}

func NewBillingPaymentHandler(uc usecase.IBillingPaymentUseCase) *BillingPaymentHandler {
	return &BillingPaymentHandler{usecase: uc}
}

// ChargeOutstanding charges the order's outstanding balance through Mercado Pago.
//
// @Summary  Charge the outstanding balance of a service order
// @Tags     payments
// @Accept   json
// @Produce  json
// @Param    order_id  path  string  true  "Service order id"
// @Param    body      body  request.BillingPaymentCreateRequest  false  "Mercado Pago payload"
// @Success  200  {object}  response.BillingPaymentResponse
// @Failure  400  {object}  pkg.HTTPError
// @Failure  409  {object}  pkg.HTTPError
// @Router   /payments/{order_id} [post]
// @Security Bearer
func (h *BillingPaymentHandler) ChargeOutstanding(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("order_id")
	logger.Info(ctx).Str("order_id", orderID).Msg("[payment][handler] charge start")

	mpPayload, err := readMPPayload(c)
	if err != nil {
		logger.Warn(ctx).Err(err).Str("order_id", orderID).Msg("[payment][handler] invalid payload")
		writeError(c, invalidRequest())
		return
	}

	created, err := h.usecase.ChargeOutstanding(ctx, middleware.ActorFrom(c), orderID, mpPayload)
	if err != nil {
		logger.Error(ctx).Err(err).Str("order_id", orderID).Msg("[payment][handler] charge failed")
		writeError(c, mapBillingPaymentError(err))
		return
	}
	logger.Info(ctx).
		Str("order_id", orderID).
		Str("payment_id", created.ID).
		Str("status", string(created.Status)).
		Msg("[payment][handler] charge success")

	c.JSON(http.StatusOK, response.FromBillingPayment(created))
}

// ListByServiceOrder returns the payment history of an order, newest first.
//
// @Summary  Payment history of a service order
// @Tags     payments
// @Produce  json
// @Param    order_id  path  string  true  "Service order id"
// @Success  200  {array}  response.BillingPaymentResponse
// @Router   /payments/{order_id} [get]
// @Security Bearer
func (h *BillingPaymentHandler) ListByServiceOrder(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("order_id")

	payments, err := h.usecase.ListByServiceOrderID(ctx, orderID)
	if err != nil {
		logger.Error(ctx).Err(err).Str("order_id", orderID).Msg("[payment][handler] list failed")
		writeError(c, mapBillingPaymentError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromBillingPayments(payments))
}

// GetPayment returns one payment entry of an order.
func (h *BillingPaymentHandler) GetPayment(c *gin.Context) {
	ctx := c.Request.Context()
	orderID := c.Param("order_id")
	paymentID := c.Param("payment_id")

	p, err := h.usecase.GetByID(ctx, paymentID)
	if err == nil && p.ServiceOrderID != orderID {
		err = usecase.ErrBillingPaymentNotFound
	}
	if err != nil {
		writeError(c, mapBillingPaymentError(err))
		return
	}

	c.JSON(http.StatusOK, response.FromBillingPayment(p))
}

// readMPPayload accepts either a raw Mercado Pago body or one wrapped in
// {"mp_payload": ...}. An empty body becomes {}.
func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}

func mapBillingPaymentError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidPaymentOrderID), errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return invalidRequest()
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrOrderNotApproved):
		return pkg.NewDomainErrorSimple("ORDER_NOT_APPROVED", "Service order has no approved quotation", http.StatusConflict)
	case errors.Is(err, usecase.ErrNothingOutstanding):
		return pkg.NewDomainErrorSimple("NOTHING_OUTSTANDING", "Service order has no outstanding balance", http.StatusConflict)
	case errors.Is(err, usecase.ErrStaleCredit):
		return pkg.NewDomainErrorSimple("STALE_CREDIT", "Payment exceeds the outstanding balance", http.StatusConflict)
	case errors.Is(err, usecase.ErrBillingPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	default:
		return mapDomainError(err)
	}
}
