package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"servicedesk/internal/adapter/http/handlers/mocks"
	"servicedesk/internal/adapter/http/middleware"
	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read error") }
func (failingReadCloser) Close() error               { return nil }

var reception = entities.Actor{ID: "rec-1", Role: entities.RoleReception}

func TestBillingPaymentHandler_ChargeOutstanding(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(uc *mocks.MockIBillingPaymentUseCase) *gin.Engine {
		h := NewBillingPaymentHandler(uc)
		r := gin.New()
		r.Use(middleware.WithActor(reception))
		r.POST("/v1/payments/:order_id", h.ChargeOutstanding)
		return r
	}

	t.Run("invalid payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/so-1", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("usecase mapped error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)

		uc.EXPECT().ChargeOutstanding(gomock.Any(), reception, "so-1", gomock.Any()).Return(entities.BillingPayment{}, usecase.ErrOrderNotApproved)

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/so-1", bytes.NewBufferString(`{"payment_method_id":"pix","payer":{"email":"x@test.com"}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
	})

	t.Run("success unwraps mp_payload", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)

		now := time.Now().UTC()
		uc.EXPECT().
			ChargeOutstanding(gomock.Any(), reception, "so-1", gomock.Any()).
			DoAndReturn(func(_ any, _ entities.Actor, _ string, payload json.RawMessage) (entities.BillingPayment, error) {
				if string(payload) != `{"payment_method_id":"pix","payer":{"email":"x@test.com"}}` {
					t.Fatalf("unexpected forwarded payload: %s", payload)
				}
				return entities.BillingPayment{
					ID:             "pay-1",
					ServiceOrderID: "so-1",
					Amount:         decimal.NewFromInt(120),
					Date:           now,
					Status:         entities.PaymentStatusApproved,
				}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/v1/payments/so-1", bytes.NewBufferString(`{"mp_payload":{"payment_method_id":"pix","payer":{"email":"x@test.com"}}}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		newRouter(uc).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["payment_id"] != "pay-1" || body["service_order_id"] != "so-1" || body["amount"] != "120" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestBillingPaymentHandler_ListByServiceOrder(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		h := NewBillingPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/:order_id", h.ListByServiceOrder)

		uc.EXPECT().ListByServiceOrderID(gomock.Any(), "so-1").Return(nil, usecase.ErrInvalidPaymentOrderID)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/so-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("empty history", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		h := NewBillingPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/:order_id", h.ListByServiceOrder)

		uc.EXPECT().ListByServiceOrderID(gomock.Any(), "so-1").Return(nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/so-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK || w.Body.String() != "[]" {
			t.Fatalf("expected 200 with empty list, got %d %s", w.Code, w.Body.String())
		}
	})

	t.Run("success keeps order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
		h := NewBillingPaymentHandler(uc)

		r := gin.New()
		r.GET("/v1/payments/:order_id", h.ListByServiceOrder)

		latest := entities.BillingPayment{ID: "latest", ServiceOrderID: "so-1", Date: time.Now(), Status: entities.PaymentStatusApproved}
		old := entities.BillingPayment{ID: "old", ServiceOrderID: "so-1", Date: time.Now().Add(-time.Hour), Status: entities.PaymentStatusPending}
		uc.EXPECT().ListByServiceOrderID(gomock.Any(), "so-1").Return([]entities.BillingPayment{latest, old}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/payments/so-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if len(body) != 2 || body[0]["payment_id"] != "latest" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestBillingPaymentHandler_GetPayment(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	uc := mocks.NewMockIBillingPaymentUseCase(ctrl)
	h := NewBillingPaymentHandler(uc)

	r := gin.New()
	r.GET("/v1/payments/:order_id/:payment_id", h.GetPayment)

	uc.EXPECT().GetByID(gomock.Any(), "pay-1").Return(entities.BillingPayment{ID: "pay-1", ServiceOrderID: "so-1"}, nil).Times(2)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/payments/so-1/pay-1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/payments/so-2/pay-1", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for payment of another order, got %d", w.Code)
	}
}

func TestReadMPPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	makeCtx := func(raw string) *gin.Context {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(raw))
		c.Request.Header.Set("Content-Type", "application/json")
		return c
	}

	ctxReadErr := makeCtx("{}")
	ctxReadErr.Request.Body = failingReadCloser{}
	if _, err := readMPPayload(ctxReadErr); err == nil {
		t.Fatalf("expected read body error")
	}

	if _, err := readMPPayload(makeCtx("{invalid")); err == nil {
		t.Fatalf("expected invalid json error")
	}

	payload, err := readMPPayload(makeCtx("   "))
	if err != nil || string(payload) != "{}" {
		t.Fatalf("expected {}, got payload=%s err=%v", string(payload), err)
	}

	if _, err := readMPPayload(makeCtx(`{"mp_payload":null}`)); err == nil {
		t.Fatalf("expected mp_payload empty error")
	}

	payload, err = readMPPayload(makeCtx(`{"mp_payload":"x"}`))
	if err != nil || string(payload) != `"x"` {
		t.Fatalf("expected wrapped string payload, got %s err=%v", payload, err)
	}

	payload, err = readMPPayload(makeCtx(`{"mp_payload":{"a":1}}`))
	if err != nil || string(payload) != `{"a":1}` {
		t.Fatalf("expected wrapped payload, got %s err=%v", payload, err)
	}

	payload, err = readMPPayload(makeCtx(`{"mp_payload":{"payment_method_id":"pix"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !json.Valid(payload) {
		t.Fatalf("expected valid payload")
	}

	payload, err = readMPPayload(makeCtx(`{"payment_method_id":"pix"}`))
	if err != nil || string(payload) != `{"payment_method_id":"pix"}` {
		t.Fatalf("expected raw body payload, got %s err=%v", payload, err)
	}
}

func TestMapBillingPaymentError(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{usecase.ErrInvalidPaymentOrderID, http.StatusBadRequest},
		{usecase.ErrInvalidMPPayload, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayBadRequest, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayCustomerNotFound, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayInvalidUsers, http.StatusBadRequest},
		{usecase.ErrPaymentGatewayUnauthorized, http.StatusUnauthorized},
		{usecase.ErrOrderNotApproved, http.StatusConflict},
		{usecase.ErrNothingOutstanding, http.StatusConflict},
		{fmt.Errorf("%w: credit 10.00, outstanding 0.00", usecase.ErrStaleCredit), http.StatusConflict},
		{&entities.NotFoundError{Entity: "service_order", ID: "so-1"}, http.StatusNotFound},
		{entities.Forbidden("role %q", "technician"), http.StatusForbidden},
		{usecase.ErrBillingPaymentNotFound, http.StatusNotFound},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		got := mapBillingPaymentError(tc.err)
		if got.HTTPStatus != tc.code {
			t.Fatalf("for err %v expected %d got %d", tc.err, tc.code, got.HTTPStatus)
		}
	}
}
