package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"servicedesk/internal/adapter/http/handlers/mocks"
	"servicedesk/internal/adapter/http/middleware"
	"servicedesk/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func newQuotationRouter(t *testing.T, actor entities.Actor) (*mocks.MockIQuotationUseCase, *mocks.MockIWorkflowUseCase, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	quotations := mocks.NewMockIQuotationUseCase(ctrl)
	workflow := mocks.NewMockIWorkflowUseCase(ctrl)
	h := NewQuotationHandler(quotations, workflow)

	r := gin.New()
	r.Use(middleware.WithActor(actor))
	r.POST("/orders/:id/quotations", h.Submit)
	r.GET("/orders/:id/quotations", h.ListByServiceOrder)
	r.GET("/quotations", h.ListByState)
	r.GET("/quotations/:id", h.Get)
	r.POST("/quotations/:id/approve", h.Approve)
	r.POST("/quotations/:id/reject", h.Reject)
	r.POST("/quotations/:id/cancel", h.Cancel)
	r.POST("/quotations/:id/revise", h.Revise)
	return quotations, workflow, r
}

func TestQuotationHandler_Submit(t *testing.T) {
	t.Run("insufficient stock", func(t *testing.T) {
		_, workflow, r := newQuotationRouter(t, technician)
		workflow.EXPECT().
			SubmitQuotation(gomock.Any(), technician, "so-1", gomock.Any()).
			Return(entities.Quotation{}, &entities.InsufficientStockError{ItemID: "i-1", ItemName: "Fuse", Requested: 3, Available: 1})

		req := httptest.NewRequest(http.MethodPost, "/orders/so-1/quotations", bytes.NewBufferString(`{"labor_description":"x","hours":"1","hourly_rate":"10","items":[{"inventory_item_id":"i-1","quantity":3}]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["code"] != "INSUFFICIENT_STOCK" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("success maps draft", func(t *testing.T) {
		_, workflow, r := newQuotationRouter(t, technician)
		workflow.EXPECT().
			SubmitQuotation(gomock.Any(), technician, "so-1", gomock.Any()).
			DoAndReturn(func(_ any, _ entities.Actor, _ string, d entities.QuotationDraft) (entities.Quotation, error) {
				if len(d.Lines) != 1 || d.Lines[0].InventoryItemID != "i-1" || d.Lines[0].Quantity != 2 {
					t.Fatalf("unexpected draft lines: %+v", d.Lines)
				}
				if !d.Hours.Equal(decimal.RequireFromString("1.5")) {
					t.Fatalf("unexpected hours: %s", d.Hours)
				}
				return entities.Quotation{ID: "q-1", ServiceOrderID: "so-1", State: entities.QuotationPending, Total: decimal.NewFromInt(95)}, nil
			})

		req := httptest.NewRequest(http.MethodPost, "/orders/so-1/quotations", bytes.NewBufferString(`{"labor_description":"Swap board","hours":"1.5","hourly_rate":"50","items":[{"inventory_item_id":"i-1","quantity":2}],"total":"1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["id"] != "q-1" || body["total"] != "95" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestQuotationHandler_Reads(t *testing.T) {
	quotations, _, r := newQuotationRouter(t, reception)
	quotations.EXPECT().ListByServiceOrder(gomock.Any(), "so-1").Return([]entities.Quotation{{ID: "q-1"}}, nil)
	quotations.EXPECT().ListByState(gomock.Any(), entities.QuotationPending).Return([]entities.Quotation{{ID: "q-1"}, {ID: "q-2"}}, nil)
	quotations.EXPECT().GetByID(gomock.Any(), "q-9").Return(entities.Quotation{}, &entities.NotFoundError{Entity: "quotation", ID: "q-9"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/orders/so-1/quotations", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotations?state=pending", nil))
	var list []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &list)
	if w.Code != http.StatusOK || len(list) != 2 {
		t.Fatalf("unexpected list: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/quotations/q-9", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestQuotationHandler_Transitions(t *testing.T) {
	_, workflow, r := newQuotationRouter(t, reception)
	workflow.EXPECT().ApproveQuotation(gomock.Any(), reception, "q-1").Return(entities.Quotation{ID: "q-1", State: entities.QuotationApproved}, nil)
	workflow.EXPECT().RejectQuotation(gomock.Any(), reception, "q-2").Return(entities.Quotation{}, &entities.TransitionError{Entity: "quotation", State: "approved", Event: "reject"})
	workflow.EXPECT().CancelQuotation(gomock.Any(), reception, "q-3").Return(entities.Quotation{}, entities.ErrConcurrentUpdate)

	cases := []struct {
		path string
		code int
	}{
		{"/quotations/q-1/approve", http.StatusOK},
		{"/quotations/q-2/reject", http.StatusConflict},
		{"/quotations/q-3/cancel", http.StatusConflict},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tc.path, nil))
		if w.Code != tc.code {
			t.Fatalf("%s: expected %d, got %d", tc.path, tc.code, w.Code)
		}
	}
}

func TestQuotationHandler_Revise(t *testing.T) {
	t.Run("invalid body", func(t *testing.T) {
		_, _, r := newQuotationRouter(t, technician)
		req := httptest.NewRequest(http.MethodPost, "/quotations/q-1/revise", bytes.NewBufferString(`{"hours":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not the creator", func(t *testing.T) {
		_, workflow, r := newQuotationRouter(t, technician)
		workflow.EXPECT().ReviseQuotation(gomock.Any(), technician, "q-1", gomock.Any()).Return(entities.Quotation{}, entities.Forbidden("only the creator may revise"))

		req := httptest.NewRequest(http.MethodPost, "/quotations/q-1/revise", bytes.NewBufferString(`{"labor_description":"x","hours":"1","hourly_rate":"1"}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}
