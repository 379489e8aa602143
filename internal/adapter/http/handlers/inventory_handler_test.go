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

var admin = entities.Actor{ID: "admin-1", Role: entities.RoleAdmin}

func newInventoryRouter(t *testing.T, actor entities.Actor) (*mocks.MockIInventoryLedgerUseCase, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ledger := mocks.NewMockIInventoryLedgerUseCase(gomock.NewController(t))
	h := NewInventoryHandler(ledger)

	r := gin.New()
	r.Use(middleware.WithActor(actor))
	r.GET("/inventory", h.List)
	r.GET("/inventory/low-stock", h.LowStock)
	r.GET("/inventory/:id", h.Get)
	r.POST("/inventory", h.Create)
	r.PATCH("/inventory/:id", h.Update)
	r.DELETE("/inventory/:id", h.Deactivate)
	r.POST("/inventory/:id/restock", h.Restock)
	r.POST("/inventory/:id/withdraw", h.Withdraw)
	return ledger, r
}

func sendJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestInventoryHandler_List(t *testing.T) {
	ledger, r := newInventoryRouter(t, reception)
	ledger.EXPECT().
		ListItems(gomock.Any(), entities.InventoryFilter{LowStockOnly: true, Category: entities.CategoryParts}).
		Return([]entities.InventoryItem{{ID: "i-1", Stock: 0, ReorderThreshold: 1}}, nil)
	ledger.EXPECT().LowStock(gomock.Any()).Return(nil, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory?low_stock=true&category=parts", nil))
	var body []map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || len(body) != 1 || body[0]["low_stock"] != true {
		t.Fatalf("unexpected list: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/inventory/low-stock", nil))
	if w.Code != http.StatusOK || w.Body.String() != "[]" {
		t.Fatalf("unexpected low-stock: %d %s", w.Code, w.Body.String())
	}
}

func TestInventoryHandler_Create(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		_, r := newInventoryRouter(t, admin)
		if w := sendJSON(r, http.MethodPost, "/inventory", `{"unit_price":"1"}`); w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ledger, r := newInventoryRouter(t, admin)
		ledger.EXPECT().
			CreateItem(gomock.Any(), admin, gomock.Any(), 10).
			DoAndReturn(func(_ any, _ entities.Actor, d entities.ItemDetails, stock int) (entities.InventoryItem, error) {
				if d.Name != "Fuse" || !d.UnitPrice.Equal(decimal.RequireFromString("2.5")) {
					t.Fatalf("unexpected details: %+v", d)
				}
				return entities.InventoryItem{ID: "i-1", Name: d.Name, Stock: stock, ReorderThreshold: 1, Active: true, Version: 1}, nil
			})

		w := sendJSON(r, http.MethodPost, "/inventory", `{"name":"Fuse","unit_price":"2.50","category":"parts","initial_stock":10}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d", w.Code)
		}
	})

	t.Run("forbidden", func(t *testing.T) {
		ledger, r := newInventoryRouter(t, technician)
		ledger.EXPECT().CreateItem(gomock.Any(), technician, gomock.Any(), 0).Return(entities.InventoryItem{}, entities.Forbidden("admin only"))

		if w := sendJSON(r, http.MethodPost, "/inventory", `{"name":"Fuse"}`); w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})
}

func TestInventoryHandler_UpdateAndDeactivate(t *testing.T) {
	ledger, r := newInventoryRouter(t, admin)
	ledger.EXPECT().UpdateItem(gomock.Any(), admin, "i-1", gomock.Any()).Return(entities.InventoryItem{ID: "i-1", Name: "Fuse 2A", Stock: 4}, nil)
	ledger.EXPECT().DeactivateItem(gomock.Any(), admin, "i-1").Return(nil)

	w := sendJSON(r, http.MethodPatch, "/inventory/i-1", `{"name":"Fuse 2A","initial_stock":99}`)
	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if w.Code != http.StatusOK || body["stock"] != float64(4) {
		t.Fatalf("unexpected update: %d %s", w.Code, w.Body.String())
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/inventory/i-1", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
}

func TestInventoryHandler_StockMovements(t *testing.T) {
	ledger, r := newInventoryRouter(t, admin)
	ledger.EXPECT().Release(gomock.Any(), admin, "i-1", 5).Return(entities.InventoryItem{ID: "i-1", Stock: 7}, nil)
	ledger.EXPECT().
		Reserve(gomock.Any(), admin, "i-1", 9).
		Return(entities.InventoryItem{}, &entities.InsufficientStockError{ItemID: "i-1", Requested: 9, Available: 7})

	if w := sendJSON(r, http.MethodPost, "/inventory/i-1/restock", `{"quantity":5}`); w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w := sendJSON(r, http.MethodPost, "/inventory/i-1/withdraw", `{"quantity":9}`); w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if w := sendJSON(r, http.MethodPost, "/inventory/i-1/restock", `{}`); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
