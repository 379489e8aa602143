package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"servicedesk/internal/adapter/http/handlers/mocks"
	"servicedesk/internal/adapter/http/middleware"
	"servicedesk/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

type registryFixture struct {
	registry *mocks.MockIRegistryUseCase
	router   *gin.Engine
}

func newRegistryFixture(t *testing.T, actor entities.Actor) registryFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	f := registryFixture{registry: mocks.NewMockIRegistryUseCase(ctrl), router: gin.New()}
	h := NewRegistryHandler(f.registry)
	f.router.Use(middleware.WithActor(actor))
	f.router.POST("/customers", h.CreateCustomer)
	f.router.GET("/customers", h.ListCustomers)
	f.router.GET("/customers/:id/devices", h.ListCustomerDevices)
	f.router.DELETE("/customers/:id", h.DeactivateCustomer)
	f.router.POST("/devices", h.RegisterDevice)
	f.router.GET("/devices", h.ListDevices)
	f.router.POST("/devices/:id/photos/remove", h.RemovePhoto)
	return f
}

func (f registryFixture) do(method, path, body string) *httptest.ResponseRecorder {
	return orderFixture{router: f.router}.do(method, path, body)
}

func TestRegistryHandler_CreateCustomer(t *testing.T) {
	t.Run("invalid email", func(t *testing.T) {
		f := newRegistryFixture(t, reception)
		w := f.do(http.MethodPost, "/customers", `{"name":"Ana","phone":"5550100","email":"not-an-email"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("duplicate phone", func(t *testing.T) {
		f := newRegistryFixture(t, reception)
		f.registry.EXPECT().CreateCustomer(gomock.Any(), reception, entities.CustomerDetails{Name: "Ana", Phone: "5550100"}).
			Return(entities.Customer{}, entities.NewValidationError("phone", "already registered to another customer"))

		w := f.do(http.MethodPost, "/customers", `{"name":"Ana","phone":"5550100"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("created", func(t *testing.T) {
		f := newRegistryFixture(t, reception)
		f.registry.EXPECT().CreateCustomer(gomock.Any(), reception, gomock.Any()).
			Return(entities.Customer{ID: "c-1", Name: "Ana", Phone: "5550100", Active: true, Version: 1}, nil)

		w := f.do(http.MethodPost, "/customers", `{"name":"Ana","phone":"5550100","email":"ana@shop.io"}`)
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
		}
	})
}

func TestRegistryHandler_DeactivateCustomerWithDevices(t *testing.T) {
	f := newRegistryFixture(t, reception)
	f.registry.EXPECT().DeactivateCustomer(gomock.Any(), reception, "c-1").
		Return(&entities.TransitionError{Entity: entities.EntityCustomer, State: "has_active_devices", Event: "delete"})

	w := f.do(http.MethodDelete, "/customers/c-1", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
}

func TestRegistryHandler_Devices(t *testing.T) {
	t.Run("list by customer path", func(t *testing.T) {
		f := newRegistryFixture(t, reception)
		f.registry.EXPECT().ListDevices(gomock.Any(), entities.DeviceFilter{CustomerID: "c-1"}).
			Return([]entities.Device{{ID: "dev-1", CustomerID: "c-1", Type: entities.DeviceTablet, Brand: "Apple", Model: "iPad"}}, nil)

		w := f.do(http.MethodGet, "/customers/c-1/devices", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body []map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body) != 1 || body[0]["description"] != "Apple iPad (tablet)" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})

	t.Run("list by query", func(t *testing.T) {
		f := newRegistryFixture(t, admin)
		f.registry.EXPECT().ListDevices(gomock.Any(), entities.DeviceFilter{CustomerID: "c-2", IncludeInactive: true}).
			Return(nil, nil)

		w := f.do(http.MethodGet, "/devices?customer_id=c-2&include_inactive=true", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("register missing fields", func(t *testing.T) {
		f := newRegistryFixture(t, reception)
		w := f.do(http.MethodPost, "/devices", `{"customer_id":"c-1","type":"laptop"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("remove unknown photo", func(t *testing.T) {
		f := newRegistryFixture(t, reception)
		f.registry.EXPECT().RemoveDevicePhoto(gomock.Any(), reception, "dev-1", "x.jpg").
			Return(entities.Device{}, &entities.NotFoundError{Entity: "device_photo", ID: "x.jpg"})

		w := f.do(http.MethodPost, "/devices/dev-1/photos/remove", `{"photo":"x.jpg"}`)
		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
