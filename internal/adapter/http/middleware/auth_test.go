package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"servicedesk/internal/domain/entities"
	mock_interfaces "servicedesk/internal/usecase/interfaces/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newAuthRouter(identity *mock_interfaces.MockIIdentityProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(identity))
	r.GET("/whoami", func(c *gin.Context) {
		a := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": a.ID, "role": a.Role})
	})
	return r
}

func TestAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		identity := mock_interfaces.NewMockIIdentityProvider(ctrl)

		w := httptest.NewRecorder()
		newAuthRouter(identity).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"code":"UNAUTHORIZED"`)
	})

	t.Run("invalid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		identity := mock_interfaces.NewMockIIdentityProvider(ctrl)
		identity.EXPECT().Authenticate(gomock.Any(), "Bearer nope").Return(entities.Actor{}, errors.New("expired"))

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer nope")
		w := httptest.NewRecorder()
		newAuthRouter(identity).ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		identity := mock_interfaces.NewMockIIdentityProvider(ctrl)
		identity.EXPECT().Authenticate(gomock.Any(), "Bearer good").
			Return(entities.Actor{ID: "tech-1", Role: entities.RoleTechnician}, nil)

		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set("Authorization", "Bearer good")
		w := httptest.NewRecorder()
		newAuthRouter(identity).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"tech-1","role":"technician"}`, w.Body.String())
	})
}

func TestActorFrom_Missing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Equal(t, entities.Actor{}, ActorFrom(c))
}
