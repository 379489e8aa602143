package middleware

import (
	"net/http"
	"strings"

	"servicedesk/internal/domain/entities"
	"servicedesk/internal/usecase/interfaces"
	"servicedesk/pkg"
	"servicedesk/pkg/logger"

	"github.com/gin-gonic/gin"
)

const actorKey = "servicedesk.actor"

// Auth resolves the bearer token into an Actor and stores it on the context.
// Requests without a valid token are rejected with 401.
func Auth(identity interfaces.IIdentityProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			abortUnauthorized(c, "Missing bearer token")
			return
		}

		actor, err := identity.Authenticate(c.Request.Context(), header)
		if err != nil {
			logger.Warn(c.Request.Context()).Err(err).Str("path", c.FullPath()).Msg("[auth][middleware] token rejected")
			abortUnauthorized(c, "Invalid bearer token")
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the authenticated actor, or the zero Actor when Auth did
// not run. Use cases refuse the zero Actor with ErrForbidden.
func ActorFrom(c *gin.Context) entities.Actor {
	v, ok := c.Get(actorKey)
	if !ok {
		return entities.Actor{}
	}
	actor, _ := v.(entities.Actor)
	return actor
}

// WithActor stores actor on the context. Handler tests use it in place of Auth.
func WithActor(actor entities.Actor) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(actorKey, actor)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	appErr := pkg.NewDomainErrorSimple("UNAUTHORIZED", message, http.StatusUnauthorized)
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
