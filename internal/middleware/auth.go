package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

const ContextActor = "actor"

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "missing_authorization_header", "Authentication required.")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abort(c, http.StatusUnauthorized, "invalid_authorization_header", "Use a Bearer token.")
			return
		}

		actor, err := auth.ParseToken(secret, parts[1])
		if err != nil {
			abort(c, http.StatusUnauthorized, "invalid_token", "Invalid or expired token.")
			return
		}

		c.Set(ContextActor, actor)
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles.
func RequireRole(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok || !actor.Is(roles...) {
			abort(c, http.StatusForbidden, "forbidden", "Operation not allowed.")
			return
		}
		c.Next()
	}
}

func ActorFrom(c *gin.Context) (auth.Actor, bool) {
	v, exists := c.Get(ContextActor)
	if !exists {
		return auth.Actor{}, false
	}
	actor, ok := v.(auth.Actor)
	return actor, ok
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, httperr.HTTPError{Code: code, Message: message})
}
