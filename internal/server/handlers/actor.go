package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/linsamsir/pro-erp/internal/domain/models"
)

const actorContextKey = "actor"

// RoleViewer is the only role barred from mutating routes. The deployment
// is a single-operator device, so absent actor headers are treated as the
// operator, not rejected.
const RoleViewer = "viewer"

// ActorMiddleware extracts the acting user from request headers and stores
// it on the gin context for audit attribution.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := models.Actor{
			ID:   c.GetHeader("X-Actor-Id"),
			Name: c.GetHeader("X-Actor-Name"),
			Role: c.GetHeader("X-Actor-Role"),
		}
		c.Set(actorContextKey, actor)
		c.Next()
	}
}

// RequireWriter refuses mutating requests from read-only actors.
func RequireWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if actorFrom(c).Role == RoleViewer {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "read-only role cannot modify records"})
			return
		}
		c.Next()
	}
}

// actorFrom returns the actor set by ActorMiddleware, falling back to the
// explicit System identity.
func actorFrom(c *gin.Context) models.Actor {
	value, ok := c.Get(actorContextKey)
	if !ok {
		return models.SystemActor
	}
	actor, ok := value.(models.Actor)
	if !ok || actor.IsZero() {
		return models.SystemActor
	}
	return actor
}
