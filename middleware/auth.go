package middleware

import (
	"net/http"
	"strings"

	"mindlink/models"
	"mindlink/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by the auth middleware.
const (
	CtxActorID = "actorID"
	CtxRole    = "role"
)

// JWTAuthMiddleware validates the bearer token and stores the actor identity
// and role on the request context. It establishes who is calling; what they
// may do to a booking is decided by the lifecycle service's transition table.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenString)
		if err != nil || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		role, err := models.ParseRole(claims.Role)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unknown actor role",
			})
			return
		}

		c.Set(CtxActorID, claims.Subject)
		c.Set(CtxRole, role)
		c.Next()
	}
}

// RequireRole gates a route group to a single actor surface.
func RequireRole(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		got, ok := c.Get(CtxRole)
		if !ok || got.(models.Role) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "This surface is not available to your role",
			})
			return
		}
		c.Next()
	}
}

// ActorID returns the authenticated actor id from the request context.
func ActorID(c *gin.Context) string {
	return c.GetString(CtxActorID)
}
