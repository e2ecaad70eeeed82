package middleware

import (
	"context"
	"net/http"
	"strings"

	"blogdesk/internal/microservices/http-api/service"
	"blogdesk/internal/moderation"

	"github.com/gin-gonic/gin"
)

// Keys under which AuthMiddleware stores the caller in the gin context.
const (
	ContextClaims = "claims"
	ContextUserID = "userID"
	ContextEmail  = "email"
	ContextRole   = "role"
)

// TokenValidator is the part of the auth service the middleware needs.
type TokenValidator interface {
	ValidateToken(tokenString string) (*service.Claims, error)
	ActiveRole(ctx context.Context, userID string) (moderation.Role, error)
}

// AuthMiddleware is a Gin middleware for JWT authentication of API requests
// It checks for the presence and validity of a JWT token in the Authorization header.
// Tokens claiming an admin role are checked against the stored account, so a
// deactivated or demoted admin loses the privileges before the token expires.
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Fields(authHeader)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		claims, err := validator.ValidateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if claims.Role.IsAdmin() {
			role, err := validator.ActiveRole(c.Request.Context(), claims.UserID)
			if err != nil {
				status := http.StatusUnauthorized
				if service.KindOf(err) == service.KindInternal {
					status = http.StatusInternalServerError
				}
				c.AbortWithStatusJSON(status, gin.H{"error": service.PublicMessage(err)})
				return
			}
			current := *claims
			current.Role = role
			claims = &current
		}

		// Set user info in context for handlers to use
		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextEmail, claims.Email)
		c.Set(ContextRole, claims.Role)

		c.Next()
	}
}

// ActorFrom returns the authenticated caller stored by AuthMiddleware.
func ActorFrom(c *gin.Context) (moderation.Actor, bool) {
	userID := c.GetString(ContextUserID)
	if userID == "" {
		return moderation.Actor{}, false
	}
	role, _ := c.Get(ContextRole)
	r, _ := role.(moderation.Role)
	return moderation.Actor{ID: userID, Role: r}, true
}

// RequireRole lets the request through when the caller holds at least one of roles
// or a role ranked above it.
func RequireRole(roles ...moderation.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}

		for _, required := range roles {
			if actor.Role.AtLeast(required) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":    "insufficient permissions",
			"required": roles,
			"current":  actor.Role,
		})
	}
}

// RequireAdmin is a convenience function for requiring admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(moderation.RoleAdmin)
}

func RequireSuperAdmin() gin.HandlerFunc {
	return RequireRole(moderation.RoleSuperAdmin)
}
