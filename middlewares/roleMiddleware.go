package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/models"
	"github.com/namnm309/evdealer-backend/utils"
)

// RequireSession rejects requests that did not present a valid session token.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIdFromContext(c.Request.Context()); !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole gates a route group to the given roles.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := utils.GetRoleFromContext(c.Request.Context())
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}
		for _, allowed := range roles {
			if role == string(allowed) {
				c.Next()
				return
			}
		}
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		c.Abort()
	}
}

// RequireManufacturer gates a route to manufacturer-side staff.
func RequireManufacturer() gin.HandlerFunc {
	return RequireRole(models.UserRoleAdmin, models.UserRoleEVMStaff)
}

// RequireDealerManager allows dealer managers and anyone manufacturer-side.
func RequireDealerManager() gin.HandlerFunc {
	return RequireRole(models.UserRoleAdmin, models.UserRoleEVMStaff, models.UserRoleDealerManager)
}
