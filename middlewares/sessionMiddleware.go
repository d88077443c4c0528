package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/namnm309/evdealer-backend/config"
	"github.com/namnm309/evdealer-backend/models"
	"github.com/namnm309/evdealer-backend/utils"
)

// SessionMiddleware resolves the opaque session token into the signed-in
// user and stamps the request context with their identity and dealer scope.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			// Machine clients authenticate with a Bearer JWT instead of a
			// redis-backed session; resolve the claim the auth middleware stamped.
			if claim := CtxValue(c.Request.Context()); claim != nil {
				stampUserFromClaim(c, claim)
			}
			c.Next()
			return
		}
		username, exists, err := config.GetRedisValue("Token:" + token)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUsernameInContext(ctx, username)

		user, err := models.GetUserByUsername(ctx, username)
		if err != nil || user.IsActive == nil || !*user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx = utils.SetUserIdInContext(ctx, user.ID)
		ctx = utils.SetUserNameInContext(ctx, user.FullName)
		ctx = utils.SetRoleInContext(ctx, string(user.Role))
		ctx = utils.SetDealerIdInContext(ctx, user.DealerId)
		if user.Role.IsManufacturerSide() {
			ctx = utils.SetIsManufacturerInContext(ctx, true)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func stampUserFromClaim(c *gin.Context, claim *utils.JwtCustomClaim) {
	user, err := models.GetUser(c.Request.Context(), claim.ID)
	if err != nil || user.IsActive == nil || !*user.IsActive {
		return
	}

	ctx := utils.SetUsernameInContext(c.Request.Context(), user.Username)
	ctx = utils.SetUserIdInContext(ctx, user.ID)
	ctx = utils.SetUserNameInContext(ctx, user.FullName)
	ctx = utils.SetRoleInContext(ctx, string(user.Role))
	ctx = utils.SetDealerIdInContext(ctx, user.DealerId)
	if user.Role.IsManufacturerSide() {
		ctx = utils.SetIsManufacturerInContext(ctx, true)
	}

	c.Request = c.Request.WithContext(ctx)
}
