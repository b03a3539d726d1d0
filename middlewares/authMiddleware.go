package middlewares

import (
	"net/http"

	"github.com/airfinance/finbi_backend/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects any request on the protected API group that does not
// carry a valid bearer token. Claims are copied into the request context so
// downstream handlers can read the caller identity.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		const bearer = "Bearer "
		if len(auth) <= len(bearer) || auth[:len(bearer)] != bearer {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			c.Abort()
			return
		}

		validate, err := utils.JwtValidate(auth[len(bearer):])
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		claims, ok := validate.Claims.(*utils.JwtCustomClaim)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetUserIdInContext(c.Request.Context(), claims.ID)
		ctx = utils.SetRoleInContext(ctx, claims.Role)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
