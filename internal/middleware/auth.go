// internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jong1uk/Auction-Back/internal/utils"
)

// AuthRequired rejects requests without a valid bearer token and stashes
// the caller's identity in the context.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c)
		if !ok {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("is_admin", claims.IsAdmin)
		c.Next()
	}
}

// AdminRequired additionally demands the admin flag.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c)
		if !ok {
			utils.UnauthorizedResponse(c, "")
			c.Abort()
			return
		}
		if !claims.IsAdmin {
			utils.ForbiddenResponse(c, "Admin privileges required")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("is_admin", true)
		c.Next()
	}
}

// OptionalAuth attaches identity when a valid token is present but lets
// anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromHeader(c); ok {
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("is_admin", claims.IsAdmin)
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context) (*utils.JWTClaims, bool) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, "Bearer ") {
		return nil, false
	}

	claims, err := utils.ValidateJWT(strings.TrimPrefix(header, "Bearer "))
	if err != nil {
		return nil, false
	}
	return claims, true
}
