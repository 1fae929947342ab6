package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskman-be/internal/jwt"
)

// Context keys set by AuthMiddleware for downstream handlers
const (
	ContextUserIDKey = "user_id"
	ContextEmailKey  = "email"
)

// AuthMiddleware returns a Gin middleware that rejects requests without a
// valid bearer token. On success it stores the authenticated user's id and
// email in the request context.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header must be a bearer token",
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Next()
	}
}
