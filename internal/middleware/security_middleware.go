package middleware

import (
	"log"
	"net/http"
	"strings"

	"go-quote-desk/internal/auth"
	"go-quote-desk/internal/i18n"

	"github.com/gin-gonic/gin"
)

func deny(c *gin.Context, status int, key string) {
	lang := i18n.Detect(c.GetHeader("Accept-Language"))
	c.JSON(status, gin.H{"error": i18n.T(lang, key), "code": key})
	c.Abort()
}

// AuthMiddleware checks if the user has a valid, unrevoked JWT token
func AuthMiddleware(revoker auth.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Format: "Bearer <token>"
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			deny(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			deny(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			deny(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		revoked, err := revoker.IsRevoked(c.Request.Context(), claims.ID)
		if err != nil {
			log.Printf("revocation check failed: %v", err)
			deny(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		if revoked {
			deny(c, http.StatusUnauthorized, "unauthorized")
			return
		}

		// Store user info in the context for the next handler (or AI Agent) to use
		c.Set("userID", claims.UserID)
		c.Set("role", claims.Role)
		c.Set("claims", claims)

		c.Next()
	}
}

// RequireRole is a secondary guard that checks for specific permissions
func RequireRole(allowedRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != allowedRole {
			deny(c, http.StatusForbidden, "forbidden")
			return
		}
		c.Next()
	}
}
