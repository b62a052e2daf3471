package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"guesthouse/internal/pkg/jwt"
	"guesthouse/internal/pkg/response"
)

const principalKey = "principal"

// JWTAuth validates the bearer token and stores the caller principal on
// the context.
func JWTAuth(j *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Missing Authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		tokenStr := strings.TrimSpace(parts[1])
		if tokenStr == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Empty token")
			c.Abort()
			return
		}

		claims, err := j.ValidateToken(tokenStr)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token")
			c.Abort()
			return
		}

		c.Set(principalKey, claims.Principal)
		c.Next()
	}
}

// Principal returns the authenticated caller, or "" on public routes.
func Principal(c *gin.Context) string {
	return c.GetString(principalKey)
}
