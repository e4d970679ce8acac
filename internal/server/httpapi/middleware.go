package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/skycastlabs/accounts/internal/server/auth"
)

// ctxUserID is the gin context key carrying the authenticated user's id.
const ctxUserID = "userID"

// requireAuth validates the Authorization bearer token and stores the
// token's subject in the request context. Expired and malformed tokens both
// answer 401.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		userID, err := auth.GetUserIDFromToken(strings.TrimPrefix(header, "Bearer "), s.jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(ctxUserID, userID)
		c.Next()
	}
}
