package api

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Srengsophea/instantly-email-service/internal/auth"
)

// sessionCookie carries the signed session token between requests.
const sessionCookie = "session"

// Middleware provides API middleware functions
type Middleware struct {
	authService *auth.Service
}

// NewMiddleware creates a new middleware instance
func NewMiddleware(authService *auth.Service) *Middleware {
	return &Middleware{
		authService: authService,
	}
}

// AuthRequired ensures the request carries a valid session token, either
// in the session cookie or as a bearer header.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				c.JSON(401, gin.H{"success": false, "error": "invalid authorization format"})
				c.Abort()
				return
			}
			token = tokenParts[1]
		} else if v, err := c.Cookie(sessionCookie); err == nil {
			token = v
		}

		if token == "" {
			c.JSON(401, gin.H{"success": false, "error": "authentication required"})
			c.Abort()
			return
		}

		userID, err := m.authService.VerifyToken(token)
		if err != nil {
			c.JSON(401, gin.H{"success": false, "error": "invalid session"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
