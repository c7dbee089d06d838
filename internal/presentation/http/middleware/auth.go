package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markvilla/selfcheckout-api/internal/presentation/http/dto/response"
	"github.com/markvilla/selfcheckout-api/pkg/utils"
)

// TerminalAuthMiddleware validates the terminal bearer token and puts the
// terminal identity into the request context. Token issuance lives in the
// operator tooling; this service only verifies.
func TerminalAuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateTerminalToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired terminal token")
			c.Abort()
			return
		}

		c.Set("terminal_id", claims.TerminalID)
		c.Set("business_id", claims.BusinessID)
		c.Set("terminal_role", claims.Role)

		c.Next()
	}
}

// GetTerminalID extracts the terminal ID set by TerminalAuthMiddleware.
func GetTerminalID(c *gin.Context) uuid.UUID {
	val, exists := c.Get("terminal_id")
	if !exists {
		return uuid.Nil
	}
	id, ok := val.(uuid.UUID)
	if !ok {
		return uuid.Nil
	}
	return id
}
