package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetTerminalID extracts the terminal ID from the Gin context
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

// GetBusinessID extracts the business ID from the Gin context
func GetBusinessID(c *gin.Context) string {
	val, exists := c.Get("business_id")
	if !exists {
		return ""
	}
	id, ok := val.(string)
	if !ok {
		return ""
	}
	return id
}
