package http

import (
	"time"

	"github.com/gin-gonic/gin"
)

// Envelope error codes.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeCredentials  = "INVALID_CREDENTIALS"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInternal     = "INTERNAL_ERROR"
)

// Response is the uniform JSON envelope for every endpoint.
type Response struct {
	Success   bool    `json:"success"`
	Message   string  `json:"message"`
	Data      any     `json:"data"`
	ErrorCode *string `json:"error_code"`
	Timestamp string  `json:"timestamp"`
}

func respondOK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func respondError(c *gin.Context, status int, message, code string) {
	c.JSON(status, Response{
		Success:   false,
		Message:   message,
		ErrorCode: &code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

func abortError(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, Response{
		Success:   false,
		Message:   message,
		ErrorCode: &code,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
