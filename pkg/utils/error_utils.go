package utils

import (
	"strings"

	"github.com/gin-gonic/gin"
)

// APIError is the standard JSON error envelope: {"error": "...", "details": "..."}.
type APIError struct {
	StatusCode int    `json:"-"` // HTTP status code, not part of the response body
	Message    string `json:"error"`
	Details    string `json:"details,omitempty"`
}

// NewAPIError creates a new APIError instance.
func NewAPIError(statusCode int, message string, details string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Message:    message,
		Details:    details,
	}
}

// RespondWithError sends a standardized JSON error response and aborts the request.
func RespondWithError(c *gin.Context, err *APIError) {
	c.JSON(err.StatusCode, err)
	c.Abort()
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
