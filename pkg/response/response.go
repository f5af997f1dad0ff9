package response

import (
	"github.com/gin-gonic/gin"
)

// Envelope is the uniform JSON shape returned by every endpoint, success or
// failure, so clients can branch on Success alone.
type Envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	Error     any    `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success writes a success envelope with the given status.
func Success(c *gin.Context, status int, data any, message string) {
	c.JSON(status, Envelope{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: c.GetString("request_id"),
	})
}

// Error writes a failure envelope with the given status. details is optional
// machine-readable context (e.g. field-level validation messages).
func Error(c *gin.Context, status int, message string, details any) {
	c.JSON(status, Envelope{
		Success:   false,
		Message:   message,
		Error:     details,
		RequestID: c.GetString("request_id"),
	})
}

// Abort writes a failure envelope and stops the handler chain. Used by
// middleware rejections.
func Abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success:   false,
		Message:   message,
		RequestID: c.GetString("request_id"),
	})
}
