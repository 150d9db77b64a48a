package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The wire format is a flat JSON object: every response carries "success"
// and "message", successful ones add their payload fields alongside.

// Success writes a 2xx response merging the payload fields into the envelope.
func Success(c *gin.Context, status int, message string, fields gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range fields {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error writes a failure envelope. Internal causes are logged by callers,
// never exposed here.
func Error(c *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"success": false, "message": message})
}

// AbortError writes a failure envelope and stops the handler chain. Meant
// for middleware.
func AbortError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
