package response

import (
	"github.com/gin-gonic/gin"
)

// Error sends the error shape the frontend expects:
// {"error": message} with an optional "details" violation list.
func Error(c *gin.Context, code int, message string, details interface{}) {
	body := gin.H{"error": message}
	if details != nil {
		body["details"] = details
	}
	c.JSON(code, body)
}
