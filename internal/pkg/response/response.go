package response

import "github.com/gin-gonic/gin"

// Body is the envelope every endpoint answers with.
type Body struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

func Success(c *gin.Context, statusCode int, data any, message string) {
	c.JSON(statusCode, Body{
		Success: true,
		Data:    data,
		Message: message,
	})
}

func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Body{
		Success: false,
		Message: message,
	})
}

// Abort writes an error body and stops the handler chain.
func Abort(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, Body{
		Success: false,
		Message: message,
	})
}
