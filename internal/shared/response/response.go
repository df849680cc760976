package response

import (
	"github.com/gin-gonic/gin"
)

// The provider-facing wire contract is flat: mutating endpoints answer with
// {"success": ..., ...} bodies, listing endpoints answer with a bare array.

func Success(c *gin.Context, status int, body gin.H) {
	out := gin.H{"success": true}
	for k, v := range body {
		out[k] = v
	}
	c.JSON(status, out)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error":   message,
	})
}

func List(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}
