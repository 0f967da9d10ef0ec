package handlers

import "github.com/gin-gonic/gin"

// GetHealth reports process liveness.
func GetHealth(c *gin.Context) {
	c.String(200, "OK")
}
