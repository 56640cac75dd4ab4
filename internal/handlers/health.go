package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root is GET /.
func Root(c *gin.Context) {
	c.String(http.StatusOK, "Superio server is running...")
}

// HealthCheck reports 503 while ping fails.
func HealthCheck(ping func(ctx context.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ping != nil {
			if err := ping(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
