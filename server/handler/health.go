package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/version"
)

// Health handles GET /health.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "authd",
		"version":   version.GetShortVersion(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
