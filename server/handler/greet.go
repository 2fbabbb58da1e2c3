package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GreetAdmin handles GET /api/v1/admin. The access policy has already ensured
// an ADMIN principal is bound by the time this runs.
func GreetAdmin(c *gin.Context) {
	c.String(http.StatusOK, "Hi Admin!")
}

// GreetUser handles GET /api/v1/user.
func GreetUser(c *gin.Context) {
	c.String(http.StatusOK, "Hi User!")
}
