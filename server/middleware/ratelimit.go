package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/resilience"
)

// RateLimit returns middleware that throttles by client IP. A nil limiter
// disables throttling.
func RateLimit(rl *resilience.RateLimiter) gin.HandlerFunc {
	if rl == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if !rl.Allow(c.ClientIP()) {
			appErr := apperrors.RateLimited()
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}
