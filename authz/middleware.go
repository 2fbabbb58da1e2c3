package authz

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/auth/authctx"
	apperrors "github.com/skillsenselab/authd/errors"
)

// Middleware returns a Gin middleware that enforces the policy against the
// principal bound by the request authenticator. Runs after authentication,
// before handlers.
func Middleware(policy *Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		access := policy.Evaluate(c.Request.URL.Path)
		if access == Public {
			c.Next()
			return
		}

		principal, _ := authctx.Principal(c.Request.Context())
		if err := Check(access, principal); err != nil {
			appErr, _ := apperrors.AsAppError(err)
			c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
			return
		}
		c.Next()
	}
}
