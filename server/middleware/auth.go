package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/auth"
	"github.com/skillsenselab/authd/auth/authctx"
	apperrors "github.com/skillsenselab/authd/errors"
	"github.com/skillsenselab/authd/observability"
	"github.com/skillsenselab/authd/token"
)

const bearerPrefix = "Bearer "

// PrincipalResolver resolves a token subject to its principal. Implemented by
// auth.Service; the middleware depends only on this capability.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, email string) (*auth.Principal, error)
}

// AuthConfig configures the request authenticator.
type AuthConfig struct {
	Codec    *token.Codec
	Resolver PrincipalResolver
	Metrics  *observability.AuthMetrics // optional
}

// Authenticate returns the request-interception middleware. It runs once per
// request before route dispatch and binds an authenticated principal to the
// request context when the bearer token checks out.
//
// The authenticator itself never rejects a request on authentication grounds:
// a missing, malformed, expired, or mismatched token simply leaves the request
// unauthenticated for the access policy to judge. The single exception is a
// user-store outage, which must surface as 503 rather than masquerade as an
// unknown user.
func Authenticate(cfg AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.Next()
			return
		}
		raw := strings.TrimPrefix(header, bearerPrefix)

		ctx := c.Request.Context()

		// Idempotence guard: a principal bound earlier in the chain stays.
		if _, ok := authctx.Principal(ctx); ok {
			c.Next()
			return
		}

		subject, err := cfg.Codec.Subject(raw)
		if err != nil {
			cfg.Metrics.RecordValidation(ctx, observability.OutcomeRejected)
			c.Next()
			return
		}

		principal, err := cfg.Resolver.ResolvePrincipal(ctx, subject)
		if err != nil {
			if apperrors.HasCode(err, apperrors.ErrCodeUserStoreUnavailable) {
				cfg.Metrics.RecordValidation(ctx, observability.OutcomeError)
				appErr, _ := apperrors.AsAppError(err)
				c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
				return
			}
			cfg.Metrics.RecordValidation(ctx, observability.OutcomeRejected)
			c.Next()
			return
		}

		if cfg.Codec.IsValidFor(raw, principal.Email) {
			cfg.Metrics.RecordValidation(ctx, observability.OutcomeOK)
			c.Request = c.Request.WithContext(authctx.Set(ctx, principal))
		} else {
			cfg.Metrics.RecordValidation(ctx, observability.OutcomeRejected)
		}
		c.Next()
	}
}
