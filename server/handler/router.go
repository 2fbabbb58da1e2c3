package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/authd/auth"
	"github.com/skillsenselab/authd/authz"
	"github.com/skillsenselab/authd/logger"
	"github.com/skillsenselab/authd/observability"
	"github.com/skillsenselab/authd/resilience"
	"github.com/skillsenselab/authd/server/middleware"
)

// Register wires the authentication and policy middleware plus all routes onto
// the engine. Order matters: the authenticator binds identity first, then the
// policy decides, then handlers run. limiter throttles the credential
// endpoints and may be nil.
func Register(engine *gin.Engine, svc *auth.Service, policy *authz.Policy,
	limiter *resilience.RateLimiter, metrics *observability.AuthMetrics, log *logger.Logger) {

	engine.Use(middleware.Authenticate(middleware.AuthConfig{
		Codec:    svc.Codec(),
		Resolver: svc,
		Metrics:  metrics,
	}))
	engine.Use(authz.Middleware(policy))

	engine.GET("/health", Health)

	authHandler := NewAuthHandler(svc, log)
	authGroup := engine.Group("/api/v1/auth")
	authGroup.Use(middleware.RateLimit(limiter))
	{
		authGroup.POST("/signup", authHandler.SignUp)
		authGroup.POST("/signin", authHandler.SignIn)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	engine.GET("/api/v1/admin", GreetAdmin)
	engine.GET("/api/v1/user", GreetUser)
}
