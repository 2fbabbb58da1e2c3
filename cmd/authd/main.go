// Command authd runs the authentication service: public sign-up, sign-in,
// and token refresh endpoints plus role-gated application routes.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/skillsenselab/authd/auth"
	"github.com/skillsenselab/authd/authz"
	"github.com/skillsenselab/authd/config"
	"github.com/skillsenselab/authd/logger"
	"github.com/skillsenselab/authd/observability"
	"github.com/skillsenselab/authd/password"
	"github.com/skillsenselab/authd/resilience"
	"github.com/skillsenselab/authd/server"
	"github.com/skillsenselab/authd/server/handler"
	"github.com/skillsenselab/authd/token"
	"github.com/skillsenselab/authd/user"
	"github.com/skillsenselab/authd/util"
	"github.com/skillsenselab/authd/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var cfg config.Config
	if err := config.Load("authd", &cfg); err != nil {
		logger.Fatal("Configuration failed", logger.Fields("error", err.Error()))
	}

	logger.Init(cfg.Logging)
	log := logger.New(&cfg.Logging, cfg.Service.Name)

	log.Info("Starting authd", logger.Fields(
		"version", version.GetShortVersion(),
		"environment", cfg.Service.Environment,
	))

	var providers *observability.Providers
	var metrics *observability.AuthMetrics
	if cfg.Observability.Enabled {
		var err error
		providers, err = observability.Init(ctx, cfg.Service.Name, version.Version, cfg.Observability)
		if err != nil {
			log.Fatal("Telemetry initialization failed", logger.Fields("error", err.Error()))
		}
		metrics, err = observability.NewAuthMetrics(observability.Meter("github.com/skillsenselab/authd"))
		if err != nil {
			log.Fatal("Metric registration failed", logger.Fields("error", err.Error()))
		}
	}

	store := user.NewMemoryStore()
	hasher := password.NewHasher(cfg.Password)
	codec, err := token.NewCodec(cfg.Token)
	if err != nil {
		log.Fatal("Token codec initialization failed", logger.Fields("error", err.Error()))
	}

	svc := auth.NewService(store, hasher, codec, log, metrics)

	if err := seedAdmin(ctx, store, hasher, cfg.Bootstrap, log); err != nil {
		log.Fatal("Admin seeding failed", logger.Fields("error", err.Error()))
	}

	var limiter *resilience.RateLimiter
	if cfg.Server.RateLimit.Enabled {
		limiter = resilience.NewRateLimiter(cfg.Server.RateLimit)
	}

	srv := server.New(cfg.Server, log)
	srv.ApplyMiddleware()
	handler.Register(srv.Engine(), svc, authz.Default(), limiter, metrics, log)

	if err := srv.Start(ctx); err != nil {
		log.Fatal("Server start failed", logger.Fields("error", err.Error()))
	}

	<-ctx.Done()
	log.Info("Shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		log.Error("Server shutdown error", logger.Fields("error", err.Error()))
	}
	if providers != nil {
		if err := providers.Shutdown(shutdownCtx); err != nil {
			log.Error("Telemetry shutdown error", logger.Fields("error", err.Error()))
		}
	}

	log.Info("authd stopped")
	os.Exit(0)
}

// seedAdmin creates the initial admin account when none exists. The service
// exposes no endpoint that grants ADMIN, so a fresh store gets its first
// admin here or not at all.
func seedAdmin(ctx context.Context, store user.Store, hasher password.Hasher,
	cfg config.BootstrapConfig, log *logger.Logger) error {

	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		log.Warn("Admin bootstrap skipped, no credentials configured")
		return nil
	}

	_, err := store.FindByRole(ctx, user.RoleAdmin)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := hasher.Hash(cfg.AdminPassword)
	if err != nil {
		return err
	}
	if _, err := store.Save(ctx, &user.Account{
		Email:        util.NormalizeEmail(cfg.AdminEmail),
		FirstName:    cfg.AdminFirstName,
		LastName:     cfg.AdminLastName,
		PasswordHash: hash,
		Role:         user.RoleAdmin,
	}); err != nil {
		return err
	}

	log.Info("Admin account seeded", logger.Fields(logger.FieldEmail, cfg.AdminEmail))
	return nil
}
