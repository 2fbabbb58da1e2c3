package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Service.Name != "authd" {
		t.Errorf("service name = %q, want authd", cfg.Service.Name)
	}
	if cfg.Service.Environment != "development" {
		t.Errorf("environment = %q, want development", cfg.Service.Environment)
	}
	if !cfg.Service.Debug {
		t.Error("development should imply debug")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Token.AccessTokenTTL != 24*time.Hour {
		t.Errorf("access TTL = %v, want 24h", cfg.Token.AccessTokenTTL)
	}
	if cfg.Token.RefreshTokenTTL != 7*24*time.Hour {
		t.Errorf("refresh TTL = %v, want 168h", cfg.Token.RefreshTokenTTL)
	}
	if cfg.Observability.Environment != "development" {
		t.Errorf("observability environment = %q, want development", cfg.Observability.Environment)
	}
}

func TestValidateRequiresTokenSecret(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error without token secret")
	}

	cfg.Token.Secret = "s3cret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with secret set: %v", err)
	}
}

func TestValidateRejectsBadEnvironment(t *testing.T) {
	var cfg Config
	cfg.Service.Environment = "invalid"
	cfg.ApplyDefaults()
	cfg.Token.Secret = "s3cret"

	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "service.environment") {
		t.Errorf("err = %v, want service.environment complaint", err)
	}
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := `
service:
  name: authd
  environment: staging
server:
  port: 9090
token:
  secret: from-yaml
  access_token_ttl: 30m
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var cfg Config
	if err := Load("authd", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Service.Environment != "staging" {
		t.Errorf("environment = %q, want staging", cfg.Service.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Token.Secret != "from-yaml" {
		t.Errorf("secret = %q", cfg.Token.Secret)
	}
	if cfg.Token.AccessTokenTTL != 30*time.Minute {
		t.Errorf("access TTL = %v, want 30m", cfg.Token.AccessTokenTTL)
	}
	// Unset fields still default.
	if cfg.Token.RefreshTokenTTL != 7*24*time.Hour {
		t.Errorf("refresh TTL = %v, want 168h", cfg.Token.RefreshTokenTTL)
	}
}

func TestLoadEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	yaml := `
token:
  secret: from-yaml
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("TOKEN_SECRET", "from-env")

	var cfg Config
	if err := Load("authd", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Token.Secret != "from-env" {
		t.Errorf("secret = %q, want from-env", cfg.Token.Secret)
	}
}

func TestLoadMissingFileStillDefaults(t *testing.T) {
	t.Setenv("TOKEN_SECRET", "from-env")

	var cfg Config
	err := Load("authd", &cfg, WithConfigFile("/nonexistent/config.yml"),
		WithEnvFile("/nonexistent/.env"))
	if err != nil {
		t.Fatalf("Load with missing files: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want default 8080", cfg.Server.Port)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool  { return m.files[path] }
func (m *mockFS) LoadEnv(path string) error { return nil }

func TestResolverFindsServiceConfig(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./cmd/authd/config.yml": true}}
	resolver := &Resolver{FileSystem: fs}

	files := resolver.ResolveFiles("authd", LoaderConfig{})
	if files.ConfigFile != "./cmd/authd/config.yml" {
		t.Errorf("config file = %q", files.ConfigFile)
	}
}

func TestResolverPrefersExplicitPath(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./cmd/authd/config.yml": true}}
	resolver := &Resolver{FileSystem: fs}

	files := resolver.ResolveFiles("authd", LoaderConfig{ConfigFile: "/explicit.yml"})
	if files.ConfigFile != "/explicit.yml" {
		t.Errorf("config file = %q, want explicit path", files.ConfigFile)
	}
}
