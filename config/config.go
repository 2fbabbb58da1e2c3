// Package config loads and validates the service configuration from a YAML
// file, a .env file, and the process environment, in that order of increasing
// precedence.
package config

import (
	"fmt"

	"github.com/skillsenselab/authd/logger"
	"github.com/skillsenselab/authd/observability"
	"github.com/skillsenselab/authd/password"
	"github.com/skillsenselab/authd/server"
	"github.com/skillsenselab/authd/token"
)

// ServiceConfig identifies the running service.
type ServiceConfig struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`
}

// BootstrapConfig seeds the initial admin account. If no ADMIN account exists
// at startup one is created from these fields; when Email or Password is empty
// seeding is skipped.
type BootstrapConfig struct {
	AdminEmail     string `yaml:"admin_email" mapstructure:"admin_email"`
	AdminPassword  string `yaml:"admin_password" mapstructure:"admin_password"`
	AdminFirstName string `yaml:"admin_first_name" mapstructure:"admin_first_name"`
	AdminLastName  string `yaml:"admin_last_name" mapstructure:"admin_last_name"`
}

// Config is the full application configuration.
type Config struct {
	Service       ServiceConfig        `yaml:"service" mapstructure:"service"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Logging       logger.Config        `yaml:"logging" mapstructure:"logging"`
	Token         token.Config         `yaml:"token" mapstructure:"token"`
	Password      password.Config      `yaml:"password" mapstructure:"password"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Bootstrap     BootstrapConfig      `yaml:"bootstrap" mapstructure:"bootstrap"`
}

// ApplyDefaults fills in zero-valued fields across all sections.
func (c *Config) ApplyDefaults() {
	if c.Service.Name == "" {
		c.Service.Name = "authd"
	}
	if c.Service.Environment == "" {
		c.Service.Environment = "development"
	}
	if c.Service.Environment == "development" {
		c.Service.Debug = true
	}
	if c.Observability.Environment == "" {
		c.Observability.Environment = c.Service.Environment
	}
	if c.Bootstrap.AdminFirstName == "" {
		c.Bootstrap.AdminFirstName = "Admin"
	}

	c.Server.ApplyDefaults()
	c.Logging.ApplyDefaults()
	c.Token.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate checks all sections. Call after ApplyDefaults.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{"development": true, "staging": true, "production": true}
	if !validEnvs[c.Service.Environment] {
		return fmt.Errorf("service.environment must be one of [development, staging, production] (got: %s)", c.Service.Environment)
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return err
	}
	if err := c.Token.Validate(); err != nil {
		return err
	}
	if err := c.Password.Validate(); err != nil {
		return err
	}
	return nil
}
