// Copyright 2026 The Helpdesk Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment represents the deployment environment.
type Environment string

const (
	// Development is for local development machines.
	Development Environment = "development"
	// Staging is for pre-production testing.
	Staging Environment = "staging"
	// Production is for production deployments.
	Production Environment = "production"
)

// Config is the master configuration for the helpdesk client.
type Config struct {
	// Environment identifies the deployment type.
	Environment Environment `yaml:"environment"`

	// Service configures the remote ticket service boundary.
	Service ServiceConfig `yaml:"service"`

	// Per-environment overrides, applied after the base config.
	Development *ConfigOverrides `yaml:"development,omitempty"`
	Staging     *ConfigOverrides `yaml:"staging,omitempty"`
	Production  *ConfigOverrides `yaml:"production,omitempty"`
}

// ConfigOverrides contains fields that can be overridden per environment.
type ConfigOverrides struct {
	Service *ServiceConfig `yaml:"service,omitempty"`
}

// ServiceConfig configures the ticket service connection.
type ServiceConfig struct {
	// BaseURL is the ticket service address (scheme + host).
	// Default: http://localhost:8000
	BaseURL string `yaml:"base_url"`

	// TimeoutSeconds bounds each request. Default: 30.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// Default returns the default configuration, usable without any
// config file: a local development service on the conventional port.
func Default() *Config {
	return &Config{
		Environment: Development,
		Service: ServiceConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 30,
		},
	}
}

// Load resolves configuration for a command invocation. An explicit
// path (from --config) wins; otherwise HELPDESK_CONFIG is consulted;
// with neither, the defaults stand. HELPDESK_SERVICE_URL, when set,
// overrides the service base URL last.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("HELPDESK_CONFIG")
	}

	cfg := Default()
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
		cfg.applyEnvironmentOverrides()
	}

	if serviceURL := os.Getenv("HELPDESK_SERVICE_URL"); serviceURL != "" {
		cfg.Service.BaseURL = serviceURL
	}

	if cfg.Service.BaseURL == "" {
		return nil, fmt.Errorf("config: service.base_url is empty; set it in %s or via HELPDESK_SERVICE_URL", path)
	}
	if cfg.Service.TimeoutSeconds <= 0 {
		cfg.Service.TimeoutSeconds = Default().Service.TimeoutSeconds
	}

	return cfg, nil
}

// loadFile merges a single configuration file into the current config.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return nil
}

// Timeout returns the request timeout as a duration.
func (s ServiceConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// applyEnvironmentOverrides applies the section matching the
// configured environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *ConfigOverrides
	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
	}
	if overrides == nil || overrides.Service == nil {
		return
	}

	if overrides.Service.BaseURL != "" {
		c.Service.BaseURL = overrides.Service.BaseURL
	}
	if overrides.Service.TimeoutSeconds > 0 {
		c.Service.TimeoutSeconds = overrides.Service.TimeoutSeconds
	}
}
