// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/popuweekendclub/storefront/lib/checkout"
	"github.com/popuweekendclub/storefront/lib/ticketapi"
)

// EnvironmentVariable names the variable Load reads the config path
// from.
const EnvironmentVariable = "STOREFRONT_CONFIG"

// Environment represents the deployment environment.
type Environment string

const (
	Development Environment = "development"
	Staging     Environment = "staging"
	Production  Environment = "production"
)

// Config is the storefront configuration.
type Config struct {
	// Environment selects which override section applies.
	Environment Environment `yaml:"environment"`

	// API locates and authenticates against the ticketing API.
	API APIConfig `yaml:"api"`

	// Checkout tunes the order session.
	Checkout CheckoutConfig `yaml:"checkout"`

	// Logging configures the process logger.
	Logging LoggingConfig `yaml:"logging"`

	Development *Overrides `yaml:"development,omitempty"`
	Staging     *Overrides `yaml:"staging,omitempty"`
	Production  *Overrides `yaml:"production,omitempty"`
}

// Overrides contains fields that can be overridden per environment.
type Overrides struct {
	API      *APIConfig      `yaml:"api,omitempty"`
	Checkout *CheckoutConfig `yaml:"checkout,omitempty"`
	Logging  *LoggingConfig  `yaml:"logging,omitempty"`
}

// APIConfig locates the ticketing API.
type APIConfig struct {
	// BaseURL is the API root. Must be HTTPS.
	// Default: ${API_URL}
	BaseURL string `yaml:"base_url"`

	// Token is the bearer token.
	// Default: ${API_TOKEN}
	Token string `yaml:"token"`

	// TokenFile names a file holding the bearer token. When set it
	// takes precedence over Token, and the token is kept in locked
	// memory instead of the config struct.
	TokenFile string `yaml:"token_file"`

	// Timeout bounds each API call.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`
}

// CheckoutConfig tunes the order session.
type CheckoutConfig struct {
	// HoldBudget is how long a reservation is held client-side before
	// the session is abandoned. Must be between 10m and 15m.
	// Default: 15m
	HoldBudget time.Duration `yaml:"hold_budget"`

	// MaxQuantity is the most tickets one order may contain. Must be
	// between 1 and 5.
	// Default: 5
	MaxQuantity int `yaml:"max_quantity"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: info
	Level string `yaml:"level"`

	// File receives logs while the terminal UI owns the screen. Empty
	// discards them.
	File string `yaml:"file"`
}

// Default returns the default configuration. Loading a file merges
// into these values.
func Default() *Config {
	return &Config{
		Environment: Development,
		API: APIConfig{
			BaseURL: "${API_URL}",
			Token:   "${API_TOKEN}",
			Timeout: 15 * time.Second,
		},
		Checkout: CheckoutConfig{
			HoldBudget:  checkout.DefaultHoldBudget,
			MaxQuantity: checkout.DefaultMaxQuantity,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from the file named by STOREFRONT_CONFIG.
// Fails when the variable is not set.
func Load() (*Config, error) {
	configPath := os.Getenv(EnvironmentVariable)
	if configPath == "" {
		return nil, fmt.Errorf("%s environment variable not set; "+
			"set it to the path of your storefront.yaml config file, or use --config flag", EnvironmentVariable)
	}
	return LoadFile(configPath)
}

// LoadFile loads configuration from path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.loadFile(path); err != nil {
		return nil, err
	}
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg, nil
}

// FromEnvironment returns the defaults with variables expanded, for
// running without a config file.
func FromEnvironment() *Config {
	cfg := Default()
	cfg.applyEnvironmentOverrides()
	cfg.expandVariables()
	return cfg
}

// loadFile merges a single file into c. JSON with comments is
// converted to plain JSON first, which the YAML decoder accepts.
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		data = jsonc.ToJSON(data)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// applyEnvironmentOverrides applies the section matching Environment.
func (c *Config) applyEnvironmentOverrides() {
	var overrides *Overrides

	switch c.Environment {
	case Development:
		overrides = c.Development
	case Staging:
		overrides = c.Staging
	case Production:
		overrides = c.Production
		if overrides == nil {
			overrides = &Overrides{Logging: &LoggingConfig{Level: "warn"}}
		}
	}

	if overrides == nil {
		return
	}

	if overrides.API != nil {
		if overrides.API.BaseURL != "" {
			c.API.BaseURL = overrides.API.BaseURL
		}
		if overrides.API.Token != "" {
			c.API.Token = overrides.API.Token
		}
		if overrides.API.TokenFile != "" {
			c.API.TokenFile = overrides.API.TokenFile
		}
		if overrides.API.Timeout != 0 {
			c.API.Timeout = overrides.API.Timeout
		}
	}

	if overrides.Checkout != nil {
		if overrides.Checkout.HoldBudget != 0 {
			c.Checkout.HoldBudget = overrides.Checkout.HoldBudget
		}
		if overrides.Checkout.MaxQuantity != 0 {
			c.Checkout.MaxQuantity = overrides.Checkout.MaxQuantity
		}
	}

	if overrides.Logging != nil {
		if overrides.Logging.Level != "" {
			c.Logging.Level = overrides.Logging.Level
		}
		if overrides.Logging.File != "" {
			c.Logging.File = overrides.Logging.File
		}
	}
}

// expandVariables expands ${VAR} and ${VAR:-default} patterns in the
// API fields and the log file path.
func (c *Config) expandVariables() {
	c.API.BaseURL = expandVars(c.API.BaseURL)
	c.API.Token = expandVars(c.API.Token)
	c.API.TokenFile = expandVars(c.API.TokenFile)
	c.Logging.File = expandVars(c.Logging.File)
}

var varPattern = regexp.MustCompile(`\$\{([^}:]+)(?::-([^}]*))?\}`)

// expandVars replaces each ${NAME} with the environment value of NAME,
// or with the default after ":-" when NAME is unset or empty.
func expandVars(s string) string {
	return varPattern.ReplaceAllStringFunc(s, func(match string) string {
		parts := varPattern.FindStringSubmatch(match)
		if value := os.Getenv(parts[1]); value != "" {
			return value
		}
		return parts[2]
	})
}

// Validate checks the configuration. A missing API base URL or token
// is reported as ticketapi.ErrConfigMissing so callers can tell it
// apart from malformed values.
func (c *Config) Validate() error {
	var errs []error

	if c.Environment != Development && c.Environment != Staging && c.Environment != Production {
		errs = append(errs, fmt.Errorf("invalid environment: %s", c.Environment))
	}

	if strings.TrimSpace(c.API.BaseURL) == "" {
		errs = append(errs, fmt.Errorf("%w: api.base_url is required (set API_URL)", ticketapi.ErrConfigMissing))
	} else if !strings.HasPrefix(c.API.BaseURL, "https://") {
		errs = append(errs, fmt.Errorf("api.base_url must use https (got %q)", c.API.BaseURL))
	}
	if c.API.TokenFile != "" {
		if info, err := os.Stat(c.API.TokenFile); err != nil {
			errs = append(errs, fmt.Errorf("api.token_file: %w", err))
		} else if info.IsDir() {
			errs = append(errs, fmt.Errorf("api.token_file %s is a directory", c.API.TokenFile))
		}
	} else if strings.TrimSpace(c.API.Token) == "" {
		errs = append(errs, fmt.Errorf("%w: api.token is required (set API_TOKEN or api.token_file)", ticketapi.ErrConfigMissing))
	}
	if c.API.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("api.timeout must be positive"))
	}

	if c.Checkout.HoldBudget < checkout.MinHoldBudget || c.Checkout.HoldBudget > checkout.MaxHoldBudget {
		errs = append(errs, fmt.Errorf("checkout.hold_budget must be between %v and %v (got %v)",
			checkout.MinHoldBudget, checkout.MaxHoldBudget, c.Checkout.HoldBudget))
	}
	if c.Checkout.MaxQuantity < 1 || c.Checkout.MaxQuantity > checkout.MaxQuantityCeiling {
		errs = append(errs, fmt.Errorf("checkout.max_quantity must be between 1 and %d (got %d)",
			checkout.MaxQuantityCeiling, c.Checkout.MaxQuantity))
	}

	if _, err := c.Logging.SlogLevel(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// SlogLevel parses Level.
func (l LoggingConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}
