// Copyright 2026 The Storefront Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/pflag"

	"github.com/popuweekendclub/storefront/lib/config"
	"github.com/popuweekendclub/storefront/lib/secret"
	"github.com/popuweekendclub/storefront/lib/ticketapi"
)

// connectionFlags are the flags shared by every command that talks to
// the ticketing API.
type connectionFlags struct {
	ConfigPath string
	LogLevel   string
}

func (flags *connectionFlags) addFlags(flagSet *pflag.FlagSet) {
	flagSet.StringVar(&flags.ConfigPath, "config", "", "config file, YAML or JSONC (default: $"+config.EnvironmentVariable+", else $API_URL and $API_TOKEN)")
	flagSet.StringVar(&flags.LogLevel, "log-level", "", "override logging.level (debug, info, warn, error)")
}

// loadConfig resolves configuration: --config, then the
// STOREFRONT_CONFIG file, then the environment alone.
func (flags *connectionFlags) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error
	switch {
	case flags.ConfigPath != "":
		cfg, err = config.LoadFile(flags.ConfigPath)
	case os.Getenv(config.EnvironmentVariable) != "":
		cfg, err = config.Load()
	default:
		cfg = config.FromEnvironment()
	}
	if err != nil {
		return nil, err
	}
	if flags.LogLevel != "" {
		cfg.Logging.Level = flags.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// logLevel returns the validated slog level of cfg.
func logLevel(cfg *config.Config) slog.Level {
	level, err := cfg.Logging.SlogLevel()
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// newClient builds the API client for cfg. When cfg names a token
// file the token is read into a secret.Buffer; the returned release
// func zeroes it and must be called once the client is done.
func (runtime Runtime) newClient(cfg *config.Config, logger *slog.Logger) (*ticketapi.Client, func(), error) {
	clientConfig := ticketapi.Config{
		BaseURL: cfg.API.BaseURL,
		Token:   cfg.API.Token,
		HTTPClient: &http.Client{
			Timeout:   cfg.API.Timeout,
			Transport: runtime.Transport,
		},
		Logger: logger,
	}
	release := func() {}
	if cfg.API.TokenFile != "" {
		token, err := secret.ReadFile(cfg.API.TokenFile)
		if err != nil {
			return nil, nil, fmt.Errorf("reading api.token_file: %w", err)
		}
		clientConfig.Token = ""
		clientConfig.TokenSecret = token
		release = func() { token.Close() }
	}
	client, err := ticketapi.NewClient(clientConfig)
	if err != nil {
		release()
		return nil, nil, err
	}
	return client, release, nil
}

// connect loads configuration and builds a client with the command
// logger. The caller defers the returned release func.
func (runtime Runtime) connect(flags *connectionFlags) (*ticketapi.Client, *slog.Logger, func(), error) {
	cfg, err := flags.loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	logger := runtime.commandLogger(logLevel(cfg))
	client, release, err := runtime.newClient(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return client, logger, release, nil
}
