// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides configuration management for advisory-relay with
// support for multiple configuration sources and a well-defined precedence
// order.
//
// Configuration sources (in precedence order, highest to lowest):
//  1. Command-line flags
//  2. Environment variables
//  3. Configuration file
//  4. Built-in defaults
//
// The package supports YAML configuration files and provides automatic
// discovery of configuration in standard locations. It's designed to work
// seamlessly with GitHub Enterprise deployments through a configurable
// API base URL.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	relayerrors "github.com/sirseerhq/advisory-relay/internal/errors"
)

// LoadConfig loads configuration from multiple sources and applies them in
// the correct precedence order. If configPath is provided, it loads from
// that specific file. Otherwise, it searches standard locations:
//   - .advisory-relay.yaml (current directory)
//   - .advisory-relay.yml (current directory)
//   - ~/.advisory-relay/config.yaml
//   - ~/.advisory-relay/config.yml
//
// Environment variables are applied after loading the config file, allowing
// runtime overrides.
//
// Returns an error if the specified config file cannot be loaded, but will
// succeed with defaults if no config file is found in standard locations.
func LoadConfig(configPath string) (*Config, error) {
	// Start with defaults
	cfg := DefaultConfig()

	// Try to load config file if path is provided
	if configPath != "" {
		if err := loadConfigFile(configPath, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		// Try default locations
		defaultPaths := []string{
			".advisory-relay.yaml",
			".advisory-relay.yml",
			filepath.Join(os.Getenv("HOME"), ".advisory-relay", "config.yaml"),
			filepath.Join(os.Getenv("HOME"), ".advisory-relay", "config.yml"),
		}

		for _, path := range defaultPaths {
			if _, err := os.Stat(path); err == nil {
				if err := loadConfigFile(path, cfg); err != nil {
					return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
				}
				break
			}
		}
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadConfigFile reads and parses a YAML config file
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if baseURL := os.Getenv("GITHUB_API_BASE_URL"); baseURL != "" {
		cfg.GitHub.APIBaseURL = baseURL
	}
	if apiVersion := os.Getenv("GITHUB_API_VERSION"); apiVersion != "" {
		cfg.GitHub.APIVersion = apiVersion
	}
	if userAgent := os.Getenv("GITHUB_USER_AGENT"); userAgent != "" {
		cfg.GitHub.UserAgent = userAgent
	}
	if timeout := os.Getenv("GITHUB_TIMEOUT_S"); timeout != "" {
		if secs, err := parsePositiveInt(timeout); err == nil {
			cfg.Request.TimeoutSeconds = secs
		}
	}
	if sleep := os.Getenv("GITHUB_API_SLEEP_S"); sleep != "" {
		if secs, err := strconv.ParseFloat(sleep, 64); err == nil && secs >= 0 {
			cfg.Request.PageDelaySeconds = secs
		}
	}
}

// ResolveToken returns the GitHub token for the run. The explicit value
// (from the --token flag) wins; otherwise the configured token
// environment variable is consulted, accepting the lowercase alias of
// GITHUB_TOKEN for compatibility with the historical tooling. An empty
// result means the run proceeds unauthenticated.
func (c *Config) ResolveToken(flagToken string) string {
	if flagToken != "" {
		return flagToken
	}
	if token := os.Getenv(c.GitHub.TokenEnv); token != "" {
		return token
	}
	return os.Getenv(strings.ToLower(c.GitHub.TokenEnv))
}

// parsePositiveInt parses a string to a positive integer
func parsePositiveInt(s string) (int, error) {
	var i int
	_, err := fmt.Sscanf(s, "%d", &i)
	if err != nil {
		return 0, fmt.Errorf("failed to parse integer from '%s': %w", s, err)
	}
	if i <= 0 {
		return 0, fmt.Errorf("value must be positive, got: %d", i)
	}
	return i, nil
}

// Validate checks if the configuration contains valid values. It ensures
// the page size is within GitHub's limits, the page cap is usable as a
// safety limit, and endpoint settings are not empty. This should be
// called after all sources have been applied to catch invalid settings
// early. Every violation wraps ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.Defaults.PerPage <= 0 {
		return fmt.Errorf("per-page must be positive, got %d: %w", c.Defaults.PerPage, relayerrors.ErrInvalidConfig)
	}
	if c.Defaults.PerPage > maxPerPage {
		return fmt.Errorf("per-page %d exceeds GitHub API limit of %d: %w", c.Defaults.PerPage, maxPerPage, relayerrors.ErrInvalidConfig)
	}
	if c.Defaults.MaxPages <= 0 {
		return fmt.Errorf("max-pages must be at least 1, got %d: %w", c.Defaults.MaxPages, relayerrors.ErrInvalidConfig)
	}
	if c.Defaults.OutputFormat != FormatJSON && c.Defaults.OutputFormat != FormatNDJSON {
		return fmt.Errorf("unknown output format %q: %w", c.Defaults.OutputFormat, relayerrors.ErrInvalidConfig)
	}
	if c.GitHub.APIBaseURL == "" {
		return fmt.Errorf("GitHub API base URL cannot be empty: %w", relayerrors.ErrInvalidConfig)
	}
	if c.GitHub.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty: %w", relayerrors.ErrInvalidConfig)
	}
	if c.Request.TimeoutSeconds <= 0 {
		return fmt.Errorf("request timeout must be positive, got %d: %w", c.Request.TimeoutSeconds, relayerrors.ErrInvalidConfig)
	}
	if c.Request.PageDelaySeconds < 0 {
		return fmt.Errorf("page delay cannot be negative, got %v: %w", c.Request.PageDelaySeconds, relayerrors.ErrInvalidConfig)
	}
	return nil
}
