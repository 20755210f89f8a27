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

// Package config types define the configuration structures used throughout
// advisory-relay. These types represent settings that can be loaded from
// YAML configuration files, environment variables, or command-line flags.
package config

import (
	"fmt"
	"time"

	"github.com/sirseerhq/advisory-relay/pkg/version"
)

// Output formats accepted by the fetch-advisories command.
const (
	FormatJSON   = "json"
	FormatNDJSON = "ndjson"
)

// maxPerPage is the page size ceiling imposed by the GitHub REST API.
const maxPerPage = 100

// Config represents the complete configuration for advisory-relay.
// It consolidates settings from various sources and provides a unified
// interface for accessing configuration values throughout the application.
type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Request  RequestConfig  `yaml:"request"`
}

// GitHubConfig contains GitHub-specific settings including the API base
// URL, the pinned REST API version, and authentication configuration.
// This allows easy configuration for GitHub Enterprise deployments by
// specifying a custom base URL.
type GitHubConfig struct {
	APIBaseURL string `yaml:"api_base_url"`
	APIVersion string `yaml:"api_version"`
	UserAgent  string `yaml:"user_agent"`
	TokenEnv   string `yaml:"token_env"`
}

// DefaultsConfig contains default settings that apply to every fetch
// operation unless overridden by command-line flags. These settings
// control the core behavior of the advisory listing loop.
type DefaultsConfig struct {
	PerPage      int    `yaml:"per_page"`
	MaxPages     int    `yaml:"max_pages"`
	OutputFormat string `yaml:"output_format"`
}

// RequestConfig controls per-request behavior against the GitHub API:
// the HTTP timeout applied to each page request and the fixed delay
// inserted between successive page fetches.
type RequestConfig struct {
	TimeoutSeconds   int     `yaml:"timeout_seconds"`
	PageDelaySeconds float64 `yaml:"page_delay_seconds"`
}

// DefaultConfig returns a Config with sensible defaults suitable for most
// use cases. These defaults are optimized for public GitHub.com usage but
// can be overridden for GitHub Enterprise or special requirements.
func DefaultConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			APIBaseURL: "https://api.github.com",
			APIVersion: "2022-11-28",
			UserAgent:  fmt.Sprintf("advisory-relay/%s", version.Version),
			TokenEnv:   "GITHUB_TOKEN",
		},
		Defaults: DefaultsConfig{
			PerPage:      100,
			MaxPages:     1,
			OutputFormat: FormatJSON,
		},
		Request: RequestConfig{
			TimeoutSeconds:   30,
			PageDelaySeconds: 0,
		},
	}
}

// Timeout returns the per-request HTTP timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Request.TimeoutSeconds) * time.Second
}

// PageDelay returns the inter-page sleep as a duration.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.Request.PageDelaySeconds * float64(time.Second))
}
