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

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	relayerrors "github.com/sirseerhq/advisory-relay/internal/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.GitHub.APIBaseURL != "https://api.github.com" {
		t.Errorf("APIBaseURL = %q, want https://api.github.com", cfg.GitHub.APIBaseURL)
	}
	if cfg.GitHub.APIVersion != "2022-11-28" {
		t.Errorf("APIVersion = %q, want 2022-11-28", cfg.GitHub.APIVersion)
	}
	if cfg.GitHub.TokenEnv != "GITHUB_TOKEN" {
		t.Errorf("TokenEnv = %q, want GITHUB_TOKEN", cfg.GitHub.TokenEnv)
	}
	if cfg.Defaults.PerPage != 100 {
		t.Errorf("PerPage = %d, want 100", cfg.Defaults.PerPage)
	}
	if cfg.Defaults.MaxPages != 1 {
		t.Errorf("MaxPages = %d, want 1", cfg.Defaults.MaxPages)
	}
	if cfg.Defaults.OutputFormat != FormatJSON {
		t.Errorf("OutputFormat = %q, want %q", cfg.Defaults.OutputFormat, FormatJSON)
	}
	if cfg.Request.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want 30", cfg.Request.TimeoutSeconds)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
github:
  api_base_url: https://github.example.com/api/v3
  api_version: "2022-11-28"
  user_agent: custom-agent/1.0
defaults:
  per_page: 50
  max_pages: 10
  output_format: ndjson
request:
  timeout_seconds: 60
  page_delay_seconds: 1.5
`
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIBaseURL != "https://github.example.com/api/v3" {
		t.Errorf("APIBaseURL = %q, want enterprise URL", cfg.GitHub.APIBaseURL)
	}
	if cfg.GitHub.UserAgent != "custom-agent/1.0" {
		t.Errorf("UserAgent = %q, want custom-agent/1.0", cfg.GitHub.UserAgent)
	}
	if cfg.Defaults.PerPage != 50 {
		t.Errorf("PerPage = %d, want 50", cfg.Defaults.PerPage)
	}
	if cfg.Defaults.MaxPages != 10 {
		t.Errorf("MaxPages = %d, want 10", cfg.Defaults.MaxPages)
	}
	if cfg.Defaults.OutputFormat != FormatNDJSON {
		t.Errorf("OutputFormat = %q, want ndjson", cfg.Defaults.OutputFormat)
	}
	if cfg.Request.TimeoutSeconds != 60 {
		t.Errorf("TimeoutSeconds = %d, want 60", cfg.Request.TimeoutSeconds)
	}
	if got, want := cfg.PageDelay(), 1500*time.Millisecond; got != want {
		t.Errorf("PageDelay() = %v, want %v", got, want)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err == nil {
		t.Error("expected error for missing explicit config file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "bad.yaml")
	if err := os.WriteFile(configPath, []byte("github: [not a map"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("GITHUB_API_BASE_URL", "https://ghe.internal/api/v3")
	t.Setenv("GITHUB_API_VERSION", "2023-01-01")
	t.Setenv("GITHUB_USER_AGENT", "env-agent/2.0")
	t.Setenv("GITHUB_TIMEOUT_S", "90")
	t.Setenv("GITHUB_API_SLEEP_S", "0.25")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.GitHub.APIBaseURL != "https://ghe.internal/api/v3" {
		t.Errorf("APIBaseURL = %q, want env override", cfg.GitHub.APIBaseURL)
	}
	if cfg.GitHub.APIVersion != "2023-01-01" {
		t.Errorf("APIVersion = %q, want env override", cfg.GitHub.APIVersion)
	}
	if cfg.GitHub.UserAgent != "env-agent/2.0" {
		t.Errorf("UserAgent = %q, want env override", cfg.GitHub.UserAgent)
	}
	if cfg.Request.TimeoutSeconds != 90 {
		t.Errorf("TimeoutSeconds = %d, want 90", cfg.Request.TimeoutSeconds)
	}
	if cfg.Request.PageDelaySeconds != 0.25 {
		t.Errorf("PageDelaySeconds = %v, want 0.25", cfg.Request.PageDelaySeconds)
	}
}

func TestEnvOverridesIgnoreInvalidValues(t *testing.T) {
	t.Setenv("GITHUB_TIMEOUT_S", "not-a-number")
	t.Setenv("GITHUB_API_SLEEP_S", "-2")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Request.TimeoutSeconds != 30 {
		t.Errorf("TimeoutSeconds = %d, want default 30 for unparsable env", cfg.Request.TimeoutSeconds)
	}
	if cfg.Request.PageDelaySeconds != 0 {
		t.Errorf("PageDelaySeconds = %v, want default 0 for negative env", cfg.Request.PageDelaySeconds)
	}
}

func TestResolveToken(t *testing.T) {
	tests := []struct {
		name      string
		flagToken string
		upper     string
		lower     string
		want      string
	}{
		{
			name:      "flag takes precedence",
			flagToken: "flag-token",
			upper:     "env-token",
			want:      "flag-token",
		},
		{
			name:  "uppercase env var",
			upper: "env-token",
			want:  "env-token",
		},
		{
			name:  "lowercase alias",
			lower: "lower-token",
			want:  "lower-token",
		},
		{
			name:  "uppercase wins over lowercase",
			upper: "upper-token",
			lower: "lower-token",
			want:  "upper-token",
		},
		{
			name: "no token anywhere",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tt.upper)
			t.Setenv("github_token", tt.lower)

			cfg := DefaultConfig()
			if got := cfg.ResolveToken(tt.flagToken); got != tt.want {
				t.Errorf("ResolveToken(%q) = %q, want %q", tt.flagToken, got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "per-page zero",
			mutate:  func(c *Config) { c.Defaults.PerPage = 0 },
			wantErr: true,
		},
		{
			name:    "per-page negative",
			mutate:  func(c *Config) { c.Defaults.PerPage = -5 },
			wantErr: true,
		},
		{
			name:    "per-page above api limit",
			mutate:  func(c *Config) { c.Defaults.PerPage = 101 },
			wantErr: true,
		},
		{
			name:   "per-page at api limit",
			mutate: func(c *Config) { c.Defaults.PerPage = 100 },
		},
		{
			name:    "max-pages zero",
			mutate:  func(c *Config) { c.Defaults.MaxPages = 0 },
			wantErr: true,
		},
		{
			name:    "max-pages negative",
			mutate:  func(c *Config) { c.Defaults.MaxPages = -1 },
			wantErr: true,
		},
		{
			name:    "unknown output format",
			mutate:  func(c *Config) { c.Defaults.OutputFormat = "xml" },
			wantErr: true,
		},
		{
			name:   "ndjson output format",
			mutate: func(c *Config) { c.Defaults.OutputFormat = FormatNDJSON },
		},
		{
			name:    "empty base url",
			mutate:  func(c *Config) { c.GitHub.APIBaseURL = "" },
			wantErr: true,
		},
		{
			name:    "empty user agent",
			mutate:  func(c *Config) { c.GitHub.UserAgent = "" },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.Request.TimeoutSeconds = 0 },
			wantErr: true,
		},
		{
			name:    "negative page delay",
			mutate:  func(c *Config) { c.Request.PageDelaySeconds = -1 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, relayerrors.ErrInvalidConfig) {
				t.Errorf("Validate() error should wrap ErrInvalidConfig, got: %v", err)
			}
		})
	}
}
