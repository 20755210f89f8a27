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

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/sirseerhq/advisory-relay/internal/config"
	relayerrors "github.com/sirseerhq/advisory-relay/internal/errors"
	"github.com/sirseerhq/advisory-relay/internal/github"
	"github.com/sirseerhq/advisory-relay/internal/log"
	"github.com/sirseerhq/advisory-relay/internal/metadata"
	"github.com/sirseerhq/advisory-relay/internal/output"
)

// fetchAdvisoriesCmd represents the fetch-advisories command
func newFetchAdvisoriesCommand() *cobra.Command {
	var (
		ecosystem    string
		severity     string
		advisoryType string
		perPage      int
		maxPages     int
		outputFile   string
		format       string
		token        string
		configFile   string
	)

	cmd := &cobra.Command{
		Use:   "fetch-advisories",
		Short: "Fetch global security advisories from GitHub",
		Long: `Fetch global security advisories from the GitHub REST API and write
them as JSON to a file or stdout.

The listing endpoint is paginated; pages are fetched in order until the
server returns an empty page or the --max-pages safety cap is reached.
Records are passed through exactly as the API returns them.

Authentication is optional for this endpoint but raises rate limits:
  - Use --token flag to provide a token directly
  - Or set GITHUB_TOKEN environment variable`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configFile)
			if err != nil {
				return err
			}

			// Flags override config and environment only when set
			if cmd.Flags().Changed("per-page") {
				cfg.Defaults.PerPage = perPage
			}
			if cmd.Flags().Changed("max-pages") {
				cfg.Defaults.MaxPages = maxPages
			}
			if cmd.Flags().Changed("format") {
				cfg.Defaults.OutputFormat = format
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			filters := github.FetchOptions{
				Ecosystem: ecosystem,
				Severity:  severity,
				Type:      advisoryType,
			}

			return runFetchAdvisories(cmd.Context(), cfg, filters, cfg.ResolveToken(token), outputFile)
		},
	}

	cmd.Flags().StringVar(&ecosystem, "ecosystem", "", "Ecosystem filter (e.g. npm, pip, rubygems)")
	cmd.Flags().StringVar(&severity, "severity", "", "Severity filter (e.g. low, medium, high, critical)")
	cmd.Flags().StringVar(&advisoryType, "type", "", "Advisory type filter (reviewed, unreviewed, malware)")
	cmd.Flags().IntVar(&perPage, "per-page", 100, "Items per page (max 100)")
	cmd.Flags().IntVar(&maxPages, "max-pages", 1, "Safety limit; set higher for more data")
	cmd.Flags().StringVar(&outputFile, "out", "", "Write results as JSON to this file; otherwise prints to stdout")
	cmd.Flags().StringVar(&format, "format", output.FormatJSON, "Output format: json (pretty array) or ndjson")
	cmd.Flags().StringVar(&token, "token", "", "GitHub token (overrides GITHUB_TOKEN env var)")
	cmd.Flags().StringVar(&configFile, "config", "", "Path to config file")

	return cmd
}

// runFetchAdvisories executes the fetch-advisories command
func runFetchAdvisories(ctx context.Context, cfg *config.Config, filters github.FetchOptions, token, outputFile string) error {
	client := github.NewRESTClient(github.ClientConfig{
		BaseURL:    cfg.GitHub.APIBaseURL,
		Token:      token,
		APIVersion: cfg.GitHub.APIVersion,
		UserAgent:  cfg.GitHub.UserAgent,
		Timeout:    cfg.Timeout(),
	})

	tracker := metadata.New()

	advisories, err := collectAdvisories(ctx, client, collectOptions{
		filters:   filters,
		perPage:   cfg.Defaults.PerPage,
		maxPages:  cfg.Defaults.MaxPages,
		pageDelay: cfg.PageDelay(),
	}, tracker)
	if err != nil {
		return err
	}

	// Output is written only after the whole fetch has succeeded, so a
	// failed run never produces a partial file.
	var writer output.OutputWriter
	if outputFile == "" {
		writer = output.NewWriter(os.Stdout, cfg.Defaults.OutputFormat)
	} else {
		fileWriter, fErr := output.NewFileWriter(outputFile, cfg.Defaults.OutputFormat)
		if fErr != nil {
			return fmt.Errorf("failed to create output file: %w", fErr)
		}
		writer = fileWriter
	}

	if err := writer.WriteAll(advisories); err != nil {
		_ = writer.Close()
		return err
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close output: %w", err)
	}

	summary := tracker.Summarize()
	if outputFile != "" {
		log.Infof("Wrote %d advisories to %s", len(advisories), outputFile)
	}
	log.Infof("Fetched %d advisories (%d pages, %d API calls) in %s",
		summary.Records, summary.Pages, summary.APICalls, summary.Duration.Round(time.Millisecond))

	return nil
}

// collectOptions configures the pagination loop.
type collectOptions struct {
	filters   github.FetchOptions
	perPage   int
	maxPages  int
	pageDelay time.Duration
}

// collectAdvisories runs the pagination loop: it advances the page
// cursor from 1 until the server returns an empty page or maxPages
// requests have been issued, concatenating all records in page-fetch
// order. Any error aborts the loop and discards everything fetched so
// far.
func collectAdvisories(ctx context.Context, client github.Client, opts collectOptions, tracker *metadata.Tracker) ([]github.Advisory, error) {
	var advisories []github.Advisory

	for page := 1; ; page++ {
		fetchOpts := opts.filters
		fetchOpts.PerPage = opts.perPage
		fetchOpts.Page = page

		tracker.IncrementAPICall()
		items, err := client.ListAdvisories(ctx, fetchOpts)
		if err != nil {
			return nil, err
		}

		tracker.RecordPage(len(items))
		advisories = append(advisories, items...)
		log.Debugf("page %d returned %d advisories", page, len(items))

		if len(items) == 0 || page >= opts.maxPages {
			break
		}

		if opts.pageDelay > 0 {
			select {
			case <-time.After(opts.pageDelay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return advisories, nil
}

// mapErrorToExitCode maps internal errors to appropriate exit codes
func mapErrorToExitCode(err error) int {
	if err == nil {
		return 0
	}

	// Check for specific error types
	if errors.Is(err, relayerrors.ErrInvalidToken) ||
		errors.Is(err, relayerrors.ErrNotFound) ||
		errors.Is(err, relayerrors.ErrRateLimit) {
		return 2 // Authentication/authorization errors
	}

	if errors.Is(err, relayerrors.ErrNetworkFailure) {
		return 3 // Network errors
	}

	return 1 // General error
}
