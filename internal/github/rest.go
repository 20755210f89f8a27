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

package github

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	relayerrors "github.com/sirseerhq/advisory-relay/internal/errors"
	"github.com/sirseerhq/advisory-relay/internal/giterror"
)

// advisoriesPath is the global security advisories listing endpoint.
// Docs: https://docs.github.com/en/rest/security-advisories/global-advisories
const advisoriesPath = "/advisories"

// ClientConfig holds the settings needed to construct a REST client.
// Only BaseURL is required; zero values fall back to public GitHub
// defaults.
type ClientConfig struct {
	// BaseURL is the API root, e.g. https://api.github.com or a
	// GitHub Enterprise /api/v3 URL.
	BaseURL string

	// Token is the bearer token. Empty means unauthenticated requests.
	Token string

	// APIVersion is sent as the X-GitHub-Api-Version header.
	APIVersion string

	// UserAgent identifies the client per GitHub's API requirements.
	UserAgent string

	// Timeout applies per request. Zero means no client-side timeout.
	Timeout time.Duration
}

// RESTClient implements the Client interface against the GitHub REST API.
// It is configured with:
//   - Authentication via a bearer token when one is provided
//   - A pinned API version header on every request
//   - A per-request timeout
//   - Response size limiting to prevent memory issues
//   - User-Agent header for API compliance
type RESTClient struct {
	httpClient *http.Client
	baseURL    string
	inspector  giterror.Inspector
}

// NewRESTClient creates a new GitHub REST client from the given config.
func NewRESTClient(cfg ClientConfig) *RESTClient {
	httpClient := cleanhttp.DefaultClient()
	httpClient.Timeout = cfg.Timeout
	httpClient.Transport = &authTransport{
		token:      cfg.Token,
		apiVersion: cfg.APIVersion,
		userAgent:  cfg.UserAgent,
		base:       httpClient.Transport,
	}

	return &RESTClient{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		inspector:  giterror.NewErrorChainInspector(giterror.NewInspector()),
	}
}

// ListAdvisories fetches one page of global security advisories with the
// configured filters. Records come back in the server's listing order as
// opaque JSON objects; array elements that are not JSON objects are
// dropped, matching the endpoint's documented shape.
func (c *RESTClient) ListAdvisories(ctx context.Context, opts FetchOptions) ([]Advisory, error) {
	reqURL := c.listURL(opts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build advisory request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, c.mapError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.mapError(fmt.Errorf("failed to read advisory response: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.mapError(&StatusError{
			StatusCode: resp.StatusCode,
			URL:        reqURL,
			Body:       strings.TrimSpace(string(body)),
		})
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, fmt.Errorf("unexpected response for %s, want a JSON array: %w", advisoriesPath, err)
	}

	advisories := make([]Advisory, 0, len(elements))
	for _, el := range elements {
		if isJSONObject(el) {
			advisories = append(advisories, Advisory(el))
		}
	}

	return advisories, nil
}

// listURL builds the listing URL with filters applied only when set.
func (c *RESTClient) listURL(opts FetchOptions) string {
	perPage := opts.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	page := opts.Page
	if page <= 0 {
		page = 1
	}

	query := url.Values{}
	if opts.Ecosystem != "" {
		query.Set("ecosystem", opts.Ecosystem)
	}
	if opts.Severity != "" {
		query.Set("severity", opts.Severity)
	}
	if opts.Type != "" {
		query.Set("type", opts.Type)
	}
	query.Set("per_page", strconv.Itoa(perPage))
	query.Set("page", strconv.Itoa(page))

	return c.baseURL + advisoriesPath + "?" + query.Encode()
}

// mapError maps transport and API errors to our domain errors with actionable messages
func (c *RESTClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	// Status errors carry the code directly; classify from that rather
	// than from message text, which also contains the request URL.
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		// Check rate limit first, as 403 can be both auth and rate limit
		case statusErr.IsRateLimitError():
			return fmt.Errorf("GitHub API rate limit exceeded. Please wait before retrying: %w: %w", relayerrors.ErrRateLimit, err)
		case statusErr.IsAuthError():
			return fmt.Errorf("GitHub API authentication failed. Please provide a valid token via --token flag or GITHUB_TOKEN environment variable: %w: %w", relayerrors.ErrInvalidToken, err)
		case statusErr.IsNotFoundError():
			return fmt.Errorf("advisory listing endpoint not found. Please check the configured API base URL: %w: %w", relayerrors.ErrNotFound, err)
		default:
			return fmt.Errorf("failed to list advisories: %w", err)
		}
	}

	if c.inspector.IsNetworkError(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w: %w", relayerrors.ErrNetworkFailure, err)
	}

	return fmt.Errorf("failed to list advisories: %w", err)
}

// isJSONObject reports whether the raw value is a JSON object. The
// listing endpoint returns an array of objects; anything else is noise.
func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	return len(trimmed) > 0 && trimmed[0] == '{'
}
