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
	"encoding/json"
	"fmt"
)

// Advisory is a single global security advisory record exactly as
// returned by the GitHub API. Records are passed through unmodified;
// no fields are inspected, validated, or renamed.
type Advisory = json.RawMessage

// FetchOptions configures a single advisory listing request.
// Filters are sent as query parameters only when non-empty.
type FetchOptions struct {
	// Ecosystem filters by package ecosystem (e.g. npm, pip, rubygems).
	Ecosystem string

	// Severity filters by severity (e.g. low, medium, high, critical).
	Severity string

	// Type filters by advisory type (reviewed, unreviewed, malware).
	Type string

	// PerPage controls how many advisories to fetch per page.
	// Defaults to 100 if not specified. Maximum is 100 per GitHub's API limits.
	PerPage int

	// Page is the 1-based page cursor. Zero is treated as page 1.
	Page int
}

// Default values for fetch operations
const (
	defaultPerPage = 100
	maxPerPage     = 100
)

// StatusError represents a non-2xx response from the GitHub API. It
// carries the status code and response body so callers can report
// exactly what the server said.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	msg := e.Body
	if msg == "" {
		msg = "HTTP error"
	}
	return fmt.Sprintf("github api error %d for %s: %s", e.StatusCode, e.URL, msg)
}

// IsAuthError reports whether the status indicates an authentication
// or authorization failure. Used by the error chain inspector.
func (e *StatusError) IsAuthError() bool {
	return e.StatusCode == 401 || (e.StatusCode == 403 && !e.IsRateLimitError())
}

// IsNotFoundError reports whether the status indicates a missing resource.
func (e *StatusError) IsNotFoundError() bool {
	return e.StatusCode == 404
}

// IsRateLimitError reports whether the response indicates rate limiting.
// GitHub signals the primary rate limit with a 403 and a distinctive
// message body, and secondary limits with 429.
func (e *StatusError) IsRateLimitError() bool {
	if e.StatusCode == 429 {
		return true
	}
	return e.StatusCode == 403 && bytes.Contains([]byte(e.Body), []byte("rate limit"))
}
