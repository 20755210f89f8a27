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
	"context"
	"encoding/json"
	"fmt"

	relayerrors "github.com/sirseerhq/advisory-relay/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
// Pages are served in order by the requested page number; pages past the
// scripted set come back empty, which terminates a pagination loop the
// same way the real listing endpoint does.
type MockClient struct {
	// Pages holds the scripted responses, indexed by page number - 1.
	Pages [][]Advisory

	// Error to return
	Error error

	// FailOnPage makes Error fire only on the given 1-based page.
	// Zero fails on the first request when Error is set.
	FailOnPage int

	// Behavior flags
	ShouldFailAuth    bool
	ShouldFailNetwork bool

	// Track calls for verification
	CallCount      int
	LastOpts       FetchOptions
	RequestedPages []int
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Pages: [][]Advisory{generateTestAdvisories()},
	}
}

// ListAdvisories implements the Client interface
func (m *MockClient) ListAdvisories(ctx context.Context, opts FetchOptions) ([]Advisory, error) {
	// Track the call
	m.CallCount++
	m.LastOpts = opts
	m.RequestedPages = append(m.RequestedPages, opts.Page)

	// Check for context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Simulate various error conditions
	if m.ShouldFailAuth {
		return nil, fmt.Errorf("authentication failed: %w", relayerrors.ErrInvalidToken)
	}

	if m.ShouldFailNetwork {
		return nil, fmt.Errorf("network timeout: %w", relayerrors.ErrNetworkFailure)
	}

	if m.Error != nil && (m.FailOnPage == 0 || opts.Page == m.FailOnPage) {
		return nil, m.Error
	}

	page := opts.Page
	if page <= 0 {
		page = 1
	}
	if page > len(m.Pages) {
		return []Advisory{}, nil
	}

	return m.Pages[page-1], nil
}

// generateTestAdvisories creates sample advisory data for testing
func generateTestAdvisories() []Advisory {
	return []Advisory{
		json.RawMessage(`{"ghsa_id":"GHSA-aaaa-bbbb-cccc","summary":"Prototype pollution in example-lib","severity":"high"}`),
		json.RawMessage(`{"ghsa_id":"GHSA-dddd-eeee-ffff","summary":"SQL injection in sample-orm","severity":"critical"}`),
		json.RawMessage(`{"ghsa_id":"GHSA-1111-2222-3333","summary":"Path traversal in static-server","severity":"medium"}`),
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithPages scripts the sequence of pages to return
func WithPages(pages ...[]Advisory) MockClientOption {
	return func(m *MockClient) {
		m.Pages = pages
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithErrorOnPage makes the client fail only when the given page is requested
func WithErrorOnPage(err error, page int) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
		m.FailOnPage = page
	}
}

// WithAuthFailure makes the client simulate authentication failure
func WithAuthFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailAuth = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
