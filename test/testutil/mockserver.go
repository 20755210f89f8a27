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

// Package testutil provides common test helpers for advisory-relay
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
)

// MockServer wraps an httptest server with request accounting.
type MockServer struct {
	*httptest.Server
	requestCount int32
}

// Requests returns the number of requests the server has received.
func (s *MockServer) Requests() int {
	return int(atomic.LoadInt32(&s.requestCount))
}

// NewAdvisoryServer creates a mock server that serves scripted advisory
// pages keyed by the page query parameter. Pages past the scripted set
// come back as an empty array, matching the real listing endpoint's
// exhaustion behavior.
func NewAdvisoryServer(t *testing.T, pages [][]json.RawMessage) *MockServer {
	t.Helper()
	server := &MockServer{}

	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&server.requestCount, 1)

		if r.URL.Path != "/advisories" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
			return
		}

		pageNum, err := strconv.Atoi(r.URL.Query().Get("page"))
		if err != nil {
			pageNum = 1
		}

		w.Header().Set("Content-Type", "application/json")
		if pageNum < 1 || pageNum > len(pages) {
			_, _ = w.Write([]byte(`[]`))
			return
		}
		_ = json.NewEncoder(w).Encode(pages[pageNum-1])
	}))
	t.Cleanup(server.Close)

	return server
}

// NewErrorServer creates a mock server that always returns the specified
// status and body.
func NewErrorServer(t *testing.T, statusCode int, body string) *MockServer {
	t.Helper()
	server := &MockServer{}

	server.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&server.requestCount, 1)
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return server
}

// GenerateAdvisories creates numbered advisory records for testing.
func GenerateAdvisories(start, end int) []json.RawMessage {
	records := make([]json.RawMessage, 0, end-start+1)
	for i := start; i <= end; i++ {
		records = append(records, json.RawMessage(fmt.Sprintf(
			`{"ghsa_id":"GHSA-%04d","summary":"Test advisory %d","severity":"high"}`, i, i)))
	}
	return records
}
