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

// Package github provides a client for the GitHub REST API's global
// security advisories listing endpoint. It abstracts request
// construction, authentication, and error classification behind a small
// interface, and treats advisory records as opaque JSON so that the
// upstream schema never needs to be tracked here.
//
// The package includes:
//   - A Client interface for listing advisory pages
//   - A REST implementation pinned to a configurable API version
//   - Mock client for testing
//
// Basic usage:
//
//	client := github.NewRESTClient(github.ClientConfig{
//	    BaseURL: "https://api.github.com",
//	    Token:   "your-github-token",
//	})
//	page, err := client.ListAdvisories(ctx, github.FetchOptions{
//	    Ecosystem: "npm",
//	    PerPage:   100,
//	    Page:      1,
//	})
//	if err != nil {
//	    // Handle error
//	}
//	for _, advisory := range page {
//	    // Process raw advisory record
//	}
package github
