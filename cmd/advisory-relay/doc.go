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

// Command advisory-relay retrieves GitHub global security advisories.
//
// The fetch-advisories subcommand pages through the REST listing
// endpoint with optional ecosystem, severity, and type filters and
// writes the concatenated records as JSON to a file or stdout.
//
// Exit codes:
//
//	0 - success
//	1 - general error (configuration, HTTP, serialization, I/O)
//	2 - authentication, authorization, or rate limit error
//	3 - network error
package main
