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

package output

import "encoding/json"

// OutputWriter defines the interface for writing fetched advisory data.
// This abstraction allows for different output formats (JSON array,
// NDJSON, etc.) to be implemented without changing the core logic.
type OutputWriter interface {
	// WriteAll serializes the complete result sequence to the output.
	// The records are written in the order given.
	WriteAll(records []json.RawMessage) error

	// Close closes the underlying writer and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}
