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

// Package metadata tracks statistics about a single fetch run: pages
// requested, records accumulated, and elapsed time. Nothing here is
// persisted; the tracker exists for the end-of-run summary and for
// troubleshooting output.
package metadata

import "time"

// Tracker collects statistics during a fetch operation. Create a new
// tracker at the start of each run and call its methods to record
// activity.
type Tracker struct {
	startTime    time.Time
	apiCallCount int
	pageCount    int
	recordCount  int
}

// Summary captures the complete statistics of a finished fetch run.
type Summary struct {
	Pages    int           // Pages that returned at least one record
	Records  int           // Total advisory records accumulated
	APICalls int           // HTTP requests issued
	Duration time.Duration // Wall-clock time of the run
}

// New creates a new tracker and initializes it with the current time.
// Call this at the beginning of a fetch operation to start tracking.
func New() *Tracker {
	return &Tracker{
		startTime: time.Now(),
	}
}

// IncrementAPICall records that an API call was made. Call this after each
// advisory listing request to maintain accurate API usage statistics.
func (t *Tracker) IncrementAPICall() {
	t.apiCallCount++
}

// RecordPage records a fetched page and the number of records it carried.
// Empty terminal pages count as an API call but not as a page of data.
func (t *Tracker) RecordPage(records int) {
	if records > 0 {
		t.pageCount++
	}
	t.recordCount += records
}

// Summarize returns the statistics for the run so far.
func (t *Tracker) Summarize() Summary {
	return Summary{
		Pages:    t.pageCount,
		Records:  t.recordCount,
		APICalls: t.apiCallCount,
		Duration: time.Since(t.startTime),
	}
}
