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

// Package metadata tracks statistics about one export run and writes them
// as a JSON report. Reports are informational only: nothing reads them back
// on later runs.
package metadata

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/xid"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// Tracker collects statistics while the pipeline runs. Create one per run
// and call its Record methods as each stage finishes.
type Tracker struct {
	runID     string
	startTime time.Time
	results   RunResults
}

// New creates a tracker with a fresh run ID and the current time.
func New() *Tracker {
	return &Tracker{
		runID:     xid.New().String(),
		startTime: time.Now(),
		results: RunResults{
			Skipped: map[string]int{},
			Files:   []string{},
		},
	}
}

// RunID returns the identifier attached to this run's log events.
func (t *Tracker) RunID() string {
	return t.runID
}

// RecordFetched records how many records the directory returned.
func (t *Tracker) RecordFetched(n int) { t.results.Fetched = n }

// RecordEligible records how many records passed the filter.
func (t *Tracker) RecordEligible(n int) { t.results.Eligible = n }

// RecordRanked records how many records were ranked by distance.
func (t *Tracker) RecordRanked(n int) { t.results.Ranked = n }

// RecordEncoded records how many records became channel rows.
func (t *Tracker) RecordEncoded(n int) { t.results.Encoded = n }

// RecordSkip counts one record dropped for reason.
func (t *Tracker) RecordSkip(reason string) {
	t.results.Skipped[reason]++
}

// RecordPages records the number of pages written and how many records
// did not fit.
func (t *Tracker) RecordPages(pages, overflowRecords int) {
	t.results.Pages = pages
	t.results.OverflowRecords = overflowRecords
}

// RecordFile records a file that was written.
func (t *Tracker) RecordFile(path string) {
	t.results.Files = append(t.results.Files, path)
}

// Skipped returns the number of records dropped for reason.
func (t *Tracker) Skipped(reason string) int {
	return t.results.Skipped[reason]
}

// GenerateReport creates the report for the run so far. Call it once the
// pipeline has finished, successfully or not.
func (t *Tracker) GenerateReport(toolVersion string, params RunParams) *RunReport {
	completedAt := time.Now()

	results := t.results
	results.Skipped = make(map[string]int, len(t.results.Skipped))
	for k, v := range t.results.Skipped {
		results.Skipped[k] = v
	}
	results.Files = append([]string{}, t.results.Files...)
	results.Duration = completedAt.Sub(t.startTime).String()
	results.StartedAt = t.startTime
	results.CompletedAt = completedAt

	return &RunReport{
		ToolVersion: toolVersion,
		RunID:       t.runID,
		Parameters:  params,
		Results:     results,
	}
}

// SaveReport writes report as indented JSON to path. The file is written to
// a temporary name and renamed into place so a reader never sees a partial
// report.
func SaveReport(report *RunReport, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	tmpFile := path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}

	if err := WriteReport(report, file); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to write report: %w", err)
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to close report file: %w", err)
	}

	if err := os.Rename(tmpFile, path); err != nil {
		_ = os.Remove(tmpFile)
		return fmt.Errorf("failed to save report file: %w", err)
	}

	return nil
}

// WriteReport serializes report as indented JSON to w.
func WriteReport(report *RunReport, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}
