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

// Package metadata types define the run report written after an export.
// The report records what was asked for, how many records survived each
// stage and which files were produced.
package metadata

import (
	"log/slog"
	"time"
)

// Skip reasons counted in RunResults.Skipped.
const (
	ReasonInvalidLocator = "invalid-locator"
	ReasonMissingField   = "missing-field"
	ReasonFrequencyWidth = "frequency-width"
)

// RunReport is the complete record of one export run.
type RunReport struct {
	ToolVersion string     `json:"tool_version"`
	RunID       string     `json:"run_id"`
	Parameters  RunParams  `json:"parameters"`
	Results     RunResults `json:"results"`
}

// RunParams captures the settings the run was made with.
type RunParams struct {
	Locator           string `json:"locator"`
	Scope             string `json:"scope"`
	FrequencyMapping  string `json:"frequency_mapping"`
	FrequencyDecimals int    `json:"frequency_decimals"`
	PageSize          int    `json:"page_size"`
	MultiFile         bool   `json:"multi_file_output"`
	MaxFiles          int    `json:"max_files"`
	IncludeAPRS       bool   `json:"include_aprs"`
}

// RunResults counts records through each pipeline stage.
type RunResults struct {
	Fetched         int            `json:"fetched"`
	Eligible        int            `json:"eligible"`
	Ranked          int            `json:"ranked"`
	Encoded         int            `json:"encoded"`
	Skipped         map[string]int `json:"skipped,omitempty"`
	Pages           int            `json:"pages"`
	OverflowRecords int            `json:"overflow_records"`
	Files           []string       `json:"files"`
	Duration        string         `json:"duration"`
	StartedAt       time.Time      `json:"started_at"`
	CompletedAt     time.Time      `json:"completed_at"`
}

// LogValue implements slog.LogValuer so a report can be logged as one group.
func (r *RunReport) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run-id", r.RunID),
		slog.Int("fetched", r.Results.Fetched),
		slog.Int("eligible", r.Results.Eligible),
		slog.Int("ranked", r.Results.Ranked),
		slog.Int("encoded", r.Results.Encoded),
		slog.Int("pages", r.Results.Pages),
		slog.Int("overflow", r.Results.OverflowRecords),
		slog.Int("files", len(r.Results.Files)),
		slog.String("duration", r.Results.Duration),
	)
}
