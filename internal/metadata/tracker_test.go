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

package metadata

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTracker_Record(t *testing.T) {
	tracker := New()

	tracker.RecordFetched(50)
	tracker.RecordEligible(42)
	tracker.RecordSkip(ReasonInvalidLocator)
	tracker.RecordRanked(41)
	tracker.RecordSkip(ReasonMissingField)
	tracker.RecordEncoded(40)
	tracker.RecordPages(2, 0)
	tracker.RecordFile("Repeaters - IO83 - Part 1.csv")
	tracker.RecordFile("Repeaters - IO83 - Part 2.csv")

	report := tracker.GenerateReport("1.2.3", RunParams{Locator: "IO83", PageSize: 32})

	if report.ToolVersion != "1.2.3" {
		t.Errorf("ToolVersion = %q, want %q", report.ToolVersion, "1.2.3")
	}
	if report.RunID == "" || report.RunID != tracker.RunID() {
		t.Errorf("RunID = %q, want tracker run ID %q", report.RunID, tracker.RunID())
	}

	want := RunResults{
		Fetched:  50,
		Eligible: 42,
		Ranked:   41,
		Encoded:  40,
		Skipped:  map[string]int{ReasonInvalidLocator: 1, ReasonMissingField: 1},
		Pages:    2,
		Files:    []string{"Repeaters - IO83 - Part 1.csv", "Repeaters - IO83 - Part 2.csv"},
	}
	got := report.Results
	got.Duration, got.StartedAt, got.CompletedAt = "", time.Time{}, time.Time{}
	require.Equal(t, want, got)

	if report.Results.CompletedAt.Before(report.Results.StartedAt) {
		t.Error("CompletedAt should not be before StartedAt")
	}
}

func TestTracker_GenerateReportCopies(t *testing.T) {
	tracker := New()
	tracker.RecordSkip(ReasonFrequencyWidth)
	tracker.RecordFile("a.csv")

	report := tracker.GenerateReport("dev", RunParams{})
	tracker.RecordSkip(ReasonFrequencyWidth)
	tracker.RecordFile("b.csv")

	if report.Results.Skipped[ReasonFrequencyWidth] != 1 {
		t.Errorf("report should not see later skips, got %d", report.Results.Skipped[ReasonFrequencyWidth])
	}
	if len(report.Results.Files) != 1 {
		t.Errorf("report should not see later files, got %v", report.Results.Files)
	}
	if tracker.Skipped(ReasonFrequencyWidth) != 2 {
		t.Errorf("Skipped() = %d, want 2", tracker.Skipped(ReasonFrequencyWidth))
	}
}

func TestTracker_UniqueRunIDs(t *testing.T) {
	if New().RunID() == New().RunID() {
		t.Error("run IDs should differ between trackers")
	}
}

func TestSaveReport(t *testing.T) {
	rq := require.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "reports", "run.json")

	tracker := New()
	tracker.RecordFetched(3)
	report := tracker.GenerateReport("dev", RunParams{Locator: "IO83", Scope: "cell"})

	rq.NoError(SaveReport(report, path))

	_, err := os.Stat(path + ".tmp")
	rq.True(os.IsNotExist(err), "temporary file should be renamed away")

	data, err := os.ReadFile(path)
	rq.NoError(err)

	var loaded RunReport
	rq.NoError(json.Unmarshal(data, &loaded))
	rq.Equal(report.RunID, loaded.RunID)
	rq.Equal("IO83", loaded.Parameters.Locator)
	rq.Equal(3, loaded.Results.Fetched)
	rq.Contains(string(data), "\n  \"tool_version\"")
}

func TestSaveReport_BadDirectory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	err := SaveReport(New().GenerateReport("dev", RunParams{}), filepath.Join(blocker, "run.json"))
	require.Error(t, err)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	report := New().GenerateReport("dev", RunParams{Locator: "JO01"})

	require.NoError(t, WriteReport(report, &buf))
	if !strings.Contains(buf.String(), `"locator": "JO01"`) {
		t.Errorf("output missing locator: %s", buf.String())
	}
}

func TestRunReport_LogValue(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	tracker := New()
	tracker.RecordFetched(7)
	logger.Info("run complete", slog.Any("report", tracker.GenerateReport("dev", RunParams{})))

	out := buf.String()
	require.Contains(t, out, `"fetched":7`)
	require.Contains(t, out, tracker.RunID())
}
