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

package testutil

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/channel"
)

// AssertChannelFile checks that path is a channel CSV with the radio's
// header and wantRows rows after it. When aprs is set the first row must be
// the APRS channel. It returns the rows without the header.
func AssertChannelFile(t *testing.T, path string, wantRows int, aprs bool) [][]string {
	t.Helper()

	records := ReadCSV(t, path)
	if len(records) == 0 {
		t.Fatalf("%s is empty", path)
	}
	if strings.Join(records[0], "|") != strings.Join(channel.Header(), "|") {
		t.Errorf("%s: unexpected header %v", path, records[0])
	}

	rows := records[1:]
	if len(rows) != wantRows {
		t.Errorf("%s: got %d rows, want %d", path, len(rows), wantRows)
	}
	if aprs && (len(rows) == 0 || rows[0][0] != channel.APRSTitle) {
		t.Errorf("%s: first row should be the APRS channel", path)
	}
	return rows
}

// LogEvents parses JSON log lines written by slog.NewJSONHandler
func LogEvents(t *testing.T, logs *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var events []map[string]interface{}
	scanner := bufio.NewScanner(bytes.NewReader(logs.Bytes()))
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(bytes.TrimSpace(line)) == 0 {
			continue
		}
		var event map[string]interface{}
		if err := json.Unmarshal(line, &event); err != nil {
			t.Fatalf("invalid log line %q: %v", line, err)
		}
		events = append(events, event)
	}
	return events
}

// FindLogEvent returns the first event with message msg, or nil
func FindLogEvent(t *testing.T, logs *bytes.Buffer, msg string) map[string]interface{} {
	t.Helper()

	for _, event := range LogEvents(t, logs) {
		if event["msg"] == msg {
			return event
		}
	}
	return nil
}

// AssertLogEvent fails unless an event with message msg was logged, and
// returns it
func AssertLogEvent(t *testing.T, logs *bytes.Buffer, msg string) map[string]interface{} {
	t.Helper()

	event := FindLogEvent(t, logs, msg)
	if event == nil {
		t.Fatalf("expected log event %q, got:\n%s", msg, logs.String())
	}
	return event
}

// AssertNoLogEvent fails if an event with message msg was logged
func AssertNoLogEvent(t *testing.T, logs *bytes.Buffer, msg string) {
	t.Helper()

	if FindLogEvent(t, logs, msg) != nil {
		t.Errorf("unexpected log event %q:\n%s", msg, logs.String())
	}
}

// AssertErrorContains checks if an error contains expected text
func AssertErrorContains(t *testing.T, err error, expected string) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	if !strings.Contains(err.Error(), expected) {
		t.Errorf("Expected error to contain %q, got: %v", expected, err)
	}
}
