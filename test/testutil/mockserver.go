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

// Package testutil provides common test helpers for vgc-repeaters
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/rsgb"
)

// MockServer is an httptest server that records the paths it was asked for.
type MockServer struct {
	*httptest.Server
	requestCount atomic.Int32

	mu    sync.Mutex
	paths []string
}

// RequestCount returns the number of requests served.
func (m *MockServer) RequestCount() int {
	return int(m.requestCount.Load())
}

// Paths returns the request paths in order.
func (m *MockServer) Paths() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.paths...)
}

// NewMockServer wraps handler in a recording server closed at test cleanup.
func NewMockServer(t *testing.T, handler http.HandlerFunc) *MockServer {
	t.Helper()
	m := &MockServer{}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		m.requestCount.Add(1)
		m.mu.Lock()
		m.paths = append(m.paths, r.URL.Path)
		m.mu.Unlock()
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// NewDirectoryServer serves repeaters on both the locator and the
// all-systems endpoints. Other paths get 404.
func NewDirectoryServer(t *testing.T, repeaters []rsgb.Repeater) *MockServer {
	t.Helper()
	body := NewDirectoryResponseBuilder().WithRepeaters(repeaters...).Build()

	return NewMockServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/all/systems" && !strings.HasPrefix(r.URL.Path, "/locator/") {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	})
}

// NewErrorServer creates a mock server that always returns statusCode
func NewErrorServer(t *testing.T, statusCode int) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(http.StatusText(statusCode)))
	})
}

// NewRawServer creates a mock server that answers 200 with body verbatim
func NewRawServer(t *testing.T, body string) *MockServer {
	t.Helper()
	return NewMockServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	})
}
