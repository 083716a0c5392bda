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

package rsgb

import (
	"context"
	"fmt"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	// Repeaters to return
	Repeaters []Repeater

	// Error to return
	Error error

	// Behavior flags
	ShouldFailNetwork   bool
	ShouldFailMalformed bool

	// Track calls for verification
	CallCount   int
	LastScope   config.Scope
	LastLocator string
}

// NewMockClient creates a new mock client with default test data
func NewMockClient() *MockClient {
	return &MockClient{
		Repeaters: generateTestRepeaters(),
	}
}

// FetchRepeaters implements the Client interface
func (m *MockClient) FetchRepeaters(ctx context.Context, scope config.Scope, locator string) ([]Repeater, error) {
	m.CallCount++
	m.LastScope = scope
	m.LastLocator = locator

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if m.ShouldFailNetwork {
		return nil, fmt.Errorf("network timeout: %w", vgcerrors.ErrNetworkFailure)
	}

	if m.ShouldFailMalformed {
		return nil, fmt.Errorf("response has no data array: %w", vgcerrors.ErrMalformedResponse)
	}

	if m.Error != nil {
		return nil, m.Error
	}

	out := make([]Repeater, len(m.Repeaters))
	copy(out, m.Repeaters)
	return out, nil
}

func ptr(v float64) *float64 { return &v }

// generateTestRepeaters creates a small mixed directory around Manchester
func generateTestRepeaters() []Repeater {
	return []Repeater{
		{
			Name: "GB3MN", TX: "145.7375", RX: "145.1375",
			CTCSS: ptr(82.5), ERP: ptr(14), Bandwidth: ptr(12.5),
			ModeCodes: []string{"A"}, Type: "AV", Band: "2M",
			Status: "OPERATIONAL", Locator: "IO83VK",
		},
		{
			Name: "GB3MR", TX: "433.0500", RX: "434.6500",
			CTCSS: ptr(82.5), ERP: ptr(10), Bandwidth: ptr(12.5),
			ModeCodes: []string{"A", "M"}, Type: "DV", Band: "70CM",
			Status: "OPERATIONAL", Locator: "IO83WJ",
		},
		{
			Name: "GB3HX", TX: "145.6625", RX: "145.0625",
			CTCSS: ptr(82.5), ERP: ptr(3), Bandwidth: ptr(25),
			ModeCodes: []string{"A"}, Type: "AV", Band: "2M",
			Status: "NOT OPERATIONAL", Locator: "IO93BR",
		},
		{
			Name: "GB7MB", TX: "439.6125", RX: "430.6125",
			CTCSS: ptr(0), ERP: ptr(10), Bandwidth: ptr(12.5),
			ModeCodes: []string{"M"}, Type: "DM", Band: "70CM",
			Status: "OPERATIONAL", Locator: "IO83UL",
		},
	}
}

// MockClientOption allows configuring the mock client
type MockClientOption func(*MockClient)

// WithRepeaters sets specific repeaters to return
func WithRepeaters(repeaters []Repeater) MockClientOption {
	return func(m *MockClient) {
		m.Repeaters = repeaters
	}
}

// WithError makes the client return a specific error
func WithError(err error) MockClientOption {
	return func(m *MockClient) {
		m.Error = err
	}
}

// WithNetworkFailure makes the client simulate an unreachable directory
func WithNetworkFailure() MockClientOption {
	return func(m *MockClient) {
		m.ShouldFailNetwork = true
	}
}

// NewMockClientWithOptions creates a mock client with options
func NewMockClientWithOptions(opts ...MockClientOption) *MockClient {
	mock := NewMockClient()
	for _, opt := range opts {
		opt(mock)
	}
	return mock
}
