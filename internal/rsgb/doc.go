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

// Package rsgb fetches repeater records from the RSGB repeater directory
// REST API. It hides the endpoint layout, response decoding and error
// classification behind a small Client interface so the export pipeline can
// be tested against a mock.
//
// The package includes:
//   - A Client interface for fetching repeater records
//   - An HTTP implementation decoding the {"data": [...]} envelope
//   - Field-presence validation for records about to be encoded
//   - A mock client for tests
//
// Basic usage:
//
//	client := rsgb.NewHTTPClient("https://api-beta.rsgb.online", rsgb.WithLogger(logger))
//	repeaters, err := client.FetchRepeaters(ctx, config.ScopeCell, "IO83")
//	if err != nil {
//	    // errors.Is(err, errors.ErrNetworkFailure) or errors.ErrMalformedResponse
//	}
package rsgb
