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

// Package errors defines sentinel errors for consistent error handling across the application.
// These errors map to specific exit codes in the CLI for proper scripting support.
package errors

import "errors"

// Sentinel errors for consistent error handling and exit code mapping
var (
	// ErrNetworkFailure indicates the directory fetch failed or returned a non-2xx status.
	// Maps to exit code 3.
	ErrNetworkFailure = errors.New("network connection failed")

	// ErrMalformedResponse indicates the directory response was not a JSON object
	// with a "data" array of repeater records.
	// Maps to exit code 4.
	ErrMalformedResponse = errors.New("malformed directory response")

	// ErrInvalidLocator indicates a Maidenhead grid locator could not be decoded.
	// Fatal for the user's locator (exit code 2), recoverable for a record's locator.
	ErrInvalidLocator = errors.New("invalid grid locator")

	// ErrMissingField indicates a repeater record lacks a field needed for encoding.
	// The record is skipped with a warning.
	ErrMissingField = errors.New("required field missing")

	// ErrFrequencyWidth indicates a frequency carries more significant decimal
	// places than the configured digit width and the reject policy is active.
	ErrFrequencyWidth = errors.New("frequency exceeds configured digit width")

	// ErrInvalidConfig indicates a configuration value is out of range.
	// Maps to exit code 1.
	ErrInvalidConfig = errors.New("invalid configuration")
)
