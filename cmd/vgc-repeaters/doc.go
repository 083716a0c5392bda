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

// Package main implements the vgc-repeaters command-line interface.
// The tool fetches repeaters from the RSGB directory and writes the
// nearest ones as channel import files for VGC radios.
//
// Settings come from a YAML config file, VGC_* environment variables and
// flags, in increasing order of precedence. When stdin is a terminal the
// grid locator, APRS channel and channels per file are asked for if they
// were not given as flags.
//
// Usage:
//
//	vgc-repeaters export [LOCATOR] [flags]
//
// Example:
//
//	vgc-repeaters export IO83 --aprs --page-size 16 --output-dir ./radio
//
// Exit codes:
//   - 0: Success
//   - 1: General or configuration error
//   - 2: Invalid grid locator
//   - 3: Network error
//   - 4: Malformed directory response
package main
