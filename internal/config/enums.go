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

package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
)

// Compile-time checks that the enumerated options can be bound to flags.
var (
	_ pflag.Value = (*Scope)(nil)
	_ pflag.Value = (*FrequencyMapping)(nil)
	_ pflag.Value = (*PageSize)(nil)
	_ pflag.Value = (*LocatorPolicy)(nil)
	_ pflag.Value = (*WidthPolicy)(nil)
)

// Scope selects which directory endpoint is queried.
type Scope string

const (
	// ScopeCell fetches only repeaters listed for the user's grid square.
	ScopeCell Scope = "cell"
	// ScopeNationwide fetches every system in the directory.
	ScopeNationwide Scope = "nationwide"
)

func (s Scope) String() string { return string(s) }

// Type implements pflag.Value.
func (s *Scope) Type() string { return "scope" }

// Set implements pflag.Value.
func (s *Scope) Set(v string) error {
	switch Scope(strings.ToLower(strings.TrimSpace(v))) {
	case ScopeCell:
		*s = ScopeCell
	case ScopeNationwide:
		*s = ScopeNationwide
	default:
		return fmt.Errorf("unknown scope %q (want cell or nationwide)", v)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler for YAML and env decoding.
func (s *Scope) UnmarshalText(b []byte) error { return s.Set(string(b)) }

// MarshalText implements encoding.TextMarshaler.
func (s Scope) MarshalText() ([]byte, error) { return []byte(s), nil }

// FrequencyMapping decides which channel slot receives the repeater's
// transmit frequency.
type FrequencyMapping string

const (
	// MappingDirect copies repeater tx to channel tx and repeater rx to channel rx.
	MappingDirect FrequencyMapping = "direct"
	// MappingEndUser swaps them: the radio listens on the repeater's output
	// and transmits on its input.
	MappingEndUser FrequencyMapping = "end-user"
)

func (m FrequencyMapping) String() string { return string(m) }

// Type implements pflag.Value.
func (m *FrequencyMapping) Type() string { return "mapping" }

// Set implements pflag.Value.
func (m *FrequencyMapping) Set(v string) error {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "direct":
		*m = MappingDirect
	case "end-user", "enduser", "swap":
		*m = MappingEndUser
	default:
		return fmt.Errorf("unknown frequency mapping %q (want direct or end-user)", v)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *FrequencyMapping) UnmarshalText(b []byte) error { return m.Set(string(b)) }

// MarshalText implements encoding.TextMarshaler.
func (m FrequencyMapping) MarshalText() ([]byte, error) { return []byte(m), nil }

// PageSize is the number of channel memories per CSV file.
type PageSize int

const (
	PageSize16 PageSize = 16
	PageSize32 PageSize = 32
)

func (p PageSize) String() string { return strconv.Itoa(int(p)) }

// Type implements pflag.Value.
func (p *PageSize) Type() string { return "16|32" }

// Set implements pflag.Value.
func (p *PageSize) Set(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return fmt.Errorf("page size %q is not a number", v)
	}
	switch PageSize(n) {
	case PageSize16, PageSize32:
		*p = PageSize(n)
	default:
		return fmt.Errorf("page size must be 16 or 32, got %d", n)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *PageSize) UnmarshalText(b []byte) error { return p.Set(string(b)) }

// MarshalText implements encoding.TextMarshaler.
func (p PageSize) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// LocatorPolicy decides what happens to a record whose locator cannot be decoded.
type LocatorPolicy string

const (
	// LocatorSkip drops the record and logs a warning.
	LocatorSkip LocatorPolicy = "skip"
	// LocatorAbort fails the whole run.
	LocatorAbort LocatorPolicy = "abort"
)

func (l LocatorPolicy) String() string { return string(l) }

// Type implements pflag.Value.
func (l *LocatorPolicy) Type() string { return "policy" }

// Set implements pflag.Value.
func (l *LocatorPolicy) Set(v string) error {
	switch LocatorPolicy(strings.ToLower(strings.TrimSpace(v))) {
	case LocatorSkip:
		*l = LocatorSkip
	case LocatorAbort:
		*l = LocatorAbort
	default:
		return fmt.Errorf("unknown locator failure policy %q (want skip or abort)", v)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *LocatorPolicy) UnmarshalText(b []byte) error { return l.Set(string(b)) }

// MarshalText implements encoding.TextMarshaler.
func (l LocatorPolicy) MarshalText() ([]byte, error) { return []byte(l), nil }

// WidthPolicy decides what happens to a frequency with more significant
// decimal places than the configured digit width.
type WidthPolicy string

const (
	// WidthTruncate drops the surplus digits.
	WidthTruncate WidthPolicy = "truncate"
	// WidthReject skips the record.
	WidthReject WidthPolicy = "reject"
)

func (w WidthPolicy) String() string { return string(w) }

// Type implements pflag.Value.
func (w *WidthPolicy) Type() string { return "policy" }

// Set implements pflag.Value.
func (w *WidthPolicy) Set(v string) error {
	switch WidthPolicy(strings.ToLower(strings.TrimSpace(v))) {
	case WidthTruncate:
		*w = WidthTruncate
	case WidthReject:
		*w = WidthReject
	default:
		return fmt.Errorf("unknown frequency width policy %q (want truncate or reject)", v)
	}
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (w *WidthPolicy) UnmarshalText(b []byte) error { return w.Set(string(b)) }

// MarshalText implements encoding.TextMarshaler.
func (w WidthPolicy) MarshalText() ([]byte, error) { return []byte(w), nil }
