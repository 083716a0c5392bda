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
	"fmt"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/rsgb"
)

// RepeaterBuilder provides a fluent API for creating test repeaters.
// Defaults describe an eligible 2 m analogue voice repeater.
type RepeaterBuilder struct {
	r rsgb.Repeater
}

// NewRepeaterBuilder creates a builder for a repeater named name.
func NewRepeaterBuilder(name string) *RepeaterBuilder {
	return &RepeaterBuilder{r: rsgb.Repeater{
		Name:      name,
		TX:        "145.7375",
		RX:        "145.1375",
		CTCSS:     Float(82.5),
		ERP:       Float(10),
		Bandwidth: Float(12.5),
		ModeCodes: []string{"A"},
		Type:      "AV",
		Band:      "2M",
		Status:    "OPERATIONAL",
		Locator:   "IO83",
	}}
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// WithFrequencies sets the repeater's output (tx) and input (rx).
func (b *RepeaterBuilder) WithFrequencies(tx, rx string) *RepeaterBuilder {
	b.r.TX, b.r.RX = rsgb.Frequency(tx), rsgb.Frequency(rx)
	return b
}

// WithTone sets the CTCSS tone; nil removes it.
func (b *RepeaterBuilder) WithTone(hz *float64) *RepeaterBuilder {
	b.r.CTCSS = hz
	return b
}

// WithERP sets the effective radiated power in dBW; nil removes it.
func (b *RepeaterBuilder) WithERP(dbw *float64) *RepeaterBuilder {
	b.r.ERP = dbw
	return b
}

// WithBandwidth sets the transmit bandwidth in kHz; nil removes it.
func (b *RepeaterBuilder) WithBandwidth(khz *float64) *RepeaterBuilder {
	b.r.Bandwidth = khz
	return b
}

// WithModes sets the mode codes.
func (b *RepeaterBuilder) WithModes(codes ...string) *RepeaterBuilder {
	b.r.ModeCodes = codes
	return b
}

// WithType sets the station category code.
func (b *RepeaterBuilder) WithType(typ string) *RepeaterBuilder {
	b.r.Type = typ
	return b
}

// WithBand sets the band code and a plausible frequency pair for it.
func (b *RepeaterBuilder) WithBand(band string) *RepeaterBuilder {
	b.r.Band = band
	if band == "70CM" {
		b.r.TX, b.r.RX = "433.0500", "434.6500"
	}
	return b
}

// WithStatus sets the operational status.
func (b *RepeaterBuilder) WithStatus(status string) *RepeaterBuilder {
	b.r.Status = status
	return b
}

// WithLocator sets the repeater's grid locator.
func (b *RepeaterBuilder) WithLocator(locator string) *RepeaterBuilder {
	b.r.Locator = locator
	return b
}

// Build returns the repeater.
func (b *RepeaterBuilder) Build() rsgb.Repeater {
	r := b.r
	r.ModeCodes = append([]string(nil), b.r.ModeCodes...)
	return r
}

// EligibleRepeaters returns n eligible repeaters named GB3T001, GB3T002 and
// so on, each strictly further north of IO83 than the one before. n must
// be at most 144.
func EligibleRepeaters(n int) []rsgb.Repeater {
	out := make([]rsgb.Repeater, 0, n)
	for i := 0; i < n; i++ {
		locator := fmt.Sprintf("IO8%dm%c", 4+i/24, 'a'+rune(i%24))
		out = append(out, NewRepeaterBuilder(fmt.Sprintf("GB3T%03d", i+1)).WithLocator(locator).Build())
	}
	return out
}

// DirectoryResponseBuilder builds directory JSON responses
type DirectoryResponseBuilder struct {
	repeaters []rsgb.Repeater
	noData    bool
}

// NewDirectoryResponseBuilder creates a new response builder
func NewDirectoryResponseBuilder() *DirectoryResponseBuilder {
	return &DirectoryResponseBuilder{}
}

// WithRepeaters adds repeaters to the response
func (b *DirectoryResponseBuilder) WithRepeaters(repeaters ...rsgb.Repeater) *DirectoryResponseBuilder {
	b.repeaters = append(b.repeaters, repeaters...)
	return b
}

// WithoutData drops the data key, producing a malformed response
func (b *DirectoryResponseBuilder) WithoutData() *DirectoryResponseBuilder {
	b.noData = true
	return b
}

// Build creates the response body
func (b *DirectoryResponseBuilder) Build() map[string]interface{} {
	if b.noData {
		return map[string]interface{}{"message": "no data"}
	}
	data := b.repeaters
	if data == nil {
		data = []rsgb.Repeater{}
	}
	return map[string]interface{}{"data": data}
}
