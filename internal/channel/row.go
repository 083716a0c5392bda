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

// Package channel turns directory repeater records into rows of the VGC
// radio's channel-memory CSV import format.
package channel

// Flag values used by the binary columns.
const (
	Off = "0"
	On  = "1"
)

// Power classes.
const (
	PowerHigh = "H"
	PowerLow  = "L"
)

// Bandwidth classes in Hz.
const (
	BandwidthNarrow = "12500"
	BandwidthWide   = "25000"
)

// header is the exact column list the radio's import expects.
var header = []string{ //nolint:gochecknoglobals // skip
	"title",
	"tx_freq",
	"rx_freq",
	"tx_sub_audio(CTCSS=freq/DCS=number)",
	"rx_sub_audio(CTCSS=freq/DCS=number)",
	"tx_power(H/M/L)",
	"bandwidth(12500/25000)",
	"scan(0=OFF/1=ON)",
	"talk around(0=OFF/1=ON)",
	"pre_de_emph_bypass(0=OFF/1=ON)",
	"sign(0=OFF/1=ON)",
	"tx_dis(0=OFF/1=ON)",
	"mute(0=OFF/1=ON)",
	"rx_modulation(0=FM/1=AM)",
	"tx_modulation(0=FM/1=AM)",
}

// Header returns a copy of the 15 CSV column names.
func Header() []string {
	out := make([]string, len(header))
	copy(out, header)
	return out
}

// Row is one channel memory.
type Row struct {
	Title           string
	TXFreq          string
	RXFreq          string
	TXSubAudio      string
	RXSubAudio      string
	TXPower         string
	Bandwidth       string
	Scan            string
	TalkAround      string
	PreDeEmphBypass string
	Sign            string
	TXDisable       string
	Mute            string
	RXModulation    string
	TXModulation    string
}

// Record returns the row's fields in header order.
func (r Row) Record() []string {
	return []string{
		r.Title,
		r.TXFreq,
		r.RXFreq,
		r.TXSubAudio,
		r.RXSubAudio,
		r.TXPower,
		r.Bandwidth,
		r.Scan,
		r.TalkAround,
		r.PreDeEmphBypass,
		r.Sign,
		r.TXDisable,
		r.Mute,
		r.RXModulation,
		r.TXModulation,
	}
}
