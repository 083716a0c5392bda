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

package channel

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/rsgb"
)

// APRSTitle is the title of the synthetic APRS channel.
const APRSTitle = "APRS"

// Encoder maps repeater records to rows. It holds no mutable state, so the
// same record and settings always give the same row.
type Encoder struct {
	cfg config.ChannelConfig
}

// NewEncoder creates an encoder for the given channel settings.
func NewEncoder(cfg config.ChannelConfig) *Encoder {
	return &Encoder{cfg: cfg}
}

// Encode converts one record. Records without tx, rx, ctcss, dbwErp or
// txbw fail with ErrMissingField; frequencies wider than the configured
// digit width fail with ErrFrequencyWidth under the reject policy.
func (e *Encoder) Encode(r rsgb.Repeater) (Row, error) {
	if r.CTCSS == nil || r.ERP == nil || r.Bandwidth == nil {
		missing := lo.Compact([]string{
			lo.Ternary(r.CTCSS == nil, "ctcss", ""),
			lo.Ternary(r.ERP == nil, "dbwErp", ""),
			lo.Ternary(r.Bandwidth == nil, "txbw", ""),
		})
		return Row{}, fmt.Errorf("repeater %q missing %v: %w", r.Name, missing, vgcerrors.ErrMissingField)
	}

	tx, err := e.frequency(r.TX)
	if err != nil {
		return Row{}, fmt.Errorf("repeater %q tx: %w", r.Name, err)
	}
	rx, err := e.frequency(r.RX)
	if err != nil {
		return Row{}, fmt.Errorf("repeater %q rx: %w", r.Name, err)
	}

	// The end-user radio listens on the repeater's output.
	if e.cfg.FrequencyMapping == config.MappingEndUser {
		tx, rx = rx, tx
	}

	tone := ToneCode(*r.CTCSS)

	row := e.blank()
	row.Title = e.title(r.Name)
	row.TXFreq = tx
	row.RXFreq = rx
	row.TXSubAudio = tone
	row.RXSubAudio = tone
	row.TXPower = lo.Ternary(*r.ERP > e.cfg.PowerThresholdDBW, PowerHigh, PowerLow)
	row.Bandwidth = lo.Ternary(*r.Bandwidth == 12.5, BandwidthNarrow, BandwidthWide)
	return row, nil
}

// APRS returns the synthetic APRS channel. Its frequency goes through the
// same formatter as repeater rows so a file never mixes digit widths.
func (e *Encoder) APRS() (Row, error) {
	freq, err := e.frequency(rsgb.Frequency(e.cfg.APRSFrequency))
	if err != nil {
		return Row{}, fmt.Errorf("aprs frequency: %w", err)
	}

	row := e.blank()
	row.Title = APRSTitle
	row.TXFreq = freq
	row.RXFreq = freq
	row.TXPower = PowerHigh
	row.Bandwidth = BandwidthNarrow
	row.Scan = Off
	return row, nil
}

func (e *Encoder) frequency(f rsgb.Frequency) (string, error) {
	return FormatFrequency(f.String(), e.cfg.FrequencyDecimals, e.cfg.WidthPolicy)
}

func (e *Encoder) title(name string) string {
	if e.cfg.TitleMaxLength <= 0 {
		return name
	}
	runes := []rune(name)
	if len(runes) <= e.cfg.TitleMaxLength {
		return name
	}
	return string(runes[:e.cfg.TitleMaxLength])
}

// blank returns a row with every flag off except scan, which follows the
// configuration.
func (e *Encoder) blank() Row {
	return Row{
		Scan:            lo.Ternary(e.cfg.Scan, On, Off),
		TalkAround:      Off,
		PreDeEmphBypass: Off,
		Sign:            Off,
		TXDisable:       Off,
		Mute:            Off,
		RXModulation:    Off,
		TXModulation:    Off,
	}
}
