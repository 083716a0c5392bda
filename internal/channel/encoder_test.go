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
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/rsgb"
)

func f(v float64) *float64 { return &v }

func testRepeater() rsgb.Repeater {
	return rsgb.Repeater{
		Name:      "GB3MN",
		TX:        "145.7375",
		RX:        "145.1375",
		CTCSS:     f(82.5),
		ERP:       f(14),
		Bandwidth: f(12.5),
		ModeCodes: []string{"A"},
		Type:      "AV",
		Band:      "2M",
		Status:    "OPERATIONAL",
		Locator:   "IO83VK",
	}
}

func testChannelConfig() config.ChannelConfig {
	return config.DefaultConfig().Channel
}

func TestEncoder_Encode(t *testing.T) {
	rq := require.New(t)

	row, err := NewEncoder(testChannelConfig()).Encode(testRepeater())
	rq.NoError(err)

	rq.Equal(Row{
		Title:           "GB3MN",
		TXFreq:          "145137500",
		RXFreq:          "145737500",
		TXSubAudio:      "8250",
		RXSubAudio:      "8250",
		TXPower:         "H",
		Bandwidth:       "12500",
		Scan:            "0",
		TalkAround:      "0",
		PreDeEmphBypass: "0",
		Sign:            "0",
		TXDisable:       "0",
		Mute:            "0",
		RXModulation:    "0",
		TXModulation:    "0",
	}, row)
	rq.Len(row.Record(), len(Header()))
}

func TestEncoder_FrequencyMapping(t *testing.T) {
	cfg := testChannelConfig()
	cfg.FrequencyDecimals = 4

	cfg.FrequencyMapping = config.MappingDirect
	direct, err := NewEncoder(cfg).Encode(testRepeater())
	require.NoError(t, err)
	require.Equal(t, "1457375", direct.TXFreq)
	require.Equal(t, "1451375", direct.RXFreq)

	cfg.FrequencyMapping = config.MappingEndUser
	endUser, err := NewEncoder(cfg).Encode(testRepeater())
	require.NoError(t, err)
	require.Equal(t, "1451375", endUser.TXFreq)
	require.Equal(t, "1457375", endUser.RXFreq)
}

func TestEncoder_Power(t *testing.T) {
	tests := []struct {
		erp  float64
		want string
	}{
		{5, "L"},
		{5.0001, "H"},
		{-3, "L"},
		{14, "H"},
	}

	enc := NewEncoder(testChannelConfig())
	for _, tt := range tests {
		r := testRepeater()
		r.ERP = f(tt.erp)
		row, err := enc.Encode(r)
		if err != nil {
			t.Fatalf("Encode() unexpected error: %v", err)
		}
		if row.TXPower != tt.want {
			t.Errorf("ERP %v: TXPower = %q, want %q", tt.erp, row.TXPower, tt.want)
		}
	}
}

func TestEncoder_Bandwidth(t *testing.T) {
	enc := NewEncoder(testChannelConfig())
	for bw, want := range map[float64]string{12.5: "12500", 25: "25000", 6.25: "25000"} {
		r := testRepeater()
		r.Bandwidth = f(bw)
		row, err := enc.Encode(r)
		require.NoError(t, err)
		require.Equal(t, want, row.Bandwidth, "txbw %v", bw)
	}
}

func TestEncoder_ToneAndScan(t *testing.T) {
	rq := require.New(t)

	cfg := testChannelConfig()
	cfg.Scan = true

	r := testRepeater()
	r.CTCSS = f(0)

	row, err := NewEncoder(cfg).Encode(r)
	rq.NoError(err)
	rq.Empty(row.TXSubAudio)
	rq.Empty(row.RXSubAudio)
	rq.Equal("1", row.Scan)
	rq.Equal("0", row.Mute)
}

func TestEncoder_Title(t *testing.T) {
	cfg := testChannelConfig()
	r := testRepeater()
	r.Name = "GB3MN Stockport"

	row, err := NewEncoder(cfg).Encode(r)
	require.NoError(t, err)
	require.Equal(t, "GB3MN Stockport", row.Title)

	cfg.TitleMaxLength = 5
	row, err = NewEncoder(cfg).Encode(r)
	require.NoError(t, err)
	require.Equal(t, "GB3MN", row.Title)
}

func TestEncoder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *rsgb.Repeater)
		cfg     func(c *config.ChannelConfig)
		wantErr error
	}{
		{
			name:    "nil tone",
			mutate:  func(r *rsgb.Repeater) { r.CTCSS = nil },
			wantErr: vgcerrors.ErrMissingField,
		},
		{
			name:    "nil erp",
			mutate:  func(r *rsgb.Repeater) { r.ERP = nil },
			wantErr: vgcerrors.ErrMissingField,
		},
		{
			name:    "nil bandwidth",
			mutate:  func(r *rsgb.Repeater) { r.Bandwidth = nil },
			wantErr: vgcerrors.ErrMissingField,
		},
		{
			name:    "empty rx",
			mutate:  func(r *rsgb.Repeater) { r.RX = "" },
			wantErr: vgcerrors.ErrMissingField,
		},
		{
			name:    "too many decimals",
			mutate:  func(r *rsgb.Repeater) { r.TX = "145.737512" },
			cfg:     func(c *config.ChannelConfig) { c.FrequencyDecimals = 4 },
			wantErr: vgcerrors.ErrFrequencyWidth,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testChannelConfig()
			if tt.cfg != nil {
				tt.cfg(&cfg)
			}
			r := testRepeater()
			tt.mutate(&r)

			_, err := NewEncoder(cfg).Encode(r)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Encode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEncoder_Deterministic(t *testing.T) {
	enc := NewEncoder(testChannelConfig())
	r := testRepeater()

	first, err := enc.Encode(r)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := enc.Encode(r)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestEncoder_APRS(t *testing.T) {
	rq := require.New(t)

	cfg := testChannelConfig()
	cfg.Scan = true

	row, err := NewEncoder(cfg).APRS()
	rq.NoError(err)
	rq.Equal([]string{"APRS", "144800000", "144800000", "", "", "H", "12500", "0", "0", "0", "0", "0", "0", "0", "0"}, row.Record())

	cfg.FrequencyDecimals = 4
	row, err = NewEncoder(cfg).APRS()
	rq.NoError(err)
	rq.Equal("1448000", row.TXFreq)

	// Same width as a repeater encoded with the same settings.
	rep, err := NewEncoder(cfg).Encode(testRepeater())
	rq.NoError(err)
	rq.Len(row.TXFreq, len(rep.TXFreq))

	cfg.APRSFrequency = "144.80012345"
	_, err = NewEncoder(cfg).APRS()
	rq.ErrorIs(err, vgcerrors.ErrFrequencyWidth)
}

func TestHeader(t *testing.T) {
	h := Header()
	require.Len(t, h, 15)
	require.Equal(t, "title", h[0])
	require.Equal(t, "talk around(0=OFF/1=ON)", h[8])
	require.Equal(t, "tx_modulation(0=FM/1=AM)", h[14])

	h[0] = "changed"
	require.Equal(t, "title", Header()[0])
}
