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

package geo

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
)

func TestParseLocator(t *testing.T) {
	tests := []struct {
		locator string
		wantLat float64
		wantLon float64
	}{
		{"IO", 55, -10},
		{"IO83", 53.5, -3},
		{"io83", 53.5, -3},
		{"JO01", 51.5, 1},
		{"IO83qk", 53.4375, -2.625},
		{"IO83QK", 53.4375, -2.625},
		{"AA00", -89.5, -179},
		{"RR99", 89.5, 179},
		{" IO83 ", 53.5, -3},
		{"IO83qk55", 53.4395833333, -2.6208333333},
	}

	for _, tt := range tests {
		t.Run(tt.locator, func(t *testing.T) {
			got, err := ParseLocator(tt.locator)
			require.NoError(t, err)
			require.InDelta(t, tt.wantLat, got.Lat, 1e-6)
			require.InDelta(t, tt.wantLon, got.Lon, 1e-6)
		})
	}
}

func TestParseLocator_EightCharacters(t *testing.T) {
	rq := require.New(t)

	six, err := ParseLocator("IO83qk")
	rq.NoError(err)
	eight, err := ParseLocator("IO83qk55")
	rq.NoError(err)

	// An extended square sits inside its subsquare.
	rq.InDelta(six.Lat, eight.Lat, 1.0/48)
	rq.InDelta(six.Lon, eight.Lon, 1.0/24)
}

func TestParseLocator_Invalid(t *testing.T) {
	tests := []string{
		"",
		"   ",
		"I",
		"IO8",
		"ZZ00",
		"IOAB",
		"IO83zz",
		"IO83qk2",
		"IO83qk21xx",
		"1O83",
		"IO8é",
	}

	for _, locator := range tests {
		_, err := ParseLocator(locator)
		if err == nil {
			t.Errorf("ParseLocator(%q) expected error", locator)
			continue
		}
		if !errors.Is(err, vgcerrors.ErrInvalidLocator) {
			t.Errorf("ParseLocator(%q) error should wrap ErrInvalidLocator, got %v", locator, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"io83":     "IO83",
		" IO83QK ": "IO83qk",
		"io83qk21": "IO83qk21",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDistanceKm(t *testing.T) {
	rq := require.New(t)

	io83, err := ParseLocator("IO83")
	rq.NoError(err)
	io84, err := ParseLocator("IO84")
	rq.NoError(err)
	io93, err := ParseLocator("IO93")
	rq.NoError(err)

	rq.Zero(DistanceKm(io83, io83))
	// One degree of latitude.
	rq.InDelta(111.2, DistanceKm(io83, io84), 0.5)
	rq.InDelta(DistanceKm(io83, io84), DistanceKm(io84, io83), 1e-9)
	rq.Greater(DistanceKm(io83, io93), DistanceKm(io83, io84))
}

func TestResolverFunc(t *testing.T) {
	var r Resolver = ResolverFunc(func(string) (Coordinate, error) {
		return Coordinate{Lat: 1, Lon: 2}, nil
	})
	got, err := r.Resolve("anything")
	require.NoError(t, err)
	require.Equal(t, Coordinate{Lat: 1, Lon: 2}, got)

	_, err = MaidenheadResolver{}.Resolve("XX")
	require.ErrorIs(t, err, vgcerrors.ErrInvalidLocator)
}
