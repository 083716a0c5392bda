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

// Package geo converts Maidenhead grid locators to coordinates and measures
// great-circle distances between them.
package geo

import (
	"fmt"
	"strings"

	"github.com/pd0mz/go-maidenhead"
	"github.com/umahmood/haversine"

	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
)

// Coordinate is a point in decimal degrees, north and east positive.
type Coordinate struct {
	Lat float64
	Lon float64
}

// Resolver turns a grid locator into a coordinate.
type Resolver interface {
	Resolve(locator string) (Coordinate, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(locator string) (Coordinate, error)

// Resolve calls f(locator).
func (f ResolverFunc) Resolve(locator string) (Coordinate, error) { return f(locator) }

// MaidenheadResolver resolves 2, 4, 6 or 8 character locators to the
// centre of the square they name.
type MaidenheadResolver struct{}

// Resolve implements Resolver.
func (MaidenheadResolver) Resolve(locator string) (Coordinate, error) {
	return ParseLocator(locator)
}

// ParseLocator decodes a Maidenhead locator ("IO83", "IO83qk", "IO83qk21")
// to the centre of its square. Case is ignored.
func ParseLocator(locator string) (Coordinate, error) {
	loc := strings.TrimSpace(locator)
	if len(loc) == 0 || len(loc)%2 != 0 || len(loc) > 8 {
		return Coordinate{}, fmt.Errorf("locator %q must have 2, 4, 6 or 8 characters: %w", locator, vgcerrors.ErrInvalidLocator)
	}

	p, err := maidenhead.ParseLocatorCentered(loc)
	if err != nil {
		return Coordinate{}, fmt.Errorf("locator %q: %v: %w", locator, err, vgcerrors.ErrInvalidLocator)
	}

	return Coordinate{Lat: p.Latitude, Lon: p.Longitude}, nil
}

// Normalize returns the conventional spelling of a locator: field and
// square upper case, subsquare lower case ("io83QK" -> "IO83qk").
func Normalize(locator string) string {
	loc := strings.TrimSpace(locator)
	if len(loc) <= 4 {
		return strings.ToUpper(loc)
	}
	return strings.ToUpper(loc[:4]) + strings.ToLower(loc[4:])
}

// DistanceKm returns the great-circle surface distance between a and b.
func DistanceKm(a, b Coordinate) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: a.Lat, Lon: a.Lon},
		haversine.Coord{Lat: b.Lat, Lon: b.Lon},
	)
	return km
}
