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

package pipeline

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/geo"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/logx"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/rsgb"
)

// Ranked is a repeater with its distance from the user.
type Ranked struct {
	Repeater   rsgb.Repeater
	DistanceKm float64
}

// Ranker orders repeaters by great-circle distance from an origin.
type Ranker struct {
	resolver geo.Resolver
	policy   config.LocatorPolicy
	logger   *slog.Logger

	// OnSkip, when set, is called for each record excluded because its
	// locator could not be decoded.
	OnSkip func(r rsgb.Repeater, err error)
}

// NewRanker creates a ranker. policy decides what happens when a record's
// locator cannot be decoded: LocatorSkip drops the record with a warning,
// LocatorAbort fails the whole ranking.
func NewRanker(resolver geo.Resolver, policy config.LocatorPolicy, logger *slog.Logger) *Ranker {
	if logger == nil {
		logger = logx.Nop()
	}
	return &Ranker{resolver: resolver, policy: policy, logger: logger}
}

// Rank returns records sorted by ascending distance from origin. Records at
// the same distance keep their input order.
func (r *Ranker) Rank(ctx context.Context, records []rsgb.Repeater, origin geo.Coordinate) ([]Ranked, error) {
	ranked := make([]Ranked, 0, len(records))

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pos, err := r.resolver.Resolve(rec.Locator)
		if err != nil {
			if r.policy == config.LocatorAbort {
				return nil, fmt.Errorf("repeater %q: %w", rec.Name, err)
			}
			r.logger.Warn("skipping repeater with undecodable locator",
				slog.String(logx.FieldRepeater, rec.Name),
				slog.String(logx.FieldLocator, rec.Locator),
				logx.Error(err),
			)
			if r.OnSkip != nil {
				r.OnSkip(rec, err)
			}
			continue
		}

		ranked = append(ranked, Ranked{
			Repeater:   rec,
			DistanceKm: geo.DistanceKm(origin, pos),
		})
	}

	slices.SortStableFunc(ranked, func(a, b Ranked) int {
		return cmp.Compare(a.DistanceKm, b.DistanceKm)
	})

	return ranked, nil
}
