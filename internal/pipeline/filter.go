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
	"github.com/samber/lo"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/rsgb"
)

// Criteria selects eligible repeaters. A record must match all of them.
type Criteria struct {
	ModeCode string
	Types    []string
	Bands    []string
	Status   string
}

// CriteriaFromConfig builds Criteria from the filter settings.
func CriteriaFromConfig(cfg config.FilterConfig) Criteria {
	return Criteria{
		ModeCode: cfg.ModeCode,
		Types:    cfg.Types,
		Bands:    cfg.Bands,
		Status:   cfg.Status,
	}
}

// Match reports whether r is eligible.
func (c Criteria) Match(r rsgb.Repeater) bool {
	return len(r.ModeCodes) > 0 &&
		r.HasMode(c.ModeCode) &&
		lo.Contains(c.Types, r.Type) &&
		lo.Contains(c.Bands, r.Band) &&
		r.Status == c.Status
}

// Filter returns the records matching c in their original order.
func Filter(records []rsgb.Repeater, c Criteria) []rsgb.Repeater {
	return lo.Filter(records, func(r rsgb.Repeater, _ int) bool {
		return c.Match(r)
	})
}
