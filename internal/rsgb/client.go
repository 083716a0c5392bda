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

package rsgb

import (
	"context"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
)

// Client defines the interface for reading the repeater directory.
// This interface allows for easy mocking in tests.
type Client interface {
	// FetchRepeaters retrieves every record for the given scope. For
	// ScopeCell the locator selects the grid square; ScopeNationwide
	// ignores it and returns all systems.
	FetchRepeaters(ctx context.Context, scope config.Scope, locator string) ([]Repeater, error)
}
