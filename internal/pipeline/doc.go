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

// Package pipeline runs an export: fetch repeaters from the directory,
// keep the eligible ones, order them by distance from the user's grid
// locator, encode them as channel rows, split the rows into pages and
// write one CSV file per page.
//
// Each stage is also exported on its own (Filter, Ranker, Paginate) so it
// can be tested without the others.
package pipeline
