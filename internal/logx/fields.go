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

package logx

const (
	FieldBand       = "band"
	FieldCount      = "count"
	FieldDistanceKm = "distance-km"
	FieldDropped    = "dropped"
	FieldDurationMs = "duration-ms"
	FieldFile       = "file"
	FieldFiles      = "files"
	FieldHTTPStatus = "http-status"
	FieldLocator    = "locator"
	FieldPage       = "page"
	FieldPages      = "pages"
	FieldReason     = "reason"
	FieldRepeater   = "repeater"
	FieldRequestID  = "request-id"
	FieldRows       = "rows"
	FieldRunID      = "run-id"
	FieldScope      = "scope"
	FieldURL        = "url"
)
