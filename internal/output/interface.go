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

package output

import "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/channel"

// RowWriter defines the interface for writing channel rows.
type RowWriter interface {
	// Write writes a single row to the output.
	Write(row channel.Row) error

	// Close flushes buffered rows and releases any resources.
	// This should be called when all writing is complete.
	Close() error
}
