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

import "github.com/samber/lo"

// PageOptions controls how rows are split into files.
type PageOptions struct {
	// Size is the number of data rows per page. Non-positive puts
	// everything on one page.
	Size int
	// MultiFile allows more than one page.
	MultiFile bool
	// MaxPages caps the number of pages when MultiFile is set; 0 means no cap.
	MaxPages int
}

// Overflow describes rows left out because they did not fit.
type Overflow struct {
	// Records is the number of rows left out.
	Records int
	// Pages is how many more pages those rows would have needed.
	Pages int
}

// PageResult is the outcome of Paginate.
type PageResult[T any] struct {
	Pages    [][]T
	Overflow *Overflow
}

// Paginate splits items into pages of at most opts.Size. Concatenating the
// returned pages gives back a prefix of items in order; Overflow is set when
// that prefix is shorter than items.
func Paginate[T any](items []T, opts PageOptions) PageResult[T] {
	if len(items) == 0 {
		return PageResult[T]{}
	}

	size := opts.Size
	if size <= 0 {
		size = len(items)
	}
	pages := lo.Chunk(items, size)

	limit := opts.MaxPages
	if !opts.MultiFile {
		limit = 1
	}
	if limit <= 0 || len(pages) <= limit {
		return PageResult[T]{Pages: pages}
	}

	left := pages[limit:]
	return PageResult[T]{
		Pages: pages[:limit],
		Overflow: &Overflow{
			Records: lo.SumBy(left, func(p []T) int { return len(p) }),
			Pages:   len(left),
		},
	}
}
