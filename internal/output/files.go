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

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/channel"
	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/logx"
)

// FileName returns the name of page part (1-based) of total pages for
// locator: "Repeaters - IO83.csv" when there is one page and
// "Repeaters - IO83 - Part 2.csv" otherwise.
func FileName(locator string, part, total int) string {
	if total <= 1 {
		return fmt.Sprintf("Repeaters - %s.csv", locator)
	}
	return fmt.Sprintf("Repeaters - %s - Part %d.csv", locator, part)
}

// isExportName reports whether name is one of the files FileName produces
// for locator.
func isExportName(name, locator string) bool {
	if name == FileName(locator, 1, 1) {
		return true
	}
	return strings.HasPrefix(name, fmt.Sprintf("Repeaters - %s - Part ", locator)) &&
		strings.HasSuffix(name, ".csv")
}

// PageWriter writes pages of rows to one CSV file each.
type PageWriter struct {
	dir    string
	logger *slog.Logger
	create func(path string) (*CSVWriter, error)
}

// NewPageWriter creates a writer placing files in dir.
func NewPageWriter(dir string, logger *slog.Logger) *PageWriter {
	if logger == nil {
		logger = logx.Nop()
	}
	return &PageWriter{dir: dir, logger: logger, create: NewFileWriter}
}

// WritePages writes each page to its own file and returns the paths in page
// order. Pages are first written to a staging directory inside dir; only
// when every page succeeded are they moved into place and earlier exports
// for locator that this run does not replace are removed. If a page fails,
// the staging directory is removed and dir is left as it was.
func (p *PageWriter) WritePages(locator string, pages [][]channel.Row) ([]string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	staging, err := os.MkdirTemp(p.dir, ".vgc-export-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(staging); err != nil {
			p.logger.Warn("failed to remove staging directory",
				slog.String(logx.FieldFile, staging),
				logx.Error(err),
			)
		}
	}()

	names := make([]string, len(pages))
	for i, page := range pages {
		names[i] = FileName(locator, i+1, len(pages))
		if err := p.writeFile(filepath.Join(staging, names[i]), page); err != nil {
			return nil, fmt.Errorf("page %d: %w", i+1, err)
		}
	}

	written := make([]string, 0, len(pages))
	for i, name := range names {
		path := filepath.Join(p.dir, name)
		if err := os.Rename(filepath.Join(staging, name), path); err != nil {
			return nil, fmt.Errorf("failed to move %s into place: %w", name, err)
		}
		written = append(written, path)
		p.logger.Info("wrote channel file",
			slog.String(logx.FieldFile, path),
			slog.Int(logx.FieldPage, i+1),
			slog.Int(logx.FieldRows, len(pages[i])),
		)
	}

	if err := p.removeStale(locator, names); err != nil {
		return written, err
	}
	return written, nil
}

func (p *PageWriter) writeFile(path string, rows []channel.Row) error {
	w, err := p.create(path)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if err := w.Write(row); err != nil {
			_ = w.Abort()
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// removeStale deletes export files for locator left by an earlier run
// whose names are not in keep.
func (p *PageWriter) removeStale(locator string, keep []string) error {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return fmt.Errorf("failed to list output directory: %w", err)
	}

	var errs []error
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isExportName(name, locator) || lo.Contains(keep, name) {
			continue
		}
		path := filepath.Join(p.dir, name)
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, fmt.Errorf("failed to remove stale file %s: %w", path, err))
			continue
		}
		p.logger.Info("removed channel file from an earlier export", slog.String(logx.FieldFile, path))
	}
	return errors.Join(errs...)
}
