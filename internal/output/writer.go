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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/channel"
)

// CSVWriter writes channel rows as CSV with the radio's header line.
// It is safe for concurrent use.
type CSVWriter struct {
	mu            sync.Mutex
	csv           *csv.Writer
	count         int
	headerWritten bool
	closed        bool
	closeFunc     func() error
	abortFunc     func() error
}

// NewWriter creates a CSV writer on w. Records end in CRLF, as the
// radio's import expects.
func NewWriter(w io.Writer) *CSVWriter {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	return &CSVWriter{csv: cw}
}

// NewFileWriter creates a CSV writer for filename. Rows go to
// filename + ".tmp", which Close renames into place and Abort removes.
func NewFileWriter(filename string) (*CSVWriter, error) {
	tmpFile := filename + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	w := NewWriter(file)
	w.closeFunc = func() error {
		if err := file.Close(); err != nil {
			_ = os.Remove(tmpFile)
			return fmt.Errorf("failed to close output file: %w", err)
		}
		if err := os.Rename(tmpFile, filename); err != nil {
			_ = os.Remove(tmpFile)
			return fmt.Errorf("failed to save output file: %w", err)
		}
		return nil
	}
	w.abortFunc = func() error {
		closeErr := file.Close()
		removeErr := os.Remove(tmpFile)
		if errors.Is(removeErr, os.ErrNotExist) {
			removeErr = nil
		}
		return errors.Join(closeErr, removeErr)
	}
	return w, nil
}

// Write writes a single row, preceded by the header on the first call.
func (w *CSVWriter) Write(row channel.Row) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return errors.New("write on closed writer")
	}
	if err := w.writeHeader(); err != nil {
		return err
	}
	if err := w.csv.Write(row.Record()); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}

	w.count++
	return nil
}

func (w *CSVWriter) writeHeader() error {
	if w.headerWritten {
		return nil
	}
	if err := w.csv.Write(channel.Header()); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	w.headerWritten = true
	return nil
}

// Count returns the number of rows written, not counting the header.
func (w *CSVWriter) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close writes the header if no row was written, flushes, and for file
// writers moves the file into place.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	err := w.writeHeader()
	if err == nil {
		w.csv.Flush()
		err = w.csv.Error()
	}
	if err != nil {
		if w.abortFunc != nil {
			_ = w.abortFunc()
		}
		return fmt.Errorf("failed to flush rows: %w", err)
	}

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}

// Abort discards everything written. For file writers the temporary file
// is removed and the destination is left untouched.
func (w *CSVWriter) Abort() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	if w.abortFunc != nil {
		return w.abortFunc()
	}
	return nil
}
