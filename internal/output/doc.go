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

// Package output writes channel rows as CSV files in the VGC radio's import
// format.
//
// The primary type is CSVWriter, which writes a fixed header followed by one
// record per channel to an io.Writer or file. File writers write to a
// temporary name and rename on Close, so a failed export never leaves a
// partial file behind. PageWriter names and writes one file per page. It
// stages every page before moving any into place, so a failed export leaves
// the previous one untouched, and it removes part files of an earlier
// export that the new one does not replace.
//
// Example usage:
//
//	w, err := output.NewFileWriter("Repeaters - IO83.csv")
//	if err != nil {
//	    return err
//	}
//	for _, row := range rows {
//	    if err := w.Write(row); err != nil {
//	        w.Abort()
//	        return err
//	    }
//	}
//	return w.Close()
package output
