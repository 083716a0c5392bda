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
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"
)

// Frequency is a decimal MHz value kept as the text the directory sent, so
// digits are never re-rounded through a float. The directory emits either
// JSON numbers or strings; both are accepted.
type Frequency string

// UnmarshalJSON accepts 145.625, "145.6250" and null. Any other JSON value
// decodes to the empty frequency so only its record is dropped later.
func (f *Frequency) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case bytes.Equal(b, []byte("null")):
		*f = ""
		return nil
	case len(b) > 0 && b[0] == '"':
		s, err := strconv.Unquote(string(b))
		if err != nil {
			return fmt.Errorf("frequency %s: %w", b, err)
		}
		*f = Frequency(s)
		return nil
	default:
		if _, err := strconv.ParseFloat(string(b), 64); err != nil {
			*f = ""
			return nil
		}
		*f = Frequency(b)
		return nil
	}
}

// optionalFloat decodes a number, a numeric string or null. Empty strings,
// other text and non-scalar values leave it nil.
type optionalFloat struct {
	v *float64
}

func (o *optionalFloat) UnmarshalJSON(b []byte) error {
	o.v = nil
	text := string(bytes.TrimSpace(b))
	if strings.HasPrefix(text, `"`) {
		s, _ := strconv.Unquote(text)
		text = strings.TrimSpace(s)
	}
	if v, err := strconv.ParseFloat(text, 64); err == nil {
		o.v = &v
	}
	return nil
}

// String returns the frequency text.
func (f Frequency) String() string { return string(f) }

// Repeater is one record of the directory's data array. Only the fields
// the exporter reads are decoded.
type Repeater struct {
	Name      string    `json:"repeater" validate:"required"`
	TX        Frequency `json:"tx" validate:"required"`
	RX        Frequency `json:"rx" validate:"required"`
	CTCSS     *float64  `json:"ctcss" validate:"required"`
	ERP       *float64  `json:"dbwErp" validate:"required"`
	Bandwidth *float64  `json:"txbw" validate:"required"`
	ModeCodes []string  `json:"modeCodes"`
	Type      string    `json:"type"`
	Band      string    `json:"band"`
	Status    string    `json:"status"`
	Locator   string    `json:"locator"`
}

// UnmarshalJSON decodes a record. The numeric fields tolerate strings and
// bad values; an unusable value leaves the field nil so validation skips
// the record instead of failing the whole response.
func (r *Repeater) UnmarshalJSON(b []byte) error {
	type plain Repeater
	aux := struct {
		*plain
		CTCSS     optionalFloat `json:"ctcss"`
		ERP       optionalFloat `json:"dbwErp"`
		Bandwidth optionalFloat `json:"txbw"`
	}{plain: (*plain)(r)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	r.CTCSS, r.ERP, r.Bandwidth = aux.CTCSS.v, aux.ERP.v, aux.Bandwidth.v
	return nil
}

// HasMode reports whether code is one of the record's mode codes.
func (r Repeater) HasMode(code string) bool {
	return lo.Contains(r.ModeCodes, code)
}

// Response is the directory's JSON envelope. Data is a pointer so a missing
// key can be told apart from an empty list.
type Response struct {
	Data *[]Repeater `json:"data"`
}
