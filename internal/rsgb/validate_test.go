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
	"errors"
	"strings"
	"testing"

	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
)

func TestValidateRepeater(t *testing.T) {
	complete := Repeater{
		Name: "GB3MN", TX: "145.7375", RX: "145.1375",
		CTCSS: ptr(82.5), ERP: ptr(14), Bandwidth: ptr(12.5),
	}

	tests := []struct {
		name    string
		mutate  func(r *Repeater)
		missing []string
	}{
		{name: "complete", mutate: func(*Repeater) {}},
		{name: "zero tone is present", mutate: func(r *Repeater) { r.CTCSS = ptr(0) }},
		{name: "nil tone", mutate: func(r *Repeater) { r.CTCSS = nil }, missing: []string{"ctcss"}},
		{name: "nil erp and bandwidth", mutate: func(r *Repeater) { r.ERP, r.Bandwidth = nil, nil }, missing: []string{"dbwErp", "txbw"}},
		{name: "empty tx", mutate: func(r *Repeater) { r.TX = "" }, missing: []string{"tx"}},
		{name: "empty name", mutate: func(r *Repeater) { r.Name = "" }, missing: []string{"repeater"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := complete
			tt.mutate(&r)

			err := ValidateRepeater(r)
			if len(tt.missing) == 0 {
				if err != nil {
					t.Fatalf("ValidateRepeater() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, vgcerrors.ErrMissingField) {
				t.Fatalf("ValidateRepeater() error = %v, want ErrMissingField", err)
			}
			for _, field := range tt.missing {
				if !strings.Contains(err.Error(), field) {
					t.Errorf("error %q should name %q", err.Error(), field)
				}
			}
		})
	}
}
