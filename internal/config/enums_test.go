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

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScope_Set(t *testing.T) {
	tests := []struct {
		input   string
		want    Scope
		wantErr bool
	}{
		{"cell", ScopeCell, false},
		{" Nationwide ", ScopeNationwide, false},
		{"country", "", true},
	}

	for _, tt := range tests {
		var s Scope
		err := s.Set(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if s != tt.want {
			t.Errorf("Set(%q) = %q, want %q", tt.input, s, tt.want)
		}
	}
}

func TestFrequencyMapping_Set(t *testing.T) {
	rq := require.New(t)

	var m FrequencyMapping
	rq.NoError(m.Set("direct"))
	rq.Equal(MappingDirect, m)
	rq.NoError(m.Set("END-USER"))
	rq.Equal(MappingEndUser, m)
	rq.NoError(m.Set("swap"))
	rq.Equal(MappingEndUser, m)
	rq.Error(m.Set("both"))
	rq.Equal("mapping", m.Type())
}

func TestPageSize_Set(t *testing.T) {
	tests := []struct {
		input   string
		want    PageSize
		wantErr bool
	}{
		{"16", PageSize16, false},
		{"32", PageSize32, false},
		{" 32 ", PageSize32, false},
		{"64", 0, true},
		{"thirty-two", 0, true},
	}

	for _, tt := range tests {
		var p PageSize
		err := p.Set(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if p != tt.want {
			t.Errorf("Set(%q) = %d, want %d", tt.input, p, tt.want)
		}
	}
}

func TestPolicies_Set(t *testing.T) {
	rq := require.New(t)

	var l LocatorPolicy
	rq.NoError(l.UnmarshalText([]byte("abort")))
	rq.Equal(LocatorAbort, l)
	rq.Error(l.UnmarshalText([]byte("ignore")))

	var w WidthPolicy
	rq.NoError(w.UnmarshalText([]byte("Truncate")))
	rq.Equal(WidthTruncate, w)
	rq.Error(w.UnmarshalText([]byte("round")))

	text, err := PageSize32.MarshalText()
	rq.NoError(err)
	rq.Equal("32", string(text))
}
