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

package channel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/config"
	vgcerrors "github.com/DayleDrinkwater/UKRepeaters-To-VGC/internal/errors"
)

// FormatFrequency renders a decimal MHz string as the radio's digits-only
// field: the radix point is removed and the fractional part is padded or cut
// to exactly decimals digits. "145.6250" at 4 decimals is "1456250"; at 6 it
// is "145625000".
//
// Surplus fractional zeros are always dropped. Surplus non-zero digits are
// cut under WidthTruncate and rejected with ErrFrequencyWidth under
// WidthReject.
func FormatFrequency(mhz string, decimals int, policy config.WidthPolicy) (string, error) {
	s := strings.TrimSpace(mhz)
	if s == "" {
		return "", fmt.Errorf("frequency is empty: %w", vgcerrors.ErrMissingField)
	}

	whole, frac, _ := strings.Cut(s, ".")
	if !isDigits(whole) || !isDigits(frac) || whole+frac == "" {
		return "", fmt.Errorf("frequency %q is not a decimal MHz value: %w", mhz, vgcerrors.ErrMissingField)
	}

	if len(frac) > decimals {
		surplus := frac[decimals:]
		if strings.Trim(surplus, "0") != "" && policy != config.WidthTruncate {
			return "", fmt.Errorf("frequency %q has more than %d decimal places: %w", mhz, decimals, vgcerrors.ErrFrequencyWidth)
		}
		frac = frac[:decimals]
	} else {
		frac += strings.Repeat("0", decimals-len(frac))
	}

	digits := strings.TrimLeft(whole+frac, "0")
	if digits == "" {
		digits = "0"
	}
	return digits, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ToneCode renders a CTCSS tone in Hz as round(hz * 100): 67.0 is "6700",
// 141.3 is "14130". Zero or negative means no tone and renders empty.
func ToneCode(hz float64) string {
	if hz <= 0 {
		return ""
	}
	return strconv.FormatUint(uint64(math.Round(hz*100)), 10)
}
