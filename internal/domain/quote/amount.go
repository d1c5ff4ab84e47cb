// Package quote computes fee-breakdown subtotals and grand totals for air and
// maritime offers. The computation is pure: the same breakdown always yields
// the same totals, with no side effects.
package quote

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Amount is a lenient monetary value. Fee forms arrive as free-form JSON where
// a field may be a number, a numeric string, empty, or junk. Anything that
// does not parse as a finite number decodes to 0 so totals never carry NaN.
type Amount float64

// UnmarshalJSON decodes numbers and numeric strings, coercing everything else to 0.
func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = 0

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*a = sanitize(num)

		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(str), 64)
		if err != nil {
			return nil
		}
		*a = sanitize(parsed)
	}

	return nil
}

// MarshalJSON encodes the amount as a plain JSON number.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(float64(a))
}

// Float64 returns the amount as a float64.
func (a Amount) Float64() float64 {
	return float64(a)
}

func sanitize(v float64) Amount {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}

	return Amount(v)
}
