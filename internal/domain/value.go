package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits in formatted PM2.5 values.
const Scale = 3

// ParseValue converts a numeric string into an exact decimal.
// Surrounding whitespace is ignored; empty or malformed text wraps ErrInvalidValue.
func ParseValue(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidValue, text)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %q", ErrInvalidValue, text)
	}
	return v, nil
}

// FormatValue renders v as fixed-point text with exactly 3 fractional digits,
// rounding half away from zero: 8.1235 -> "8.124", 8.5 -> "8.500".
func FormatValue(v decimal.Decimal) string {
	return v.StringFixed(Scale)
}

// mean returns the arithmetic mean of values rounded once, half away from
// zero, to Scale digits. The quotient is computed from the exact remainder so
// no intermediate rounding occurs. values must not be empty.
func mean(values []decimal.Decimal) decimal.Decimal {
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.DivRound(decimal.NewFromInt(int64(len(values))), Scale)
}
