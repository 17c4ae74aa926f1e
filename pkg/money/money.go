// Package money converts between wire decimal strings and int64 minor units.
package money

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits stored in minor units.
const Scale = 2

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrTooPrecise    = errors.New("amount has more than 2 decimal places")
	ErrOutOfRange    = errors.New("amount out of range")
)

// Parse reads a decimal string such as "50", "-50.00" or "0.5" into minor units.
func Parse(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if !d.Equal(d.Round(Scale)) {
		return 0, fmt.Errorf("%w: %q", ErrTooPrecise, s)
	}
	minor := d.Shift(Scale)
	if !minor.BigInt().IsInt64() {
		return 0, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return minor.IntPart(), nil
}

// Format renders minor units as a fixed two-decimal string: 5000 -> "50.00".
func Format(minor int64) string {
	return decimal.New(minor, -Scale).StringFixed(Scale)
}

// Normalize reformats a decimal string to two places, or returns s unchanged
// when it is not a number.
func Normalize(s string) string {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return d.StringFixed(Scale)
}
