// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing monetary amounts from strings
// and converting between cents and their decimal representation.
package core

import (
	"math"
	"strconv"
	"strings"
)

// Money is an amount in the user's local currency, held as integer cents
// so that sums are exact.
type Money struct {
	Cents int64
}

// MaxAmountCents is the largest amount a single expense may carry. It
// leaves room for summing millions of records without overflowing int64.
const MaxAmountCents = 1_000_000_000_000 * 100

// ParseDecimalToCents converts a decimal string to cents with proper rounding.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and performs
// half-up rounding on the third decimal place. Exponent forms such as "1e3"
// are accepted as long as they are finite. Negative values are rejected;
// zero is allowed.
//
// Examples:
//
//	ParseDecimalToCents("12.34")  -> 1234, nil
//	ParseDecimalToCents("12,34")  -> 1234, nil
//	ParseDecimalToCents("12.345") -> 1235, nil (rounds up)
//	ParseDecimalToCents("abc")    -> 0, ErrInvalidAmount
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimPrefix(s, "+")
	if strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	cents, ok := parsePlainDecimal(s)
	if !ok {
		var err error
		if cents, err = parseFloatToCents(s); err != nil {
			return 0, err
		}
	}
	if cents > MaxAmountCents {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// parsePlainDecimal handles the common "123.45" form without going through
// floating point.
func parsePlainDecimal(s string) (int64, bool) {
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, false
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, false
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	// Too many integer digits falls through to the float path, which
	// rejects it.
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || iv > MaxAmountCents/100 {
		return 0, false
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, true
}

func parseFloatToCents(s string) (int64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 {
		return 0, ErrInvalidAmount
	}
	cents := math.Round(f * 100)
	if cents > MaxAmountCents {
		return 0, ErrInvalidAmount
	}
	return int64(cents), nil
}

// ParseMoney parses a user-supplied amount.
func ParseMoney(s string) (Money, error) {
	cents, err := ParseDecimalToCents(s)
	if err != nil {
		return Money{}, &ValidationError{Kind: InvalidAmount, Field: "amount", Value: s}
	}
	return Money{Cents: cents}, nil
}

// Float returns the amount as a float64 for display and charting.
// Use cents for calculations.
func (m Money) Float() float64 {
	return float64(m.Cents) / 100.0
}

// String formats the amount with exactly two decimals, e.g. "12.50".
func (m Money) String() string {
	cents := m.Cents
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return sign + strconv.FormatInt(cents/100, 10) + "." + twoDigits(cents%100)
}

func twoDigits(n int64) string {
	if n < 10 {
		return "0" + strconv.FormatInt(n, 10)
	}
	return strconv.FormatInt(n, 10)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// MarshalJSON writes the amount as a plain JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts any JSON number, rounding half-up to cents.
// Quoted numbers are tolerated for hand-edited files. null leaves m
// unchanged.
func (m *Money) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	neg := strings.HasPrefix(s, "-")
	cents, err := ParseDecimalToCents(strings.TrimPrefix(s, "-"))
	if err != nil {
		return &ValidationError{Kind: InvalidAmount, Field: "amount", Value: s}
	}
	if neg {
		cents = -cents
	}
	m.Cents = cents
	return nil
}
