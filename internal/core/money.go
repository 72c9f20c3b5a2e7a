// Package core provides the transaction domain types.
//
// This file contains the Money type: a signed amount held as integer cents
// and converted to and from decimal text with shopspring/decimal.
package core

import (
	"bytes"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a signed amount in cents. Negative values are expenses.
type Money struct {
	Cents int64
}

// maxAmount bounds the absolute value accepted by ParseMoney so the cent
// value always fits in an int64 sum.
var maxAmount = decimal.New(1, 13)

// NewMoney converts a decimal to cents, rounding half away from zero on the
// third fractional digit.
//
// Examples:
//
//	NewMoney(decimal.RequireFromString("-4.5"))   -> Money{-450}
//	NewMoney(decimal.RequireFromString("12.345")) -> Money{1235}
func NewMoney(d decimal.Decimal) Money {
	return Money{Cents: d.Round(2).Shift(2).IntPart()}
}

// ParseMoney parses a signed decimal string. Both dot and comma decimal
// separators are accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	if d.Abs().GreaterThan(maxAmount) {
		return Money{}, ErrInvalidAmount
	}
	return NewMoney(d), nil
}

// Decimal returns the amount in currency units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.Cents, -2)
}

// String formats the amount with exactly two fractional digits.
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Abs returns the magnitude of m.
func (m Money) Abs() Money {
	if m.Cents < 0 {
		return Money{Cents: -m.Cents}
	}
	return m
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Cents == 0
}

// MarshalJSON writes the amount as a bare JSON number, e.g. -4.50.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) >= 2 && data[0] == '"' && data[len(data)-1] == '"' {
		data = data[1 : len(data)-1]
	}
	parsed, err := ParseMoney(string(data))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
