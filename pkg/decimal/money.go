package decimal

import (
	"strings"

	"github.com/shopspring/decimal"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	hundred       = decimal.NewFromInt(100)
)

// Money represents a monetary amount with proper financial precision
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal creates a new Money instance from a decimal.Decimal
func NewMoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the money amount to cents
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// RoundWhole rounds to the nearest whole currency unit, halves away from zero.
func (m Money) RoundWhole() Money {
	return Money{m.Decimal.Round(0)}
}

// Settle rounds to a fixed number of places. Used to keep running balances
// from accumulating unbounded digits.
func (m Money) Settle(places int32) Money {
	return Money{m.Decimal.Round(places)}
}

// Annual converts a monthly amount to annual
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(monthsPerYear)}
}

// Monthly converts an annual amount to monthly
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(monthsPerYear)}
}

// FromWeekly converts a weekly amount to a longer period given the number of
// weeks in that period (e.g. 4.33 for a month, 52 for a year).
func (m Money) FromWeekly(weeksPerPeriod decimal.Decimal) Money {
	return Money{m.Decimal.Mul(weeksPerPeriod)}
}

// Grow applies one period of compounding at the given fractional rate.
func (m Money) Grow(rate decimal.Decimal) Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(1).Add(rate))}
}

// Add adds another Money amount
func (m Money) Add(other Money) Money {
	return Money{m.Decimal.Add(other.Decimal)}
}

// Sub subtracts another Money amount
func (m Money) Sub(other Money) Money {
	return Money{m.Decimal.Sub(other.Decimal)}
}

// GreaterThan checks if this amount is greater than another
func (m Money) GreaterThan(other Money) bool {
	return m.Decimal.GreaterThan(other.Decimal)
}

// IsNegative checks if the amount is negative
func (m Money) IsNegative() bool {
	return m.Decimal.IsNegative()
}

// Max returns the maximum of two Money amounts
func Max(a, b Money) Money {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// ClampZero returns m, or zero when m is negative.
func ClampZero(m Money) Money {
	return Max(m, Zero())
}

// Zero returns a zero Money amount
func Zero() Money {
	return Money{decimal.Zero}
}

// PercentToRate converts a percentage (6 means 6%) to a fraction (0.06).
func PercentToRate(pct decimal.Decimal) decimal.Decimal {
	return pct.Div(hundred)
}

// String returns the string representation with proper formatting
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as currency with cents and thousands separators.
// Negative amounts render as -$1,234.56.
func (m Money) Format() string {
	d := m.Round().Decimal
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	whole, cents := s[:len(s)-3], s[len(s)-3:]

	var b strings.Builder
	for i, c := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return sign + "$" + b.String() + cents
}
