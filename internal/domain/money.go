package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money amounts are limited to this many digits on each side of the point.
// Anything larger is refused before it is ever formatted.
const (
	MaxIntegerDigits  = 15
	MaxFractionDigits = 10
)

// ParseMoney parses raw as a decimal amount of bounded size. It reports false
// when raw is not a number or has more than MaxIntegerDigits integer digits
// or MaxFractionDigits fraction digits. The sign is not checked.
func ParseMoney(raw string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, false
	}
	if d.IsZero() {
		return decimal.Zero, true
	}
	// Compare the exponent first: formatting a value like 1e50000000 expands
	// every digit.
	exp := int(d.Exponent())
	if exp > MaxIntegerDigits || exp < -MaxFractionDigits {
		return decimal.Decimal{}, false
	}
	c := d.Coefficient()
	if len(c.Abs(c).Text(10))+exp > MaxIntegerDigits {
		return decimal.Decimal{}, false
	}
	return d, true
}

// CoercePrice turns raw user input into a stored activity price. Anything that
// does not parse as a non-negative amount becomes zero; a price is never
// rejected.
func CoercePrice(raw string) decimal.Decimal {
	p, ok := ParseMoney(raw)
	if !ok || p.IsNegative() {
		return decimal.Zero
	}
	return p
}

// ParseBudget parses a daily budget. Unlike prices, an invalid budget is
// rejected: the second return value is false when raw is not a non-negative
// amount.
func ParseBudget(raw string) (decimal.Decimal, bool) {
	b, ok := ParseMoney(raw)
	if !ok || b.IsNegative() {
		return decimal.Decimal{}, false
	}
	return b, true
}
