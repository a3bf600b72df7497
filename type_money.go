package solarroi

import (
	"math"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency used for all the project economics.
const Currency = money.USD

// Money is a display value in dollars. Computation stays in float64; Money
// only exists to print amounts consistently.
type Money struct {
	value decimal.Decimal
	valid bool
}

// Dollars wraps a computed dollar amount. A non-finite amount gives an
// invalid Money that prints as "n/a".
func Dollars(v float64) Money {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Money{}
	}
	return Money{value: decimal.NewFromFloat(v), valid: true}
}

// String formats m with the currency formatter, rounded to cents: "$3,200,000.00".
func (m Money) String() string {
	if !m.valid {
		return "n/a"
	}
	cur := money.GetCurrency(Currency)
	cents := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(cents.IntPart())
}

// Millions formats m in millions with 'digits' decimals: "$3.20M".
func (m Money) Millions(digits int32) string {
	return m.scaled(6, digits, "M")
}

func (m Money) scaled(exp, digits int32, suffix string) string {
	if !m.valid {
		return "n/a"
	}
	grapheme := money.GetCurrency(Currency).Grapheme
	v := m.value.Shift(-exp)
	sign := ""
	if v.IsNegative() {
		sign, v = "-", v.Neg()
	}
	return sign + grapheme + v.StringFixed(digits) + suffix
}
