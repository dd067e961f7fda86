package kernel

import (
	"fmt"

	"marketplace/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a non-negative monetary amount. It wraps decimal.Decimal so that
// price arithmetic never goes through binary floating point; display and
// persistence use two decimal places with half-up rounding (currency
// semantics, not banker's rounding).
//
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// NewMoney creates a Money from a decimal amount.
// Negative amounts are rejected.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", amount))
	}
	return Money{amount: amount}, nil
}

// NewMoneyFromString parses a decimal string such as "45.50".
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{}
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns m minus other, floored at zero. Monetary amounts in this
// domain never go negative: a discount can reduce a total to zero at most.
func (m Money) Sub(other Money) Money {
	result := m.amount.Sub(other.amount)
	if result.IsNegative() {
		return Money{}
	}
	return Money{amount: result}
}

// MulInt returns the amount multiplied by a quantity.
func (m Money) MulInt(quantity int) Money {
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Percent returns the given percentage of the amount, e.g. Percent(20) of
// 65.50 is 13.10.
func (m Money) Percent(p decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(p).Div(decimal.NewFromInt(100))}
}

// Min returns the smaller of two amounts.
func (m Money) Min(other Money) Money {
	if m.amount.GreaterThan(other.amount) {
		return other
	}
	return m
}

// Round2 rounds to two decimal places using half-up rounding.
func (m Money) Round2() Money {
	return Money{amount: m.amount.Round(2)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// LessThan reports whether m is strictly smaller than other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// IsEqual compares two amounts for numeric equality.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal exposes the underlying decimal for persistence adapters.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}
