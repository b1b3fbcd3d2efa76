package calculator

import (
	"fmt"

	"github.com/Veraticus/askarray/internal/model"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// term holds the operands of a single ask amount. Value and Formula both read
// from it, so the displayed formula always matches the computed amount.
type term struct {
	input       decimal.Decimal
	coefficient decimal.Decimal
	percent     decimal.Decimal
	rounding    model.RoundingMode
}

// Value computes input * coefficient * (1 + percent/100), rounded up to the
// mode's increment when rounding is active. The percent is applied as
// (100 + percent) and shifted two places, so no digits are lost to division.
func (t term) Value() decimal.Decimal {
	raw := t.input.Mul(t.coefficient).Mul(hundred.Add(t.percent)).Shift(-2)
	return roundUp(raw, t.rounding)
}

// Formula renders the arithmetic Value performs using the literal operands.
func (t term) Formula() string {
	f := fmt.Sprintf("%s * %s * (1 + %s / 100)", t.input, t.coefficient, t.percent)
	if t.rounding.Active() {
		inc := t.rounding.Increment()
		f = fmt.Sprintf("ceil(%s / %s) * %s", f, inc, inc)
	}
	return f
}

func roundUp(v decimal.Decimal, mode model.RoundingMode) decimal.Decimal {
	if !mode.Active() {
		return v
	}
	inc := mode.Increment()
	q, r := v.QuoRem(inc, 0)
	if r.IsPositive() {
		q = q.Add(one)
	}
	return q.Mul(inc)
}
