package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// SlotCount is the number of ask amounts computed per band.
const SlotCount = 3

// Coefficients is the ordered triple of multipliers applied to a band's input value.
type Coefficients [SlotCount]decimal.Decimal

// NeutralCoefficients is the fallback triple used when the table has no entry.
func NeutralCoefficients() Coefficients {
	one := decimal.NewFromInt(1)
	return Coefficients{one, one, one}
}

// NewCoefficients builds a triple from float literals.
func NewCoefficients(a, b, c float64) Coefficients {
	return Coefficients{
		decimal.NewFromFloat(a),
		decimal.NewFromFloat(b),
		decimal.NewFromFloat(c),
	}
}

// Equal compares two triples numerically.
func (c Coefficients) Equal(other Coefficients) bool {
	for i := range c {
		if !c[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (c Coefficients) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}
