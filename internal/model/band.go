package model

import "github.com/shopspring/decimal"

// MonetaryBand is one fixed donation-size range with its own bounded input.
type MonetaryBand struct {
	Title      string
	LowerBound int64
	UpperBound int64
}

// Lower returns the lower bound as a decimal.
func (b MonetaryBand) Lower() decimal.Decimal {
	return decimal.NewFromInt(b.LowerBound)
}

// Upper returns the upper bound as a decimal.
func (b MonetaryBand) Upper() decimal.Decimal {
	return decimal.NewFromInt(b.UpperBound)
}

// Clamp limits v to the band's bounds.
func (b MonetaryBand) Clamp(v decimal.Decimal) decimal.Decimal {
	return decimal.Max(b.Lower(), decimal.Min(v, b.Upper()))
}

// Contains reports whether v lies within the band, bounds included.
func (b MonetaryBand) Contains(v decimal.Decimal) bool {
	return v.GreaterThanOrEqual(b.Lower()) && v.LessThanOrEqual(b.Upper())
}
