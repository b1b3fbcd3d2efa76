package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownRounding is returned when a rounding mode cannot be parsed.
var ErrUnknownRounding = errors.New("unknown rounding mode")

// RoundingMode controls how computed ask amounts are rounded.
// A single field makes "nearest five" and "nearest ten" mutually exclusive.
type RoundingMode string

// Rounding modes.
const (
	RoundNone        RoundingMode = "none"
	RoundNearestFive RoundingMode = "five"
	RoundNearestTen  RoundingMode = "ten"
)

// Increment returns the dollar step the mode rounds up to, or zero for RoundNone.
func (r RoundingMode) Increment() decimal.Decimal {
	switch r {
	case RoundNearestFive:
		return decimal.NewFromInt(5)
	case RoundNearestTen:
		return decimal.NewFromInt(10)
	}
	return decimal.Zero
}

// Active reports whether the mode rounds at all.
func (r RoundingMode) Active() bool {
	return r == RoundNearestFive || r == RoundNearestTen
}

// Label is the checkbox caption for the mode.
func (r RoundingMode) Label() string {
	switch r {
	case RoundNearestFive:
		return "Round to nearest $5"
	case RoundNearestTen:
		return "Round to nearest $10"
	}
	return "No rounding"
}

// ParseRoundingMode accepts "none", "5"/"five" and "10"/"ten". An empty string is RoundNone.
func ParseRoundingMode(s string) (RoundingMode, error) {
	switch normalize(s) {
	case "", "none", "off", "0":
		return RoundNone, nil
	case "5", "five", "nearestfive":
		return RoundNearestFive, nil
	case "10", "ten", "nearestten":
		return RoundNearestTen, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRounding, s)
}
