package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRoundingMode(t *testing.T) {
	tests := []struct {
		input   string
		want    RoundingMode
		wantErr bool
	}{
		{input: "", want: RoundNone},
		{input: "none", want: RoundNone},
		{input: "5", want: RoundNearestFive},
		{input: "five", want: RoundNearestFive},
		{input: "nearest-five", want: RoundNearestFive},
		{input: "10", want: RoundNearestTen},
		{input: "TEN", want: RoundNearestTen},
		{input: "25", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRoundingMode(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRounding)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoundingMode_Increment(t *testing.T) {
	assert.True(t, RoundNone.Increment().IsZero())
	assert.True(t, RoundNearestFive.Increment().Equal(decimal.NewFromInt(5)))
	assert.True(t, RoundNearestTen.Increment().Equal(decimal.NewFromInt(10)))
	assert.False(t, RoundNone.Active())
	assert.True(t, RoundNearestTen.Active())
}

func TestMonetaryBand_Clamp(t *testing.T) {
	band := MonetaryBand{Title: "$1000-$5000", LowerBound: 1000, UpperBound: 5000}

	assert.Equal(t, "1000", band.Clamp(decimal.NewFromInt(-4)).String())
	assert.Equal(t, "2500.5", band.Clamp(decimal.RequireFromString("2500.5")).String())
	assert.Equal(t, "5000", band.Clamp(decimal.NewFromInt(90000)).String())
	assert.True(t, band.Contains(decimal.NewFromInt(5000)))
	assert.False(t, band.Contains(decimal.NewFromInt(999)))
}

func TestCoefficients(t *testing.T) {
	c := NewCoefficients(0.9, 1.0, 1.45)

	assert.Equal(t, "0.9, 1, 1.45", c.String())
	assert.True(t, c.Equal(NewCoefficients(0.9, 1, 1.45)))
	assert.False(t, c.Equal(NeutralCoefficients()))
}
