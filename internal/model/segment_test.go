package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDonorCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    DonorCategory
		wantErr bool
	}{
		{name: "display name", input: "Major Donor", want: DonorMajor},
		{name: "slug", input: "major-donor", want: DonorMajor},
		{name: "short alias", input: "major", want: DonorMajor},
		{name: "upper otg", input: "OTG", want: DonorOTG},
		{name: "lower tbz", input: "tbz", want: DonorTBZ},
		{name: "unknown", input: "monthly", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDonorCategory(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownDonor)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseAppealType(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    AppealType
		wantErr bool
	}{
		{name: "display name", input: "Holiday Appeal", want: AppealHoliday},
		{name: "slug", input: "holiday", want: AppealHoliday},
		{name: "label", input: "Papers and Mailouts", want: AppealPapers},
		{name: "value", input: "Papers", want: AppealPapers},
		{name: "monthly label", input: "Monthly Donations", want: AppealMonthly},
		{name: "unknown", input: "gala", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAppealType(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownAppeal)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSlugsRoundTrip(t *testing.T) {
	for _, d := range DonorCategories() {
		got, err := ParseDonorCategory(d.Slug())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	for _, a := range AppealTypes() {
		got, err := ParseAppealType(a.Slug())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
}

func TestNextWrapsAround(t *testing.T) {
	assert.Equal(t, DonorOTG, DonorMajor.Next())
	assert.Equal(t, DonorMajor, DonorTBZ.Next())
	assert.Equal(t, AppealPapers, AppealHoliday.Next())
	assert.Equal(t, AppealHoliday, AppealMonthly.Next())
	assert.Equal(t, DonorMajor, DonorCategory("bogus").Next())
}

func TestValid(t *testing.T) {
	assert.True(t, DonorTBZ.Valid())
	assert.False(t, DonorCategory("Board").Valid())
	assert.True(t, AppealMonthly.Valid())
	assert.False(t, AppealType("").Valid())
}
