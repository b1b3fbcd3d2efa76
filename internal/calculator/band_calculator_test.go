package calculator

import (
	"testing"

	"github.com/Veraticus/askarray/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, dec(want).Equal(got), "want %s, got %s", want, got)
}

func newTestCalculator(t *testing.T, title string, coefficients model.Coefficients) *BandCalculator {
	t.Helper()
	band, err := ParseBand(title)
	require.NoError(t, err)
	return NewBandCalculator(band, coefficients)
}

func TestNewBandCalculator_StartsAtLowerBound(t *testing.T) {
	calc := newTestCalculator(t, "$1000-$5000", model.NeutralCoefficients())

	assertDecimal(t, "1000", calc.InputValue())
	assert.Equal(t, model.RoundNone, calc.RoundingMode())
	for i := 0; i < model.SlotCount; i++ {
		assert.True(t, calc.AdjustmentPercent(i).IsZero())
	}
	assert.False(t, calc.Collapsed())
}

func TestSetInputValue_Clamps(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "below lower", raw: "-50", want: "1000"},
		{name: "at lower", raw: "1000", want: "1000"},
		{name: "inside", raw: "2750.25", want: "2750.25"},
		{name: "at upper", raw: "5000", want: "5000"},
		{name: "above upper", raw: "1000000", want: "5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator(t, "$1000-$5000", model.NeutralCoefficients())

			calc.SetInputValue(dec(tt.raw))
			assertDecimal(t, tt.want, calc.InputValue())

			// Clamping is idempotent.
			calc.SetInputValue(calc.InputValue())
			assertDecimal(t, tt.want, calc.InputValue())

			band := calc.Band()
			assert.True(t, band.Contains(calc.InputValue()))
		})
	}
}

func TestSetAdjustmentPercent(t *testing.T) {
	calc := newTestCalculator(t, "$0-$1000", model.NeutralCoefficients())

	require.NoError(t, calc.SetAdjustmentPercent(0, dec("10")))
	require.NoError(t, calc.SetAdjustmentPercent(1, dec("150")))
	require.NoError(t, calc.SetAdjustmentPercent(2, dec("-3")))

	assertDecimal(t, "10", calc.AdjustmentPercent(0))
	assertDecimal(t, "100", calc.AdjustmentPercent(1))
	assertDecimal(t, "0", calc.AdjustmentPercent(2))

	err := calc.SetAdjustmentPercent(3, dec("5"))
	assert.ErrorIs(t, err, ErrInvalidSlot)
	err = calc.SetAdjustmentPercent(-1, dec("5"))
	assert.ErrorIs(t, err, ErrInvalidSlot)
	assert.True(t, calc.AdjustmentPercent(7).IsZero())
}

func TestSetCoefficient_IsUnconstrained(t *testing.T) {
	calc := newTestCalculator(t, "$0-$1000", model.NeutralCoefficients())

	require.NoError(t, calc.SetCoefficient(0, dec("-2.5")))
	require.NoError(t, calc.SetCoefficient(2, dec("250")))

	assertDecimal(t, "-2.5", calc.Coefficients()[0])
	assertDecimal(t, "1", calc.Coefficients()[1])
	assertDecimal(t, "250", calc.Coefficients()[2])
	assert.ErrorIs(t, calc.SetCoefficient(3, dec("1")), ErrInvalidSlot)
}

func TestSetRoundingMode_Exclusive(t *testing.T) {
	tests := []struct {
		name  string
		steps []model.RoundingMode
		want  model.RoundingMode
	}{
		{name: "five", steps: []model.RoundingMode{model.RoundNearestFive}, want: model.RoundNearestFive},
		{name: "five then ten", steps: []model.RoundingMode{model.RoundNearestFive, model.RoundNearestTen}, want: model.RoundNearestTen},
		{name: "ten then five", steps: []model.RoundingMode{model.RoundNearestTen, model.RoundNearestFive}, want: model.RoundNearestFive},
		{name: "toggle five off", steps: []model.RoundingMode{model.RoundNearestFive, model.RoundNearestFive}, want: model.RoundNone},
		{name: "toggle ten off", steps: []model.RoundingMode{model.RoundNearestTen, model.RoundNearestTen}, want: model.RoundNone},
		{name: "explicit none", steps: []model.RoundingMode{model.RoundNearestTen, model.RoundNone}, want: model.RoundNone},
		{name: "none while none", steps: []model.RoundingMode{model.RoundNone}, want: model.RoundNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator(t, "$0-$1000", model.NeutralCoefficients())
			for _, step := range tt.steps {
				calc.SetRoundingMode(step)
			}
			assert.Equal(t, tt.want, calc.RoundingMode())
		})
	}
}

func TestOutput(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		coefficient string
		percent     string
		rounding    model.RoundingMode
		want        string
		formula     string
	}{
		{
			name: "plain product", input: "1000", coefficient: "1", percent: "0",
			rounding: model.RoundNone, want: "1000",
			formula: "1000 * 1 * (1 + 0 / 100)",
		},
		{
			name: "ten percent", input: "1000", coefficient: "1", percent: "10",
			rounding: model.RoundNone, want: "1100",
			formula: "1000 * 1 * (1 + 10 / 100)",
		},
		{
			name: "round up to five", input: "1103", coefficient: "1", percent: "0",
			rounding: model.RoundNearestFive, want: "1105",
			formula: "ceil(1103 * 1 * (1 + 0 / 100) / 5) * 5",
		},
		{
			name: "round up to ten", input: "1103", coefficient: "1", percent: "0",
			rounding: model.RoundNearestTen, want: "1110",
			formula: "ceil(1103 * 1 * (1 + 0 / 100) / 10) * 10",
		},
		{
			name: "exact multiple stays", input: "1100", coefficient: "1", percent: "0",
			rounding: model.RoundNearestFive, want: "1100",
			formula: "ceil(1100 * 1 * (1 + 0 / 100) / 5) * 5",
		},
		{
			name: "fractional coefficient", input: "1000", coefficient: "1.1", percent: "0",
			rounding: model.RoundNearestFive, want: "1100",
			formula: "ceil(1000 * 1.1 * (1 + 0 / 100) / 5) * 5",
		},
		{
			name: "full precision kept", input: "1234", coefficient: "1.45", percent: "7",
			rounding: model.RoundNone, want: "1914.551",
			formula: "1234 * 1.45 * (1 + 7 / 100)",
		},
		{
			name: "tiny excess still rounds up", input: "1000", coefficient: "1.00000000000000000001", percent: "0",
			rounding: model.RoundNearestTen, want: "1010",
			formula: "ceil(1000 * 1.00000000000000000001 * (1 + 0 / 100) / 10) * 10",
		},
		{
			name: "long percent kept", input: "1000", coefficient: "1", percent: "0.0000000000000000001",
			rounding: model.RoundNone, want: "1000.000000000000000001",
			formula: "1000 * 1 * (1 + 0.0000000000000000001 / 100)",
		},
		{
			name: "negative product rounds toward zero", input: "1003", coefficient: "-1", percent: "0",
			rounding: model.RoundNearestTen, want: "-1000",
			formula: "ceil(1003 * -1 * (1 + 0 / 100) / 10) * 10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := newTestCalculator(t, "$0-$50000", model.NeutralCoefficients())
			calc.SetInputValue(dec(tt.input))
			require.NoError(t, calc.SetCoefficient(1, dec(tt.coefficient)))
			require.NoError(t, calc.SetAdjustmentPercent(1, dec(tt.percent)))
			calc.SetRoundingMode(tt.rounding)

			got := calc.Output(1)
			assertDecimal(t, tt.want, got)
			assert.Equal(t, tt.formula, calc.Formula(1))

			evaluated, err := evalFormula(calc.Formula(1))
			require.NoError(t, err)
			assertDecimal(t, got.String(), evaluated)
		})
	}
}

func TestOutput_NeverBelowRawProduct(t *testing.T) {
	calc := newTestCalculator(t, "$0-$50000", model.NeutralCoefficients())
	calc.SetInputValue(dec("1000"))

	for _, coefficient := range []string{"1.00000000000000000001", "1.0000000000000000000000001", "0.99999999999999999999"} {
		for _, mode := range []model.RoundingMode{model.RoundNearestFive, model.RoundNearestTen} {
			require.NoError(t, calc.SetCoefficient(0, dec(coefficient)))
			calc.SetRoundingMode(model.RoundNone)
			raw := calc.Output(0)
			calc.SetRoundingMode(mode)

			got := calc.Output(0)
			assert.True(t, got.GreaterThanOrEqual(raw), "coefficient %s, %s: %s below %s", coefficient, mode, got, raw)
			assert.True(t, got.Mod(mode.Increment()).IsZero(), "coefficient %s, %s: %s not a multiple", coefficient, mode, got)
		}
	}
}

func TestOutput_InvalidSlot(t *testing.T) {
	calc := newTestCalculator(t, "$0-$1000", model.NeutralCoefficients())

	assert.True(t, calc.Output(3).IsZero())
	assert.Empty(t, calc.Formula(-1))
}

func TestResult_FormulasMatchOutputs(t *testing.T) {
	table := DefaultTable()
	for _, appeal := range model.AppealTypes() {
		for _, donor := range model.DonorCategories() {
			for _, mode := range []model.RoundingMode{model.RoundNone, model.RoundNearestFive, model.RoundNearestTen} {
				calc := newTestCalculator(t, "$1000-$5000", table.Lookup(appeal, donor))
				calc.SetInputValue(dec("3333"))
				require.NoError(t, calc.SetAdjustmentPercent(0, dec("12.5")))
				require.NoError(t, calc.SetAdjustmentPercent(2, dec("100")))
				calc.SetRoundingMode(mode)

				result := calc.Result()
				for i := 0; i < model.SlotCount; i++ {
					evaluated, err := evalFormula(result.Formulas[i])
					require.NoError(t, err, result.Formulas[i])
					assert.True(t, evaluated.Equal(result.Outputs[i]),
						"%s/%s/%s slot %d: formula %q = %s, output %s",
						appeal, donor, mode, i, result.Formulas[i], evaluated, result.Outputs[i])
					assert.True(t, result.Outputs[i].Equal(calc.Output(i)))
				}
			}
		}
	}
}

func TestRefreshCoefficients_DiscardsOverrides(t *testing.T) {
	table := DefaultTable()
	calc := newTestCalculator(t, "$0-$1000", table.Lookup(model.AppealHoliday, model.DonorMajor))

	require.NoError(t, calc.SetCoefficient(0, dec("9.99")))
	assertDecimal(t, "9.99", calc.Coefficients()[0])

	calc.RefreshCoefficients(table, model.DonorOTG, model.AppealHoliday)
	assert.True(t, calc.Coefficients().Equal(model.NewCoefficients(1.1, 1.4, 1.9)))
}

func TestToggleCollapsed_DoesNotAffectOutputs(t *testing.T) {
	calc := newTestCalculator(t, "$1000-$5000", model.NewCoefficients(1.1, 1.4, 1.9))
	before := calc.Result()

	calc.ToggleCollapsed()
	assert.True(t, calc.Collapsed())
	assert.Equal(t, before.Formulas, calc.Result().Formulas)

	calc.ToggleCollapsed()
	assert.False(t, calc.Collapsed())
}
