package calculator

import (
	"github.com/Veraticus/askarray/internal/model"
	"github.com/shopspring/decimal"
)

// BandResult is the derived view of one band: its outputs and their formulas.
type BandResult struct {
	Band       model.MonetaryBand
	Rounding   model.RoundingMode
	InputValue decimal.Decimal
	Outputs    [slotCount]decimal.Decimal
	Formulas   [slotCount]string
}

// BandCalculator owns the mutable state of one monetary band. Outputs are
// derived on every read, so each mutator leaves the band consistent.
type BandCalculator struct {
	band         model.MonetaryBand
	rounding     model.RoundingMode
	inputValue   decimal.Decimal
	coefficients model.Coefficients
	percents     [slotCount]decimal.Decimal
	collapsed    bool
}

// NewBandCalculator starts the band at its lower bound with no adjustments.
func NewBandCalculator(band model.MonetaryBand, coefficients model.Coefficients) *BandCalculator {
	return &BandCalculator{
		band:         band,
		rounding:     model.RoundNone,
		inputValue:   band.Lower(),
		coefficients: coefficients,
	}
}

// Band returns the band this calculator covers.
func (c *BandCalculator) Band() model.MonetaryBand {
	return c.band
}

// InputValue returns the current, always in-range, input value.
func (c *BandCalculator) InputValue() decimal.Decimal {
	return c.inputValue
}

// SetInputValue stores raw clamped into the band's bounds. Out-of-range
// values are never rejected.
func (c *BandCalculator) SetInputValue(raw decimal.Decimal) {
	c.inputValue = c.band.Clamp(raw)
}

// AdjustmentPercent returns the percentage for the slot, or zero for a bad index.
func (c *BandCalculator) AdjustmentPercent(index int) decimal.Decimal {
	if checkSlot(index) != nil {
		return decimal.Zero
	}
	return c.percents[index]
}

// SetAdjustmentPercent stores raw clamped to [0, 100].
func (c *BandCalculator) SetAdjustmentPercent(index int, raw decimal.Decimal) error {
	if err := checkSlot(index); err != nil {
		return err
	}
	c.percents[index] = decimal.Max(decimal.Zero, decimal.Min(raw, hundred))
	return nil
}

// Coefficients returns the current triple, including manual overrides.
func (c *BandCalculator) Coefficients() model.Coefficients {
	return c.coefficients
}

// SetCoefficient overrides the looked-up coefficient for a slot. The value is
// not constrained. The override lasts until the next RefreshCoefficients.
func (c *BandCalculator) SetCoefficient(index int, raw decimal.Decimal) error {
	if err := checkSlot(index); err != nil {
		return err
	}
	c.coefficients[index] = raw
	return nil
}

// RoundingMode returns the active rounding mode.
func (c *BandCalculator) RoundingMode() model.RoundingMode {
	return c.rounding
}

// SetRoundingMode behaves like a pair of exclusive checkboxes: choosing the
// active mode turns rounding off, choosing the other mode replaces it.
func (c *BandCalculator) SetRoundingMode(mode model.RoundingMode) {
	if mode == c.rounding || !mode.Active() {
		c.rounding = model.RoundNone
		return
	}
	c.rounding = mode
}

// RefreshCoefficients re-derives the triple from the table for the given
// selection. Manual overrides are discarded.
func (c *BandCalculator) RefreshCoefficients(table *Table, donor model.DonorCategory, appeal model.AppealType) {
	c.coefficients = table.Lookup(appeal, donor)
}

// Output computes the ask amount for a slot at full precision.
func (c *BandCalculator) Output(index int) decimal.Decimal {
	if checkSlot(index) != nil {
		return decimal.Zero
	}
	return c.term(index).Value()
}

// Formula describes the arithmetic behind Output for a slot.
func (c *BandCalculator) Formula(index int) string {
	if checkSlot(index) != nil {
		return ""
	}
	return c.term(index).Formula()
}

// Result computes every output and formula of the band.
func (c *BandCalculator) Result() BandResult {
	r := BandResult{
		Band:       c.band,
		Rounding:   c.rounding,
		InputValue: c.inputValue,
	}
	for i := 0; i < slotCount; i++ {
		t := c.term(i)
		r.Outputs[i] = t.Value()
		r.Formulas[i] = t.Formula()
	}
	return r
}

// Collapsed reports whether the band's panel is minimized. It has no effect on outputs.
func (c *BandCalculator) Collapsed() bool {
	return c.collapsed
}

// ToggleCollapsed flips the panel visibility.
func (c *BandCalculator) ToggleCollapsed() {
	c.collapsed = !c.collapsed
}

// Setting captures the band's editable state for persistence.
func (c *BandCalculator) Setting() model.BandSetting {
	return model.BandSetting{
		Title:        c.band.Title,
		Rounding:     c.rounding,
		InputValue:   c.inputValue,
		Coefficients: c.coefficients,
		Percents:     c.percents,
		Collapsed:    c.collapsed,
	}
}

// apply restores a saved setting, re-applying the same bounds the setters enforce.
func (c *BandCalculator) apply(s model.BandSetting) {
	c.SetInputValue(s.InputValue)
	c.coefficients = s.Coefficients
	for i := 0; i < slotCount; i++ {
		_ = c.SetAdjustmentPercent(i, s.Percents[i])
	}
	c.rounding = model.RoundNone
	if s.Rounding.Active() {
		c.rounding = s.Rounding
	}
	c.collapsed = s.Collapsed
}

func (c *BandCalculator) term(index int) term {
	return term{
		input:       c.inputValue,
		coefficient: c.coefficients[index],
		percent:     c.percents[index],
		rounding:    c.rounding,
	}
}
