package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Worksheet is a saved ask array scenario: a selection plus the state of every band.
type Worksheet struct {
	CreatedAt time.Time
	UpdatedAt time.Time
	ID        string
	Name      string
	Donor     DonorCategory
	Appeal    AppealType
	Bands     []BandSetting
}

// BandSetting captures the user-editable state of one band.
type BandSetting struct {
	Title        string
	Rounding     RoundingMode
	InputValue   decimal.Decimal
	Coefficients Coefficients
	Percents     [SlotCount]decimal.Decimal
	Collapsed    bool
}

// NewWorksheetID returns a fresh identifier for a worksheet.
func NewWorksheetID() string {
	return uuid.NewString()
}

// Band returns the setting stored for the given band title.
func (w *Worksheet) Band(title string) (BandSetting, bool) {
	for _, b := range w.Bands {
		if b.Title == title {
			return b, true
		}
	}
	return BandSetting{}, false
}
