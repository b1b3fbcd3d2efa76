package calculator

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/askarray/internal/model"
)

// Sheet is a whole ask array form: one selection driving a calculator per band.
type Sheet struct {
	table     *Table
	selection *Selection
	bands     []*BandCalculator
}

// NewSheet parses the band titles and wires every band to the selection.
// A malformed title aborts construction with a ParseError.
func NewSheet(table *Table, titles []string, donor model.DonorCategory, appeal model.AppealType) (*Sheet, error) {
	if len(titles) == 0 {
		return nil, ErrNoBands
	}
	if table == nil {
		table = DefaultTable()
	}

	selection, err := NewSelection(donor, appeal)
	if err != nil {
		return nil, err
	}

	bands, err := ParseBands(titles)
	if err != nil {
		return nil, err
	}

	s := &Sheet{
		table:     table,
		selection: selection,
		bands:     make([]*BandCalculator, 0, len(bands)),
	}
	initial := table.Lookup(appeal, donor)
	for _, band := range bands {
		calc := NewBandCalculator(band, initial)
		selection.Subscribe(func(d model.DonorCategory, a model.AppealType) {
			calc.RefreshCoefficients(table, d, a)
		})
		s.bands = append(s.bands, calc)
	}

	return s, nil
}

// Table returns the coefficient table the sheet looks up from.
func (s *Sheet) Table() *Table {
	return s.table
}

// Selection returns the sheet's selection context.
func (s *Sheet) Selection() *Selection {
	return s.selection
}

// Len returns the number of bands.
func (s *Sheet) Len() int {
	return len(s.bands)
}

// Bands returns the band descriptors in display order.
func (s *Sheet) Bands() []model.MonetaryBand {
	out := make([]model.MonetaryBand, len(s.bands))
	for i, c := range s.bands {
		out[i] = c.Band()
	}
	return out
}

// Band returns the calculator at index i.
func (s *Sheet) Band(i int) (*BandCalculator, error) {
	if i < 0 || i >= len(s.bands) {
		return nil, fmt.Errorf("%w: index %d", ErrBandNotFound, i)
	}
	return s.bands[i], nil
}

// Calculators returns every band calculator in display order.
func (s *Sheet) Calculators() []*BandCalculator {
	return s.bands
}

// FindBand resolves a zero-based index or a band title to an index.
func (s *Sheet) FindBand(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if i, err := strconv.Atoi(ref); err == nil {
		if i >= 0 && i < len(s.bands) {
			return i, nil
		}
		return -1, fmt.Errorf("%w: index %d", ErrBandNotFound, i)
	}
	for i, c := range s.bands {
		if strings.EqualFold(c.Band().Title, ref) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrBandNotFound, ref)
}

// Results computes every band's outputs.
func (s *Sheet) Results() []BandResult {
	out := make([]BandResult, len(s.bands))
	for i, c := range s.bands {
		out[i] = c.Result()
	}
	return out
}

// Snapshot captures the sheet as a named worksheet.
func (s *Sheet) Snapshot(name string) model.Worksheet {
	now := time.Now()
	ws := model.Worksheet{
		CreatedAt: now,
		UpdatedAt: now,
		Name:      name,
		Donor:     s.selection.Donor(),
		Appeal:    s.selection.Appeal(),
		Bands:     make([]model.BandSetting, len(s.bands)),
	}
	for i, c := range s.bands {
		ws.Bands[i] = c.Setting()
	}
	return ws
}

// Restore loads a worksheet into the sheet. The selection is applied first,
// then each band's saved state, so saved coefficient overrides survive.
// Saved bands whose title is not on this sheet are skipped.
func (s *Sheet) Restore(ws model.Worksheet) error {
	// Reject the pair before touching any band.
	if _, err := NewSelection(ws.Donor, ws.Appeal); err != nil {
		return err
	}
	if err := s.selection.SetDonorCategory(ws.Donor); err != nil {
		return err
	}
	if err := s.selection.SetAppealType(ws.Appeal); err != nil {
		return err
	}

	for _, c := range s.bands {
		c.RefreshCoefficients(s.table, ws.Donor, ws.Appeal)
		if setting, ok := ws.Band(c.Band().Title); ok {
			c.apply(setting)
		}
	}

	for _, setting := range ws.Bands {
		if _, err := s.FindBand(setting.Title); err != nil {
			slog.Warn("Skipping saved band not on this sheet",
				"worksheet", ws.Name,
				"band", setting.Title)
		}
	}

	return nil
}
