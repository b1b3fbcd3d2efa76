package calculator

import "github.com/Veraticus/askarray/internal/model"

const slotCount = model.SlotCount

// Table maps an (appeal, donor) pair to its coefficient triple.
// A Table is immutable once built; With returns a modified copy.
type Table struct {
	entries map[model.AppealType]map[model.DonorCategory]model.Coefficients
}

// TableEntry is one row of a flattened Table.
type TableEntry struct {
	Appeal       model.AppealType
	Donor        model.DonorCategory
	Coefficients model.Coefficients
}

// NewTable builds a table from the given entries. The input maps are copied.
func NewTable(entries map[model.AppealType]map[model.DonorCategory]model.Coefficients) *Table {
	t := &Table{entries: make(map[model.AppealType]map[model.DonorCategory]model.Coefficients, len(entries))}
	for appeal, row := range entries {
		copied := make(map[model.DonorCategory]model.Coefficients, len(row))
		for donor, c := range row {
			copied[donor] = c
		}
		t.entries[appeal] = copied
	}
	return t
}

// DefaultTable returns the built-in coefficient table.
func DefaultTable() *Table {
	return NewTable(map[model.AppealType]map[model.DonorCategory]model.Coefficients{
		model.AppealHoliday: {
			model.DonorMajor: model.NewCoefficients(0.9, 1.0, 1.45),
			model.DonorOTG:   model.NewCoefficients(1.1, 1.4, 1.9),
			model.DonorTBZ:   model.NewCoefficients(5, 6, 7.5),
		},
		model.AppealPapers: {
			model.DonorMajor: model.NewCoefficients(0.9, 1.0, 1.45),
			model.DonorOTG:   model.NewCoefficients(0.65, 0.8, 0.9),
			model.DonorTBZ:   model.NewCoefficients(3, 3.3, 3.8),
		},
		model.AppealMonthly: {
			model.DonorMajor: model.NewCoefficients(0.9, 1.0, 1.45),
			model.DonorOTG:   model.NewCoefficients(0.09, 0.15, 0.2),
			model.DonorTBZ:   model.NewCoefficients(1.11, 1.3, 1.4),
		},
	})
}

// Lookup returns the triple for the pair, or the neutral (1,1,1) triple when the
// pair has no entry. A miss is a normal outcome, not an error.
func (t *Table) Lookup(appeal model.AppealType, donor model.DonorCategory) model.Coefficients {
	if c, ok := t.Has(appeal, donor); ok {
		return c
	}
	return model.NeutralCoefficients()
}

// Has returns the entry for the pair and whether it is defined.
func (t *Table) Has(appeal model.AppealType, donor model.DonorCategory) (model.Coefficients, bool) {
	if t == nil {
		return model.Coefficients{}, false
	}
	c, ok := t.entries[appeal][donor]
	return c, ok
}

// With returns a copy of t with the pair set to c.
func (t *Table) With(appeal model.AppealType, donor model.DonorCategory, c model.Coefficients) *Table {
	var next *Table
	if t == nil {
		next = NewTable(nil)
	} else {
		next = NewTable(t.entries)
	}
	if next.entries[appeal] == nil {
		next.entries[appeal] = make(map[model.DonorCategory]model.Coefficients)
	}
	next.entries[appeal][donor] = c
	return next
}

// Entries lists every defined pair in appeal then donor display order.
func (t *Table) Entries() []TableEntry {
	var out []TableEntry
	for _, appeal := range model.AppealTypes() {
		for _, donor := range model.DonorCategories() {
			if c, ok := t.Has(appeal, donor); ok {
				out = append(out, TableEntry{Appeal: appeal, Donor: donor, Coefficients: c})
			}
		}
	}
	return out
}
