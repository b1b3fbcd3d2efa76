package sheets

import (
	"fmt"
	"strings"

	"github.com/Veraticus/askarray/internal/model"
	"github.com/Veraticus/askarray/internal/service"
)

// headerRow labels the per-band columns.
var headerRow = []any{
	"Band", "Input", "Rounding",
	"Ask 1", "Ask 2", "Ask 3",
	"Formula 1", "Formula 2", "Formula 3",
}

// headerRowIndex is the zero-based row holding headerRow.
const headerRowIndex = 2

// TabTitle is the sheet tab a report is written to.
func TabTitle(report *service.AskReport) string {
	name := strings.TrimSpace(report.Name)
	if name == "" {
		name = fmt.Sprintf("%s - %s", report.Appeal.Label(), report.Donor)
	}
	// Sheets rejects these characters in tab titles.
	return strings.NewReplacer("[", "(", "]", ")", "*", "", "?", "", "/", "-", "\\", "-", ":", "-").Replace(name)
}

// prepareValues lays out a report as rows: a title row, a blank row, the
// header and one row per band. Amounts are written as numbers at cent precision.
func prepareValues(report *service.AskReport) [][]any {
	values := make([][]any, 0, headerRowIndex+1+len(report.Results))

	values = append(values,
		[]any{
			"Ask Array",
			report.Name,
			string(report.Donor),
			report.Appeal.Label(),
			report.GeneratedAt.Format("Jan 2, 2006"),
		},
		[]any{},
		headerRow,
	)

	for _, r := range report.Results {
		row := []any{
			r.Band.Title,
			r.InputValue.Round(2).InexactFloat64(),
			roundingLabel(r.Rounding),
		}
		for _, out := range r.Outputs {
			row = append(row, out.Round(2).InexactFloat64())
		}
		for _, f := range r.Formulas {
			row = append(row, f)
		}
		values = append(values, row)
	}

	return values
}

func roundingLabel(r model.RoundingMode) string {
	switch r {
	case model.RoundNearestFive:
		return "$5"
	case model.RoundNearestTen:
		return "$10"
	}
	return ""
}
