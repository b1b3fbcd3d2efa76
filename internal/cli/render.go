package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/Veraticus/askarray/internal/calculator"
	"github.com/Veraticus/askarray/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a dollar amount with thousands separators and cents.
func FormatAmount(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	whole, cents, _ := strings.Cut(s, ".")

	var b strings.Builder
	if d.IsNegative() {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	b.WriteByte('.')
	b.WriteString(cents)
	return b.String()
}

// FormatPercent renders an adjustment percentage.
func FormatPercent(d decimal.Decimal) string {
	return d.String() + "%"
}

func newTable() *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(SubtleStyle).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return TableHeaderStyle
			}
			return TableCellStyle
		})
}

// RenderCoefficientTable renders every appeal/donor pair with its triple.
func RenderCoefficientTable(t *calculator.Table) string {
	tbl := newTable().Headers("Appeal", "Donor", "Ask 1", "Ask 2", "Ask 3")
	for _, e := range t.Entries() {
		tbl.Row(
			e.Appeal.Label(),
			string(e.Donor),
			e.Coefficients[0].String(),
			e.Coefficients[1].String(),
			e.Coefficients[2].String(),
		)
	}
	return tbl.String()
}

// RenderBands renders band titles with their parsed bounds.
func RenderBands(bands []model.MonetaryBand) string {
	tbl := newTable().Headers("#", "Band", "Lower", "Upper")
	for i, b := range bands {
		tbl.Row(
			fmt.Sprint(i+1),
			b.Title,
			FormatAmount(b.Lower()),
			FormatAmount(b.Upper()),
		)
	}
	return tbl.String()
}

// RenderResults renders computed ask amounts, one row per band. With
// formulas set, each ask is followed by the arithmetic that produced it.
func RenderResults(results []calculator.BandResult, formulas bool) string {
	headers := []string{"Band", "Input", "Rounding", "Ask 1", "Ask 2", "Ask 3"}
	tbl := newTable().Headers(headers...)

	for _, r := range results {
		rounding := ""
		if r.Rounding.Active() {
			rounding = "$" + r.Rounding.Increment().String()
		}
		row := []string{r.Band.Title, FormatAmount(r.InputValue), rounding}
		for i, out := range r.Outputs {
			cell := AmountStyle.Render(FormatAmount(out))
			if formulas {
				cell += "\n" + SubtleStyle.Render(r.Formulas[i])
			}
			row = append(row, cell)
		}
		tbl.Row(row...)
	}

	return tbl.String()
}

// RenderSelection is the one-line heading above a set of results.
func RenderSelection(donor model.DonorCategory, appeal model.AppealType) string {
	return FormatTitle(fmt.Sprintf("%s · %s", appeal.Label(), donor))
}

// RenderWorksheets lists saved worksheets.
func RenderWorksheets(worksheets []model.Worksheet) string {
	if len(worksheets) == 0 {
		return FormatInfo("No saved worksheets.")
	}

	tbl := newTable().Headers("Name", "Donor", "Appeal", "Updated")
	for _, ws := range worksheets {
		tbl.Row(
			ws.Name,
			string(ws.Donor),
			ws.Appeal.Label(),
			ws.UpdatedAt.Local().Format(time.DateTime),
		)
	}
	return tbl.String()
}
