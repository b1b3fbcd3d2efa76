package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/askarray/internal/calculator"
	"github.com/Veraticus/askarray/internal/cli"
	"github.com/Veraticus/askarray/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the form.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader(), ""}
	for i, band := range m.sheet.Calculators() {
		sections = append(sections, m.renderBand(i, band))
	}
	sections = append(sections, m.renderStatus(), m.help.View(m.keymap))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	sel := m.sheet.Selection()
	title := m.theme.Title.Render(cli.AskIcon + " Ask Array")
	if m.name != "" {
		title += m.theme.Subtitle.Render("  " + m.name)
	}

	selection := fmt.Sprintf("%s %s   %s %s",
		m.theme.Subtitle.Render("Donor:"),
		m.theme.Bold.Render(string(sel.Donor())),
		m.theme.Subtitle.Render("Appeal:"),
		m.theme.Bold.Render(sel.Appeal().Label()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, title, selection)
}

func (m Model) renderBand(i int, band *calculator.BandCalculator) string {
	focused := i == m.band
	style := m.theme.Panel
	if focused {
		style = m.theme.FocusedPanel
	}
	if w := m.width - 2; w > 0 {
		style = style.Width(w)
	}

	marker := "▾"
	if band.Collapsed() {
		marker = "▸"
	}
	heading := m.theme.Bold.Render(fmt.Sprintf("%s %s", marker, band.Band().Title))

	if band.Collapsed() {
		return style.Render(heading)
	}

	lines := []string{
		heading + "  " + m.renderRounding(band.RoundingMode()),
		m.renderField(focused, fieldInput, "Input", cli.FormatAmount(band.InputValue())),
	}

	coefs := band.Coefficients()
	for slot := 0; slot < model.SlotCount; slot++ {
		pct := m.renderField(focused, fieldPercent1+field(slot), "adj", cli.FormatPercent(band.AdjustmentPercent(slot)))
		coef := m.renderField(focused, fieldCoef1+field(slot), "×", coefs[slot].String())
		amount := m.theme.Amount.Render(cli.FormatAmount(band.Output(slot)))
		lines = append(lines, fmt.Sprintf("Ask %d  %s  %s  %s  %s",
			slot+1, amount, pct, coef, m.theme.Formula.Render(band.Formula(slot))))
	}

	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) renderField(focused bool, f field, label, value string) string {
	text := label + " " + value
	if focused && f == m.field {
		if m.state == StateEdit {
			return m.input.View()
		}
		return m.theme.Selected.Render(text)
	}
	return m.theme.Normal.Render(text)
}

func (m Model) renderRounding(mode model.RoundingMode) string {
	box := func(r model.RoundingMode) string {
		if mode == r {
			return "[x] " + r.Label()
		}
		return "[ ] " + r.Label()
	}
	return m.theme.Subtitle.Render(box(model.RoundNearestFive) + "  " + box(model.RoundNearestTen))
}

func (m Model) renderStatus() string {
	switch {
	case m.state == StateNaming:
		return m.input.View()
	case m.lastErr != nil:
		return m.theme.StatusError.Render(cli.ErrorIcon + " " + m.lastErr.Error())
	case m.status != "":
		return m.theme.StatusSuccess.Render(m.status)
	}
	return m.theme.StatusInfo.Render(fmt.Sprintf("Editing %s", fieldLabel(m.field)))
}
