// Package tui is the interactive ask array form built on bubbletea.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/Veraticus/askarray/internal/calculator"
	"github.com/Veraticus/askarray/internal/model"
	"github.com/Veraticus/askarray/internal/service"
	"github.com/Veraticus/askarray/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
)

// State represents what the keyboard is currently driving.
type State int

const (
	// StateBrowse moves focus and adjusts values.
	StateBrowse State = iota
	// StateEdit types an exact value into the focused field.
	StateEdit
	// StateNaming asks for a worksheet name before saving.
	StateNaming
)

// field is a focusable value inside a band panel.
type field int

const (
	fieldInput field = iota
	fieldPercent1
	fieldPercent2
	fieldPercent3
	fieldCoef1
	fieldCoef2
	fieldCoef3
	fieldCount
)

func (f field) isPercent() bool { return f >= fieldPercent1 && f <= fieldPercent3 }
func (f field) isCoef() bool    { return f >= fieldCoef1 && f <= fieldCoef3 }

// slot is the output index a percent or coefficient field belongs to.
func (f field) slot() int {
	switch {
	case f.isPercent():
		return int(f - fieldPercent1)
	case f.isCoef():
		return int(f - fieldCoef1)
	}
	return -1
}

// coefStep is how far one keypress moves a coefficient.
var coefStep = decimal.RequireFromString("0.05")

const saveTimeout = 5 * time.Second

// Model holds the form state. The sheet is shared, so every copy of the
// model sees the same band calculators.
type Model struct {
	theme    themes.Theme
	storage  service.Storage
	sheet    *calculator.Sheet
	lastErr  error
	input    textinput.Model
	help     help.Model
	keymap   KeyMap
	name     string
	status   string
	width    int
	height   int
	band     int
	field    field
	state    State
	quitting bool
}

// New creates the form model for sheet.
func New(sheet *calculator.Sheet, opts ...Option) Model {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	input := textinput.New()
	input.CharLimit = 64

	h := help.New()
	h.Width = cfg.Width

	return Model{
		theme:   cfg.Theme,
		storage: cfg.Storage,
		sheet:   sheet,
		input:   input,
		help:    h,
		keymap:  DefaultKeyMap(),
		name:    cfg.Name,
		width:   cfg.Width,
		height:  cfg.Height,
	}
}

// Sheet returns the sheet the form edits.
func (m Model) Sheet() *calculator.Sheet {
	return m.sheet
}

// Name returns the worksheet name, empty until the form has been saved or named.
func (m Model) Name() string {
	return m.name
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case savedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("save %q: %w", msg.name, msg.err))
			return m, nil
		}
		m.name = msg.name
		m.setStatus(fmt.Sprintf("Saved worksheet %q", msg.name))
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateEdit:
			return m.updateEdit(msg)
		case StateNaming:
			return m.updateNaming(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	band := m.currentBand()

	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, k.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, k.ClearScreen):
		return m, tea.ClearScreen

	case key.Matches(msg, k.CycleDonor):
		sel := m.sheet.Selection()
		if err := sel.SetDonorCategory(sel.Donor().Next()); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Donor category: " + string(sel.Donor()))
		}
	case key.Matches(msg, k.CycleAppeal):
		sel := m.sheet.Selection()
		if err := sel.SetAppealType(sel.Appeal().Next()); err != nil {
			m.setError(err)
		} else {
			m.setStatus("Appeal type: " + sel.Appeal().Label())
		}

	case key.Matches(msg, k.NextBand):
		m.band = (m.band + 1) % m.sheet.Len()
	case key.Matches(msg, k.PrevBand):
		m.band = (m.band - 1 + m.sheet.Len()) % m.sheet.Len()
	case key.Matches(msg, k.Down):
		if !band.Collapsed() {
			m.field = (m.field + 1) % fieldCount
		}
	case key.Matches(msg, k.Up):
		if !band.Collapsed() {
			m.field = (m.field - 1 + fieldCount) % fieldCount
		}

	case key.Matches(msg, k.Collapse):
		band.ToggleCollapsed()
	case key.Matches(msg, k.RoundFive):
		band.SetRoundingMode(model.RoundNearestFive)
	case key.Matches(msg, k.RoundTen):
		band.SetRoundingMode(model.RoundNearestTen)

	case key.Matches(msg, k.Decrease):
		m.adjust(-1)
	case key.Matches(msg, k.Increase):
		m.adjust(1)
	case key.Matches(msg, k.DecreaseBig):
		m.adjust(-10)
	case key.Matches(msg, k.IncreaseBig):
		m.adjust(10)

	case key.Matches(msg, k.Edit):
		if band.Collapsed() {
			break
		}
		m.state = StateEdit
		m.input.Prompt = fieldLabel(m.field) + ": "
		m.input.SetValue(m.fieldValue(band, m.field).String())
		m.input.CursorEnd()
		return m, m.input.Focus()

	case key.Matches(msg, k.Save):
		if m.storage == nil {
			m.setError(fmt.Errorf("no worksheet database configured"))
			break
		}
		if m.name == "" {
			m.state = StateNaming
			m.input.Prompt = "Worksheet name: "
			m.input.SetValue("")
			return m, m.input.Focus()
		}
		return m, m.saveCmd(m.name)
	}

	return m, nil
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = StateBrowse
		m.input.Blur()
		return m, nil
	case tea.KeyEnter:
		m.state = StateBrowse
		m.input.Blur()
		v, err := decimal.NewFromString(m.input.Value())
		if err != nil {
			m.setError(fmt.Errorf("%q is not a number", m.input.Value()))
			return m, nil
		}
		if err := m.setFieldValue(m.currentBand(), m.field, v); err != nil {
			m.setError(err)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateNaming(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = StateBrowse
		m.input.Blur()
		m.setStatus("Save canceled")
		return m, nil
	case tea.KeyEnter:
		name := m.input.Value()
		if name == "" {
			return m, nil
		}
		m.state = StateBrowse
		m.input.Blur()
		return m, m.saveCmd(name)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) saveCmd(name string) tea.Cmd {
	ws := m.sheet.Snapshot(name)
	storage := m.storage
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
		defer cancel()
		return savedMsg{name: name, err: storage.SaveWorksheet(ctx, &ws)}
	}
}

func (m Model) currentBand() *calculator.BandCalculator {
	return m.sheet.Calculators()[m.band]
}

// adjust moves the focused field by steps increments. Collapsed bands are
// left alone.
func (m *Model) adjust(steps int64) {
	band := m.currentBand()
	if band.Collapsed() {
		return
	}

	n := decimal.NewFromInt(steps)
	switch {
	case m.field == fieldInput:
		band.SetInputValue(band.InputValue().Add(inputStep(band.Band()).Mul(n)))
	case m.field.isPercent():
		i := m.field.slot()
		_ = band.SetAdjustmentPercent(i, band.AdjustmentPercent(i).Add(n))
	case m.field.isCoef():
		i := m.field.slot()
		next := band.Coefficients()[i].Add(coefStep.Mul(n))
		// Arrow keys stop at zero; a typed value may still go below.
		if next.IsNegative() {
			next = decimal.Zero
		}
		_ = band.SetCoefficient(i, next)
	}
}

// inputStep is one hundredth of the band's span, at least one dollar.
func inputStep(b model.MonetaryBand) decimal.Decimal {
	step := b.Upper().Sub(b.Lower()).Div(decimal.NewFromInt(100)).Round(0)
	if step.LessThan(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(1)
	}
	return step
}

func (m Model) fieldValue(band *calculator.BandCalculator, f field) decimal.Decimal {
	switch {
	case f.isPercent():
		return band.AdjustmentPercent(f.slot())
	case f.isCoef():
		return band.Coefficients()[f.slot()]
	}
	return band.InputValue()
}

func (m Model) setFieldValue(band *calculator.BandCalculator, f field, v decimal.Decimal) error {
	switch {
	case f.isPercent():
		return band.SetAdjustmentPercent(f.slot(), v)
	case f.isCoef():
		return band.SetCoefficient(f.slot(), v)
	}
	band.SetInputValue(v)
	return nil
}

func fieldLabel(f field) string {
	switch {
	case f.isPercent():
		return fmt.Sprintf("Ask %d adjustment %%", f.slot()+1)
	case f.isCoef():
		return fmt.Sprintf("Ask %d coefficient", f.slot()+1)
	}
	return "Input value"
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.lastErr = nil
}

func (m *Model) setError(err error) {
	m.status = ""
	m.lastErr = err
}
