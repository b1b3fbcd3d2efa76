package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	NextBand key.Binding
	PrevBand key.Binding

	// Adjustments
	Decrease    key.Binding
	Increase    key.Binding
	DecreaseBig key.Binding
	IncreaseBig key.Binding
	Edit        key.Binding
	RoundFive   key.Binding
	RoundTen    key.Binding
	Collapse    key.Binding

	// Selection
	CycleDonor  key.Binding
	CycleAppeal key.Binding

	// Application
	Save        key.Binding
	Help        key.Binding
	Quit        key.Binding
	ClearScreen key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "previous field"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "next field"),
		),
		NextBand: key.NewBinding(
			key.WithKeys("tab", "]"),
			key.WithHelp("Tab", "next band"),
		),
		PrevBand: key.NewBinding(
			key.WithKeys("shift+tab", "["),
			key.WithHelp("Shift+Tab", "previous band"),
		),

		Decrease: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "decrease"),
		),
		Increase: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "increase"),
		),
		DecreaseBig: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "decrease ×10"),
		),
		IncreaseBig: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "increase ×10"),
		),
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "type a value"),
		),
		RoundFive: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "round to $5"),
		),
		RoundTen: key.NewBinding(
			key.WithKeys("0"),
			key.WithHelp("0", "round to $10"),
		),
		Collapse: key.NewBinding(
			key.WithKeys(" ", "space"),
			key.WithHelp("Space", "collapse band"),
		),

		CycleDonor: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "next donor category"),
		),
		CycleAppeal: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "next appeal type"),
		),

		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "save worksheet"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ClearScreen: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("Ctrl+L", "redraw"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextBand, k.Increase, k.CycleDonor, k.CycleAppeal, k.Save, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextBand, k.PrevBand},
		{k.Decrease, k.Increase, k.DecreaseBig, k.IncreaseBig, k.Edit},
		{k.RoundFive, k.RoundTen, k.Collapse},
		{k.CycleDonor, k.CycleAppeal, k.Save, k.Help, k.Quit},
	}
}
