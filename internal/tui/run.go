package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Veraticus/askarray/internal/calculator"
	tea "github.com/charmbracelet/bubbletea"
)

// Run shows the form for sheet until the user quits or ctx is canceled.
// It returns the final model so callers can read the worksheet name.
func Run(ctx context.Context, sheet *calculator.Sheet, opts ...Option) (Model, error) {
	if sheet == nil {
		return Model{}, fmt.Errorf("sheet is required")
	}

	// Restore the terminal even if the program dies mid-frame.
	cleanupTerminal := func() {
		_, _ = os.Stdout.Write([]byte("\033[?1049l")) // Exit alternate screen
		_, _ = os.Stdout.Write([]byte("\033[?25h"))   // Show cursor
		_, _ = os.Stdout.Write([]byte("\033[m"))      // Reset colors
	}
	defer cleanupTerminal()

	program := tea.NewProgram(
		New(sheet, opts...),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := program.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return Model{}, fmt.Errorf("TUI error: %w", err)
	}

	m, ok := final.(Model)
	if !ok {
		return Model{}, fmt.Errorf("unexpected model type %T", final)
	}
	return m, ctx.Err()
}
