package tui

import (
	"github.com/Veraticus/askarray/internal/service"
	"github.com/Veraticus/askarray/internal/tui/themes"
)

// Config holds TUI configuration.
type Config struct {
	Theme   themes.Theme
	Storage service.Storage
	Name    string
	Width   int
	Height  int
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:  themes.Default,
		Width:  100,
		Height: 40,
	}
}

// WithStorage enables saving worksheets from the form.
func WithStorage(storage service.Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithName sets the worksheet name used when saving.
func WithName(name string) Option {
	return func(c *Config) {
		c.Name = name
	}
}
