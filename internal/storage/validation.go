// Package storage persists named worksheets in SQLite.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/askarray/internal/model"
)

// Validation errors.
var (
	ErrNilContext       = errors.New("context cannot be nil")
	ErrEmptyString      = errors.New("string parameter cannot be empty")
	ErrNilParameter     = errors.New("parameter cannot be nil")
	ErrInvalidWorksheet = errors.New("invalid worksheet")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateWorksheet checks everything the schema cannot.
func validateWorksheet(ws *model.Worksheet) error {
	if ws == nil {
		return fmt.Errorf("%w: worksheet", ErrNilParameter)
	}
	if strings.TrimSpace(ws.Name) == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidWorksheet)
	}
	if !ws.Donor.Valid() {
		return fmt.Errorf("%w: unknown donor category %q", ErrInvalidWorksheet, ws.Donor)
	}
	if !ws.Appeal.Valid() {
		return fmt.Errorf("%w: unknown appeal type %q", ErrInvalidWorksheet, ws.Appeal)
	}

	seen := make(map[string]bool, len(ws.Bands))
	for i, b := range ws.Bands {
		if strings.TrimSpace(b.Title) == "" {
			return fmt.Errorf("%w: band %d has no title", ErrInvalidWorksheet, i)
		}
		if seen[b.Title] {
			return fmt.Errorf("%w: duplicate band %q", ErrInvalidWorksheet, b.Title)
		}
		seen[b.Title] = true
		if _, err := model.ParseRoundingMode(string(b.Rounding)); err != nil {
			return fmt.Errorf("%w: band %q: %w", ErrInvalidWorksheet, b.Title, err)
		}
	}
	return nil
}
