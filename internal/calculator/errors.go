// Package calculator computes suggested donation ask amounts per monetary band.
package calculator

import (
	"errors"
	"fmt"
)

var (
	// ErrParse matches every ParseError.
	ErrParse = errors.New("invalid band title")
	// ErrInvalidSlot is returned when an output slot index is outside 0..2.
	ErrInvalidSlot = errors.New("output slot out of range")
	// ErrBandNotFound is returned when a band reference matches no band.
	ErrBandNotFound = errors.New("band not found")
	// ErrNoBands is returned when a sheet is built without any band titles.
	ErrNoBands = errors.New("no bands configured")
)

// ParseError reports a band title that does not yield two usable bounds.
// Band titles are static configuration, so callers treat it as fatal.
type ParseError struct {
	Title  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse band title %q: %s", e.Title, e.Reason)
}

// Is lets errors.Is(err, ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func checkSlot(index int) error {
	if index < 0 || index >= slotCount {
		return fmt.Errorf("%w: %d", ErrInvalidSlot, index)
	}
	return nil
}
