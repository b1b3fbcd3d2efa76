// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/Veraticus/askarray/internal/calculator"
	"github.com/Veraticus/askarray/internal/model"
)

// Storage defines the contract for our persistence layer.
type Storage interface {
	// Worksheet operations
	SaveWorksheet(ctx context.Context, worksheet *model.Worksheet) error
	GetWorksheet(ctx context.Context, name string) (*model.Worksheet, error)
	ListWorksheets(ctx context.Context) ([]model.Worksheet, error)
	DeleteWorksheet(ctx context.Context, name string) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ReportWriter publishes a computed ask array somewhere outside the process.
type ReportWriter interface {
	Write(ctx context.Context, report *AskReport) error
}

// AskReport is a fully computed ask sheet ready for export.
type AskReport struct {
	GeneratedAt time.Time
	Name        string
	Donor       model.DonorCategory
	Appeal      model.AppealType
	Results     []calculator.BandResult
}

// NewAskReport computes every band of the sheet into a report.
func NewAskReport(name string, sheet *calculator.Sheet) *AskReport {
	return &AskReport{
		GeneratedAt: time.Now(),
		Name:        name,
		Donor:       sheet.Selection().Donor(),
		Appeal:      sheet.Selection().Appeal(),
		Results:     sheet.Results(),
	}
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
