package storage

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Veraticus/askarray/internal/model"
	"github.com/shopspring/decimal"
)

func TestValidateContext(t *testing.T) {
	tests := []struct {
		ctx     context.Context
		name    string
		wantErr bool
	}{
		{
			name:    "valid context",
			ctx:     context.Background(),
			wantErr: false,
		},
		{
			name:    "nil context",
			ctx:     nil,
			wantErr: true,
		},
		{
			name: "canceled context still valid",
			ctx: func() context.Context {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx
			}(),
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateContext(tt.ctx)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateContext() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateString(t *testing.T) {
	tests := []struct {
		name      string
		str       string
		paramName string
		wantErr   bool
	}{
		{
			name:      "valid string",
			str:       "test",
			paramName: "param",
			wantErr:   false,
		},
		{
			name:      "empty string",
			str:       "",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			str:       "   ",
			paramName: "param",
			wantErr:   true,
		},
		{
			name:      "string with spaces",
			str:       "  test  ",
			paramName: "param",
			wantErr:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateString(tt.str, tt.paramName)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateString() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.paramName) {
				t.Errorf("validateString() error should contain param name %s, got %v", tt.paramName, err)
			}
		})
	}
}

func TestValidateWorksheet(t *testing.T) {
	valid := func() *model.Worksheet {
		return &model.Worksheet{
			Name:   "Holiday 2024",
			Donor:  model.DonorMajor,
			Appeal: model.AppealHoliday,
			Bands: []model.BandSetting{
				{Title: "$0-$1000", Rounding: model.RoundNone, InputValue: decimal.NewFromInt(500)},
				{Title: "$1000-$5000", Rounding: model.RoundNearestTen},
			},
		}
	}

	tests := []struct {
		mutate  func(*model.Worksheet)
		name    string
		errMsg  string
		wantErr bool
	}{
		{
			name:   "valid worksheet",
			mutate: func(*model.Worksheet) {},
		},
		{
			name:    "missing name",
			mutate:  func(ws *model.Worksheet) { ws.Name = "  " },
			wantErr: true,
			errMsg:  "missing name",
		},
		{
			name:    "unknown donor",
			mutate:  func(ws *model.Worksheet) { ws.Donor = "Whale" },
			wantErr: true,
			errMsg:  "unknown donor category",
		},
		{
			name:    "unknown appeal",
			mutate:  func(ws *model.Worksheet) { ws.Appeal = "Spring" },
			wantErr: true,
			errMsg:  "unknown appeal type",
		},
		{
			name:    "untitled band",
			mutate:  func(ws *model.Worksheet) { ws.Bands[1].Title = "" },
			wantErr: true,
			errMsg:  "band 1 has no title",
		},
		{
			name:    "duplicate band",
			mutate:  func(ws *model.Worksheet) { ws.Bands[1].Title = ws.Bands[0].Title },
			wantErr: true,
			errMsg:  "duplicate band",
		},
		{
			name:    "bad rounding",
			mutate:  func(ws *model.Worksheet) { ws.Bands[0].Rounding = "quarter" },
			wantErr: true,
			errMsg:  "unknown rounding mode",
		},
		{
			name:   "empty rounding means none",
			mutate: func(ws *model.Worksheet) { ws.Bands[0].Rounding = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := valid()
			tt.mutate(ws)

			err := validateWorksheet(ws)
			if (err != nil) != tt.wantErr {
				t.Fatalf("validateWorksheet() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidWorksheet) {
				t.Errorf("validateWorksheet() error = %v, want ErrInvalidWorksheet", err)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("validateWorksheet() error = %v, want it to contain %q", err, tt.errMsg)
			}
		})
	}

	if err := validateWorksheet(nil); !errors.Is(err, ErrNilParameter) {
		t.Errorf("validateWorksheet(nil) error = %v, want ErrNilParameter", err)
	}
}
