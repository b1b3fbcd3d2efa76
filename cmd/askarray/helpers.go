package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Veraticus/askarray/internal/calculator"
	"github.com/Veraticus/askarray/internal/config"
	"github.com/Veraticus/askarray/internal/model"
	"github.com/Veraticus/askarray/internal/service"
	"github.com/Veraticus/askarray/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// initStorage opens the worksheet database and brings its schema up to date.
func initStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := config.DatabasePath()

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Debug("Opened worksheet database", "path", dbPath)
	return store, nil
}

// loadWorksheetSheet builds a sheet from configuration and restores the
// named worksheet onto it.
func loadWorksheetSheet(ctx context.Context, store service.Storage, name string) (*calculator.Sheet, *model.Worksheet, error) {
	ws, err := store.GetWorksheet(ctx, name)
	if err != nil {
		return nil, nil, err
	}

	sheet, err := config.LoadSheet()
	if err != nil {
		return nil, nil, err
	}
	if err := sheet.Restore(*ws); err != nil {
		return nil, nil, fmt.Errorf("failed to restore worksheet %q: %w", name, err)
	}
	return sheet, ws, nil
}

// parseDecimals parses at most limit decimal flag values.
func parseDecimals(flag string, values []string, limit int) ([]decimal.Decimal, error) {
	if len(values) > limit {
		return nil, fmt.Errorf("--%s accepts at most %d values, got %d", flag, limit, len(values))
	}

	out := make([]decimal.Decimal, 0, len(values))
	for _, v := range values {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return nil, fmt.Errorf("--%s: %q is not a number", flag, v)
		}
		out = append(out, d)
	}
	return out, nil
}

// configDir is $XDG_CONFIG_HOME/askarray or ~/.config/askarray.
func configDir() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "askarray"), nil
}

// saveConfig writes viper's settings back to the config file in use.
func saveConfig() error {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		dir, err := configDir()
		if err != nil {
			return err
		}
		configFile = filepath.Join(dir, "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0750); err != nil {
		return err
	}

	return viper.WriteConfigAs(configFile)
}
