package config

import (
	"fmt"
	"os"

	"github.com/Veraticus/askarray/internal/common"
	"github.com/Veraticus/askarray/internal/sheets"
	"github.com/spf13/viper"
)

// LoadSheetsConfig loads Google Sheets configuration from Viper and environment variables.
// It follows this precedence:
// 1. Viper configuration (from config file or ASKARRAY_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetsConfig() (*sheets.Config, error) {
	cfg := sheets.DefaultConfig()

	fromViper := map[string]*string{
		"sheets.service_account_path": &cfg.ServiceAccountPath,
		"sheets.client_id":            &cfg.ClientID,
		"sheets.client_secret":        &cfg.ClientSecret,
		"sheets.refresh_token":        &cfg.RefreshToken,
		"sheets.spreadsheet_id":       &cfg.SpreadsheetID,
		"sheets.spreadsheet_name":     &cfg.SpreadsheetName,
		"sheets.time_zone":            &cfg.TimeZone,
	}
	for key, dst := range fromViper {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}

	fromEnv := map[string]*string{
		"GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH": &cfg.ServiceAccountPath,
		"GOOGLE_SHEETS_CLIENT_ID":            &cfg.ClientID,
		"GOOGLE_SHEETS_CLIENT_SECRET":        &cfg.ClientSecret,
		"GOOGLE_SHEETS_REFRESH_TOKEN":        &cfg.RefreshToken,
		"GOOGLE_SHEETS_SPREADSHEET_ID":       &cfg.SpreadsheetID,
	}
	for env, dst := range fromEnv {
		if *dst == "" {
			*dst = os.Getenv(env)
		}
	}
	if cfg.SpreadsheetName == sheets.DefaultSpreadsheetName {
		if v := os.Getenv("GOOGLE_SHEETS_SPREADSHEET_NAME"); v != "" {
			cfg.SpreadsheetName = v
		}
	}

	cfg.ServiceAccountPath = ExpandPath(cfg.ServiceAccountPath)

	if cfg.ServiceAccountPath == "" && cfg.RefreshToken == "" {
		return nil, common.NewUserError(
			"Google Sheets is not configured; run 'askarray auth sheets' or set sheets.service_account_path",
			common.ErrMissingConfig)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: sheets: %w", common.ErrInvalidConfig, err)
	}

	return &cfg, nil
}
