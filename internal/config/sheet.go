package config

import (
	"fmt"

	"github.com/Veraticus/askarray/internal/calculator"
	"github.com/Veraticus/askarray/internal/common"
	"github.com/Veraticus/askarray/internal/model"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// LoadSelection returns the default donor and appeal from defaults.donor and
// defaults.appeal, falling back to Major Donor / Holiday Appeal.
func LoadSelection() (model.DonorCategory, model.AppealType, error) {
	donor, appeal := model.DonorMajor, model.AppealHoliday

	if v := viper.GetString("defaults.donor"); v != "" {
		d, err := model.ParseDonorCategory(v)
		if err != nil {
			return "", "", fmt.Errorf("%w: defaults.donor: %w", common.ErrInvalidConfig, err)
		}
		donor = d
	}
	if v := viper.GetString("defaults.appeal"); v != "" {
		a, err := model.ParseAppealType(v)
		if err != nil {
			return "", "", fmt.Errorf("%w: defaults.appeal: %w", common.ErrInvalidConfig, err)
		}
		appeal = a
	}

	return donor, appeal, nil
}

// LoadBandTitles returns bands.titles or the default six bands.
func LoadBandTitles() []string {
	if titles := viper.GetStringSlice("bands.titles"); len(titles) > 0 {
		return titles
	}
	return calculator.DefaultBandTitles
}

// LoadCoefficientTable merges the coefficients section over the default table:
//
//	coefficients:
//	  holiday:
//	    otg: [1.2, 1.5, 2.0]
func LoadCoefficientTable() (*calculator.Table, error) {
	table := calculator.DefaultTable()

	raw := viper.GetStringMap("coefficients")
	for appealKey, row := range raw {
		appeal, err := model.ParseAppealType(appealKey)
		if err != nil {
			return nil, fmt.Errorf("%w: coefficients: %w", common.ErrInvalidConfig, err)
		}

		donors, err := cast.ToStringMapE(row)
		if err != nil {
			return nil, fmt.Errorf("%w: coefficients.%s must be a map of donor categories", common.ErrInvalidConfig, appealKey)
		}

		for donorKey, values := range donors {
			donor, err := model.ParseDonorCategory(donorKey)
			if err != nil {
				return nil, fmt.Errorf("%w: coefficients.%s: %w", common.ErrInvalidConfig, appealKey, err)
			}
			c, err := parseTriple(values)
			if err != nil {
				return nil, fmt.Errorf("%w: coefficients.%s.%s: %w", common.ErrInvalidConfig, appealKey, donorKey, err)
			}
			table = table.With(appeal, donor, c)
		}
	}

	return table, nil
}

func parseTriple(v any) (model.Coefficients, error) {
	items, err := cast.ToSliceE(v)
	if err != nil {
		return model.Coefficients{}, fmt.Errorf("expected a list of %d numbers", model.SlotCount)
	}
	if len(items) != model.SlotCount {
		return model.Coefficients{}, fmt.Errorf("expected %d numbers, got %d", model.SlotCount, len(items))
	}

	var c model.Coefficients
	for i, item := range items {
		s, err := cast.ToStringE(item)
		if err != nil {
			return model.Coefficients{}, fmt.Errorf("item %d: %w", i, err)
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return model.Coefficients{}, fmt.Errorf("item %d: %w", i, err)
		}
		c[i] = d
	}
	return c, nil
}

// LoadSheet builds an ask sheet from the configured table, bands and defaults.
// Malformed band titles are fatal.
func LoadSheet() (*calculator.Sheet, error) {
	table, err := LoadCoefficientTable()
	if err != nil {
		return nil, err
	}
	donor, appeal, err := LoadSelection()
	if err != nil {
		return nil, err
	}
	sheet, err := calculator.NewSheet(table, LoadBandTitles(), donor, appeal)
	if err != nil {
		return nil, fmt.Errorf("%w: bands.titles: %w", common.ErrInvalidConfig, err)
	}
	return sheet, nil
}
