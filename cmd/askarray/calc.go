package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Veraticus/askarray/internal/calculator"
	"github.com/Veraticus/askarray/internal/cli"
	"github.com/Veraticus/askarray/internal/config"
	"github.com/Veraticus/askarray/internal/model"
	"github.com/spf13/cobra"
)

func tableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Show the coefficient table",
		Long:  `Show the coefficient triple for every appeal type and donor category, with config overrides applied.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := config.LoadCoefficientTable()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderCoefficientTable(table))
			return err
		},
	}
}

func bandsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bands",
		Short: "Show the gift bands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			bands, err := calculator.ParseBands(config.LoadBandTitles())
			if err != nil {
				return fmt.Errorf("bands.titles: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderBands(bands))
			return err
		},
	}
}

// calcOptions are the calc command's flags.
type calcOptions struct {
	donor     string
	appeal    string
	value     string
	round     string
	worksheet string
	save      string
	bands     []string
	percents  []string
	coefs     []string
	formulas  bool
}

func calcCmd() *cobra.Command {
	var opts calcOptions

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute ask amounts",
		Long: `Compute the three ask amounts for one or all gift bands.

Values given with --value, --percent, --coef and --round apply to every
band selected with --band, or to all bands when --band is omitted.`,
		Example: `  # Default selection, every band
  askarray calc

  # Monthly appeal for OTG donors, one band with a $420 gift and $5 rounding
  askarray calc --appeal monthly --donor otg --band '$0-$1000' --value 420 --round 5

  # Raise the second ask by 10% and show the arithmetic
  askarray calc --band 1 --value 2500 --percent 0,10 --formulas`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalc(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.donor, "donor", "", "donor category (major, otg, tbz)")
	cmd.Flags().StringVar(&opts.appeal, "appeal", "", "appeal type (holiday, papers, monthly)")
	cmd.Flags().StringSliceVar(&opts.bands, "band", nil, "band index (0-based) or title; repeatable")
	cmd.Flags().StringVar(&opts.value, "value", "", "input value for the selected bands (clamped to the band)")
	cmd.Flags().StringSliceVar(&opts.percents, "percent", nil, "adjustment percentages for asks 1-3")
	cmd.Flags().StringSliceVar(&opts.coefs, "coef", nil, "coefficients for asks 1-3, overriding the table")
	cmd.Flags().StringVar(&opts.round, "round", "", "rounding mode (none, 5, 10)")
	cmd.Flags().StringVarP(&opts.worksheet, "worksheet", "w", "", "start from a saved worksheet")
	cmd.Flags().BoolVar(&opts.formulas, "formulas", false, "show the arithmetic behind each ask")
	cmd.Flags().StringVar(&opts.save, "save", "", "save the result as a named worksheet")

	return cmd
}

func runCalc(cmd *cobra.Command, opts calcOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if opts.worksheet == "" && opts.save == "" {
		sheet, err := config.LoadSheet()
		if err != nil {
			return err
		}
		indices, err := applyCalcOptions(sheet, opts)
		if err != nil {
			return err
		}
		return printResults(out, sheet, indices, opts.formulas)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	var sheet *calculator.Sheet
	if opts.worksheet != "" {
		sheet, _, err = loadWorksheetSheet(ctx, store, opts.worksheet)
	} else {
		sheet, err = config.LoadSheet()
	}
	if err != nil {
		return err
	}

	indices, err := applyCalcOptions(sheet, opts)
	if err != nil {
		return err
	}
	if err := printResults(out, sheet, indices, opts.formulas); err != nil {
		return err
	}

	if opts.save == "" {
		return nil
	}
	ws := sheet.Snapshot(opts.save)
	if err := store.SaveWorksheet(ctx, &ws); err != nil {
		return fmt.Errorf("failed to save worksheet: %w", err)
	}
	_, err = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved worksheet %q", opts.save)))
	return err
}

// applyCalcOptions applies the flags to sheet and returns the indices of the
// selected bands. The selection is applied first so that --coef overrides
// survive the table refresh.
func applyCalcOptions(sheet *calculator.Sheet, opts calcOptions) ([]int, error) {
	sel := sheet.Selection()
	if opts.donor != "" {
		donor, err := model.ParseDonorCategory(opts.donor)
		if err != nil {
			return nil, err
		}
		if err := sel.SetDonorCategory(donor); err != nil {
			return nil, err
		}
	}
	if opts.appeal != "" {
		appeal, err := model.ParseAppealType(opts.appeal)
		if err != nil {
			return nil, err
		}
		if err := sel.SetAppealType(appeal); err != nil {
			return nil, err
		}
	}

	indices, err := selectBands(sheet, opts.bands)
	if err != nil {
		return nil, err
	}

	percents, err := parseDecimals("percent", opts.percents, model.SlotCount)
	if err != nil {
		return nil, err
	}
	coefs, err := parseDecimals("coef", opts.coefs, model.SlotCount)
	if err != nil {
		return nil, err
	}
	values, err := parseDecimals("value", optional(opts.value), 1)
	if err != nil {
		return nil, err
	}

	var rounding *model.RoundingMode
	if opts.round != "" {
		mode, err := model.ParseRoundingMode(opts.round)
		if err != nil {
			return nil, err
		}
		rounding = &mode
	}

	for _, i := range indices {
		band, err := sheet.Band(i)
		if err != nil {
			return nil, err
		}
		if len(values) == 1 {
			band.SetInputValue(values[0])
		}
		for slot, p := range percents {
			if err := band.SetAdjustmentPercent(slot, p); err != nil {
				return nil, err
			}
		}
		for slot, c := range coefs {
			if err := band.SetCoefficient(slot, c); err != nil {
				return nil, err
			}
		}
		// SetRoundingMode toggles, so only call it on an actual change.
		if rounding != nil && band.RoundingMode() != *rounding {
			band.SetRoundingMode(*rounding)
		}
	}

	return indices, nil
}

// selectBands resolves --band references, or every band when refs is empty.
func selectBands(sheet *calculator.Sheet, refs []string) ([]int, error) {
	if len(refs) == 0 {
		all := make([]int, sheet.Len())
		for i := range all {
			all[i] = i
		}
		return all, nil
	}

	indices := make([]int, 0, len(refs))
	seen := make(map[int]bool, len(refs))
	for _, ref := range refs {
		i, err := sheet.FindBand(strings.TrimSpace(ref))
		if err != nil {
			return nil, err
		}
		if !seen[i] {
			seen[i] = true
			indices = append(indices, i)
		}
	}
	return indices, nil
}

func optional(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func printResults(w io.Writer, sheet *calculator.Sheet, indices []int, formulas bool) error {
	all := sheet.Results()
	results := make([]calculator.BandResult, 0, len(indices))
	for _, i := range indices {
		results = append(results, all[i])
	}

	sel := sheet.Selection()
	_, err := fmt.Fprintf(w, "%s\n%s\n", cli.RenderSelection(sel.Donor(), sel.Appeal()), cli.RenderResults(results, formulas))
	return err
}
