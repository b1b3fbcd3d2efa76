package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Veraticus/askarray/internal/cli"
	"github.com/Veraticus/askarray/internal/config"
	"github.com/Veraticus/askarray/internal/service"
	"github.com/Veraticus/askarray/internal/sheets"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Publish ask arrays",
	}

	cmd.AddCommand(exportSheetsCmd())

	return cmd
}

func exportSheetsCmd() *cobra.Command {
	var (
		worksheets []string
		all        bool
		name       string
	)

	cmd := &cobra.Command{
		Use:   "sheets",
		Short: "Write ask arrays to Google Sheets",
		Long: `Write ask arrays to Google Sheets, one tab per worksheet.

Without --worksheet or --all the configured default selection is exported.
Run 'askarray auth sheets' first, or configure a service account.`,
		Example: `  # Every saved worksheet
  askarray export sheets --all

  # Two named worksheets
  askarray export sheets -w spring-mailer -w gala`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := config.LoadSheetsConfig()
			if err != nil {
				return err
			}

			reports, err := collectReports(ctx, worksheets, all, name)
			if err != nil {
				return err
			}
			if len(reports) == 0 {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("No worksheets to export."))
				return err
			}

			writer, err := sheets.NewWriter(ctx, *cfg, slog.Default())
			if err != nil {
				return err
			}

			handler := cli.NewInterruptHandler(cmd.ErrOrStderr(), "Stopping export; tabs already written are kept.")
			ctx, stop := handler.HandleInterrupts(ctx)
			defer stop()

			written, err := exportReports(ctx, writer, reports, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if handler.WasInterrupted() {
				_, _ = fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Interrupted: exported %d of %d", written, len(reports))))
			} else {
				_, _ = fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Exported %d ask array(s)", written)))
			}
			_, err = fmt.Fprintf(out, "https://docs.google.com/spreadsheets/d/%s\n", writer.SpreadsheetID())
			return err
		},
	}

	cmd.Flags().StringSliceVarP(&worksheets, "worksheet", "w", nil, "saved worksheet to export; repeatable")
	cmd.Flags().BoolVar(&all, "all", false, "export every saved worksheet")
	cmd.Flags().StringVar(&name, "name", "", "tab name when exporting the default selection")
	cmd.MarkFlagsMutuallyExclusive("worksheet", "all")

	return cmd
}

// collectReports computes the reports to export.
func collectReports(ctx context.Context, names []string, all bool, name string) ([]*service.AskReport, error) {
	if len(names) == 0 && !all {
		sheet, err := config.LoadSheet()
		if err != nil {
			return nil, err
		}
		return []*service.AskReport{service.NewAskReport(name, sheet)}, nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()

	if all {
		saved, err := store.ListWorksheets(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list worksheets: %w", err)
		}
		names = make([]string, 0, len(saved))
		for _, ws := range saved {
			names = append(names, ws.Name)
		}
	}

	reports := make([]*service.AskReport, 0, len(names))
	for _, n := range names {
		sheet, ws, err := loadWorksheetSheet(ctx, store, n)
		if err != nil {
			return nil, worksheetError(n, err)
		}
		reports = append(reports, service.NewAskReport(ws.Name, sheet))
	}
	return reports, nil
}

// exportReports writes reports in order, stopping early once ctx is done.
// It returns how many were written.
func exportReports(ctx context.Context, w service.ReportWriter, reports []*service.AskReport, progress io.Writer) (int, error) {
	if progress == nil {
		progress = os.Stderr
	}
	bar := cli.NewProgressBar(progress, len(reports), "Exporting")
	defer func() { _ = bar.Finish() }()

	written := 0
	for _, report := range reports {
		if ctx.Err() != nil {
			break
		}
		if err := w.Write(ctx, report); err != nil {
			if ctx.Err() != nil {
				break
			}
			return written, fmt.Errorf("failed to export %q: %w", sheets.TabTitle(report), err)
		}
		written++
		_ = bar.Add(1)
	}
	return written, nil
}
