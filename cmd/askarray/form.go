package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/askarray/internal/calculator"
	"github.com/Veraticus/askarray/internal/cli"
	"github.com/Veraticus/askarray/internal/config"
	"github.com/Veraticus/askarray/internal/tui"
	"github.com/Veraticus/askarray/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func formCmd() *cobra.Command {
	var worksheet string

	cmd := &cobra.Command{
		Use:   "form",
		Short: "Open the interactive ask array form",
		Long: `Open the interactive ask array form.

Cycle the donor category with 'd' and the appeal type with 'a', move between
bands with tab, pick a field with j/k and adjust it with h/l. Press '?' for
every key.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			var sheet *calculator.Sheet
			if worksheet != "" {
				sheet, _, err = loadWorksheetSheet(ctx, store, worksheet)
				err = worksheetError(worksheet, err)
			} else {
				sheet, err = config.LoadSheet()
			}
			if err != nil {
				return err
			}

			m, err := tui.Run(ctx, sheet,
				tui.WithStorage(store),
				tui.WithName(worksheet),
				tui.WithTheme(themes.ByName(viper.GetString("tui.theme"))),
			)
			if err != nil && !errors.Is(err, ctx.Err()) {
				return err
			}

			if m.Name() != "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Worksheet %q", m.Name())))
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&worksheet, "worksheet", "w", "", "open a saved worksheet")

	return cmd
}
