package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/askarray/internal/archive"
	"github.com/Veraticus/askarray/internal/cli"
	"github.com/Veraticus/askarray/internal/common"
	"github.com/Veraticus/askarray/internal/config"
	"github.com/spf13/cobra"
)

func worksheetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "worksheet",
		Aliases: []string{"ws"},
		Short:   "Manage saved worksheets",
		Long: `List, show, delete, export and import saved worksheets.

A worksheet is a named snapshot of the donor category, appeal type and every
band's input value, adjustments, coefficients and rounding.`,
		Example: `  # List saved worksheets
  askarray worksheet list

  # Show one with its formulas
  askarray worksheet show spring-mailer --formulas

  # Move a worksheet between machines
  askarray worksheet export spring-mailer spring.yaml
  askarray worksheet import spring.yaml --name spring-copy`,
	}

	cmd.AddCommand(listWorksheetsCmd())
	cmd.AddCommand(showWorksheetCmd())
	cmd.AddCommand(deleteWorksheetCmd())
	cmd.AddCommand(exportWorksheetCmd())
	cmd.AddCommand(importWorksheetCmd())

	return cmd
}

func listWorksheetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved worksheets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			worksheets, err := store.ListWorksheets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list worksheets: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderWorksheets(worksheets))
			return err
		},
	}
}

func showWorksheetCmd() *cobra.Command {
	var formulas bool

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Show a saved worksheet's ask amounts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			sheet, _, err := loadWorksheetSheet(ctx, store, args[0])
			if err != nil {
				return worksheetError(args[0], err)
			}

			all, err := selectBands(sheet, nil)
			if err != nil {
				return err
			}
			return printResults(cmd.OutOrStdout(), sheet, all, formulas)
		},
	}

	cmd.Flags().BoolVar(&formulas, "formulas", false, "show the arithmetic behind each ask")

	return cmd
}

func deleteWorksheetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete NAME",
		Short: "Delete a saved worksheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if !force {
				reader := cli.NewNonBlockingReader(cmd.InOrStdin())
				ok, err := cli.Confirm(ctx, reader, cmd.OutOrStdout(), fmt.Sprintf("Delete worksheet %q?", name))
				if err != nil {
					return err
				}
				if !ok {
					_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo("Canceled."))
					return err
				}
			}

			if err := store.DeleteWorksheet(ctx, name); err != nil {
				return worksheetError(name, err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deleted worksheet %q", name)))
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func exportWorksheetCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "export NAME FILE",
		Short: "Write a saved worksheet to a YAML file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name, path := args[0], args[1]

			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("%s already exists (use --force to overwrite)", path)
				}
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			ws, err := store.GetWorksheet(ctx, name)
			if err != nil {
				return worksheetError(name, err)
			}

			if err := archive.Save(path, ws); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Exported %q to %s", name, path)))
			return err
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

func importWorksheetCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Save a worksheet from a YAML file",
		Long: `Save a worksheet from a YAML file written by 'worksheet export'.
A worksheet with the same name is replaced.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			ws, err := archive.Load(args[0])
			if err != nil {
				return err
			}
			if name = strings.TrimSpace(name); name != "" {
				ws.Name = name
			}

			// Restore logs saved bands the configured sheet doesn't have.
			sheet, err := config.LoadSheet()
			if err != nil {
				return err
			}
			if err := sheet.Restore(*ws); err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveWorksheet(ctx, ws); err != nil {
				return fmt.Errorf("failed to save worksheet: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Imported worksheet %q", ws.Name)))
			return err
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "save under this name instead of the one in the file")

	return cmd
}

// worksheetError turns a storage miss into a message naming the worksheet.
func worksheetError(name string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return common.NewUserError(fmt.Sprintf("no worksheet named %q (see 'askarray worksheet list')", name), err)
	}
	return err
}
