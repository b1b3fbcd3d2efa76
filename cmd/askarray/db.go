package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/askarray/internal/cli"
	"github.com/spf13/cobra"
)

func dbCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Manage the worksheet database",
	}

	cmd.AddCommand(dbBackupCmd())
	cmd.AddCommand(dbPathCmd())

	return cmd
}

func dbBackupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup PATH",
		Short: "Copy the worksheet database",
		Long:  `Write a consistent copy of the worksheet database to PATH. An existing file is never overwritten.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			dest, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("invalid backup path: %w", err)
			}

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			if err := store.Backup(ctx, dest); err != nil {
				return fmt.Errorf("backup failed: %w", err)
			}

			info, err := os.Stat(dest)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Backed up to %s (%s)", dest, formatFileSize(info.Size()))))
			return err
		},
	}
}

func dbPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the worksheet database path",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			_, err = fmt.Fprintln(cmd.OutOrStdout(), store.Path())
			return err
		},
	}
}

func formatFileSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
