package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Backup writes a consistent copy of the database to destPath, which must be
// absolute and must not exist yet.
func (s *SQLiteStorage) Backup(ctx context.Context, destPath string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(destPath, "destPath"); err != nil {
		return err
	}

	// VACUUM INTO takes a literal, so quotes and separators are refused.
	if strings.ContainsAny(destPath, "'\";") {
		return fmt.Errorf("invalid backup path %q: contains forbidden characters", destPath)
	}
	if !filepath.IsAbs(destPath) || filepath.Clean(destPath) != destPath {
		return fmt.Errorf("invalid backup path %q: must be a clean absolute path", destPath)
	}
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("backup %s already exists", destPath)
	}
	if err := os.MkdirAll(filepath.Dir(destPath), 0750); err != nil {
		return fmt.Errorf("failed to create backup directory: %w", err)
	}

	if s.dbPath != ":memory:" {
		if _, err := s.db.ExecContext(ctx, "PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			return fmt.Errorf("failed to checkpoint WAL: %w", err)
		}
	}

	// #nosec G201 - destPath is validated above
	if _, err := s.db.ExecContext(ctx, fmt.Sprintf("VACUUM INTO '%s'", destPath)); err != nil {
		return fmt.Errorf("failed to back up database: %w", err)
	}
	return nil
}
