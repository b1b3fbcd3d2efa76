package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/askarray/internal/common"
	"github.com/Veraticus/askarray/internal/model"
	"github.com/shopspring/decimal"
)

// SaveWorksheet stores ws under its name, replacing any worksheet already
// saved with that name. ID, CreatedAt and UpdatedAt are filled in on ws.
func (s *SQLiteStorage) SaveWorksheet(ctx context.Context, ws *model.Worksheet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateWorksheet(ws); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()

	var (
		id        string
		createdAt time.Time
	)
	err = tx.QueryRowContext(ctx, `SELECT id, created_at FROM worksheets WHERE name = ?`, ws.Name).Scan(&id, &createdAt)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		id = ws.ID
		if id == "" {
			id = model.NewWorksheetID()
		}
		createdAt = now
		_, err = tx.ExecContext(ctx, `
			INSERT INTO worksheets (id, name, donor, appeal, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, ws.Name, string(ws.Donor), string(ws.Appeal), createdAt, now)
		if err != nil {
			return fmt.Errorf("failed to insert worksheet: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to look up worksheet: %w", err)
	default:
		_, err = tx.ExecContext(ctx, `
			UPDATE worksheets SET donor = ?, appeal = ?, updated_at = ? WHERE id = ?`,
			string(ws.Donor), string(ws.Appeal), now, id)
		if err != nil {
			return fmt.Errorf("failed to update worksheet: %w", err)
		}
		if _, err = tx.ExecContext(ctx, `DELETE FROM worksheet_bands WHERE worksheet_id = ?`, id); err != nil {
			return fmt.Errorf("failed to clear bands: %w", err)
		}
	}

	for i, b := range ws.Bands {
		rounding := b.Rounding
		if rounding == "" {
			rounding = model.RoundNone
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO worksheet_bands (
				worksheet_id, position, title, input_value,
				coef_1, coef_2, coef_3, pct_1, pct_2, pct_3,
				rounding, collapsed
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, i, b.Title, b.InputValue.String(),
			b.Coefficients[0].String(), b.Coefficients[1].String(), b.Coefficients[2].String(),
			b.Percents[0].String(), b.Percents[1].String(), b.Percents[2].String(),
			string(rounding), b.Collapsed)
		if err != nil {
			return fmt.Errorf("failed to save band %q: %w", b.Title, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit worksheet: %w", err)
	}

	ws.ID = id
	ws.CreatedAt = createdAt
	ws.UpdatedAt = now

	common.LogDebug("Saved worksheet", common.Fields{
		"name":  ws.Name,
		"id":    id,
		"bands": len(ws.Bands),
	})
	return nil
}

// GetWorksheet loads the worksheet with the given name.
func (s *SQLiteStorage) GetWorksheet(ctx context.Context, name string) (*model.Worksheet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(name, "name"); err != nil {
		return nil, err
	}

	var (
		ws            model.Worksheet
		donor, appeal string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, donor, appeal, created_at, updated_at
		FROM worksheets WHERE name = ?`, name).
		Scan(&ws.ID, &ws.Name, &donor, &appeal, &ws.CreatedAt, &ws.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("worksheet %q: %w", name, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get worksheet: %w", err)
	}
	ws.Donor = model.DonorCategory(donor)
	ws.Appeal = model.AppealType(appeal)

	bands, err := s.getBands(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	ws.Bands = bands

	return &ws, nil
}

func (s *SQLiteStorage) getBands(ctx context.Context, worksheetID string) ([]model.BandSetting, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT title, input_value, coef_1, coef_2, coef_3, pct_1, pct_2, pct_3, rounding, collapsed
		FROM worksheet_bands
		WHERE worksheet_id = ?
		ORDER BY position`, worksheetID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bands: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bands []model.BandSetting
	for rows.Next() {
		var (
			b        model.BandSetting
			input    string
			coefs    [model.SlotCount]string
			pcts     [model.SlotCount]string
			rounding string
		)
		if err := rows.Scan(&b.Title, &input, &coefs[0], &coefs[1], &coefs[2],
			&pcts[0], &pcts[1], &pcts[2], &rounding, &b.Collapsed); err != nil {
			return nil, fmt.Errorf("failed to scan band: %w", err)
		}

		if b.InputValue, err = decimal.NewFromString(input); err != nil {
			return nil, fmt.Errorf("band %q: corrupt input value %q: %w", b.Title, input, err)
		}
		for i := 0; i < model.SlotCount; i++ {
			if b.Coefficients[i], err = decimal.NewFromString(coefs[i]); err != nil {
				return nil, fmt.Errorf("band %q: corrupt coefficient %q: %w", b.Title, coefs[i], err)
			}
			if b.Percents[i], err = decimal.NewFromString(pcts[i]); err != nil {
				return nil, fmt.Errorf("band %q: corrupt percentage %q: %w", b.Title, pcts[i], err)
			}
		}
		b.Rounding = model.RoundingMode(rounding)

		bands = append(bands, b)
	}

	return bands, rows.Err()
}

// ListWorksheets returns every saved worksheet, most recently updated first.
// Band settings are not loaded.
func (s *SQLiteStorage) ListWorksheets(ctx context.Context) ([]model.Worksheet, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, donor, appeal, created_at, updated_at
		FROM worksheets
		ORDER BY updated_at DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list worksheets: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var worksheets []model.Worksheet
	for rows.Next() {
		var (
			ws            model.Worksheet
			donor, appeal string
		)
		if err := rows.Scan(&ws.ID, &ws.Name, &donor, &appeal, &ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan worksheet: %w", err)
		}
		ws.Donor = model.DonorCategory(donor)
		ws.Appeal = model.AppealType(appeal)
		worksheets = append(worksheets, ws)
	}

	return worksheets, rows.Err()
}

// DeleteWorksheet removes the named worksheet and its band settings.
func (s *SQLiteStorage) DeleteWorksheet(ctx context.Context, name string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(name, "name"); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM worksheets WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete worksheet: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("worksheet %q: %w", name, common.ErrNotFound)
	}

	common.LogInfo("Deleted worksheet", common.Fields{"name": name})
	return nil
}
