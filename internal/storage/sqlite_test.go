package storage

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Veraticus/askarray/internal/common"
	"github.com/Veraticus/askarray/internal/model"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create test storage.
func createTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()

	store, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Migrate(context.Background()))
	return store
}

func testWorksheet(name string) *model.Worksheet {
	return &model.Worksheet{
		Name:   name,
		Donor:  model.DonorOTG,
		Appeal: model.AppealPapers,
		Bands: []model.BandSetting{
			{
				Title:        "$0-$1000",
				Rounding:     model.RoundNone,
				InputValue:   decimal.NewFromInt(250),
				Coefficients: model.NewCoefficients(0.65, 0.8, 0.9),
			},
			{
				Title:        "$1000-$5000",
				Rounding:     model.RoundNearestFive,
				InputValue:   decimal.RequireFromString("1234.5"),
				Coefficients: model.NewCoefficients(0.65, 0.8, 2.25),
				Percents: [model.SlotCount]decimal.Decimal{
					decimal.NewFromInt(10), decimal.Zero, decimal.RequireFromString("12.5"),
				},
				Collapsed: true,
			},
		},
	}
}

func assertBandsEqual(t *testing.T, want, got []model.BandSetting) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Title, got[i].Title)
		assert.Equal(t, want[i].Rounding, got[i].Rounding)
		assert.Equal(t, want[i].Collapsed, got[i].Collapsed)
		assert.True(t, want[i].InputValue.Equal(got[i].InputValue), "band %d input: want %s got %s", i, want[i].InputValue, got[i].InputValue)
		assert.True(t, want[i].Coefficients.Equal(got[i].Coefficients), "band %d coefficients: want %s got %s", i, want[i].Coefficients, got[i].Coefficients)
		for j := 0; j < model.SlotCount; j++ {
			assert.True(t, want[i].Percents[j].Equal(got[i].Percents[j]), "band %d percent %d", i, j)
		}
	}
}

func TestSQLiteStorage_SaveAndGetWorksheet(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	ws := testWorksheet("Spring mailout")
	require.NoError(t, store.SaveWorksheet(ctx, ws))
	assert.NotEmpty(t, ws.ID)
	assert.False(t, ws.CreatedAt.IsZero())
	assert.Equal(t, ws.CreatedAt, ws.UpdatedAt)

	got, err := store.GetWorksheet(ctx, "Spring mailout")
	require.NoError(t, err)
	assert.Equal(t, ws.ID, got.ID)
	assert.Equal(t, ws.Name, got.Name)
	assert.Equal(t, model.DonorOTG, got.Donor)
	assert.Equal(t, model.AppealPapers, got.Appeal)
	assert.True(t, ws.CreatedAt.Equal(got.CreatedAt))
	assertBandsEqual(t, ws.Bands, got.Bands)
}

func TestSQLiteStorage_SaveWorksheetReplacesByName(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	first := testWorksheet("Board asks")
	require.NoError(t, store.SaveWorksheet(ctx, first))

	second := testWorksheet("Board asks")
	second.Donor = model.DonorTBZ
	second.Bands = second.Bands[:1]
	second.Bands[0].InputValue = decimal.NewFromInt(900)
	require.NoError(t, store.SaveWorksheet(ctx, second))

	assert.Equal(t, first.ID, second.ID, "saving under an existing name keeps its identity")
	assert.True(t, first.CreatedAt.Equal(second.CreatedAt))

	got, err := store.GetWorksheet(ctx, "Board asks")
	require.NoError(t, err)
	assert.Equal(t, model.DonorTBZ, got.Donor)
	assertBandsEqual(t, second.Bands, got.Bands)

	list, err := store.ListWorksheets(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSQLiteStorage_SaveWorksheetRejectsInvalid(t *testing.T) {
	store := createTestStorage(t)

	ws := testWorksheet("")
	err := store.SaveWorksheet(context.Background(), ws)
	assert.ErrorIs(t, err, ErrInvalidWorksheet)
}

func TestSQLiteStorage_GetWorksheetNotFound(t *testing.T) {
	store := createTestStorage(t)

	_, err := store.GetWorksheet(context.Background(), "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSQLiteStorage_ListWorksheets(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	for _, name := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, store.SaveWorksheet(ctx, testWorksheet(name)))
	}
	// Touch alpha so it becomes the most recent.
	require.NoError(t, store.SaveWorksheet(ctx, testWorksheet("alpha")))

	list, err := store.ListWorksheets(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "alpha", list[0].Name)
	for _, ws := range list {
		assert.Empty(t, ws.Bands)
	}
}

func TestSQLiteStorage_DeleteWorksheet(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	require.NoError(t, store.SaveWorksheet(ctx, testWorksheet("doomed")))
	require.NoError(t, store.DeleteWorksheet(ctx, "doomed"))

	_, err := store.GetWorksheet(ctx, "doomed")
	assert.ErrorIs(t, err, common.ErrNotFound)

	var orphans int
	require.NoError(t, store.db.QueryRow(`SELECT COUNT(*) FROM worksheet_bands`).Scan(&orphans))
	assert.Zero(t, orphans, "band settings are removed with their worksheet")

	assert.ErrorIs(t, store.DeleteWorksheet(ctx, "doomed"), common.ErrNotFound)
}

func TestSQLiteStorage_Migrations(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx := context.Background()

	store1, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	require.NoError(t, store1.Migrate(ctx))
	require.NoError(t, store1.SaveWorksheet(ctx, testWorksheet("persisted")))
	require.NoError(t, store1.Close())

	// Running migrations again must be a no-op.
	store2, err := NewSQLiteStorage(dbPath)
	require.NoError(t, err)
	defer func() { _ = store2.Close() }()
	require.NoError(t, store2.Migrate(ctx))

	version, err := store2.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)
	assert.Len(t, migrations, ExpectedSchemaVersion)

	got, err := store2.GetWorksheet(ctx, "persisted")
	require.NoError(t, err)
	assert.True(t, got.Bands[1].Collapsed)

	var indexCount int
	require.NoError(t, store2.db.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND name='idx_worksheets_updated_at'
	`).Scan(&indexCount))
	assert.Equal(t, 1, indexCount)
}

func TestSQLiteStorage_SingleMigrationCreatesFullSchema(t *testing.T) {
	store := createTestStorage(t)

	version, err := store.SchemaVersion(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, version)

	var collapsedColumns int
	require.NoError(t, store.db.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info('worksheet_bands') WHERE name = 'collapsed'
	`).Scan(&collapsedColumns))
	assert.Equal(t, 1, collapsedColumns)
}

func TestSQLiteStorage_Backup(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()
	require.NoError(t, store.SaveWorksheet(ctx, testWorksheet("keep me")))

	dest := filepath.Join(t.TempDir(), "backups", "askarray.db")
	require.NoError(t, store.Backup(ctx, dest))

	restored, err := NewSQLiteStorage(dest)
	require.NoError(t, err)
	defer func() { _ = restored.Close() }()
	require.NoError(t, restored.Migrate(ctx))

	got, err := restored.GetWorksheet(ctx, "keep me")
	require.NoError(t, err)
	assert.Len(t, got.Bands, 2)

	assert.Error(t, store.Backup(ctx, dest), "existing backups are not overwritten")
	assert.Error(t, store.Backup(ctx, "relative.db"))
	assert.Error(t, store.Backup(ctx, "/tmp/it's.db"))
}

func TestSQLiteStorage_ConcurrentAccess(t *testing.T) {
	store := createTestStorage(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 20)

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(id int) {
			defer wg.Done()
			if err := store.SaveWorksheet(ctx, testWorksheet(fmt.Sprintf("ws-%d", id%3))); err != nil {
				errs <- err
			}
		}(i)
		go func() {
			defer wg.Done()
			if _, err := store.ListWorksheets(ctx); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent operation failed: %v", err)
	}

	list, err := store.ListWorksheets(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
