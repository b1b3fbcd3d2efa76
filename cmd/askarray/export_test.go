package main

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/Veraticus/askarray/internal/service"
	"github.com/Veraticus/askarray/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testReports(t *testing.T, names ...string) []*service.AskReport {
	t.Helper()
	reports := make([]*service.AskReport, 0, len(names))
	for _, name := range names {
		reports = append(reports, service.NewAskReport(name, newTestSheet(t)))
	}
	return reports
}

func TestExportReports(t *testing.T) {
	writer := sheets.NewMockWriter()
	reports := testReports(t, "spring", "gala")

	written, err := exportReports(context.Background(), writer, reports, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	calls := writer.GetWriteCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "spring", calls[0].Report.Name)
	assert.Equal(t, "gala", calls[1].Report.Name)
}

func TestExportReports_StopsOnError(t *testing.T) {
	writer := sheets.NewMockWriter()
	writer.SetWriteError(errors.New("quota exhausted"))

	written, err := exportReports(context.Background(), writer, testReports(t, "spring", "gala"), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"spring"`)
	assert.Equal(t, 0, written)
	assert.Equal(t, 1, writer.WriteCallCount)
}

func TestExportReports_StopsWhenCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	writer := sheets.NewMockWriter()
	writer.WriteFunc = func(_ context.Context, _ *service.AskReport) error {
		cancel()
		return nil
	}

	written, err := exportReports(ctx, writer, testReports(t, "a", "b", "c"), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, written)
	assert.Equal(t, 1, writer.WriteCallCount)
}
