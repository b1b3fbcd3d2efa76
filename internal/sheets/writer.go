package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Veraticus/askarray/internal/common"
	"github.com/Veraticus/askarray/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Writer implements the ReportWriter interface for Google Sheets. Each report
// is written to its own tab of one spreadsheet.
type Writer struct {
	service       *sheets.Service
	logger        *slog.Logger
	spreadsheetID string
	config        Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	srv, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Writer{
		config:  config,
		service: srv,
		logger:  logger,
	}, nil
}

// Write implements the ReportWriter interface.
func (w *Writer) Write(ctx context.Context, report *service.AskReport) error {
	title := TabTitle(report)
	w.logger.Info("writing ask array",
		"tab", title,
		"donor", report.Donor,
		"appeal", report.Appeal,
		"bands", len(report.Results))

	retryOpts := w.retryOptions()

	var spreadsheetID string
	err := common.WithRetry(ctx, func(ctx context.Context) error {
		id, err := w.getOrCreateSpreadsheet(ctx)
		spreadsheetID = id
		return classifyAPIError(err)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("%w: failed to get spreadsheet: %w", common.ErrExportFailed, err)
	}

	var sheetID int64
	err = common.WithRetry(ctx, func(ctx context.Context) error {
		id, err := w.ensureTab(ctx, spreadsheetID, title)
		sheetID = id
		return classifyAPIError(err)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("%w: failed to prepare tab %q: %w", common.ErrExportFailed, title, err)
	}

	values := prepareValues(report)

	err = common.WithRetry(ctx, func(ctx context.Context) error {
		return classifyAPIError(w.writeData(ctx, spreadsheetID, title, values))
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("%w: failed to write data: %w", common.ErrExportFailed, err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func(ctx context.Context) error {
			return classifyAPIError(w.applyFormatting(ctx, spreadsheetID, sheetID, len(values)))
		}, retryOpts)
		if err != nil {
			// Values are already written; formatting is cosmetic.
			w.logger.Warn("failed to apply formatting", "tab", title, "error", err)
		}
	}

	w.logger.Info("ask array written",
		"spreadsheet_id", spreadsheetID,
		"tab", title,
		"rows_written", len(values))

	return nil
}

// SpreadsheetID returns the spreadsheet used by the last Write, if any.
func (w *Writer) SpreadsheetID() string {
	return w.spreadsheetID
}

func (w *Writer) retryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// classifyAPIError maps Google API failures onto the retry vocabulary: 429
// is a rate limit, other 4xx responses will not succeed on a second try.
func classifyAPIError(err error) error {
	if err == nil {
		return nil
	}

	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}

	switch {
	case apiErr.Code == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %w", common.ErrRateLimit, err)
	case apiErr.Code >= 400 && apiErr.Code < 500:
		return common.Permanent(err)
	default:
		return err
	}
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = oauthConfig(config.ClientID, config.ClientSecret, "").TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet gets an existing spreadsheet or creates a new one.
// A created spreadsheet is reused by later writes through the same Writer.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.spreadsheetID != "" {
		return w.spreadsheetID, nil
	}

	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		w.spreadsheetID = w.config.SpreadsheetID
		return w.spreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	w.spreadsheetID = created.SpreadsheetId
	return w.spreadsheetID, nil
}

// ensureTab returns the sheet ID of the tab with the given title, adding the
// tab when missing and clearing it when present.
func (w *Writer) ensureTab(ctx context.Context, spreadsheetID, title string) (int64, error) {
	spreadsheet, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, err
	}

	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil && s.Properties.Title == title {
			_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, quoteRange(title, "A:Z"), &sheets.ClearValuesRequest{}).Context(ctx).Do()
			return s.Properties.SheetId, err
		}
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, err
	}

	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			return reply.AddSheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("no sheet id returned for tab %q", title)
}

// writeData writes the data to the tab.
func (w *Writer) writeData(ctx context.Context, spreadsheetID, title string, values [][]any) error {
	valueRange := &sheets.ValueRange{
		Values: values,
	}

	_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, quoteRange(title, "A1"), valueRange).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write %d rows: %w", len(values), err)
	}

	w.logger.Debug("wrote rows", "tab", title, "rows", len(values))
	return nil
}

func quoteRange(title, cells string) string {
	return fmt.Sprintf("'%s'!%s", title, cells)
}

// applyFormatting applies formatting to the tab.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, sheetID int64, totalRows int) error {
	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: formattingRequests(sheetID, totalRows),
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}

func formattingRequests(sheetID int64, totalRows int) []*sheets.Request {
	bold := func(startRow, endRow, startCol, endCol int64, size int64) *sheets.Request {
		return &sheets.Request{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    startRow,
					EndRowIndex:      endRow,
					StartColumnIndex: startCol,
					EndColumnIndex:   endCol,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{Bold: true, FontSize: size},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		}
	}

	return []*sheets.Request{
		bold(0, 1, 0, 1, 14),
		bold(headerRowIndex, headerRowIndex+1, 0, int64(len(headerRow)), 10),
		// Input and the three asks.
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    headerRowIndex + 1,
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: 1,
					EndColumnIndex:   6,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						NumberFormat: &sheets.NumberFormat{
							Type:    "CURRENCY",
							Pattern: "$#,##0.00",
						},
					},
				},
				Fields: "userEnteredFormat.numberFormat",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   int64(len(headerRow)),
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: headerRowIndex + 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}
}
