package sheets

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/mamadbah2/herdbook/internal/config"
	"github.com/mamadbah2/herdbook/internal/domain/models"
)

// FinanceRange is the sheet range ledger entries are appended to.
const FinanceRange = "Finance!A:F"

// RowWriter appends one row of values to a sheet range.
type RowWriter interface {
	WriteRow(ctx context.Context, sheetRange string, values []interface{}) error
}

// GoogleSheetRepository implements RowWriter using the official Google Sheets API.
type GoogleSheetRepository struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Google Sheets backed repository instance.
func NewGoogleSheetRepository(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetRepository{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// WriteRow appends the provided values to the supplied sheet range.
func (r *GoogleSheetRepository) WriteRow(ctx context.Context, sheetRange string, values []interface{}) error {
	if sheetRange == "" {
		return fmt.Errorf("sheetRange must not be empty")
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	call := r.service.Spreadsheets.Values.Append(r.spreadsheetID, sheetRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append row into range %s: %w", sheetRange, err)
	}

	r.logger.Debug("row appended to sheet", zap.String("range", sheetRange))
	return nil
}

// LedgerMirror copies ledger entries into a spreadsheet, one row per entry.
type LedgerMirror struct {
	writer RowWriter
}

// NewLedgerMirror wraps writer.
func NewLedgerMirror(writer RowWriter) *LedgerMirror {
	return &LedgerMirror{writer: writer}
}

// AppendFinancialRecord writes record as date, type, category, amount, description, id.
func (m *LedgerMirror) AppendFinancialRecord(ctx context.Context, record models.FinancialRecord) error {
	return m.writer.WriteRow(ctx, FinanceRange, LedgerRow(record))
}

// LedgerRow lays out a ledger entry as a sheet row.
func LedgerRow(record models.FinancialRecord) []interface{} {
	return []interface{}{
		record.Date,
		string(record.Kind),
		record.Category,
		record.Amount,
		record.Description,
		record.ID,
	}
}
