// Package sheets mirrors monthly report snapshots to a Google Sheet so the
// owner keeps an offline-readable backup of the bookkeeping.
package sheets

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"

	"github.com/linsamsir/pro-erp/internal/config"
	"github.com/linsamsir/pro-erp/internal/domain/models"
)

const reportsRange = "Reports!A:J"

// GoogleSheetExporter appends monthly reports to a spreadsheet.
type GoogleSheetExporter struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// NewGoogleSheetExporter builds a Google Sheets backed exporter instance.
func NewGoogleSheetExporter(ctx context.Context, cfg config.SheetsConfig, logger *zap.Logger) (*GoogleSheetExporter, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath), option.WithScopes(sheetsapi.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sheets client: %w", err)
	}

	return &GoogleSheetExporter{
		service:       service,
		spreadsheetID: cfg.SpreadsheetID,
		logger:        logger,
	}, nil
}

// AppendMonthlyReport appends one report as a row on the Reports sheet.
func (e *GoogleSheetExporter) AppendMonthlyReport(ctx context.Context, report models.MonthlyReport) error {
	row := []interface{}{
		report.Month,
		report.Revenue,
		report.Costs.Labor,
		report.Costs.ConsumablesActual,
		report.Costs.Depreciation,
		report.Costs.Overhead,
		report.Costs.Total,
		report.NetProfit,
		report.JobCount,
		report.GeneratedAt.Format(time.RFC3339),
	}

	payload := &sheetsapi.ValueRange{Values: [][]interface{}{row}}

	call := e.service.Spreadsheets.Values.Append(e.spreadsheetID, reportsRange, payload).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx)

	if _, err := call.Do(); err != nil {
		return fmt.Errorf("append report row for %s: %w", report.Month, err)
	}

	e.logger.Debug("monthly report exported", zap.String("month", report.Month))
	return nil
}
