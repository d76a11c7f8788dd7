// Package reporting aggregates jobs, expenses, assets and stock history
// into month-level P&L summaries and per-job profitability views.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/domain/models"
	"github.com/linsamsir/pro-erp/internal/service/allocation"
	"github.com/linsamsir/pro-erp/internal/service/analysis"
	"github.com/linsamsir/pro-erp/internal/service/costing"
)

// ErrJobNotFound indicates the requested job does not exist or is deleted.
var ErrJobNotFound = errors.New("job not found")

// DataSource supplies the fully-materialized collections the aggregator
// works over. Implementations pre-filter soft-deleted records.
type DataSource interface {
	ListJobs(ctx context.Context) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	ListExpenses(ctx context.Context) ([]models.Expense, error)
	ListAssets(ctx context.Context) ([]models.Asset, error)
	ListStockLogs(ctx context.Context) ([]models.StockLog, error)
	GetSettings(ctx context.Context) (*models.Settings, error)
}

// SnapshotStore persists generated monthly reports.
type SnapshotStore interface {
	SaveMonthlyReport(ctx context.Context, report models.MonthlyReport) error
}

// Exporter mirrors a monthly report to an external backup target.
type Exporter interface {
	AppendMonthlyReport(ctx context.Context, report models.MonthlyReport) error
}

// Defaults bundles the engine fallback constants the aggregator needs.
type Defaults struct {
	UnitCosts           costing.Defaults
	TrafficFallbackRate float64
}

// Service exposes monthly report generation and per-job analysis.
type Service struct {
	data      DataSource
	snapshots SnapshotStore
	exporter  Exporter
	defaults  Defaults
	logger    *zap.Logger
	now       func() time.Time
}

// NewService wires a new reporting service instance. The exporter may be
// nil when sheet backup is not configured.
func NewService(data DataSource, snapshots SnapshotStore, exporter Exporter, defaults Defaults, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		data:      data,
		snapshots: snapshots,
		exporter:  exporter,
		defaults:  defaults,
		logger:    logger,
		now:       time.Now,
	}
}

// BuildMonthlyReport runs the month-level P&L aggregation over already
// fetched collections. Deterministic for identical inputs: every sum runs
// in input order. Cashflow-only expenses are excluded from overhead and
// therefore from net profit; that is the line between cash movement and
// P&L-relevant cost.
func BuildMonthlyReport(year int, month time.Month, jobs []models.Job, expenses []models.Expense,
	assets []models.Asset, stockLogs []models.StockLog, labor models.LaborConfig, defaults Defaults) models.MonthlyReport {

	periodKey := allocation.PeriodKey(year, month)
	periodJobs := allocation.JobsInPeriod(jobs, periodKey)
	unitCosts := costing.ComputeUnitCosts(stockLogs, defaults.UnitCosts)

	var revenue, consumablesActual float64
	for _, job := range periodJobs {
		revenue += job.Revenue()
		consumablesActual += job.CitricUnits()*unitCosts.CitricAcid + job.ChemicalUnits()*unitCosts.Chemical
	}

	depreciation := costing.MonthlyDepreciation(assets, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC))

	var overhead float64
	for _, expense := range expenses {
		if expense.DeletedAt != nil || expense.CashflowOnly {
			continue
		}
		if !allocation.InPeriod(expense.Date, periodKey) {
			continue
		}
		overhead += expense.Amount
	}

	costs := models.ReportCosts{
		Labor:             labor.TotalFixedLaborCost,
		ConsumablesActual: consumablesActual,
		Depreciation:      depreciation,
		Overhead:          overhead,
	}
	costs.Total = costs.Labor + costs.ConsumablesActual + costs.Depreciation + costs.Overhead

	return models.MonthlyReport{
		Month:     periodKey,
		Revenue:   revenue,
		Costs:     costs,
		NetProfit: revenue - costs.Total,
		JobCount:  len(periodJobs),
	}
}

// GenerateMonthly loads the current collections and builds the report for
// the given month.
func (s *Service) GenerateMonthly(ctx context.Context, year int, month time.Month) (models.MonthlyReport, error) {
	jobs, expenses, assets, stockLogs, settings, err := s.loadCollections(ctx)
	if err != nil {
		return models.MonthlyReport{}, err
	}

	report := BuildMonthlyReport(year, month, jobs, expenses, assets, stockLogs, settings.Labor(), s.defaults)
	report.GeneratedAt = s.now()
	return report, nil
}

// AnalyzeJob produces the profitability view of one job against its
// service month. All period rates are derived exactly once here and handed
// to the analyzer, never recomputed per job.
func (s *Service) AnalyzeJob(ctx context.Context, jobID string, year int, month time.Month) (models.JobAnalysis, error) {
	job, err := s.data.GetJob(ctx, jobID)
	if err != nil {
		return models.JobAnalysis{}, fmt.Errorf("load job %s: %w", jobID, err)
	}
	if job == nil {
		return models.JobAnalysis{}, ErrJobNotFound
	}

	jobs, expenses, assets, stockLogs, settings, err := s.loadCollections(ctx)
	if err != nil {
		return models.JobAnalysis{}, err
	}

	periodKey := allocation.PeriodKey(year, month)
	inputs := analysis.PeriodInputs{
		Labor:                settings.Labor(),
		UnitCosts:            costing.ComputeUnitCosts(stockLogs, s.defaults.UnitCosts),
		MonthlyDepreciation:  costing.MonthlyDepreciation(assets, time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)),
		TrafficRate:          allocation.TrafficRate(expenses, jobs, periodKey, s.defaults.TrafficFallbackRate),
		TotalPeriodWorkHours: allocation.PeriodWorkHours(jobs, periodKey),
	}

	result := analysis.AnalyzeJob(*job, inputs)
	result.Period = periodKey
	return result, nil
}

// PublishMonthlySnapshot generates a month's report, persists it and, when
// an exporter is configured, mirrors it to the backup sheet. Export
// failures are logged but do not fail the snapshot.
func (s *Service) PublishMonthlySnapshot(ctx context.Context, year int, month time.Month) (models.MonthlyReport, error) {
	report, err := s.GenerateMonthly(ctx, year, month)
	if err != nil {
		return models.MonthlyReport{}, err
	}

	if err := s.snapshots.SaveMonthlyReport(ctx, report); err != nil {
		return models.MonthlyReport{}, fmt.Errorf("save monthly report %s: %w", report.Month, err)
	}

	if s.exporter != nil {
		if err := s.exporter.AppendMonthlyReport(ctx, report); err != nil {
			s.logger.Warn("monthly report export failed", zap.String("month", report.Month), zap.Error(err))
		}
	}

	s.logger.Info("monthly snapshot published",
		zap.String("month", report.Month),
		zap.Int("jobs", report.JobCount),
		zap.Float64("net_profit", report.NetProfit))

	return report, nil
}

func (s *Service) loadCollections(ctx context.Context) ([]models.Job, []models.Expense, []models.Asset, []models.StockLog, models.Settings, error) {
	jobs, err := s.data.ListJobs(ctx)
	if err != nil {
		return nil, nil, nil, nil, models.Settings{}, fmt.Errorf("load jobs: %w", err)
	}
	expenses, err := s.data.ListExpenses(ctx)
	if err != nil {
		return nil, nil, nil, nil, models.Settings{}, fmt.Errorf("load expenses: %w", err)
	}
	assets, err := s.data.ListAssets(ctx)
	if err != nil {
		return nil, nil, nil, nil, models.Settings{}, fmt.Errorf("load assets: %w", err)
	}
	stockLogs, err := s.data.ListStockLogs(ctx)
	if err != nil {
		return nil, nil, nil, nil, models.Settings{}, fmt.Errorf("load stock logs: %w", err)
	}
	settings, err := s.data.GetSettings(ctx)
	if err != nil {
		return nil, nil, nil, nil, models.Settings{}, fmt.Errorf("load settings: %w", err)
	}
	if settings == nil {
		settings = &models.Settings{}
	}
	return jobs, expenses, assets, stockLogs, *settings, nil
}
