package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/linsamsir/pro-erp/internal/config"
	"github.com/linsamsir/pro-erp/internal/service/reporting"
)

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron         *cron.Cron
	reportingSvc *reporting.Service
	cfg          config.Config
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(cfg config.Config, reportingSvc *reporting.Service, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	location, err := time.LoadLocation(cfg.Reporting.Timezone)
	if err != nil {
		logger.Warn("invalid timezone, falling back to local", zap.String("timezone", cfg.Reporting.Timezone), zap.Error(err))
		location = time.Local
	}

	return &Scheduler{
		cron:         cron.New(cron.WithLocation(location)),
		reportingSvc: reportingSvc,
		cfg:          cfg,
		logger:       logger,
	}
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler", zap.String("schedule", s.cfg.Reporting.CronSchedule))

	// Default schedule runs shortly after month rollover, closing out the
	// month that just ended.
	_, err := s.cron.AddFunc(s.cfg.Reporting.CronSchedule, s.publishMonthlySnapshot)
	if err != nil {
		s.logger.Error("failed to schedule monthly snapshot", zap.Error(err))
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) publishMonthlySnapshot() {
	s.logger.Info("generating monthly snapshot")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	// Previous calendar month relative to now.
	now := time.Now()
	previous := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)

	report, err := s.reportingSvc.PublishMonthlySnapshot(ctx, previous.Year(), previous.Month())
	if err != nil {
		s.logger.Error("failed to publish monthly snapshot", zap.Error(err))
		return
	}

	s.logger.Info("monthly snapshot completed", zap.String("month", report.Month))
}
