/*
scheduler.go - Scheduled low-balance report

PURPOSE:
  Periodically lists the accounts whose remaining balance has dropped
  below the configured threshold and logs one line per account, so HR
  can follow up before employees run out.

CONFIGURATION:
  - Spec: standard 5-field cron expression (LEAVE_REPORT_CRON)
  - Threshold: strict upper bound on remaining days

USAGE:
  s, err := NewReportScheduler(dir, "0 8 * * 1", 5, logger)
  s.Start()
  // ... later
  s.Stop()
*/
package api

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/warp/leave-tracker/leave"
)

// ReportScheduler runs the low-balance report on a cron schedule.
type ReportScheduler struct {
	Directory *leave.Directory
	Threshold int

	spec   string
	cron   *cron.Cron
	logger *zap.Logger
}

// NewReportScheduler validates spec and threshold.
func NewReportScheduler(dir *leave.Directory, spec string, threshold int, logger *zap.Logger) (*ReportScheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if threshold < 0 {
		return nil, fmt.Errorf("threshold cannot be negative, got %d", threshold)
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", spec, err)
	}
	return &ReportScheduler{
		Directory: dir,
		Threshold: threshold,
		spec:      spec,
		cron:      cron.New(),
		logger:    logger,
	}, nil
}

// Start schedules the report and starts the cron loop.
func (s *ReportScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.RunOnce() }); err != nil {
		return fmt.Errorf("failed to schedule low-balance report: %w", err)
	}
	s.cron.Start()
	s.logger.Info("scheduler started", zap.String("spec", s.spec), zap.Int("threshold", s.Threshold))
	return nil
}

// Stop stops the cron loop and waits for a running report to finish.
func (s *ReportScheduler) Stop() {
	<-s.cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

// RunOnce produces the report immediately and logs it.
func (s *ReportScheduler) RunOnce() []leave.Summary {
	report, err := s.Directory.LowBalanceReport(s.Threshold)
	if err != nil {
		s.logger.Error("low-balance report failed", zap.Error(err))
		return nil
	}

	s.logger.Info("low-balance report",
		zap.Int("threshold", s.Threshold),
		zap.Int("accounts", len(report)),
	)
	for _, sum := range report {
		s.logger.Info("low balance",
			zap.String("account_id", sum.ID.String()),
			zap.String("name", sum.Name),
			zap.Int("remaining_days", sum.Remaining),
			zap.String("utilization", sum.Utilization.String()),
		)
	}
	return report
}
