package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdbook/internal/config"
	"github.com/mamadbah2/herdbook/internal/service/reporting"
)

// Summarizer produces the periodic farm summary.
type Summarizer interface {
	Summary(ctx context.Context) (reporting.Summary, error)
}

// Scheduler manages scheduled tasks.
type Scheduler struct {
	cron       *cron.Cron
	summarizer Summarizer
	schedule   string
	logger     *zap.Logger
}

// NewScheduler creates a new scheduler running in the configured timezone.
func NewScheduler(cfg config.ReportingConfig, summarizer Summarizer, logger *zap.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(loc)),
		summarizer: summarizer,
		schedule:   cfg.CronSchedule,
		logger:     logger,
	}, nil
}

// Start registers the summary job and starts the scheduler.
func (s *Scheduler) Start() error {
	s.logger.Info("starting scheduler", zap.String("schedule", s.schedule))

	if _, err := s.cron.AddFunc(s.schedule, s.logSummary); err != nil {
		return fmt.Errorf("schedule summary %q: %w", s.schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) logSummary() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sum, err := s.summarizer.Summary(ctx)
	if err != nil {
		s.logger.Error("failed to generate farm summary", zap.Error(err))
		return
	}

	s.logger.Info("farm summary",
		zap.Int("animals", sum.Animals),
		zap.Int("pending_health_events", sum.PendingHealthEvents),
		zap.Float64("balance", sum.Balance),
		zap.String("report", sum.Text()))
}
