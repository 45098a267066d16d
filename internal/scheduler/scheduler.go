package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"medishare-backend/internal/jobs"
	"medishare-backend/internal/logger"
)

// Scheduler manages cron job scheduling.
type Scheduler struct {
	cron *cron.Cron
	jobs *jobs.JobRunner
}

func NewScheduler(jobRunner *jobs.JobRunner) *Scheduler {
	// UTC with seconds precision, matching the configured cron expressions.
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)

	s := &Scheduler{
		cron: c,
		jobs: jobRunner,
	}
	s.registerJobs()
	return s
}

func (s *Scheduler) registerJobs() {
	cfg := s.jobs.Config().Scheduler

	if _, err := s.cron.AddFunc(cfg.PendingOrderReminders, s.jobs.SendPendingOrderReminders); err != nil {
		logger.Error("failed to register SendPendingOrderReminders job", "error", err)
	}
	if _, err := s.cron.AddFunc(cfg.NewsletterDigest, s.jobs.SendNewsletterDigest); err != nil {
		logger.Error("failed to register SendNewsletterDigest job", "error", err)
	}

	logger.Info("cron jobs registered")
}

// Start begins the cron scheduler.
func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("cron scheduler started")
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("cron scheduler stopped")
}

// IsRunning reports whether any jobs are registered.
func (s *Scheduler) IsRunning() bool {
	return len(s.cron.Entries()) > 0
}
