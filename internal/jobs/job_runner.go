package jobs

import (
	"medishare-backend/internal/config"
	"medishare-backend/internal/logger"
	"medishare-backend/internal/repository/postgres"
	"medishare-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs.
type JobRunner struct {
	store    *postgres.Store
	emailSvc service.EmailService
	config   *config.Config
}

func NewJobRunner(store *postgres.Store, emailSvc service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		store:    store,
		emailSvc: emailSvc,
		config:   cfg,
	}
}

// Config exposes the loaded configuration for schedule registration.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery so one bad run
// never takes down the scheduler.
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("starting job", "job", jobName)
	jobFunc()
	logger.Info("job completed", "job", jobName)
}
