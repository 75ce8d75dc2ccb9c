package scheduler

import (
	"context"
	"fmt"
	"time"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/internal/store"
	"tenant-portal-svc/pkg/logger"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

const storeCleanupJobCode = "STORE_CLEANUP"

// StoreCleanupScheduler removes expired sessions, challenges and other
// expiring keys from stores that do not expire them on their own
type StoreCleanupScheduler struct {
	sweeper          store.Sweeper
	schedulerLogRepo repository.SchedulerLogRepository
	logger           *logger.Logger
	cron             *cron.Cron
	cronExpression   string
	timeout          time.Duration
}

// NewStoreCleanupScheduler creates a new store cleanup scheduler
func NewStoreCleanupScheduler(sweeper store.Sweeper, schedulerLogRepo repository.SchedulerLogRepository, logger *logger.Logger, cronExpression string) *StoreCleanupScheduler {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &StoreCleanupScheduler{
		sweeper:          sweeper,
		schedulerLogRepo: schedulerLogRepo,
		logger:           logger,
		cron:             c,
		cronExpression:   cronExpression,
		timeout:          time.Minute,
	}
}

// Start schedules the cleanup job and starts the cron
func (s *StoreCleanupScheduler) Start() error {
	// Cron format: "seconds minutes hours day-of-month month day-of-week"
	s.logger.WithField("cron_expression", s.cronExpression).Info("Scheduling store cleanup job")
	if _, err := s.cron.AddFunc(s.cronExpression, s.cleanup); err != nil {
		return fmt.Errorf("failed to schedule store cleanup job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("Store cleanup scheduler started successfully")
	return nil
}

// Stop waits for a running job and stops the cron
func (s *StoreCleanupScheduler) Stop() {
	s.logger.Info("Stopping store cleanup scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Store cleanup scheduler stopped successfully")
}

func (s *StoreCleanupScheduler) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	s.RunOnce(ctx)
}

// RunOnce deletes expired keys now and records the run
func (s *StoreCleanupScheduler) RunOnce(ctx context.Context) (int64, error) {
	runID := uuid.NewString()
	s.logRun(ctx, runID, models.SchedulerStatusStart, "Deleting expired store entries")

	removed, err := s.sweeper.DeleteExpired(ctx)
	if err != nil {
		s.logRun(ctx, runID, models.SchedulerStatusFailed, fmt.Sprintf("Failed to delete expired store entries: %v", err))
		s.logger.WithError(err).Error("Store cleanup failed")
		return 0, err
	}

	s.logRun(ctx, runID, models.SchedulerStatusSuccess, fmt.Sprintf("Deleted %d expired store entries", removed))
	s.logger.WithField("removed", removed).Info("Store cleanup completed")
	return removed, nil
}

// logRun stores a scheduler log entry. Failing to store it only gets logged.
func (s *StoreCleanupScheduler) logRun(ctx context.Context, runID, status, message string) {
	entry := &models.SchedulerLog{
		RunID:     runID,
		JobCode:   storeCleanupJobCode,
		Status:    status,
		Message:   message,
		CreatedAt: time.Now(),
	}
	if err := s.schedulerLogRepo.Create(ctx, entry); err != nil {
		s.logger.WithError(err).WithField("status", status).Error("Failed to create scheduler log entry")
	}
}
