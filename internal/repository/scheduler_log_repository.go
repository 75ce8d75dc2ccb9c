package repository

import (
	"context"

	"tenant-portal-svc/internal/models"

	"gorm.io/gorm"
)

// SchedulerLogRepository records scheduler runs
type SchedulerLogRepository interface {
	Create(ctx context.Context, log *models.SchedulerLog) error
}

// schedulerLogRepository implements SchedulerLogRepository
type schedulerLogRepository struct {
	db *gorm.DB
}

// NewSchedulerLogRepository creates a new instance of SchedulerLogRepository.
// Without a database, runs are only logged, never stored.
func NewSchedulerLogRepository(db *gorm.DB) SchedulerLogRepository {
	if db == nil {
		return discardSchedulerLogs{}
	}
	return &schedulerLogRepository{
		db: db,
	}
}

// Create stores a scheduler log entry
func (r *schedulerLogRepository) Create(ctx context.Context, log *models.SchedulerLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

type discardSchedulerLogs struct{}

func (discardSchedulerLogs) Create(context.Context, *models.SchedulerLog) error { return nil }
