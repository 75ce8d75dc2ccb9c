package service

import (
	"context"

	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/pkg/logger"
)

// UtilityService reads electricity and water usage
type UtilityService interface {
	List(ctx context.Context, session *models.Session) ([]models.UtilityUsage, error)
}

// utilityService implements UtilityService
type utilityService struct {
	utilityRepo repository.UtilityRepository
	logger      *logger.Logger
}

// NewUtilityService creates a new instance of UtilityService
func NewUtilityService(utilityRepo repository.UtilityRepository, logger *logger.Logger) UtilityService {
	return &utilityService{
		utilityRepo: utilityRepo,
		logger:      logger,
	}
}

// List returns usage per month
func (s *utilityService) List(ctx context.Context, session *models.Session) ([]models.UtilityUsage, error) {
	usages, err := s.utilityRepo.List(ctx, session.UpstreamToken)
	if err != nil {
		s.logger.WithError(err).WithField("username", session.Username).Error("Failed to get utility usage")
		return nil, fromUpstream(err)
	}
	for i := range usages {
		usages[i].Period = billing.NormalizePeriod(usages[i].Period)
	}
	return usages, nil
}
