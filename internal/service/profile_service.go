package service

import (
	"context"
	"strings"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/pkg/logger"
)

// ProfileService reads the tenant profile
type ProfileService interface {
	Current(ctx context.Context, session *models.Session) (*models.Customer, error)
}

// profileService implements ProfileService
type profileService struct {
	customerRepo repository.CustomerRepository
	logger       *logger.Logger
}

// NewProfileService creates a new instance of ProfileService
func NewProfileService(customerRepo repository.CustomerRepository, logger *logger.Logger) ProfileService {
	return &profileService{
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// Current returns the profile with its composed address
func (s *profileService) Current(ctx context.Context, session *models.Session) (*models.Customer, error) {
	customer, err := s.customerRepo.Current(ctx, session.UpstreamToken)
	if err != nil {
		s.logger.WithError(err).WithField("username", session.Username).Error("Failed to get profile")
		return nil, fromUpstream(err)
	}
	customer.Address = composeAddress(customer)
	return customer, nil
}

// composeAddress joins street, ward, district and province. With any of them
// missing only the street is shown.
func composeAddress(c *models.Customer) string {
	parts := []string{
		strings.TrimSpace(c.Street),
		strings.TrimSpace(c.Ward),
		strings.TrimSpace(c.District),
		strings.TrimSpace(c.Province),
	}
	for _, p := range parts {
		if p == "" {
			return parts[0]
		}
	}
	return strings.Join(parts, ", ")
}
