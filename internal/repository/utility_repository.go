package repository

import (
	"context"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/upstream"
)

var utilityPaths = []string{
	"/api/k_diennuoc",
	"/api/dien-nuoc",
}

// UtilityRepository reads monthly electricity and water usage
type UtilityRepository interface {
	List(ctx context.Context, token string) ([]models.UtilityUsage, error)
}

// utilityRepository implements UtilityRepository
type utilityRepository struct {
	client *upstream.Client
}

// NewUtilityRepository creates a new instance of UtilityRepository
func NewUtilityRepository(client *upstream.Client) UtilityRepository {
	return &utilityRepository{
		client: client,
	}
}

// List walks the usage endpoints
func (r *utilityRepository) List(ctx context.Context, token string) ([]models.UtilityUsage, error) {
	resp, err := r.client.GetFirst(ctx, token, utilityPaths...)
	if err != nil {
		return nil, err
	}

	items := upstream.ListOf(resp.JSON(), "data")
	usages := make([]models.UtilityUsage, 0, len(items))
	for _, v := range items {
		usages = append(usages, models.UtilityUsage{
			Period:           upstream.StringOf(v, "ThangNam", "thangNam"),
			Building:         upstream.StringOf(v, "DayPhong"),
			Room:             upstream.StringOf(v, "SoPhong"),
			ElectricityUsage: upstream.AmountOf(v, "DienDaSuDung", "dien", "dienDaSuDung").Or(0),
			WaterUsage:       upstream.AmountOf(v, "NuocDaSuDung", "nuoc", "nuocDaSuDung").Or(0),
		})
	}
	return usages, nil
}
