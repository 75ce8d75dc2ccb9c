package response

import (
	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/models"
)

// DashboardStatisticsResponse is the home page summary of the tenant's invoices
type DashboardStatisticsResponse struct {
	Unpaid  int `json:"unpaid" example:"1"`
	Partial int `json:"partial" example:"1"`
	Paid    int `json:"paid" example:"10"`
	Total   int `json:"total" example:"12"`

	TotalDebt       billing.Money  `json:"total_debt"`
	TotalDebtSource billing.Source `json:"total_debt_source" example:"aggregate_endpoint"`

	// LatestInvoice is the invoice of the most recent period, nil without invoices
	LatestInvoice *models.Invoice `json:"latest_invoice"`
}
