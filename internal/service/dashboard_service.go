package service

import (
	"context"
	"strconv"
	"strings"

	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/models/response"
	"tenant-portal-svc/pkg/logger"
)

// DashboardService builds the home page summary
type DashboardService interface {
	GetDashboardStatistics(ctx context.Context, session *models.Session, year *int) (*response.DashboardStatisticsResponse, error)
}

// dashboardService implements DashboardService
type dashboardService struct {
	invoiceService InvoiceService
	historyService PaymentHistoryService
	logger         *logger.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(invoiceService InvoiceService, historyService PaymentHistoryService, logger *logger.Logger) DashboardService {
	return &dashboardService{
		invoiceService: invoiceService,
		historyService: historyService,
		logger:         logger,
	}
}

// GetDashboardStatistics counts invoices by state, optionally for one year
// only, and reports the debt the payment history settles on. Without the
// history the debt is summed from the invoices.
func (s *dashboardService) GetDashboardStatistics(ctx context.Context, session *models.Session, year *int) (*response.DashboardStatisticsResponse, error) {
	// One history fetch both settles the invoices and gives the debt
	var periods []billing.PaymentRecord
	history, err := s.historyService.Get(ctx, session)
	if err != nil {
		s.logger.WithError(err).Debug("Payment history unavailable for dashboard")
	} else {
		periods = history.Periods
	}

	invoices, err := s.invoiceService.ListWithHistory(ctx, session, periods)
	if err != nil {
		return nil, err
	}

	stats := &response.DashboardStatisticsResponse{TotalDebtSource: billing.SourceLocal}
	var debt int64
	latestKey := ""
	for i := range invoices {
		inv := &invoices[i]
		if year != nil && periodYear(inv.Period) != *year {
			continue
		}

		stats.Total++
		switch inv.Status.State {
		case billing.StatePaid:
			stats.Paid++
		case billing.StatePartial:
			stats.Partial++
		default:
			stats.Unpaid++
		}
		debt += inv.Status.DebtAmount

		if key := periodSortKey(inv.Period); stats.LatestInvoice == nil || key > latestKey {
			stats.LatestInvoice = inv
			latestKey = key
		}
	}

	// The history covers every period, so it only replaces the debt when no
	// year filter is applied.
	if history != nil && year == nil {
		debt = history.Summary.TotalDebt
		stats.TotalDebtSource = history.Summary.TotalDebtSource
	}
	stats.TotalDebt = billing.NewMoney(debt)

	s.logger.WithFields(map[string]interface{}{
		"username": session.Username,
		"total":    stats.Total,
		"unpaid":   stats.Unpaid,
	}).Debug("Dashboard statistics computed")

	return stats, nil
}

// periodYear reads the year of an "MM/YYYY" period, 0 when unreadable.
func periodYear(period string) int {
	_, y, ok := strings.Cut(period, "/")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(y)
	if err != nil {
		return 0
	}
	return n
}

// periodSortKey turns "MM/YYYY" into "YYYY/MM" so periods sort as strings.
func periodSortKey(period string) string {
	m, y, ok := strings.Cut(period, "/")
	if !ok {
		return ""
	}
	return y + "/" + m
}
