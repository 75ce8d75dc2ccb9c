package handler

import (
	"strconv"

	"tenant-portal-svc/internal/middleware"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/pkg/logger"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetDashboardStatistics handles GET /api/v1/dashboard/statistics
// @Summary Get dashboard statistics
// @Description Invoice counts by payment state, total debt and the latest invoice. With year set only invoices of that year are counted.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param year query int false "Filter by year"
// @Success 200 {object} utils.APIResponse{data=response.DashboardStatisticsResponse} "Successfully retrieved dashboard statistics"
// @Failure 400 {object} utils.APIResponse "Bad request - invalid parameter"
// @Failure 401 {object} utils.APIResponse "Not logged in"
// @Router /api/v1/dashboard/statistics [get]
func (h *DashboardHandler) GetDashboardStatistics(c *gin.Context) {
	// Get optional year parameter
	var year *int
	if yearStr := c.Query("year"); yearStr != "" {
		yearValue, err := strconv.Atoi(yearStr)
		if err != nil {
			h.logger.WithError(err).WithField("year", yearStr).Warn("Invalid year parameter format")
			utils.BadRequestResponse(c, "Invalid year parameter format", err)
			return
		}
		year = &yearValue
	}

	statistics, err := h.dashboardService.GetDashboardStatistics(c.Request.Context(), middleware.CurrentSession(c), year)
	if err != nil {
		respondError(c, h.logger, err, "Không lấy được thống kê")
		return
	}
	utils.SuccessResponse(c, "Successfully retrieved dashboard statistics", statistics)
}
