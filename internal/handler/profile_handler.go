package handler

import (
	"tenant-portal-svc/internal/middleware"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/pkg/logger"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PortalHandler serves the read-mostly tenant pages
type PortalHandler struct {
	profileService  service.ProfileService
	contractService service.ContractService
	utilityService  service.UtilityService
	logger          *logger.Logger
}

// NewPortalHandler creates a new portal handler
func NewPortalHandler(
	profileService service.ProfileService,
	contractService service.ContractService,
	utilityService service.UtilityService,
	logger *logger.Logger,
) *PortalHandler {
	return &PortalHandler{
		profileService:  profileService,
		contractService: contractService,
		utilityService:  utilityService,
		logger:          logger,
	}
}

// GetProfile handles GET /api/v1/profile
// @Summary Tenant profile
// @Description Profile with composed address and rented rooms
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=models.Customer}
// @Failure 401 {object} utils.APIResponse
// @Router /api/v1/profile [get]
func (h *PortalHandler) GetProfile(c *gin.Context) {
	customer, err := h.profileService.Current(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err, "Không lấy được thông tin khách hàng")
		return
	}
	utils.SuccessResponse(c, "Profile retrieved successfully", customer)
}

// GetContracts handles GET /api/v1/contracts
// @Summary Contracts
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.Contract}
// @Router /api/v1/contracts [get]
func (h *PortalHandler) GetContracts(c *gin.Context) {
	contracts, err := h.contractService.List(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err, "Không lấy được hợp đồng")
		return
	}
	utils.SuccessResponse(c, "Contracts retrieved successfully", contracts)
}

// GetPrintableContract handles GET /api/v1/contracts/current/print
// @Summary Printable contract
// @Description The active contract filled in with the tenant profile, ready to print
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=models.PrintableContract}
// @Failure 404 {object} utils.APIResponse "No contract"
// @Router /api/v1/contracts/current/print [get]
func (h *PortalHandler) GetPrintableContract(c *gin.Context) {
	printable, err := h.contractService.Printable(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err, "Không lấy được hợp đồng")
		return
	}
	utils.SuccessResponse(c, "Contract retrieved successfully", printable)
}

// GetUtilities handles GET /api/v1/utilities
// @Summary Electricity and water usage
// @Tags portal
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.UtilityUsage}
// @Router /api/v1/utilities [get]
func (h *PortalHandler) GetUtilities(c *gin.Context) {
	usages, err := h.utilityService.List(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err, "Không lấy được chỉ số điện nước")
		return
	}
	utils.SuccessResponse(c, "Utility usage retrieved successfully", usages)
}
