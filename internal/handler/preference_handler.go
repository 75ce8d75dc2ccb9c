package handler

import (
	"tenant-portal-svc/internal/middleware"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/pkg/logger"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// PreferenceHandler handles UI preferences
type PreferenceHandler struct {
	preferenceService service.PreferenceService
	logger            *logger.Logger
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(preferenceService service.PreferenceService, logger *logger.Logger) *PreferenceHandler {
	return &PreferenceHandler{
		preferenceService: preferenceService,
		logger:            logger,
	}
}

// PreferenceValue is a stored preference
type PreferenceValue struct {
	Key   string `json:"key" example:"theme"`
	Value string `json:"value" example:"dark"`
}

// GetPreference handles GET /api/v1/preferences/:key
// @Summary Read a preference
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Param key path string true "theme, avatar, pay_action_color or dismissed:<card>"
// @Success 200 {object} utils.APIResponse{data=PreferenceValue}
// @Failure 404 {object} utils.APIResponse
// @Router /api/v1/preferences/{key} [get]
func (h *PreferenceHandler) GetPreference(c *gin.Context) {
	key := c.Param("key")
	value, ok, err := h.preferenceService.Get(c.Request.Context(), middleware.CurrentSession(c), key)
	if err != nil {
		respondError(c, h.logger, err, "Không đọc được tùy chọn")
		return
	}
	if !ok {
		utils.NotFoundResponse(c, "Chưa có tùy chọn "+key)
		return
	}
	utils.SuccessResponse(c, "Preference retrieved successfully", PreferenceValue{Key: key, Value: value})
}

// PutPreference handles PUT /api/v1/preferences/:key
// @Summary Save a preference
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param key path string true "Preference key"
// @Param request body PreferenceValue true "Value; the key in the body is ignored"
// @Success 200 {object} utils.APIResponse{data=PreferenceValue}
// @Failure 400 {object} utils.APIResponse
// @Router /api/v1/preferences/{key} [put]
func (h *PreferenceHandler) PutPreference(c *gin.Context) {
	var body PreferenceValue
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.BadRequestResponse(c, "Giá trị tùy chọn không hợp lệ", err)
		return
	}

	key := c.Param("key")
	if err := h.preferenceService.Set(c.Request.Context(), middleware.CurrentSession(c), key, body.Value); err != nil {
		respondError(c, h.logger, err, "Không lưu được tùy chọn")
		return
	}
	utils.SuccessResponse(c, "Preference saved", PreferenceValue{Key: key, Value: body.Value})
}

// DeletePreference handles DELETE /api/v1/preferences/:key
// @Summary Clear a preference
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Param key path string true "Preference key"
// @Success 200 {object} utils.APIResponse
// @Router /api/v1/preferences/{key} [delete]
func (h *PreferenceHandler) DeletePreference(c *gin.Context) {
	if err := h.preferenceService.Clear(c.Request.Context(), middleware.CurrentSession(c), c.Param("key")); err != nil {
		respondError(c, h.logger, err, "Không xóa được tùy chọn")
		return
	}
	utils.SuccessResponse(c, "Preference cleared", nil)
}
