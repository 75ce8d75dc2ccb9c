package handler

import (
	"tenant-portal-svc/internal/middleware"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/pkg/logger"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ContactHandler handles messages to the landlord
type ContactHandler struct {
	contactService service.ContactService
	logger         *logger.Logger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService service.ContactService, logger *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// SubmitContact handles POST /api/v1/contacts
// @Summary Send a message to the landlord
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.ContactInput true "Message"
// @Success 200 {object} utils.APIResponse{data=models.ContactMessage}
// @Failure 400 {object} utils.APIResponse
// @Router /api/v1/contacts [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	var in service.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu liên hệ không hợp lệ", err)
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), middleware.CurrentSession(c), in)
	if err != nil {
		respondError(c, h.logger, err, "Không gửi được liên hệ")
		return
	}
	utils.SuccessResponse(c, "Đã gửi liên hệ", msg)
}

// GetContactReplies handles GET /api/v1/contacts/replies
// @Summary Landlord replies
// @Description Replies with the number that appeared since the last call
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=models.ContactReplies}
// @Router /api/v1/contacts/replies [get]
func (h *ContactHandler) GetContactReplies(c *gin.Context) {
	replies, err := h.contactService.Replies(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err, "Không lấy được phản hồi")
		return
	}
	utils.SuccessResponse(c, "Replies retrieved successfully", replies)
}
