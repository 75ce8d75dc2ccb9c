package handler

import (
	"tenant-portal-svc/internal/middleware"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/pkg/logger"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout and password reset requests
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// ForgotPasswordRequest asks the landlord to reset a password
type ForgotPasswordRequest struct {
	CustomerID string `json:"customer_id" binding:"required" example:"15"`
	RoomID     string `json:"room_id" example:"3"`
	Content    string `json:"content" example:"Tôi quên mật khẩu, vui lòng hỗ trợ"`
}

// GetChallenge handles GET /api/v1/auth/challenge
// @Summary New login challenge
// @Description Creates a small arithmetic question to answer on login
// @Tags auth
// @Produce json
// @Success 200 {object} utils.APIResponse{data=models.Challenge}
// @Router /api/v1/auth/challenge [get]
func (h *AuthHandler) GetChallenge(c *gin.Context) {
	challenge, err := h.authService.NewChallenge(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Không tạo được mã xác nhận")
		return
	}
	utils.SuccessResponse(c, "Challenge created", challenge)
}

// Login handles POST /api/v1/auth/login
// @Summary Log in
// @Description Checks the challenge answer, then the credentials against the upstream API
// @Tags auth
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Credentials and challenge answer"
// @Success 200 {object} utils.APIResponse{data=models.LoginResult}
// @Failure 400 {object} utils.APIResponse "Missing input or wrong challenge answer"
// @Failure 401 {object} utils.APIResponse "Wrong credentials"
// @Failure 503 {object} utils.APIResponse "Upstream API unavailable"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var in service.LoginInput
	if err := c.ShouldBindJSON(&in); err != nil {
		utils.BadRequestResponse(c, "Dữ liệu đăng nhập không hợp lệ", err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err, "Đăng nhập thất bại")
		return
	}
	utils.SuccessResponse(c, "Đăng nhập thành công", result)
}

// Logout handles POST /api/v1/auth/logout
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	session := middleware.CurrentSession(c)
	if err := h.authService.Logout(c.Request.Context(), session.ID); err != nil {
		respondError(c, h.logger, err, "Đăng xuất thất bại")
		return
	}
	utils.SuccessResponse(c, "Đã đăng xuất", nil)
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
// @Summary Request a password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Reset request"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/v1/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Vui lòng nhập mã khách hàng", err)
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), req.CustomerID, req.RoomID, req.Content); err != nil {
		respondError(c, h.logger, err, "Không gửi được yêu cầu")
		return
	}
	utils.SuccessResponse(c, "Đã gửi yêu cầu cấp lại mật khẩu", nil)
}
