package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"tenant-portal-svc/internal/middleware"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/pkg/logger"
)

// SetupRoutes sets up all API routes
func SetupRoutes(
	router *gin.Engine,
	authService service.AuthService,
	profileService service.ProfileService,
	contractService service.ContractService,
	invoiceService service.InvoiceService,
	historyService service.PaymentHistoryService,
	utilityService service.UtilityService,
	contactService service.ContactService,
	preferenceService service.PreferenceService,
	dashboardService service.DashboardService,
	logger *logger.Logger,
) {
	// Initialize handlers
	authHandler := NewAuthHandler(authService, logger)
	portalHandler := NewPortalHandler(profileService, contractService, utilityService, logger)
	invoiceHandler := NewInvoiceHandler(invoiceService, historyService, logger)
	contactHandler := NewContactHandler(contactService, logger)
	preferenceHandler := NewPreferenceHandler(preferenceService, logger)
	dashboardHandler := NewDashboardHandler(dashboardService, logger)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API v1 group
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", HealthCheck)
		v1.GET("/format/amount", FormatAmount)

		auth := v1.Group("/auth")
		{
			auth.GET("/challenge", authHandler.GetChallenge)
			auth.POST("/login", authHandler.Login)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/logout", middleware.RequireSession(authService), authHandler.Logout)
		}

		// Everything below needs a session
		portal := v1.Group("", middleware.RequireSession(authService))
		{
			portal.GET("/dashboard/statistics", dashboardHandler.GetDashboardStatistics)
			portal.GET("/profile", portalHandler.GetProfile)
			portal.GET("/contracts", portalHandler.GetContracts)
			portal.GET("/contracts/current/print", portalHandler.GetPrintableContract)
			portal.GET("/utilities", portalHandler.GetUtilities)

			portal.GET("/invoices", invoiceHandler.GetInvoices)
			portal.GET("/invoices/:id", invoiceHandler.GetInvoice)
			portal.POST("/invoices/:id/pay", invoiceHandler.PayInvoice)

			portal.GET("/payment-history", invoiceHandler.GetPaymentHistory)
			portal.GET("/payment-history/export", invoiceHandler.ExportPaymentHistory)

			portal.POST("/contacts", contactHandler.SubmitContact)
			portal.GET("/contacts/replies", contactHandler.GetContactReplies)

			portal.GET("/preferences/:key", preferenceHandler.GetPreference)
			portal.PUT("/preferences/:key", preferenceHandler.PutPreference)
			portal.DELETE("/preferences/:key", preferenceHandler.DeletePreference)
		}
	}
}

// HealthCheck handles GET /api/v1/health
// @Summary Liveness
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /api/v1/health [get]
func HealthCheck(c *gin.Context) {
	c.JSON(200, gin.H{
		"status":  "ok",
		"message": "Server is running",
		"service": "Tenant Portal Service",
	})
}
