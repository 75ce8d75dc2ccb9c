package handler

import (
	"net/http"

	"tenant-portal-svc/internal/middleware"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/pkg/logger"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceHandler handles invoices, payments and the payment history
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	historyService service.PaymentHistoryService
	logger         *logger.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService, historyService service.PaymentHistoryService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		historyService: historyService,
		logger:         logger,
	}
}

// GetInvoices handles GET /api/v1/invoices
// @Summary Invoices
// @Description Invoices with computed fees, settled against the payment history
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.Invoice}
// @Router /api/v1/invoices [get]
func (h *InvoiceHandler) GetInvoices(c *gin.Context) {
	invoices, err := h.invoiceService.List(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err, "Không lấy được hóa đơn")
		return
	}
	utils.SuccessResponse(c, "Invoices retrieved successfully", invoices)
}

// GetInvoice handles GET /api/v1/invoices/:id
// @Summary Invoice detail
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} utils.APIResponse{data=models.InvoiceDetail}
// @Failure 404 {object} utils.APIResponse
// @Router /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	detail, err := h.invoiceService.Detail(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Không lấy được chi tiết hóa đơn")
		return
	}
	utils.SuccessResponse(c, "Invoice retrieved successfully", detail)
}

// PayInvoice handles POST /api/v1/invoices/:id/pay
// @Summary Pay an invoice with MoMo
// @Description Returns the MoMo URL to redirect to, or an HTML page to render
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path string true "Invoice ID"
// @Success 200 {object} utils.APIResponse{data=models.PaymentLink}
// @Failure 409 {object} utils.APIResponse "Invoice already paid"
// @Failure 502 {object} utils.APIResponse "Payment gateway error"
// @Router /api/v1/invoices/{id}/pay [post]
func (h *InvoiceHandler) PayInvoice(c *gin.Context) {
	link, err := h.invoiceService.Pay(c.Request.Context(), middleware.CurrentSession(c), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "Không tạo được thanh toán")
		return
	}
	utils.SuccessResponse(c, "Payment created", link)
}

// GetPaymentHistory handles GET /api/v1/payment-history
// @Summary Payment history
// @Description Settled billing periods with totals and where each total came from
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=models.PaymentHistory}
// @Router /api/v1/payment-history [get]
func (h *InvoiceHandler) GetPaymentHistory(c *gin.Context) {
	history, err := h.historyService.Get(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err, "Không lấy được lịch sử thanh toán")
		return
	}
	utils.SuccessResponse(c, "Payment history retrieved successfully", history)
}

// ExportPaymentHistory handles GET /api/v1/payment-history/export
// @Summary Export payment history
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /api/v1/payment-history/export [get]
func (h *InvoiceHandler) ExportPaymentHistory(c *gin.Context) {
	data, filename, err := h.historyService.Export(c.Request.Context(), middleware.CurrentSession(c))
	if err != nil {
		respondError(c, h.logger, err, "Không xuất được lịch sử thanh toán")
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxContentType, data)
}
