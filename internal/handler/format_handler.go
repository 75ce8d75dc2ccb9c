package handler

import (
	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FormattedAmount is a raw amount as the portal reads and displays it
type FormattedAmount struct {
	Input     string         `json:"input" example:"1.900.000 đ"`
	Amount    billing.Amount `json:"amount" swaggertype:"integer" example:"1900000"`
	Formatted string         `json:"formatted,omitempty" example:"1.900.000"`
	Words     string         `json:"words,omitempty" example:"một triệu chín trăm nghìn đồng"`
}

// FormatAmount handles GET /api/v1/format/amount
// @Summary Normalize and spell an amount
// @Description Reads a loosely formatted amount and returns it grouped and in Vietnamese words. An unreadable value gives a null amount.
// @Tags format
// @Produce json
// @Param value query string true "Raw amount, e.g. 1.900.000 đ"
// @Success 200 {object} utils.APIResponse{data=FormattedAmount}
// @Router /api/v1/format/amount [get]
func FormatAmount(c *gin.Context) {
	input := c.Query("value")
	out := FormattedAmount{Input: input, Amount: billing.NormalizeAmount(input)}
	if out.Amount.Valid {
		out.Formatted = billing.FormatVND(out.Amount.Value)
		out.Words = billing.CurrencyText(out.Amount.Value)
	}
	utils.SuccessResponse(c, "Amount formatted", out)
}
