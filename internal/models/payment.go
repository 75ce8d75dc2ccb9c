package models

// PaymentLink is how the tenant continues to the payment gateway: a URL to
// redirect to, or an HTML page to render.
type PaymentLink struct {
	InvoiceID string `json:"invoice_id" example:"128"`
	Amount    int64  `json:"amount" example:"2040000"`
	PayURL    string `json:"pay_url,omitempty" example:"https://test-payment.momo.vn/pay/xyz"`
	HTML      string `json:"html,omitempty"`
}
