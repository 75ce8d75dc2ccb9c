package repository

import (
	"context"

	"tenant-portal-svc/internal/upstream"
)

const momoCreatePaymentPath = "/api/momo/create-payment"

// GatewayLink is where the payment gateway sends the tenant next
type GatewayLink struct {
	PayURL string
	HTML   string
}

// PaymentGatewayRepository starts payments through the upstream's gateway
type PaymentGatewayRepository interface {
	CreateMoMoPayment(ctx context.Context, token string, amount int64) (*GatewayLink, error)
}

// paymentGatewayRepository implements PaymentGatewayRepository
type paymentGatewayRepository struct {
	client *upstream.Client
}

// NewPaymentGatewayRepository creates a new instance of PaymentGatewayRepository
func NewPaymentGatewayRepository(client *upstream.Client) PaymentGatewayRepository {
	return &paymentGatewayRepository{
		client: client,
	}
}

// CreateMoMoPayment asks MoMo for a payment of amount đồng. The returned link
// is empty when the gateway answered without a URL or page.
func (r *paymentGatewayRepository) CreateMoMoPayment(ctx context.Context, token string, amount int64) (*GatewayLink, error) {
	resp, err := r.client.Post(ctx, token, momoCreatePaymentPath, map[string]int64{"amount": amount})
	if err != nil {
		return nil, err
	}

	body := resp.JSON()
	payload := upstream.FirstOf(body, "data")
	if !payload.IsObject() {
		payload = body
	}
	return &GatewayLink{
		PayURL: upstream.StringOf(payload, "payUrl", "pay_url", "deeplink", "deeplinkUrl", "shortLink", "url", "result.payUrl"),
		HTML:   upstream.StringOf(payload, "html"),
	}, nil
}
