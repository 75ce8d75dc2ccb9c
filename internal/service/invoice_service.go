package service

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/internal/upstream"
	"tenant-portal-svc/pkg/logger"
)

// InvoiceService lists invoices, settles them against the payment history and
// starts payments
type InvoiceService interface {
	List(ctx context.Context, session *models.Session) ([]models.Invoice, error)
	ListWithHistory(ctx context.Context, session *models.Session, history []billing.PaymentRecord) ([]models.Invoice, error)
	Detail(ctx context.Context, session *models.Session, id string) (*models.InvoiceDetail, error)
	Pay(ctx context.Context, session *models.Session, id string) (*models.PaymentLink, error)
}

// invoiceService implements InvoiceService
type invoiceService struct {
	invoiceRepo repository.InvoiceRepository
	historyRepo repository.PaymentHistoryRepository
	gatewayRepo repository.PaymentGatewayRepository
	resolver    billing.StatusResolver
	logger      *logger.Logger
}

// NewInvoiceService creates a new instance of InvoiceService
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	historyRepo repository.PaymentHistoryRepository,
	gatewayRepo repository.PaymentGatewayRepository,
	resolver billing.StatusResolver,
	logger *logger.Logger,
) InvoiceService {
	return &invoiceService{
		invoiceRepo: invoiceRepo,
		historyRepo: historyRepo,
		gatewayRepo: gatewayRepo,
		resolver:    resolver,
		logger:      logger,
	}
}

// List returns the invoices with fees, totals and their settlement
func (s *invoiceService) List(ctx context.Context, session *models.Session) ([]models.Invoice, error) {
	rows, err := s.listRows(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.settle(rows, s.historyRecords(ctx, session)), nil
}

// ListWithHistory is List for callers that already hold the payment history.
// A nil history settles invoices on their own fields.
func (s *invoiceService) ListWithHistory(ctx context.Context, session *models.Session, history []billing.PaymentRecord) ([]models.Invoice, error) {
	rows, err := s.listRows(ctx, session)
	if err != nil {
		return nil, err
	}
	return s.settle(rows, history), nil
}

func (s *invoiceService) listRows(ctx context.Context, session *models.Session) ([]repository.InvoiceRow, error) {
	rows, err := s.invoiceRepo.List(ctx, session.UpstreamToken)
	if err != nil {
		s.logger.WithError(err).WithField("username", session.Username).Error("Failed to get invoices")
		return nil, fromUpstream(err)
	}
	return rows, nil
}

func (s *invoiceService) settle(rows []repository.InvoiceRow, history []billing.PaymentRecord) []models.Invoice {
	invoices := make([]models.Invoice, 0, len(rows))
	for _, row := range rows {
		rec := row.Record
		match := billing.FindRecord(history, rec.PeriodKey, rec.RoomLabel())
		total := rec.TotalAmount().Or(0)

		invoices = append(invoices, models.Invoice{
			ID:               rec.ID,
			Period:           billing.NormalizePeriod(rec.PeriodKey),
			Building:         rec.Building,
			Room:             rec.Room,
			ElectricityUsage: row.ElectricityUsage.Or(0),
			WaterUsage:       row.WaterUsage.Or(0),
			ElectricityPrice: row.ElectricityPrice.Or(0),
			WaterPrice:       row.WaterPrice.Or(0),
			RoomFee:          rec.RoomFee.Or(0),
			ElectricityFee:   rec.ElectricityFee.Or(0),
			WaterFee:         rec.WaterFee.Or(0),
			RepairFee:        rec.RepairFee.Or(0),
			RepairName:       row.RepairName,
			Deduction:        rec.Deduction.Or(0),
			DeductionName:    row.DeductionName,
			Total:            billing.NewMoney(total),
			Status:           s.resolver.Merge(rec, match),
		})
	}
	return invoices
}

// Detail merges the invoice detail with its payment-history row
func (s *invoiceService) Detail(ctx context.Context, session *models.Session, id string) (*models.InvoiceDetail, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, newError(ErrInvalidInput, "Thiếu mã hóa đơn")
	}

	row, err := s.invoiceRepo.Detail(ctx, session.UpstreamToken, id)
	if err != nil {
		var apiErr *upstream.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, newError(ErrNotFound, "Không tìm thấy hóa đơn")
		}
		s.logger.WithError(err).WithField("invoice_id", id).Error("Failed to get invoice detail")
		return nil, fromUpstream(err)
	}

	rec := row.Record
	room := row.Room
	if room == "" {
		room = rec.RoomLabel()
	}
	match := billing.FindRecord(s.historyRecords(ctx, session), rec.PeriodKey, room)
	status := s.resolver.Merge(rec, match)

	services := rec.Services
	if services == nil {
		services = []billing.ServiceLine{}
	}
	return &models.InvoiceDetail{
		ID:             rec.ID,
		Period:         billing.NormalizePeriod(rec.PeriodKey),
		Room:           room,
		CheckInDate:    row.CheckInDate,
		CustomerName:   row.CustomerName,
		Phone:          row.Phone,
		RoomFee:        rec.RoomFee.Or(0),
		ElectricityFee: rec.ElectricityFee.Or(0),
		WaterFee:       rec.WaterFee.Or(0),
		RepairFee:      rec.RepairFee.Or(0),
		Deduction:      rec.Deduction.Or(0),
		Services:       services,
		Total:          billing.NewMoney(status.TotalAmount),
		Status:         status,
	}, nil
}

// Pay starts a MoMo payment for what is still owed on the invoice
func (s *invoiceService) Pay(ctx context.Context, session *models.Session, id string) (*models.PaymentLink, error) {
	detail, err := s.Detail(ctx, session, id)
	if err != nil {
		return nil, err
	}
	if detail.Status.Paid {
		return nil, newError(ErrAlreadyPaid, "Hóa đơn đã được thanh toán")
	}

	amount := detail.Status.DebtAmount
	if detail.Status.PaidAmount == 0 {
		amount = detail.Status.TotalAmount
	}
	if amount <= 0 {
		return nil, newError(ErrInvalidInput, "Hóa đơn không có số tiền cần thanh toán")
	}

	link, err := s.gatewayRepo.CreateMoMoPayment(ctx, session.UpstreamToken, amount)
	if err != nil {
		s.logger.WithError(err).WithField("invoice_id", id).Error("Failed to create MoMo payment")
		return nil, fromUpstream(err)
	}
	if link.PayURL == "" && link.HTML == "" {
		return nil, &upstream.APIError{
			StatusCode: http.StatusBadGateway,
			Path:       "/api/momo/create-payment",
			Message:    "Không nhận được liên kết thanh toán",
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"invoice_id": detail.ID,
		"amount":     amount,
	}).Info("MoMo payment created")

	return &models.PaymentLink{
		InvoiceID: detail.ID,
		Amount:    amount,
		PayURL:    link.PayURL,
		HTML:      link.HTML,
	}, nil
}

// historyRecords is best effort: without history, invoices are settled on
// their own fields.
func (s *invoiceService) historyRecords(ctx context.Context, session *models.Session) []billing.PaymentRecord {
	page, err := s.historyRepo.List(ctx, session.UpstreamToken)
	if err != nil {
		s.logger.WithError(err).Warn("Payment history unavailable, settling invoices on their own")
		return nil
	}
	records := make([]billing.PaymentRecord, 0, len(page.Rows))
	for _, row := range page.Rows {
		records = append(records, row.Record)
	}
	return records
}
