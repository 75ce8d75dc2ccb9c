package service

import (
	"context"
	"fmt"
	"time"

	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/pkg/logger"

	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// PaymentHistoryService reads the payment history and its summary
type PaymentHistoryService interface {
	Get(ctx context.Context, session *models.Session) (*models.PaymentHistory, error)
	Export(ctx context.Context, session *models.Session) ([]byte, string, error)
}

// paymentHistoryService implements PaymentHistoryService
type paymentHistoryService struct {
	historyRepo repository.PaymentHistoryRepository
	resolver    billing.StatusResolver
	logger      *logger.Logger
	now         func() time.Time
}

// NewPaymentHistoryService creates a new instance of PaymentHistoryService
func NewPaymentHistoryService(historyRepo repository.PaymentHistoryRepository, resolver billing.StatusResolver, logger *logger.Logger) PaymentHistoryService {
	return &paymentHistoryService{
		historyRepo: historyRepo,
		resolver:    resolver,
		logger:      logger,
		now:         time.Now,
	}
}

// Get fetches the history and both aggregate endpoints at once. The
// aggregates are optional; their failures only mean the summary is derived
// from the records.
func (s *paymentHistoryService) Get(ctx context.Context, session *models.Session) (*models.PaymentHistory, error) {
	var (
		page *repository.HistoryPage
		agg  billing.ServerAggregates
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		page, err = s.historyRepo.List(gctx, session.UpstreamToken)
		return err
	})
	g.Go(func() error {
		debt, err := s.historyRepo.TotalDebt(gctx, session.UpstreamToken)
		if err != nil {
			s.logger.WithError(err).Debug("Debt aggregate unavailable")
			return nil
		}
		agg.EndpointDebt = debt
		return nil
	})
	g.Go(func() error {
		paid, err := s.historyRepo.TotalPaid(gctx, session.UpstreamToken)
		if err != nil {
			s.logger.WithError(err).Debug("Paid aggregate unavailable")
			return nil
		}
		agg.EndpointPaid = paid
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.WithError(err).WithField("username", session.Username).Error("Failed to get payment history")
		return nil, fromUpstream(err)
	}

	agg.ResponseDebt = page.TotalDebt
	agg.ResponsePaid = page.TotalPaid
	agg.ResponsePaidCount = page.PaidCount

	records := make([]billing.PaymentRecord, 0, len(page.Rows))
	history := &models.PaymentHistory{Records: make([]models.HistoryRecord, 0, len(page.Rows))}
	for _, row := range page.Rows {
		rec := row.Record
		records = append(records, rec)
		history.Records = append(history.Records, models.HistoryRecord{
			ID:               rec.ID,
			Period:           billing.NormalizePeriod(rec.PeriodKey),
			Building:         rec.Building,
			Room:             rec.Room,
			ElectricityUsage: row.ElectricityUsage.Or(0),
			WaterUsage:       row.WaterUsage.Or(0),
			RoomFee:          rec.RoomFee.Or(0),
			ServiceFee:       rec.ServiceFee.Or(0),
			ElectricityFee:   rec.ElectricityFee.Or(0),
			WaterFee:         rec.WaterFee.Or(0),
			RepairFee:        rec.RepairFee.Or(0),
			RepairName:       row.RepairName,
			Deduction:        rec.Deduction.Or(0),
			DeductionName:    row.DeductionName,
			Status:           s.resolver.ResolveRecord(rec),
		})
	}

	history.Periods = records
	history.Summary = billing.Summarize(records, s.resolver, agg)
	history.TotalPaid = billing.NewMoney(history.Summary.TotalPaid)
	history.TotalDebt = billing.NewMoney(history.Summary.TotalDebt)
	history.TotalBilled = billing.NewMoney(history.Summary.TotalBilled)
	return history, nil
}

var paymentStateNames = map[billing.PaymentState]string{
	billing.StatePaid:    "Đã thanh toán",
	billing.StatePartial: "Thanh toán một phần",
	billing.StateUnpaid:  "Chưa thanh toán",
}

// Export writes the payment history as an Excel workbook
func (s *paymentHistoryService) Export(ctx context.Context, session *models.Session) ([]byte, string, error) {
	history, err := s.Get(ctx, session)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			s.logger.WithError(err).Warn("Failed to close Excel file")
		}
	}()

	sheetName := "Lịch sử thanh toán"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headers := []string{"STT", "Tháng", "Dãy", "Phòng", "Tiền phòng", "Tiền điện", "Tiền nước", "Dịch vụ", "Sửa chữa", "Giảm trừ", "Tổng tiền", "Đã trả", "Còn nợ", "Trạng thái"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#D3D3D3"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheetName, "A1", last, headerStyle)
	}

	for i, rec := range history.Records {
		row := i + 2
		values := []interface{}{
			i + 1,
			rec.Period,
			rec.Building,
			rec.Room,
			rec.RoomFee,
			rec.ElectricityFee,
			rec.WaterFee,
			rec.ServiceFee,
			rec.RepairFee,
			rec.Deduction,
			rec.Status.TotalAmount,
			rec.Status.PaidAmount,
			rec.Status.DebtAmount,
			paymentStateNames[rec.Status.State],
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	totalRow := len(history.Records) + 3
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow), "Tổng đã trả")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow), history.Summary.TotalPaid)
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", totalRow+1), "Tổng còn nợ")
	f.SetCellValue(sheetName, fmt.Sprintf("C%d", totalRow+1), history.Summary.TotalDebt)

	for i := 1; i <= len(headers); i++ {
		col, _ := excelize.ColumnNumberToName(i)
		f.SetColWidth(sheetName, col, col, 15)
	}

	if f.GetSheetName(0) == "Sheet1" && sheetName != "Sheet1" {
		f.DeleteSheet("Sheet1")
	}

	filename := fmt.Sprintf("lich_su_thanh_toan_%s.xlsx", s.now().Format("20060102_150405"))

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buffer.Bytes(), filename, nil
}
