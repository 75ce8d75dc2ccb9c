package repository

import (
	"context"

	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/upstream"

	"github.com/tidwall/gjson"
)

var historyPaths = []string{
	"/api/k_lichsuthanhtoan/lich-su-khach-hang",
	"/api/k_lichsuthanhtoan/lich-su-thanh-toan",
	"/api/lich-su-thanh-toan",
	"/api/thanhtoan/lich-su",
	"/api/k_lichsuthanhtoan",
}

const (
	totalDebtPath = "/api/k_lichsuthanhtoan/tong-no"
	totalPaidPath = "/api/k_lichsuthanhtoan/tong-da-thanh-toan"
)

// HistoryRow is one billing period of the payment history
type HistoryRow struct {
	Record           billing.PaymentRecord
	ElectricityUsage billing.Amount
	WaterUsage       billing.Amount
	RepairName       string
	DeductionName    string
}

// HistoryPage is the history list with the totals the response carried
type HistoryPage struct {
	Rows      []HistoryRow
	PaidCount billing.Amount
	TotalDebt billing.Amount
	TotalPaid billing.Amount
}

// PaymentHistoryRepository reads the payment history of the logged in tenant
type PaymentHistoryRepository interface {
	List(ctx context.Context, token string) (*HistoryPage, error)
	TotalDebt(ctx context.Context, token string) (billing.Amount, error)
	TotalPaid(ctx context.Context, token string) (billing.Amount, error)
}

// paymentHistoryRepository implements PaymentHistoryRepository
type paymentHistoryRepository struct {
	client *upstream.Client
}

// NewPaymentHistoryRepository creates a new instance of PaymentHistoryRepository
func NewPaymentHistoryRepository(client *upstream.Client) PaymentHistoryRepository {
	return &paymentHistoryRepository{
		client: client,
	}
}

// List walks the history endpoints from newest to oldest
func (r *paymentHistoryRepository) List(ctx context.Context, token string) (*HistoryPage, error) {
	resp, err := r.client.GetFirst(ctx, token, historyPaths...)
	if err != nil {
		return nil, err
	}

	body := resp.JSON()
	items := upstream.ListOf(body, "chi_so_list", "data")
	page := &HistoryPage{Rows: make([]HistoryRow, 0, len(items))}
	for _, item := range items {
		page.Rows = append(page.Rows, decodeHistoryRow(item))
	}
	if body.IsObject() {
		page.PaidCount = upstream.AmountOf(body, "so_lan_thanh_toan")
		page.TotalDebt = upstream.AmountOf(body, "tong_no")
		page.TotalPaid = upstream.AmountOf(body, "tong_da_thanh_toan")
	}
	return page, nil
}

// TotalDebt reads the debt aggregate endpoint
func (r *paymentHistoryRepository) TotalDebt(ctx context.Context, token string) (billing.Amount, error) {
	resp, err := r.client.Get(ctx, token, totalDebtPath)
	if err != nil {
		return billing.Amount{}, err
	}
	return upstream.AmountOf(resp.JSON(), "tongNo", "tong_no"), nil
}

// TotalPaid reads the paid aggregate endpoint
func (r *paymentHistoryRepository) TotalPaid(ctx context.Context, token string) (billing.Amount, error) {
	resp, err := r.client.Get(ctx, token, totalPaidPath)
	if err != nil {
		return billing.Amount{}, err
	}
	return upstream.AmountOf(resp.JSON(), "tongDaThanhToan", "tong_da_thanh_toan"), nil
}

func decodeHistoryRow(v gjson.Result) HistoryRow {
	return HistoryRow{
		ElectricityUsage: upstream.AmountOf(v, "SoDienDaTieuThu"),
		WaterUsage:       upstream.AmountOf(v, "SoNuocDaTieuThu"),
		RepairName:       upstream.StringOf(v, "TenPhiSuaChua"),
		DeductionName:    upstream.StringOf(v, "TenPhiTru"),
		Record: billing.PaymentRecord{
			ID:             upstream.StringOf(v, "ChiSoID", "id"),
			PeriodKey:      upstream.StringOf(v, "ThangNam", "thangNam"),
			Building:       upstream.StringOf(v, "DayPhong"),
			Room:           upstream.StringOf(v, "SoPhong"),
			RoomFee:        upstream.AmountOf(v, "TienPhong"),
			ElectricityFee: upstream.AmountOf(v, "TienDien"),
			WaterFee:       upstream.AmountOf(v, "TienNuoc"),
			RepairFee:      upstream.AmountOf(v, "PhiSuaChua"),
			ServiceFee:     upstream.AmountOf(v, "TongDichVu", "DichVu"),
			Deduction:      upstream.AmountOf(v, "PhiTru"),
			Total:          upstream.AmountOf(v, "TongTien"),
			Paid:           upstream.AmountOf(v, "TienTra"),
			PaidAlt:        upstream.AmountOf(v, "Tientra"),
			Debt:           upstream.AmountOf(v, "TienNo"),
			RawStatus:      upstream.ValueOf(v, "TrangThaiThanhToan"),
		},
	}
}
