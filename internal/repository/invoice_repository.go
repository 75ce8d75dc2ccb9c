package repository

import (
	"context"
	"net/url"

	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/upstream"

	"github.com/tidwall/gjson"
)

var (
	invoiceListPaths = []string{
		"/api/k_hoadon/khoadon",
		"/api/k_hoadon/hoa-don-cua-khach-hang",
		"/api/k_hoadon/hoa-don",
	}
	invoiceDetailPaths = []string{
		"/api/k_hoadon/khoadon/",
		"/api/k_hoadon/chi-tiet-hoa-don/",
		"/api/k_hoadon/chi-tiet/",
	}
)

// InvoiceRow is one invoice of the invoice list
type InvoiceRow struct {
	Record           billing.PaymentRecord
	ElectricityUsage billing.Amount
	WaterUsage       billing.Amount
	ElectricityPrice billing.Amount
	WaterPrice       billing.Amount
	RepairName       string
	DeductionName    string
}

// InvoiceDetailRow is the upstream detail of one invoice
type InvoiceDetailRow struct {
	Record       billing.PaymentRecord
	Room         string
	CheckInDate  string
	CustomerName string
	Phone        string
}

// InvoiceRepository reads invoices of the logged in tenant
type InvoiceRepository interface {
	List(ctx context.Context, token string) ([]InvoiceRow, error)
	Detail(ctx context.Context, token, id string) (*InvoiceDetailRow, error)
}

// invoiceRepository implements InvoiceRepository
type invoiceRepository struct {
	client *upstream.Client
}

// NewInvoiceRepository creates a new instance of InvoiceRepository
func NewInvoiceRepository(client *upstream.Client) InvoiceRepository {
	return &invoiceRepository{
		client: client,
	}
}

// List walks the invoice list endpoints
func (r *invoiceRepository) List(ctx context.Context, token string) ([]InvoiceRow, error) {
	resp, err := r.client.GetFirst(ctx, token, invoiceListPaths...)
	if err != nil {
		return nil, err
	}

	items := upstream.ListOf(resp.JSON(), "data")
	rows := make([]InvoiceRow, 0, len(items))
	for _, item := range items {
		rows = append(rows, decodeInvoiceRow(item))
	}
	return rows, nil
}

// Detail walks the invoice detail endpoints
func (r *invoiceRepository) Detail(ctx context.Context, token, id string) (*InvoiceDetailRow, error) {
	escaped := url.PathEscape(id)
	paths := make([]string, len(invoiceDetailPaths))
	for i, p := range invoiceDetailPaths {
		paths[i] = p + escaped
	}

	resp, err := r.client.GetFirst(ctx, token, paths...)
	if err != nil {
		return nil, err
	}
	row := decodeInvoiceDetail(upstream.ObjectOf(resp.JSON(), "data", "hoaDon", "chiTiet"))
	if row.Record.ID == "" {
		row.Record.ID = id
	}
	return &row, nil
}

func decodeInvoiceRow(v gjson.Result) InvoiceRow {
	row := InvoiceRow{
		ElectricityUsage: upstream.AmountOf(v, "SoDienDaTieuThu"),
		WaterUsage:       upstream.AmountOf(v, "SoNuocDaTieuThu"),
		ElectricityPrice: upstream.AmountOf(v, "GiaDienMoi", "GiaDien"),
		WaterPrice:       upstream.AmountOf(v, "GiaNuocMoi", "GiaNuoc"),
		RepairName:       upstream.StringOf(v, "TenPhiSuaChua"),
		DeductionName:    upstream.StringOf(v, "TenPhiTru"),
	}
	row.Record = billing.PaymentRecord{
		ID:             upstream.StringOf(v, "ChiSoID", "id"),
		PeriodKey:      upstream.StringOf(v, "ThangNam", "thangNam"),
		Building:       upstream.StringOf(v, "DayPhong"),
		Room:           upstream.StringOf(v, "SoPhong"),
		RoomFee:        upstream.AmountOf(v, "TienPhong"),
		ElectricityFee: usageFee(row.ElectricityUsage, row.ElectricityPrice, upstream.AmountOf(v, "TienDien")),
		WaterFee:       usageFee(row.WaterUsage, row.WaterPrice, upstream.AmountOf(v, "TienNuoc")),
		RepairFee:      upstream.AmountOf(v, "PhiSuaChua"),
		ServiceFee:     upstream.AmountOf(v, "TongDichVu", "DichVu"),
		Deduction:      upstream.AmountOf(v, "PhiTru"),
		Total:          upstream.AmountOf(v, "TongTien"),
		Paid:           upstream.AmountOf(v, "TienTra"),
		PaidAlt:        upstream.AmountOf(v, "Tientra"),
		Debt:           upstream.AmountOf(v, "TienNo"),
		RawStatus:      upstream.ValueOf(v, "TrangThaiThanhToan"),
	}
	return row
}

func decodeInvoiceDetail(v gjson.Result) InvoiceDetailRow {
	var services []billing.ServiceLine
	for _, s := range upstream.ListOf(upstream.FirstOf(v, "dsDichVu", "DichVu", "dichVu")) {
		services = append(services, billing.ServiceLine{
			Name:   upstream.StringOf(s, "ten", "TenDichVu", "name"),
			Amount: upstream.AmountOf(s, "gia", "GiaDichVu", "price"),
		})
	}

	return InvoiceDetailRow{
		Room:         upstream.StringOf(v, "phong", "Phong"),
		CheckInDate:  upstream.StringOf(v, "ngayVao", "NgayVao"),
		CustomerName: upstream.StringOf(v, "tenKhachHang", "HoTenKhachHang"),
		Phone:        upstream.StringOf(v, "soDienThoai", "SoDienThoai"),
		Record: billing.PaymentRecord{
			ID:             upstream.StringOf(v, "chiSoID", "ChiSoID"),
			PeriodKey:      upstream.StringOf(v, "thangNam", "ThangNam"),
			Building:       upstream.StringOf(v, "DayPhong", "dayPhong"),
			Room:           upstream.StringOf(v, "SoPhong", "soPhong"),
			RoomFee:        upstream.AmountOf(v, "tienPhong", "TienPhong"),
			ElectricityFee: upstream.AmountOf(v, "tienDien", "TienDien"),
			WaterFee:       upstream.AmountOf(v, "tienNuoc", "TienNuoc"),
			RepairFee:      upstream.AmountOf(v, "suaChua", "PhiSuaChua"),
			Deduction:      upstream.AmountOf(v, "phiTru", "PhiTru"),
			Services:       services,
			Total:          upstream.AmountOf(v, "tongCong", "TongTien"),
			Paid:           upstream.AmountOf(v, "tienTra", "TienTra"),
			PaidAlt:        upstream.AmountOf(v, "Tientra"),
			Debt:           upstream.AmountOf(v, "tienNo", "TienNo"),
			RawStatus:      upstream.ValueOf(v, "trangThai", "TrangThaiThanhToan"),
		},
	}
}

// usageFee is usage times unit price, or the fee the upstream sent when
// either factor is missing.
func usageFee(usage, price, fallback billing.Amount) billing.Amount {
	if usage.Valid && price.Valid {
		return billing.Some(usage.Value * price.Value)
	}
	return fallback
}
