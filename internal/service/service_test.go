package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/internal/store"
	"tenant-portal-svc/internal/upstream"
	"tenant-portal-svc/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// fakeUpstream serves canned JSON per "METHOD /path", records POST bodies and
// counts requests.
type fakeUpstream struct {
	mu     sync.Mutex
	routes map[string]string
	posts  map[string]map[string]any
	hits   map[string]int
}

func newFakeUpstream(t *testing.T, routes map[string]string) (*fakeUpstream, *upstream.Client) {
	t.Helper()
	f := &fakeUpstream{routes: routes, posts: map[string]map[string]any{}, hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		if r.Method == http.MethodPost {
			data, _ := io.ReadAll(r.Body)
			var body map[string]any
			_ = json.Unmarshal(data, &body)
			f.mu.Lock()
			f.posts[r.URL.Path] = body
			f.mu.Unlock()
		}
		f.mu.Lock()
		f.hits[key]++
		body, ok := f.routes[key]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return f, upstream.NewClient(srv.URL, 5*time.Second, logger.NewNopLogger())
}

func (f *fakeUpstream) calls(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

func (f *fakeUpstream) posted(path string) map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.posts[path]
}

var testSession = &models.Session{ID: "sid-1", Username: "an", CustomerID: "15", UpstreamToken: "up-tok"}

const profileJSON = `{"khachHang":{
	"KhachHangID": 15, "HoTenKhachHang": "Nguyễn Văn An", "SoDienThoai": "0901234567",
	"DiaChiCuThe": "12 Lê Lợi", "PhuongXa": "Bến Nghé", "QuanHuyen": "Quận 1", "TinhThanh": "TP.HCM",
	"HopDongsDangThue": [{"HopDongID": 7, "Phong": {"PhongID": 3, "SoPhong": "101", "DayPhong": "A",
		"GiaPhong": 1500000, "DienTich": 20, "TienIch": "Wifi,Máy lạnh"}}]
}}`

const historyJSON = `{"chi_so_list":[
	{"ChiSoID": 1, "ThangNam": "01/2024", "DayPhong": "A", "SoPhong": "101", "TongTien": 500000, "TienTra": 500000, "TrangThaiThanhToan": "Y"},
	{"ChiSoID": 2, "ThangNam": "2/2024", "DayPhong": "A", "SoPhong": "101", "TongTien": 500000, "Tientra": "300.000", "TrangThaiThanhToan": "N"},
	{"ChiSoID": 3, "ThangNam": "03/2024", "DayPhong": "A", "SoPhong": "101", "TongTien": 400000, "TrangThaiThanhToan": "N"}
]}`

func TestComposeAddress(t *testing.T) {
	full := &models.Customer{Street: "12 Lê Lợi", Ward: "Bến Nghé", District: "Quận 1", Province: "TP.HCM"}
	assert.Equal(t, "12 Lê Lợi, Bến Nghé, Quận 1, TP.HCM", composeAddress(full))

	partial := &models.Customer{Street: "12 Lê Lợi", Province: "TP.HCM"}
	assert.Equal(t, "12 Lê Lợi", composeAddress(partial))
}

func TestProfileCurrentMapsUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()
	client := upstream.NewClient(srv.URL, time.Second, logger.NewNopLogger())

	svc := NewProfileService(repository.NewCustomerRepository(client), logger.NewNopLogger())
	_, err := svc.Current(context.Background(), testSession)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestPaymentHistoryGet(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_lichsuthanhtoan/lich-su-khach-hang": historyJSON,
		"GET /api/k_lichsuthanhtoan/tong-no":             `{"tongNo": 999}`,
	})
	svc := NewPaymentHistoryService(repository.NewPaymentHistoryRepository(client), billing.StatusResolver{}, logger.NewNopLogger())

	h, err := svc.Get(context.Background(), testSession)
	require.NoError(t, err)
	require.Len(t, h.Records, 3)

	assert.Equal(t, "02/2024", h.Records[1].Period)
	assert.Equal(t, billing.StatePartial, h.Records[1].Status.State)
	assert.Equal(t, billing.StateUnpaid, h.Records[2].Status.State)

	assert.Equal(t, int64(999), h.Summary.TotalDebt)
	assert.Equal(t, billing.SourceAggregateEndpoint, h.Summary.TotalDebtSource)
	assert.Equal(t, int64(800000), h.Summary.TotalPaid)
	assert.Equal(t, billing.SourceLocal, h.Summary.TotalPaidSource)
	assert.Equal(t, int64(1), h.Summary.PaidCount)
	assert.Equal(t, "800.000", h.TotalPaid.Formatted)
}

func TestPaymentHistoryExport(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_lichsuthanhtoan/lich-su-khach-hang": historyJSON,
	})
	svc := NewPaymentHistoryService(repository.NewPaymentHistoryRepository(client), billing.StatusResolver{}, logger.NewNopLogger())

	data, filename, err := svc.Export(context.Background(), testSession)
	require.NoError(t, err)
	assert.Contains(t, filename, "lich_su_thanh_toan_")

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Lịch sử thanh toán")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, "Tháng", rows[0][1])
	assert.Equal(t, "01/2024", rows[1][1])
	assert.Equal(t, "Thanh toán một phần", rows[2][13])
}

func newInvoiceService(client *upstream.Client) InvoiceService {
	return NewInvoiceService(
		repository.NewInvoiceRepository(client),
		repository.NewPaymentHistoryRepository(client),
		repository.NewPaymentGatewayRepository(client),
		billing.StatusResolver{},
		logger.NewNopLogger(),
	)
}

func TestInvoiceListSettlesAgainstHistory(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_hoadon/khoadon": `[
			{"ChiSoID": 1, "ThangNam": "01/2024", "DayPhong": "A", "SoPhong": "101", "TongTien": 500000, "TrangThaiThanhToan": "N"},
			{"ChiSoID": 2, "ThangNam": "02/2024", "DayPhong": "A", "SoPhong": "101", "TongTien": 500000}
		]`,
		"GET /api/k_lichsuthanhtoan/lich-su-khach-hang": historyJSON,
	})

	invoices, err := newInvoiceService(client).List(context.Background(), testSession)
	require.NoError(t, err)
	require.Len(t, invoices, 2)

	assert.True(t, invoices[0].Status.Paid)
	assert.Equal(t, "năm trăm nghìn đồng", invoices[0].Total.Words)
	assert.Equal(t, billing.StatePartial, invoices[1].Status.State)
	assert.Equal(t, int64(200000), invoices[1].Status.DebtAmount)
}

func TestInvoiceListWithoutHistory(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_hoadon/khoadon": `[{"ChiSoID": 1, "ThangNam": "01/2024", "TienPhong": 500000, "TrangThaiThanhToan": "Y"}]`,
	})

	invoices, err := newInvoiceService(client).List(context.Background(), testSession)
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.True(t, invoices[0].Status.Paid)
	assert.Equal(t, int64(500000), invoices[0].Status.PaidAmount)
}

func TestInvoiceDetailTakesLargerPaidAmount(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_hoadon/khoadon/2":                    `{"data":{"chiSoID": 2, "thangNam": "02/2024", "phong": "A-101", "tongCong": 500000, "tienTra": 100000}}`,
		"GET /api/k_lichsuthanhtoan/lich-su-khach-hang": historyJSON,
	})

	detail, err := newInvoiceService(client).Detail(context.Background(), testSession, "2")
	require.NoError(t, err)
	assert.Equal(t, "A-101", detail.Room)
	assert.Equal(t, int64(300000), detail.Status.PaidAmount)
	assert.Equal(t, int64(200000), detail.Status.DebtAmount)
	assert.Equal(t, "năm trăm nghìn đồng", detail.Total.Words)
	assert.Equal(t, []billing.ServiceLine{}, detail.Services)
}

func TestInvoiceDetailNotFound(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{})

	_, err := newInvoiceService(client).Detail(context.Background(), testSession, "404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoicePay(t *testing.T) {
	f, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_hoadon/khoadon/2":                    `{"data":{"chiSoID": 2, "thangNam": "02/2024", "phong": "A-101", "tongCong": 500000}}`,
		"GET /api/k_hoadon/khoadon/1":                    `{"data":{"chiSoID": 1, "thangNam": "01/2024", "phong": "A-101", "tongCong": 500000}}`,
		"GET /api/k_hoadon/khoadon/9":                    `{"data":{"chiSoID": 9, "thangNam": "09/2024", "tongCong": 700000}}`,
		"GET /api/k_lichsuthanhtoan/lich-su-khach-hang": historyJSON,
		"POST /api/momo/create-payment":                  `{"data":{"payUrl":"https://pay.test/x"}}`,
	})
	svc := newInvoiceService(client)

	link, err := svc.Pay(context.Background(), testSession, "2")
	require.NoError(t, err)
	assert.Equal(t, int64(200000), link.Amount)
	assert.Equal(t, "https://pay.test/x", link.PayURL)
	assert.Equal(t, float64(200000), f.posted("/api/momo/create-payment")["amount"])

	link, err = svc.Pay(context.Background(), testSession, "9")
	require.NoError(t, err)
	assert.Equal(t, int64(700000), link.Amount)

	_, err = svc.Pay(context.Background(), testSession, "1")
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestContractPrintable(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_hopdong/lay-hopdong-cua-khach-hang": `{"hopdong":[
			{"HopDongID": 6, "TrangThaiHopDong": "DaKetThuc"},
			{"HopDongID": 7, "PhongID": 3, "TrangThaiHopDong": "HoatDong", "TienDatCoc": "3.000.000",
			 "NgayBatDau": "2024-01-01", "NgayKetThuc": "2024-12-31T00:00:00.000Z", "HoTenQuanLi": "Trần Thị Bình"}
		]}`,
		"GET /api/k_khachhang/thong-tin": profileJSON,
	})
	profile := NewProfileService(repository.NewCustomerRepository(client), logger.NewNopLogger())
	svc := NewContractService(repository.NewContractRepository(client), profile, logger.NewNopLogger())

	current, err := svc.Current(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, "7", current.ID)

	p, err := svc.Printable(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, "Trần Thị Bình", p.LandlordName)
	assert.Equal(t, placeholder, p.LandlordPhone)
	assert.Equal(t, "12 Lê Lợi, Bến Nghé, Quận 1, TP.HCM", p.TenantAddress)
	assert.Equal(t, "1/1/2024", p.StartDate)
	assert.Equal(t, "31/12/2024", p.EndDate)
	assert.Equal(t, "3.000.000", p.Deposit)
	assert.Equal(t, "ba triệu đồng", p.DepositWords)
	assert.Equal(t, "1.500.000", p.RoomPrice)
	assert.Equal(t, "một triệu năm trăm nghìn đồng", p.RoomPriceWords)
	assert.Equal(t, defaultCycle, p.Cycle)
	assert.Equal(t, []string{"Wifi", "Máy lạnh"}, p.Amenities)
}

func TestContractCurrentNone(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_hopdong/lay-hopdong-cua-khach-hang": `{"hopdong":[]}`,
	})
	profile := NewProfileService(repository.NewCustomerRepository(client), logger.NewNopLogger())
	svc := NewContractService(repository.NewContractRepository(client), profile, logger.NewNopLogger())

	_, err := svc.Current(context.Background(), testSession)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPrintDate(t *testing.T) {
	assert.Equal(t, "5/3/2024", printDate("2024-03-05"))
	assert.Equal(t, "5/3/2024", printDate("05/03/2024"))
	assert.Equal(t, placeholder, printDate(" "))
	assert.Equal(t, "sometime", printDate("sometime"))
}

func TestContactSubmit(t *testing.T) {
	f, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_khachhang/thong-tin": profileJSON,
		"POST /api/lienhe":               `{"message":"ok"}`,
	})
	profile := NewProfileService(repository.NewCustomerRepository(client), logger.NewNopLogger())
	svc := NewContactService(repository.NewContactRepository(client), profile, store.NewMemoryStore(), time.Hour, logger.NewNopLogger()).(*contactService)
	svc.now = func() time.Time { return time.Date(2024, 3, 2, 15, 15, 0, 0, time.FixedZone("ICT", 7*3600)) }

	_, err := svc.Submit(context.Background(), testSession, ContactInput{Reason: "Sửa chữa"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	msg, err := svc.Submit(context.Background(), testSession, ContactInput{Reason: "Sửa chữa", Content: "Vòi nước bị rỉ"})
	require.NoError(t, err)
	assert.Equal(t, "2024-03-02 08:15:00", msg.SentAt)
	assert.Equal(t, "3", msg.RoomID)

	body := f.posted("/api/lienhe")
	assert.Equal(t, float64(15), body["KhachHangID"])
	assert.Equal(t, float64(3), body["PhongID"])
	assert.Equal(t, models.ContactStatusPending, body["TrangThai"])
}

func TestContactRepliesCountsNewOnes(t *testing.T) {
	f, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_lienhe/phan-hoi": `{"data":[{"LienHeID": 1, "PhanHoi": "Đã sửa"}, {"LienHeID": 2, "PhanHoi": ""}]}`,
	})
	profile := NewProfileService(repository.NewCustomerRepository(client), logger.NewNopLogger())
	svc := NewContactService(repository.NewContactRepository(client), profile, store.NewMemoryStore(), time.Hour, logger.NewNopLogger())

	first, err := svc.Replies(context.Background(), testSession)
	require.NoError(t, err)
	assert.Len(t, first.Replies, 2)
	assert.Equal(t, 1, first.NewCount)

	again, err := svc.Replies(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, 0, again.NewCount)

	f.mu.Lock()
	f.routes["GET /api/k_lienhe/phan-hoi"] = `[{"LienHeID": 1, "PhanHoi": "Đã sửa"}, {"LienHeID": 2, "PhanHoi": "Chiều nay"}]`
	f.mu.Unlock()

	later, err := svc.Replies(context.Background(), testSession)
	require.NoError(t, err)
	assert.Equal(t, 1, later.NewCount)
}

func TestContactSeenRepliesExpireWithSession(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_lienhe/phan-hoi": `[{"LienHeID": 1, "PhanHoi": "Đã sửa"}]`,
	})
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	st := store.NewMemoryStoreWithClock(func() time.Time { return now })
	profile := NewProfileService(repository.NewCustomerRepository(client), logger.NewNopLogger())
	svc := NewContactService(repository.NewContactRepository(client), profile, st, 2*time.Hour, logger.NewNopLogger())

	_, err := svc.Replies(context.Background(), testSession)
	require.NoError(t, err)

	key := store.SeenRepliesKey(testSession.ID)
	_, ok, err := st.Get(context.Background(), key)
	require.NoError(t, err)
	require.True(t, ok)

	now = now.Add(2 * time.Hour)
	swept, err := st.DeleteExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), swept)

	_, ok, _ = st.Get(context.Background(), key)
	assert.False(t, ok)
}

func TestPreferences(t *testing.T) {
	svc := NewPreferenceService(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, svc.Set(ctx, testSession, "theme", "dark"))
	v, ok, err := svc.Get(ctx, testSession, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	assert.ErrorIs(t, svc.Set(ctx, testSession, "theme", "purple"), ErrInvalidInput)
	assert.ErrorIs(t, svc.Set(ctx, testSession, "font", "x"), ErrInvalidInput)
	assert.ErrorIs(t, svc.Set(ctx, testSession, "dismissed:", "1"), ErrInvalidInput)
	require.NoError(t, svc.Set(ctx, testSession, "dismissed:debt-card", "1"))
	require.NoError(t, svc.Set(ctx, testSession, "avatar", "data:image/png;base64,AAAA"))

	// Preferences follow the tenant across sessions.
	other := &models.Session{ID: "sid-2", CustomerID: testSession.CustomerID}
	v, ok, err = svc.Get(ctx, other, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "dark", v)

	require.NoError(t, svc.Clear(ctx, testSession, "theme"))
	_, ok, err = svc.Get(ctx, testSession, "theme")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUtilityListNormalizesPeriods(t *testing.T) {
	_, client := newFakeUpstream(t, map[string]string{
		"GET /api/k_diennuoc": `[{"ThangNam":"2024-03","DienDaSuDung":120,"NuocDaSuDung":8}]`,
	})
	svc := NewUtilityService(repository.NewUtilityRepository(client), logger.NewNopLogger())

	usages, err := svc.List(context.Background(), testSession)
	require.NoError(t, err)
	require.Len(t, usages, 1)
	assert.Equal(t, "03/2024", usages[0].Period)
}
