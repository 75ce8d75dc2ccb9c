package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tenant-portal-svc/internal/billing"
	"tenant-portal-svc/internal/middleware"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/internal/service"
	"tenant-portal-svc/internal/store"
	"tenant-portal-svc/internal/upstream"
	"tenant-portal-svc/pkg/logger"
	"tenant-portal-svc/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func fakeUpstream(t *testing.T, routes map[string]string) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/k_khachhang/dang-nhap" {
			var body map[string]string
			_ = json.NewDecoder(r.Body).Decode(&body)
			if body["MatKhau"] != "dung" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"message":"Sai mật khẩu"}`))
				return
			}
			_, _ = w.Write([]byte(`{"token":"up-tok","user":{"KhachHangID":15}}`))
			return
		}
		body, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return upstream.NewClient(srv.URL, 5*time.Second, logger.NewNopLogger())
}

func newRouter(t *testing.T, routes map[string]string) *gin.Engine {
	t.Helper()
	log := logger.NewNopLogger()
	client := fakeUpstream(t, routes)
	st := store.NewMemoryStore()
	resolver := billing.StatusResolver{}

	customerRepo := repository.NewCustomerRepository(client)
	historyRepo := repository.NewPaymentHistoryRepository(client)

	authService := service.NewAuthService(customerRepo, st, service.AuthOptions{
		Secret:      "test-secret",
		SessionTTL:  time.Hour,
		LoginPolicy: upstream.RetryPolicy{Attempts: 1, Timeout: time.Second},
	}, log)
	profileService := service.NewProfileService(customerRepo, log)
	invoiceService := service.NewInvoiceService(repository.NewInvoiceRepository(client), historyRepo, repository.NewPaymentGatewayRepository(client), resolver, log)
	historyService := service.NewPaymentHistoryService(historyRepo, resolver, log)

	router := gin.New()
	router.Use(middleware.ErrorHandler(log))
	router.NoRoute(middleware.NoRouteHandler())
	SetupRoutes(router,
		authService,
		profileService,
		service.NewContractService(repository.NewContractRepository(client), profileService, log),
		invoiceService,
		historyService,
		service.NewUtilityService(repository.NewUtilityRepository(client), log),
		service.NewContactService(repository.NewContactRepository(client), profileService, st, time.Hour, log),
		service.NewPreferenceService(st),
		service.NewDashboardService(invoiceService, historyService, log),
		log,
	)
	return router
}

func do(router *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func login(t *testing.T, router *gin.Engine) string {
	t.Helper()
	w, env := do(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "an", "password": "dung"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	require.NotEmpty(t, res.Token)
	return res.Token
}

func TestFormatAmount(t *testing.T) {
	router := newRouter(t, nil)

	w, env := do(router, http.MethodGet, "/api/v1/format/amount?value=1.900.000%20%C4%91", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out FormattedAmount
	require.NoError(t, json.Unmarshal(env.Data, &out))
	assert.Equal(t, billing.Some(1900000), out.Amount)
	assert.Equal(t, "1.900.000", out.Formatted)
	assert.Equal(t, "một triệu chín trăm nghìn đồng", out.Words)

	_, env = do(router, http.MethodGet, "/api/v1/format/amount?value=abc", "", nil)
	assert.JSONEq(t, `{"input":"abc","amount":null}`, string(env.Data))
}

func TestProtectedRoutesNeedSession(t *testing.T) {
	router := newRouter(t, nil)

	w, env := do(router, http.MethodGet, "/api/v1/invoices", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, env.Success)

	w, _ = do(router, http.MethodGet, "/api/v1/invoices", "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRejected(t *testing.T) {
	router := newRouter(t, nil)

	w, env := do(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "an", "password": "sai"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Sai mật khẩu", env.Message)

	w, _ = do(router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "an"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSessionLifecycle(t *testing.T) {
	router := newRouter(t, map[string]string{
		"GET /api/k_khachhang/thong-tin": `{"khachHang":{"KhachHangID":15,"HoTenKhachHang":"Nguyễn Văn An"}}`,
	})
	token := login(t, router)

	w, env := do(router, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), "Nguyễn Văn An")

	w, _ = do(router, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(router, http.MethodGet, "/api/v1/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPayAlreadyPaidInvoiceConflicts(t *testing.T) {
	router := newRouter(t, map[string]string{
		"GET /api/k_hoadon/khoadon/1": `{"data":{"chiSoID":1,"thangNam":"01/2024","tongCong":500000,"tienTra":500000}}`,
	})
	token := login(t, router)

	w, env := do(router, http.MethodPost, "/api/v1/invoices/1/pay", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Hóa đơn đã được thanh toán", env.Message)
}

func TestUpstreamErrorIsBadGateway(t *testing.T) {
	router := newRouter(t, map[string]string{})
	token := login(t, router)

	// Every contract endpoint answers 404, which ends as an upstream error.
	w, _ := do(router, http.MethodGet, "/api/v1/contracts", token, nil)
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestPreferencesRoundTrip(t *testing.T) {
	router := newRouter(t, nil)
	token := login(t, router)

	w, _ := do(router, http.MethodGet, "/api/v1/preferences/theme", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(router, http.MethodPut, "/api/v1/preferences/theme", token, map[string]string{"value": "pink"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = do(router, http.MethodPut, "/api/v1/preferences/theme", token, map[string]string{"value": "dark"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := do(router, http.MethodGet, "/api/v1/preferences/theme", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"key":"theme","value":"dark"}`, string(env.Data))
}

func TestRespondErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{&service.Error{Kind: service.ErrInvalidInput, Message: "x"}, http.StatusBadRequest},
		{&service.Error{Kind: service.ErrChallengeFailed, Message: "x"}, http.StatusBadRequest},
		{&service.Error{Kind: service.ErrUnauthorized, Message: "x"}, http.StatusUnauthorized},
		{&service.Error{Kind: service.ErrInvalidCredentials, Message: "x"}, http.StatusUnauthorized},
		{&service.Error{Kind: service.ErrNotFound, Message: "x"}, http.StatusNotFound},
		{&service.Error{Kind: service.ErrAlreadyPaid, Message: "x"}, http.StatusConflict},
		{&service.Error{Kind: service.ErrUpstreamUnavailable, Message: "x"}, http.StatusServiceUnavailable},
		{&upstream.APIError{StatusCode: 500, Message: "boom"}, http.StatusBadGateway},
		{errors.New("other"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		respondError(c, logger.NewNopLogger(), tt.err, "fallback")
		assert.Equal(t, tt.code, w.Code, tt.err.Error())

		var resp utils.APIResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.Success)
	}
}

func TestHealthCheck(t *testing.T) {
	router := newRouter(t, nil)
	w, _ := do(router, http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDashboardStatistics(t *testing.T) {
	router := newRouter(t, map[string]string{
		"GET /api/k_hoadon/khoadon": `[
			{"ChiSoID": 1, "ThangNam": "12/2023", "TongTien": 500000, "TienTra": 500000},
			{"ChiSoID": 2, "ThangNam": "1/2024", "TongTien": 400000}
		]`,
	})
	token := login(t, router)

	w, _ := do(router, http.MethodGet, "/api/v1/dashboard/statistics?year=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := do(router, http.MethodGet, "/api/v1/dashboard/statistics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stats struct {
		Unpaid        int `json:"unpaid"`
		Paid          int `json:"paid"`
		Total         int `json:"total"`
		LatestInvoice struct {
			ID string `json:"id"`
		} `json:"latest_invoice"`
		TotalDebt struct {
			Amount int64 `json:"amount"`
		} `json:"total_debt"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &stats))
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Paid)
	assert.Equal(t, 1, stats.Unpaid)
	assert.Equal(t, "2", stats.LatestInvoice.ID)
	assert.Equal(t, int64(400000), stats.TotalDebt.Amount)
}
