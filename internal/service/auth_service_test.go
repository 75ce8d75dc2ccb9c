package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/internal/store"
	"tenant-portal-svc/internal/upstream"
	"tenant-portal-svc/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loginUpstream(t *testing.T) *upstream.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["MatKhau"] != "dung" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"message":"Sai mật khẩu"}`))
			return
		}
		_, _ = w.Write([]byte(`{"token":"up-tok","user":{"KhachHangID":15,"HoTen":"An"}}`))
	}))
	t.Cleanup(srv.Close)
	return upstream.NewClient(srv.URL, time.Second, logger.NewNopLogger())
}

func newAuthService(client *upstream.Client, st store.Store, captcha bool) *authService {
	svc := NewAuthService(repository.NewCustomerRepository(client), st, AuthOptions{
		Secret:          "test-secret",
		SessionTTL:      time.Hour,
		CaptchaRequired: captcha,
		LoginPolicy:     upstream.RetryPolicy{Attempts: 2, Timeout: time.Second, Backoff: time.Millisecond},
	}, logger.NewNopLogger()).(*authService)
	// 3 + 4 = ?
	picks := []int{2, 3, 0}
	var i int32
	svc.intn = func(int) int { return picks[int(atomic.AddInt32(&i, 1)-1)%len(picks)] }
	return svc
}

func TestNewChallenge(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newAuthService(loginUpstream(t), st, true)

	c, err := svc.NewChallenge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "3 + 4 = ?", c.Question)

	answer, ok, err := st.Get(context.Background(), store.ChallengeKey(c.ID))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "7", answer)
}

func TestChallengeSubtractionIsNeverNegative(t *testing.T) {
	svc := newAuthService(loginUpstream(t), store.NewMemoryStore(), true)
	picks := []int{1, 7, 1}
	var i int
	svc.intn = func(int) int { v := picks[i]; i++; return v }

	c, err := svc.NewChallenge(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "8 - 2 = ?", c.Question)
}

func TestLoginFlow(t *testing.T) {
	st := store.NewMemoryStore()
	svc := newAuthService(loginUpstream(t), st, true)
	ctx := context.Background()

	c, err := svc.NewChallenge(ctx)
	require.NoError(t, err)

	res, err := svc.Login(ctx, LoginInput{Username: " an ", Password: "dung", ChallengeID: c.ID, Answer: " 7 "})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotNil(t, res.User)

	session, err := svc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "an", session.Username)
	assert.Equal(t, "15", session.CustomerID)
	assert.Equal(t, "up-tok", session.UpstreamToken)

	require.NoError(t, svc.Logout(ctx, session.ID))
	_, err = svc.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLoginChallengeIsSingleUse(t *testing.T) {
	svc := newAuthService(loginUpstream(t), store.NewMemoryStore(), true)
	ctx := context.Background()

	c, err := svc.NewChallenge(ctx)
	require.NoError(t, err)

	_, err = svc.Login(ctx, LoginInput{Username: "an", Password: "dung", ChallengeID: c.ID, Answer: "8"})
	assert.ErrorIs(t, err, ErrChallengeFailed)

	_, err = svc.Login(ctx, LoginInput{Username: "an", Password: "dung", ChallengeID: c.ID, Answer: "7"})
	assert.ErrorIs(t, err, ErrChallengeFailed)
}

func TestLoginRejections(t *testing.T) {
	svc := newAuthService(loginUpstream(t), store.NewMemoryStore(), false)
	ctx := context.Background()

	_, err := svc.Login(ctx, LoginInput{Username: "", Password: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Login(ctx, LoginInput{Username: "an", Password: "sai"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Equal(t, "Sai mật khẩu", Message(err, ""))
}

func TestLoginUpstreamDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := upstream.NewClient(srv.URL, time.Second, logger.NewNopLogger())
	svc := newAuthService(client, store.NewMemoryStore(), false)

	_, err := svc.Login(context.Background(), LoginInput{Username: "an", Password: "dung"})
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestAuthenticateRejectsForeignTokens(t *testing.T) {
	svc := newAuthService(loginUpstream(t), store.NewMemoryStore(), false)

	_, err := svc.Authenticate(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, ErrUnauthorized)

	other := newAuthService(loginUpstream(t), store.NewMemoryStore(), false)
	other.opts.Secret = "another-secret"
	res, err := other.Login(context.Background(), LoginInput{Username: "an", Password: "dung"})
	require.NoError(t, err)

	_, err = svc.Authenticate(context.Background(), res.Token)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestForgotPassword(t *testing.T) {
	f, client := newFakeUpstream(t, map[string]string{
		"POST /api/k_khachhang/quen-mat-khau": `{"message":"ok"}`,
	})
	svc := newAuthService(client, store.NewMemoryStore(), false)

	assert.ErrorIs(t, svc.ForgotPassword(context.Background(), " ", "", ""), ErrInvalidInput)

	require.NoError(t, svc.ForgotPassword(context.Background(), "15", "", ""))
	body := f.posted("/api/k_khachhang/quen-mat-khau")
	assert.Equal(t, float64(15), body["KhachHangID"])
	assert.Equal(t, defaultForgotPasswordContent, body["NoiDung"])
	_, hasRoom := body["PhongID"]
	assert.False(t, hasRoom)
}
