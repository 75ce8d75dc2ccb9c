package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/repository"
	"tenant-portal-svc/internal/store"
	"tenant-portal-svc/internal/upstream"
	"tenant-portal-svc/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	defaultForgotPasswordContent = "Tôi quên mật khẩu, vui lòng hỗ trợ"
	defaultLoginRejectedMessage  = "Tên đăng nhập hoặc mật khẩu không đúng"
)

// AuthOptions configures AuthService
type AuthOptions struct {
	Secret          string
	SessionTTL      time.Duration
	ChallengeTTL    time.Duration
	CaptchaRequired bool
	LoginPolicy     upstream.RetryPolicy
}

// LoginInput is what the tenant types on the login form
type LoginInput struct {
	Username    string `json:"username" example:"an.nguyen"`
	Password    string `json:"password" example:"matkhau"`
	ChallengeID string `json:"challenge_id" example:"3f1c0b7e-8a1d-4c55-9a55-1f1c2b3d4e5f"`
	Answer      string `json:"answer" example:"7"`
}

// AuthService handles login challenges, sessions and password resets
type AuthService interface {
	NewChallenge(ctx context.Context) (*models.Challenge, error)
	Login(ctx context.Context, in LoginInput) (*models.LoginResult, error)
	Authenticate(ctx context.Context, token string) (*models.Session, error)
	Logout(ctx context.Context, sid string) error
	ForgotPassword(ctx context.Context, customerID, roomID, content string) error
}

type sessionClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// authService implements AuthService
type authService struct {
	customerRepo repository.CustomerRepository
	store        store.Store
	opts         AuthOptions
	logger       *logger.Logger
	now          func() time.Time
	intn         func(n int) int
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(customerRepo repository.CustomerRepository, st store.Store, opts AuthOptions, logger *logger.Logger) AuthService {
	if opts.ChallengeTTL <= 0 {
		opts.ChallengeTTL = 5 * time.Minute
	}
	if opts.SessionTTL <= 0 {
		opts.SessionTTL = 24 * time.Hour
	}
	return &authService{
		customerRepo: customerRepo,
		store:        st,
		opts:         opts,
		logger:       logger,
		now:          time.Now,
		intn:         rand.IntN,
	}
}

// NewChallenge creates a small arithmetic question and remembers its answer
func (s *authService) NewChallenge(ctx context.Context) (*models.Challenge, error) {
	a, b := 1+s.intn(9), 1+s.intn(9)

	var question string
	var answer int
	switch s.intn(3) {
	case 0:
		question, answer = fmt.Sprintf("%d + %d = ?", a, b), a+b
	case 1:
		if a < b {
			a, b = b, a
		}
		question, answer = fmt.Sprintf("%d - %d = ?", a, b), a-b
	default:
		question, answer = fmt.Sprintf("%d × %d = ?", a, b), a*b
	}

	challenge := &models.Challenge{
		ID:        uuid.NewString(),
		Question:  question,
		ExpiresAt: s.now().Add(s.opts.ChallengeTTL),
	}
	if err := s.store.Set(ctx, store.ChallengeKey(challenge.ID), strconv.Itoa(answer), s.opts.ChallengeTTL); err != nil {
		return nil, fmt.Errorf("failed to save challenge: %w", err)
	}
	return challenge, nil
}

// Login checks the challenge, then the credentials upstream, and opens a session
func (s *authService) Login(ctx context.Context, in LoginInput) (*models.LoginResult, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, newError(ErrInvalidInput, "Vui lòng nhập tên đăng nhập và mật khẩu")
	}

	if s.opts.CaptchaRequired {
		if err := s.checkChallenge(ctx, in.ChallengeID, in.Answer); err != nil {
			return nil, err
		}
	}

	outcome, err := s.customerRepo.Login(ctx, username, in.Password, s.opts.LoginPolicy)
	if err != nil {
		s.logger.WithError(err).WithField("username", username).Warn("Upstream login failed")
		if errors.Is(err, upstream.ErrTimeout) || errors.Is(err, upstream.ErrUnreachable) {
			return nil, newError(ErrUpstreamUnavailable, "Máy chủ không phản hồi, vui lòng thử lại sau")
		}
		return nil, err
	}
	if !outcome.OK {
		msg := outcome.Message
		if msg == "" {
			msg = defaultLoginRejectedMessage
		}
		return nil, newError(ErrInvalidCredentials, msg)
	}

	now := s.now()
	session := models.Session{
		ID:            uuid.NewString(),
		Username:      username,
		CustomerID:    outcome.CustomerID,
		UpstreamToken: outcome.Token,
		User:          string(outcome.User),
		CreatedAt:     now,
	}
	data, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.Set(ctx, store.SessionKey(session.ID), string(data), s.opts.SessionTTL); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	expiresAt := now.Add(s.opts.SessionTTL)
	claims := &sessionClaims{
		SessionID: session.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.opts.Secret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"username":    username,
		"customer_id": session.CustomerID,
	}).Info("Tenant logged in")

	result := &models.LoginResult{Token: signed, ExpiresAt: expiresAt}
	if len(outcome.User) > 0 {
		result.User = outcome.User
	}
	return result, nil
}

func (s *authService) checkChallenge(ctx context.Context, id, answer string) error {
	failed := newError(ErrChallengeFailed, "Mã xác nhận không đúng hoặc đã hết hạn")
	if id == "" {
		return failed
	}

	key := store.ChallengeKey(id)
	want, ok, err := s.store.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to read challenge: %w", err)
	}
	if !ok {
		return failed
	}
	// One attempt per challenge.
	if err := s.store.Clear(ctx, key); err != nil {
		s.logger.WithError(err).Warn("Failed to clear challenge")
	}
	if strings.TrimSpace(answer) != want {
		return failed
	}
	return nil
}

// Authenticate resolves a portal token to its live session
func (s *authService) Authenticate(ctx context.Context, token string) (*models.Session, error) {
	unauthorized := newError(ErrUnauthorized, "Phiên đăng nhập không hợp lệ hoặc đã hết hạn")

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.opts.Secret), nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid || claims.SessionID == "" {
		return nil, unauthorized
	}

	data, ok, err := s.store.Get(ctx, store.SessionKey(claims.SessionID))
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	if !ok {
		return nil, unauthorized
	}

	var session models.Session
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, unauthorized
	}
	return &session, nil
}

// Logout drops the session and what was remembered for it
func (s *authService) Logout(ctx context.Context, sid string) error {
	if err := s.store.Clear(ctx, store.SessionKey(sid)); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	if err := s.store.Clear(ctx, store.SeenRepliesKey(sid)); err != nil {
		return fmt.Errorf("failed to clear seen replies: %w", err)
	}
	return nil
}

// ForgotPassword asks the landlord to reset the tenant's password
func (s *authService) ForgotPassword(ctx context.Context, customerID, roomID, content string) error {
	customerID = strings.TrimSpace(customerID)
	if customerID == "" {
		return newError(ErrInvalidInput, "Vui lòng nhập mã khách hàng")
	}
	if strings.TrimSpace(content) == "" {
		content = defaultForgotPasswordContent
	}

	if err := s.customerRepo.ForgotPassword(ctx, customerID, strings.TrimSpace(roomID), content); err != nil {
		s.logger.WithError(err).WithField("customer_id", customerID).Error("Failed to send password reset request")
		return fromUpstream(err)
	}
	return nil
}
