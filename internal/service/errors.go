package service

import (
	"errors"

	"tenant-portal-svc/internal/upstream"
)

// Error kinds. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrChallengeFailed     = errors.New("challenge failed")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrNotFound            = errors.New("not found")
	ErrAlreadyPaid         = errors.New("already paid")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Error carries a message for the tenant next to its kind
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Message returns the tenant-facing message of err, or fallback when err
// carries none.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	var apiErr *upstream.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return fallback
}

// fromUpstream turns transport failures and token rejections into service
// error kinds. Other upstream errors pass through unchanged.
func fromUpstream(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, upstream.ErrUnauthorized):
		return newError(ErrUnauthorized, "Phiên đăng nhập đã hết hạn, vui lòng đăng nhập lại")
	case errors.Is(err, upstream.ErrTimeout), errors.Is(err, upstream.ErrUnreachable):
		return newError(ErrUpstreamUnavailable, "Máy chủ không phản hồi, vui lòng thử lại sau")
	default:
		return err
	}
}
