package service

import (
	"context"
	"fmt"
	"strings"

	"tenant-portal-svc/internal/models"
	"tenant-portal-svc/internal/store"
)

const dismissedPrefix = "dismissed:"

var preferenceValues = map[string][]string{
	"theme":            {"light", "dark"},
	"pay_action_color": {"blue", "green", "violet", "amber", "rose", "cyan"},
	// Any value.
	"avatar": nil,
}

// PreferenceService keeps UI preferences per tenant
type PreferenceService interface {
	Get(ctx context.Context, session *models.Session, key string) (string, bool, error)
	Set(ctx context.Context, session *models.Session, key, value string) error
	Clear(ctx context.Context, session *models.Session, key string) error
}

// preferenceService implements PreferenceService
type preferenceService struct {
	store store.Store
}

// NewPreferenceService creates a new instance of PreferenceService
func NewPreferenceService(st store.Store) PreferenceService {
	return &preferenceService{
		store: st,
	}
}

func (s *preferenceService) Get(ctx context.Context, session *models.Session, key string) (string, bool, error) {
	if err := checkPreferenceKey(key); err != nil {
		return "", false, err
	}
	value, ok, err := s.store.Get(ctx, store.PreferenceKey(preferenceOwner(session), key))
	if err != nil {
		return "", false, fmt.Errorf("failed to read preference: %w", err)
	}
	return value, ok, nil
}

func (s *preferenceService) Set(ctx context.Context, session *models.Session, key, value string) error {
	if err := checkPreferenceKey(key); err != nil {
		return err
	}
	if allowed := preferenceValues[key]; allowed != nil && !contains(allowed, value) {
		return newError(ErrInvalidInput, fmt.Sprintf("Giá trị không hợp lệ cho %s: %s", key, strings.Join(allowed, ", ")))
	}
	if err := s.store.Set(ctx, store.PreferenceKey(preferenceOwner(session), key), value, 0); err != nil {
		return fmt.Errorf("failed to save preference: %w", err)
	}
	return nil
}

func (s *preferenceService) Clear(ctx context.Context, session *models.Session, key string) error {
	if err := checkPreferenceKey(key); err != nil {
		return err
	}
	if err := s.store.Clear(ctx, store.PreferenceKey(preferenceOwner(session), key)); err != nil {
		return fmt.Errorf("failed to clear preference: %w", err)
	}
	return nil
}

func checkPreferenceKey(key string) error {
	if _, ok := preferenceValues[key]; ok {
		return nil
	}
	if card := strings.TrimPrefix(key, dismissedPrefix); card != key && card != "" {
		return nil
	}
	return newError(ErrInvalidInput, "Khóa tùy chọn không hợp lệ: "+key)
}

// preferenceOwner keys preferences by tenant so they outlive a session.
func preferenceOwner(session *models.Session) string {
	if session.CustomerID != "" {
		return session.CustomerID
	}
	return session.Username
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
