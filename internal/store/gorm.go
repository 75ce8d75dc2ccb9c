package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tenant-portal-svc/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps state in the portal_store_entries table
type GormStore struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormStore creates a store on an open database. The table must exist;
// database.AutoMigrate creates it.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: time.Now}
}

func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	var entry models.StoreEntry
	err := s.db.WithContext(ctx).
		Where("key = ?", key).
		Where("expires_at IS NULL OR expires_at > ?", s.now()).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read store entry %s: %w", key, err)
	}
	return entry.Value, true, nil
}

func (s *GormStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	entry := models.StoreEntry{Key: key, Value: value}
	if ttl > 0 {
		expires := s.now().Add(ttl)
		entry.ExpiresAt = &expires
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("failed to write store entry %s: %w", key, err)
	}
	return nil
}

func (s *GormStore) Clear(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.StoreEntry{}).Error; err != nil {
		return fmt.Errorf("failed to delete store entry %s: %w", key, err)
	}
	return nil
}

// DeleteExpired drops expired rows and reports how many went
func (s *GormStore) DeleteExpired(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at IS NOT NULL AND expires_at <= ?", s.now()).
		Delete(&models.StoreEntry{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete expired store entries: %w", res.Error)
	}
	return res.RowsAffected, nil
}

// Close is a no-op; the database is owned by the caller.
func (s *GormStore) Close() error {
	return nil
}
