package store

import (
	"context"
	"testing"
	"time"

	"tenant-portal-svc/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newSQLiteStore(t *testing.T) (*GormStore, *time.Time) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// one connection, so the in-memory database is shared
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.StoreEntry{}))

	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewGormStore(db)
	s.now = func() time.Time { return now }
	return s, &now
}

func TestGormStoreGetSetClear(t *testing.T) {
	ctx := context.Background()
	s, _ := newSQLiteStore(t)

	_, ok, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "theme", "dark", 0))
	require.NoError(t, s.Set(ctx, "theme", "light", 0))
	v, ok, err := s.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "light", v, "set overwrites")

	require.NoError(t, s.Clear(ctx, "theme"))
	_, ok, _ = s.Get(ctx, "theme")
	assert.False(t, ok)

	assert.NoError(t, s.Clear(ctx, "never-set"))
}

func TestGormStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, now := newSQLiteStore(t)

	require.NoError(t, s.Set(ctx, "challenge:1", "7", time.Minute))
	require.NoError(t, s.Set(ctx, "contact_seen:sid-1", "[]", time.Hour))
	require.NoError(t, s.Set(ctx, "session:1", "x", 0))

	_, ok, _ := s.Get(ctx, "challenge:1")
	assert.True(t, ok)

	*now = now.Add(time.Minute)
	_, ok, _ = s.Get(ctx, "challenge:1")
	assert.False(t, ok, "expired at the deadline")

	n, err := s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	*now = now.Add(time.Hour)
	n, err = s.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, ok, _ = s.Get(ctx, "session:1")
	assert.True(t, ok, "no ttl means no expiry")

	var left int64
	require.NoError(t, s.db.Model(&models.StoreEntry{}).Count(&left).Error)
	assert.Equal(t, int64(1), left)
}

func TestGormStoreIsSweeper(t *testing.T) {
	var s Store = &GormStore{}
	_, ok := s.(Sweeper)
	assert.True(t, ok)
}
