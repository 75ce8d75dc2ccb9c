package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("PAYMENT_ZERO_MEANS_PAID", "")
	t.Setenv("UPSTREAM_LOGIN_TIMEOUT", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Driver)
	assert.False(t, cfg.Payment.ZeroMeansPaid)
	assert.Equal(t, 3, cfg.Upstream.LoginAttempts)
	assert.Equal(t, 8*time.Second, cfg.Upstream.LoginTimeout)
	assert.Equal(t, time.Second, cfg.Upstream.LoginBackoff)
	assert.True(t, cfg.Auth.CaptchaRequired)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Redis")
	t.Setenv("PAYMENT_ZERO_MEANS_PAID", "true")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis", cfg.Store.Driver)
	assert.True(t, cfg.Payment.ZeroMeansPaid)
	assert.Equal(t, 90*time.Minute, cfg.Store.SessionTTL)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoadRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "etcd")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadReleaseNeedsJWTSecret(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("GIN_MODE", "release")

	t.Setenv("JWT_SECRET", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", DefaultJWTSecret)
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "s3cr3t-from-vault")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "s3cr3t-from-vault", cfg.JWT.Secret)
}

func TestLoadDebugKeepsDefaultJWTSecret(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("GIN_MODE", "debug")
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultJWTSecret, cfg.JWT.Secret)
}

func TestAllowedOriginList(t *testing.T) {
	c := CORSConfig{AllowedOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.AllowedOriginList())
}
