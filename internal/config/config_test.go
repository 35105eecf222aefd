package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.True(t, cfg.CookieSecure)
	assert.False(t, cfg.OTPPersistOnDeliveryFailure)
	assert.Equal(t, "redis", cfg.KVStore)
	assert.Equal(t, 100, cfg.GatewayRateAnon)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("OTP_PERSIST_ON_DELIVERY_FAILURE", "true")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.False(t, cfg.CookieSecure)
	assert.True(t, cfg.OTPPersistOnDeliveryFailure)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.RedisDB)
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("REFRESH_TOKEN_TTL", "a week")
	t.Setenv("GATEWAY_RATE_AUTHED", "lots")

	cfg := Load()
	assert.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, 1000, cfg.GatewayRateAuthed)
}
