package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("REDIS_DB", "")
	t.Setenv("STRIPE_CURRENCY", "")
	t.Setenv("CORS_ALLOW_ORIGINS", "")
	t.Setenv("RESET_DB", "")

	cfg := Load()

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, "usd", cfg.StripeCurrency)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.ResetDB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("JWT_SECRET_KEY", "s3cret")
	t.Setenv("CORS_ALLOW_ORIGINS", "http://localhost:5173, https://bistro.example.com ,")
	t.Setenv("RESET_DB", "true")

	cfg := Load()

	assert.Equal(t, "8081", cfg.ServerPort)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, []string{"http://localhost:5173", "https://bistro.example.com"}, cfg.CORSAllowOrigins)
	assert.True(t, cfg.ResetDB)
}

func TestGetEnvInt_InvalidFallsBack(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	assert.Equal(t, 7, getEnvInt("REDIS_DB", 7))
}
