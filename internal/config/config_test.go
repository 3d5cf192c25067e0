package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":3000", cfg.Address)
	assert.Equal(t, "HS256", cfg.JWTAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 3*time.Minute, cfg.VerificationCodeTTL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":8080")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ALGORITHM", "HS512")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("VERIFICATION_CODE_TTL", "5m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "HS512", cfg.JWTAlgorithm)
	assert.Equal(t, time.Hour, cfg.JWTExpiry)
	assert.Equal(t, 5*time.Minute, cfg.VerificationCodeTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
}

func TestLoad_InvalidDurationsFallBack(t *testing.T) {
	t.Setenv("JWT_EXPIRY", "soon")
	t.Setenv("VERIFICATION_CODE_TTL", "-3m")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.JWTExpiry)
	assert.Equal(t, 3*time.Minute, cfg.VerificationCodeTTL)
}
