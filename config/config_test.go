package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 0.15, cfg.TaxRate)
	assert.Equal(t, 24*time.Hour, cfg.AdminJWTExpiry)
	assert.Equal(t, 168*time.Hour, cfg.CustomerJWTExpiry)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ORDER_TAX_RATE", "0.2")
	t.Setenv("ADMIN_JWT_EXPIRES_IN", "1h")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0.2, cfg.TaxRate)
	assert.Equal(t, time.Hour, cfg.AdminJWTExpiry)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ORDER_TAX_RATE", "not-a-number")
	t.Setenv("CUSTOMER_JWT_EXPIRES_IN", "soon")
	t.Setenv("SMTP_PORT", "nope")

	cfg := Load()
	assert.Equal(t, 0.15, cfg.TaxRate)
	assert.Equal(t, 168*time.Hour, cfg.CustomerJWTExpiry)
	assert.Equal(t, 587, cfg.SMTP.Port)
}
