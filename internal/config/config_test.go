package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	// Clear anything the ambient environment might set.
	for _, key := range []string{"PORT", "DB_NAME", "JWT_ACCESS_EXPIRY", "CHECKOUT_DELAY", "MASTER_ADMIN_PIN"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "estateflow_db", cfg.DBName)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessExpiry)
	assert.Equal(t, 2*time.Second, cfg.CheckoutDelay)
	assert.NotEmpty(t, cfg.MasterEmail)
	assert.Len(t, cfg.MasterPIN, 4)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("MASTER_ADMIN_PIN", "4321")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("CHECKOUT_DELAY", "not-a-duration")

	cfg := Load()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "4321", cfg.MasterPIN)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	// Unparseable durations fall back to the default.
	assert.Equal(t, 2*time.Second, cfg.CheckoutDelay)
}

func TestDSN(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: "5433", DBUser: "app",
		DBPassword: "secret", DBName: "crm", DBSSLMode: "require",
	}
	assert.Equal(t,
		"host=db user=app password=secret dbname=crm port=5433 sslmode=require TimeZone=UTC",
		cfg.DSN())
}
