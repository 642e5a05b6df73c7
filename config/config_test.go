package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"PORT", "DB_DRIVER", "DATABASE_URL", "SQLITE_PATH", "JWT_SECRET", "LOG_MODE",
	"PAYMENT_MODE", "PAYMENT_DELAY_MS", "PAYMENT_GATEWAY_URL", "SESSION_TTL_MINUTES",
	"SCAN_COOLDOWN_MS", "CATALOG_RESYNC", "SEED_CATALOG", "SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	c := Load()

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "smartcart.db", c.DSN())
	assert.Equal(t, "simulated", c.PaymentMode)
	assert.Equal(t, 3*time.Second, c.PaymentDelay)
	assert.Equal(t, 24*time.Hour, c.SessionTTL)
	assert.Equal(t, 1500*time.Millisecond, c.ScanCooldown)
	assert.Equal(t, "@every 5m", c.CatalogResync)
	assert.True(t, c.SeedCatalog)
	assert.Equal(t, 15*time.Second, c.ShutdownTimeout)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/smartcart")
	t.Setenv("PAYMENT_DELAY_MS", "250")
	t.Setenv("SESSION_TTL_MINUTES", "30")
	t.Setenv("SEED_CATALOG", "false")
	c := Load()

	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, "postgres", c.DBDriver)
	assert.Equal(t, "postgres://u:p@db/smartcart", c.DSN())
	assert.Equal(t, 250*time.Millisecond, c.PaymentDelay)
	assert.Equal(t, 30*time.Minute, c.SessionTTL)
	assert.False(t, c.SeedCatalog)
}

func TestLoadInvalidNumbersFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("PAYMENT_DELAY_MS", "soon")
	t.Setenv("SEED_CATALOG", "maybe")
	c := Load()

	assert.Equal(t, 3*time.Second, c.PaymentDelay)
	assert.True(t, c.SeedCatalog)
}

func TestDSN_PostgresFromParts(t *testing.T) {
	c := Config{DBDriver: "postgres", DBHost: "h", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "n"}
	assert.Equal(t, "host=h user=u password=p dbname=n port=5432 sslmode=disable", c.DSN())
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	c := Load()
	require.NoError(t, c.Validate())

	bad := c
	bad.DBDriver = "mysql"
	assert.ErrorContains(t, bad.Validate(), "DB_DRIVER")

	bad = c
	bad.PaymentMode = "gateway"
	assert.ErrorContains(t, bad.Validate(), "PAYMENT_GATEWAY_URL")

	bad = c
	bad.JWTSecret = ""
	assert.ErrorContains(t, bad.Validate(), "JWT_SECRET")
}
