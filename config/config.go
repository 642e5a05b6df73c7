// Package config loads runtime settings from the environment, optionally seeded from a
// .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver    string // "postgres" or "sqlite"
	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	SQLitePath  string

	JWTSecret   string
	AdminAPIKey string

	LogMode string // "development" or "production"
	LogFile string

	PaymentMode     string // "simulated" or "gateway"
	PaymentDelay    time.Duration
	PaymentDecline  bool
	GatewayURL      string
	GatewayStoreID  string
	GatewayAuthKey  string
	GatewayCurrency string

	SessionTTL      time.Duration
	ScanCooldown    time.Duration
	CatalogResync   string
	SeedCatalog     bool
	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func boolenv(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func durenvms(key string, defMs int) time.Duration {
	return time.Duration(atoienv(key, defMs)) * time.Millisecond
}

// Load reads .env when present and then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:    getenv("PORT", "8080"),
		GinMode: getenv("GIN_MODE", "debug"),

		DBDriver:    strings.ToLower(getenv("DB_DRIVER", "sqlite")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBHost:      getenv("DB_HOST", "localhost"),
		DBPort:      getenv("DB_PORT", "5432"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      getenv("DB_NAME", "smartcart"),
		SQLitePath:  getenv("SQLITE_PATH", "smartcart.db"),

		JWTSecret:   os.Getenv("JWT_SECRET"),
		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),

		LogMode: strings.ToLower(getenv("LOG_MODE", "development")),
		LogFile: os.Getenv("LOG_FILE"),

		PaymentMode:     strings.ToLower(getenv("PAYMENT_MODE", "simulated")),
		PaymentDelay:    durenvms("PAYMENT_DELAY_MS", 3000),
		PaymentDecline:  boolenv("PAYMENT_DECLINE", false),
		GatewayURL:      os.Getenv("PAYMENT_GATEWAY_URL"),
		GatewayStoreID:  os.Getenv("PAYMENT_STORE_ID"),
		GatewayAuthKey:  os.Getenv("PAYMENT_AUTH_KEY"),
		GatewayCurrency: getenv("PAYMENT_CURRENCY", "USD"),

		SessionTTL:      time.Duration(atoienv("SESSION_TTL_MINUTES", 24*60)) * time.Minute,
		ScanCooldown:    durenvms("SCAN_COOLDOWN_MS", 1500),
		CatalogResync:   getenv("CATALOG_RESYNC", "@every 5m"),
		SeedCatalog:     boolenv("SEED_CATALOG", true),
		ShutdownTimeout: time.Duration(atoienv("SHUTDOWN_TIMEOUT", 15)) * time.Second,
	}
}

// DSN returns the connection string for the configured driver.
func (c Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort,
	)
}

// Validate rejects combinations the service cannot start with.
func (c Config) Validate() error {
	var errs []error
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver))
	}
	switch c.LogMode {
	case "development", "production":
	default:
		errs = append(errs, fmt.Errorf("unsupported LOG_MODE %q", c.LogMode))
	}
	switch c.PaymentMode {
	case "simulated":
	case "gateway":
		if c.GatewayURL == "" {
			errs = append(errs, errors.New("PAYMENT_GATEWAY_URL is required in gateway mode"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported PAYMENT_MODE %q", c.PaymentMode))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	if c.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL_MINUTES must be positive"))
	}
	return errors.Join(errs...)
}
