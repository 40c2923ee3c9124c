package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	Database DatabaseConfig
	Engine   EngineConfig
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// EngineConfig carries the tunables of the ledger engine.
type EngineConfig struct {
	// IncludeUncategorized controls whether transactions without a category
	// count toward cash-flow totals.
	IncludeUncategorized bool
	// MinimumDuePercent and MinimumDueFloor feed the statement minimum-due
	// rule of thumb: max(floor, percent of balance).
	MinimumDuePercent decimal.Decimal
	MinimumDueFloor   decimal.Decimal
	// PaymentDueDays is the offset from a statement's period end to its due
	// date.
	PaymentDueDays int
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	return &Config{
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "ledger_user"),
			Password:        getEnv("DB_PASSWORD", "ledger_password"),
			Name:            getEnv("DB_NAME", "ledger_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 10),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
		},
		Engine: EngineConfig{
			IncludeUncategorized: getBoolEnv("ENGINE_INCLUDE_UNCATEGORIZED", true),
			MinimumDuePercent:    getDecimalEnv("ENGINE_MIN_DUE_PERCENT", decimal.NewFromFloat(3.0)),
			MinimumDueFloor:      getDecimalEnv("ENGINE_MIN_DUE_FLOOR", decimal.NewFromFloat(25.0)),
			PaymentDueDays:       getIntEnv("ENGINE_PAYMENT_DUE_DAYS", 25),
		},
	}
}

// DefaultEngineConfig returns engine settings with no environment applied.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		IncludeUncategorized: true,
		MinimumDuePercent:    decimal.NewFromFloat(3.0),
		MinimumDueFloor:      decimal.NewFromFloat(25.0),
		PaymentDueDays:       25,
	}
}

// DSN returns the postgres connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDecimalEnv(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if parsed, err := decimal.NewFromString(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
