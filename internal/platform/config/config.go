// Package config loads runtime configuration from the environment so main
// stays lean.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Circulation CirculationConfig
	Payments    PaymentsConfig
}

// ServerConfig captures HTTP server level configuration.
type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// DatabaseConfig points at postgres. An empty URL selects the in-memory
// stores, which is how local development and unit tests run.
type DatabaseConfig struct {
	URL string
}

// RedisConfig points at the transaction-log redis. An empty URL keeps the
// log in memory.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// CirculationConfig tunes the loan lifecycle.
type CirculationConfig struct {
	LoanPeriodDays int
	BorrowLimit    int
	AuditBuffer    int
}

// PaymentsConfig tunes the simulated gateway.
type PaymentsConfig struct {
	TransactionLimit float64
}

// FromEnv builds a Config from environment variables, with defaults that
// make an unconfigured process come up serving from memory.
func FromEnv() Config {
	return Config{
		Server: ServerConfig{
			Addr:            envString("BIBLIO_ADDR", ":8080"),
			ShutdownTimeout: envDuration("BIBLIO_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			URL: os.Getenv("DATABASE_URL"),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Circulation: CirculationConfig{
			LoanPeriodDays: envInt("BIBLIO_LOAN_PERIOD_DAYS", 14),
			BorrowLimit:    envInt("BIBLIO_BORROW_LIMIT", 5),
			AuditBuffer:    envInt("BIBLIO_AUDIT_BUFFER", 256),
		},
		Payments: PaymentsConfig{
			TransactionLimit: envFloat("BIBLIO_PAYMENT_LIMIT", 1000.00),
		},
	}
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
