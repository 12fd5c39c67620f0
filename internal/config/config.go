// Package config loads runtime settings from the environment.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default values used when the environment does not override them.
const (
	DefaultPort            = "3000"
	DefaultAppURL          = "http://localhost:3000"
	DefaultNetwork         = "devnet"
	DefaultLinkTTL         = 7 * 24 * time.Hour
	DefaultLinkCapacity    = 1000
	DefaultValidateLimit   = 60
	DefaultOnChainTimeout  = 8 * time.Second
	DefaultHistoryDriver   = "sqlite"
	DefaultHistoryDSN      = "file:solpay_history.db"
	DefaultLinkStoreDriver = "memory"
)

// Config is the typed view of every environment setting the server reads.
type Config struct {
	Env      string
	Port     string
	AppURL   string
	LogLevel string

	DefaultNetwork string
	RPCURLs        map[string]string
	OnChainTimeout time.Duration

	LinkStore    string
	LinkTTL      time.Duration
	LinkCapacity int

	Redis RedisConfig

	HistoryDriver string
	HistoryDSN    string

	ValidateRateLimit int
	WatcherJWTSecret  string
	CORSOrigins       string
}

// RedisConfig holds the connection settings of the shared link store.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LoadEnv loads variables from a .env file if present.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file found: %v", err)
	}
}

// Load reads the full configuration. Call LoadEnv first to pick up a .env file.
func Load() *Config {
	return &Config{
		Env:      GetEnv("ENV", "development"),
		Port:     GetEnv("PORT", DefaultPort),
		AppURL:   strings.TrimRight(GetEnv("APP_URL", DefaultAppURL), "/"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),

		DefaultNetwork: GetEnv("DEFAULT_NETWORK", DefaultNetwork),
		RPCURLs: map[string]string{
			"devnet":   GetEnv("SOLANA_RPC_URL_DEVNET", ""),
			"mainnet":  GetEnv("SOLANA_RPC_URL_MAINNET", ""),
			"localnet": GetEnv("SOLANA_RPC_URL_LOCALNET", ""),
		},
		OnChainTimeout: GetDurationEnv("ONCHAIN_TIMEOUT", DefaultOnChainTimeout),

		LinkStore:    GetEnv("LINK_STORE", DefaultLinkStoreDriver),
		LinkTTL:      GetDurationEnv("LINK_TTL", DefaultLinkTTL),
		LinkCapacity: GetIntEnv("LINK_CAPACITY", DefaultLinkCapacity),

		Redis: RedisConfig{
			Host:     GetEnv("REDIS_HOST", "localhost"),
			Port:     GetEnv("REDIS_PORT", "6379"),
			Password: GetEnv("REDIS_PASSWORD", ""),
			DB:       GetIntEnv("REDIS_DB", 0),
		},

		HistoryDriver: GetEnv("HISTORY_DB_DRIVER", DefaultHistoryDriver),
		HistoryDSN:    GetEnv("HISTORY_DB_DSN", DefaultHistoryDSN),

		ValidateRateLimit: GetIntEnv("VALIDATE_RATE_LIMIT", DefaultValidateLimit),
		WatcherJWTSecret:  GetEnv("WATCHER_JWT_SECRET", ""),
		CORSOrigins:       GetEnv("CORS_ORIGINS", "http://localhost:3000"),
	}
}

// GetEnv returns an environment variable or a default value.
func GetEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return defaultVal
}

// GetIntEnv returns an int environment variable or a default value.
func GetIntEnv(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// GetDurationEnv returns a duration environment variable ("90s", "168h") or a default value.
func GetDurationEnv(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil && d > 0 {
			return d
		}
	}
	return defaultVal
}

// IsProduction checks if the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
