package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Operator OperatorConfig
	Ledger   LedgerConfig
}

type ServerConfig struct {
	AppEnv      string
	Port        string
	CORSOrigins []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type DatabaseConfig struct {
	Driver string
	DSN    string
	Debug  bool
	Seed   bool
}

type JWTConfig struct {
	SecretKey string
	TTL       time.Duration
}

type OperatorConfig struct {
	Name         string
	PasswordHash string
}

type LedgerConfig struct {
	Timezone          string
	LowStockThreshold int
}

func LoadEnv() *Config {
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "development"),
			Port:        getEnv("PORT", "3000"),
			CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"*"}),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "info"),
			Encoding:          getEnv("LOGGER_ENCODING", "json"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DB_DRIVER", "sqlite"),
			DSN:    getEnv("DATABASE_URL", "barcode_scanner.db"),
			Debug:  getEnvBool("DB_DEBUG", false),
			Seed:   getEnvBool("DB_SEED", false),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", "your-super-secret-key-change-in-production"),
			TTL:       time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		},
		Operator: OperatorConfig{
			Name:         getEnv("OPERATOR_NAME", "admin"),
			PasswordHash: getEnv("OPERATOR_PASSWORD_HASH", ""),
		},
		Ledger: LedgerConfig{
			Timezone:          getEnv("APP_TIMEZONE", "Europe/Istanbul"),
			LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 3),
		},
	}
}

// Location resolves the shop's time zone. Day boundaries for every profit
// figure are computed in it.
func (c LedgerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.FixedZone("UTC+3", 3*60*60)
	}
	return loc
}

func (c ServerConfig) IsDevelopment() bool {
	return c.AppEnv == "development" || c.AppEnv == "dev"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return fallback
}
