package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config - настройки сервиса из окружения и .env
type Config struct {
	ServerAddress     string
	StorageDriver     string
	PostgresConn      string
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	MigrationsEnabled bool

	LogLevel string

	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration

	ShutdownTimeout time.Duration
	MaxBodyBytes    int64
}

// Load читает .env (если есть; переменные окружения важнее) и окружение
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerAddress:     getenv("SERVER_ADDRESS", "0.0.0.0:8080"),
		StorageDriver:     strings.ToLower(getenv("STORAGE_DRIVER", DriverPostgres)),
		PostgresConn:      strings.TrimSpace(getenv("POSTGRES_CONN", "")),
		DBMaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		MigrationsEnabled: getenvBool("MIGRATIONS_ENABLED", true),
		LogLevel:          strings.ToLower(getenv("LOG_LEVEL", "info")),
		JWTSecret:         strings.TrimSpace(getenv("JWT_SECRET", "")),
		JWTIssuer:         getenv("JWT_ISSUER", "coderr"),
		TokenTTL:          getenvDuration("TOKEN_TTL", 24*time.Hour),
		ShutdownTimeout:   getenvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		MaxBodyBytes:      int64(getenvInt("MAX_BODY_BYTES", 1<<20)),
	}
}

func (c Config) Validate() error {
	var errs []error
	switch c.StorageDriver {
	case DriverPostgres:
		if c.PostgresConn == "" {
			errs = append(errs, errors.New("POSTGRES_CONN env variable is not set"))
		}
	case DriverMemory:
	default:
		errs = append(errs, errors.New("STORAGE_DRIVER must be postgres or memory"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET env variable is not set"))
	}
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	return errors.Join(errs...)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return v
}

func getenvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return def
	}
	return d
}

func getenvBool(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return def
}
