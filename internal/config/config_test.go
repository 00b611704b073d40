package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SERVER_ADDRESS", "STORAGE_DRIVER", "POSTGRES_CONN", "LOG_LEVEL", "JWT_SECRET", "SHUTDOWN_TIMEOUT", "MIGRATIONS_ENABLED", "MAX_BODY_BYTES"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	require.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
	require.Equal(t, DriverPostgres, cfg.StorageDriver)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	require.True(t, cfg.MigrationsEnabled)
	require.EqualValues(t, 1<<20, cfg.MaxBodyBytes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "MEMORY")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")
	t.Setenv("MIGRATIONS_ENABLED", "false")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("JWT_SECRET", " s3cret ")

	cfg := Load()
	require.Equal(t, DriverMemory, cfg.StorageDriver)
	require.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.MigrationsEnabled)
	require.EqualValues(t, 2048, cfg.MaxBodyBytes)
	require.Equal(t, "s3cret", cfg.JWTSecret)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	cfg := Config{StorageDriver: DriverPostgres, MaxBodyBytes: 1}
	err := cfg.Validate()
	require.ErrorContains(t, err, "POSTGRES_CONN")
	require.ErrorContains(t, err, "JWT_SECRET")

	cfg = Config{StorageDriver: "sqlite", JWTSecret: "x", MaxBodyBytes: 1}
	require.ErrorContains(t, cfg.Validate(), "STORAGE_DRIVER")
}
