package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.AppPort)
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, 72*time.Hour, cfg.JWTTTL())
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout())
	assert.Equal(t, 200, cfg.RateLimitPerMinute)
	assert.Empty(t, cfg.BootstrapAdminID)

	p := cfg.Policy()
	assert.Equal(t, 38.0, p.DefaultWeeklyCap)
	assert.Equal(t, 10*time.Hour, p.MinRest)
	assert.Equal(t, 12*time.Hour, p.MaxDaily)
	assert.Equal(t, time.Monday, p.WeekStartsOn)
	assert.Equal(t, time.UTC, p.Location)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("WEEK_STARTS_ON", "sunday")
	t.Setenv("DEFAULT_WEEKLY_CAP_HOURS", "40")
	t.Setenv("MIN_REST_HOURS", "11.5")
	t.Setenv("APP_TIMEZONE", "Asia/Jakarta")

	cfg, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StoreDriver)

	p := cfg.Policy()
	assert.Equal(t, time.Sunday, p.WeekStartsOn)
	assert.Equal(t, 40.0, p.DefaultWeeklyCap)
	assert.Equal(t, 11*time.Hour+30*time.Minute, p.MinRest)
	assert.Equal(t, "Asia/Jakarta", p.Location.String())
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown driver":         {"STORE_DRIVER": "mongo"},
		"unknown week start":     {"STORE_DRIVER": "memory", "WEEK_STARTS_ON": "friday"},
		"zero cap":               {"STORE_DRIVER": "memory", "DEFAULT_WEEKLY_CAP_HOURS": "0"},
		"bad timezone":           {"STORE_DRIVER": "memory", "APP_TIMEZONE": "Mars/Olympus"},
		"default secret in prod": {"STORE_DRIVER": "memory", "APP_ENV": "production"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			for k, v := range env {
				t.Setenv(k, v)
			}
			_, err := Load("testdata/does-not-exist.env")
			assert.Error(t, err)
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "roster", DBSSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=roster sslmode=disable", cfg.PostgresDSN())

	cfg.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", cfg.PostgresDSN())
}
