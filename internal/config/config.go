package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/rakaarfi/roster-system-be/internal/roster"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"

	defaultJWTSecret = "change-me-in-production"
)

// Config holds all configuration for the application
type Config struct {
	Environment string `mapstructure:"APP_ENV"`
	AppPort     string `mapstructure:"APP_PORT"`
	AppTimezone string `mapstructure:"APP_TIMEZONE"`

	// Scheduling policy
	WeekStartsOn          string  `mapstructure:"WEEK_STARTS_ON"`
	DefaultWeeklyCapHours float64 `mapstructure:"DEFAULT_WEEKLY_CAP_HOURS"`
	MinRestHours          float64 `mapstructure:"MIN_REST_HOURS"`
	MaxDailyHours         float64 `mapstructure:"MAX_DAILY_HOURS"`

	// Storage
	StoreDriver string `mapstructure:"STORE_DRIVER"`
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBHost      string `mapstructure:"DB_HOST"`
	DBPort      string `mapstructure:"DB_PORT"`
	DBUser      string `mapstructure:"DB_USER"`
	DBPassword  string `mapstructure:"DB_PASSWORD"`
	DBName      string `mapstructure:"DB_NAME"`
	DBSSLMode   string `mapstructure:"DB_SSLMODE"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`
	SQLitePath  string `mapstructure:"SQLITE_PATH"`

	// Auth
	JWTSecret   string `mapstructure:"JWT_SECRET"`
	JWTTTLHours int    `mapstructure:"JWT_TTL_HOURS"`

	// Notifications
	NotifyURL        string `mapstructure:"NOTIFY_URL"`
	NotifyTitle      string `mapstructure:"NOTIFY_TITLE"`
	NotifyTimeoutSec int    `mapstructure:"NOTIFY_TIMEOUT_SEC"`

	// First account, created at startup when missing
	BootstrapAdminID       string `mapstructure:"BOOTSTRAP_ADMIN_ID"`
	BootstrapAdminEmail    string `mapstructure:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `mapstructure:"BOOTSTRAP_ADMIN_PASSWORD"`

	CORSAllowOrigins   string `mapstructure:"CORS_ALLOW_ORIGINS"`
	RateLimitPerMinute int    `mapstructure:"RATE_LIMIT_PER_MINUTE"`

	// Logging
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	LogFormat         string `mapstructure:"LOG_FORMAT"`
	LogFileEnabled    bool   `mapstructure:"LOG_FILE_ENABLED"`
	LogFilePath       string `mapstructure:"LOG_FILE_PATH"`
	LogFileMaxSizeMB  int    `mapstructure:"LOG_FILE_MAX_SIZE_MB"`
	LogFileMaxBackups int    `mapstructure:"LOG_FILE_MAX_BACKUPS"`
	LogFileMaxAgeDays int    `mapstructure:"LOG_FILE_MAX_AGE_DAYS"`
	LogFileCompress   bool   `mapstructure:"LOG_FILE_COMPRESS"`
}

// Load reads .env (if present) and then the process environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		zlog.Warn().Err(err).Msg("No .env file found, using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "3000")
	v.SetDefault("APP_TIMEZONE", "UTC")

	v.SetDefault("WEEK_STARTS_ON", "monday")
	v.SetDefault("DEFAULT_WEEKLY_CAP_HOURS", roster.DefaultWeeklyCapHours)
	v.SetDefault("MIN_REST_HOURS", roster.DefaultMinRestHours)
	v.SetDefault("MAX_DAILY_HOURS", roster.DefaultMaxDailyHours)

	v.SetDefault("STORE_DRIVER", DriverPostgres)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "roster")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("SQLITE_PATH", "./data/roster.db")

	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_TTL_HOURS", 72)

	v.SetDefault("NOTIFY_URL", "")
	v.SetDefault("NOTIFY_TITLE", "Roster")
	v.SetDefault("NOTIFY_TIMEOUT_SEC", 5)

	v.SetDefault("BOOTSTRAP_ADMIN_ID", "")
	v.SetDefault("BOOTSTRAP_ADMIN_EMAIL", "")
	v.SetDefault("BOOTSTRAP_ADMIN_PASSWORD", "")

	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 200)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("LOG_FILE_ENABLED", false)
	v.SetDefault("LOG_FILE_PATH", "./logs/app.log")
	v.SetDefault("LOG_FILE_MAX_SIZE_MB", 100)
	v.SetDefault("LOG_FILE_MAX_BACKUPS", 5)
	v.SetDefault("LOG_FILE_MAX_AGE_DAYS", 30)
	v.SetDefault("LOG_FILE_COMPRESS", false)
}

func validate(cfg *Config) error {
	switch cfg.StoreDriver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
	if cfg.IsProduction() && cfg.JWTSecret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in production")
	}
	if cfg.DefaultWeeklyCapHours <= 0 || cfg.MaxDailyHours <= 0 || cfg.MinRestHours < 0 {
		return errors.New("weekly cap and daily maximum must be positive, minimum rest must not be negative")
	}
	if _, err := roster.ParseWeekday(cfg.WeekStartsOn); err != nil {
		return err
	}
	if _, err := time.LoadLocation(cfg.AppTimezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// PostgresDSN returns DATABASE_URL, or a DSN built from the DB_* parts.
func (c *Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func (c *Config) JWTTTL() time.Duration {
	return time.Duration(c.JWTTTLHours) * time.Hour
}

func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.NotifyTimeoutSec) * time.Second
}

// Policy builds the scheduling policy. Load has already validated the values.
func (c *Config) Policy() roster.Policy {
	p := roster.DefaultPolicy()
	p.DefaultWeeklyCap = c.DefaultWeeklyCapHours
	p.MinRest = time.Duration(c.MinRestHours * float64(time.Hour))
	p.MaxDaily = time.Duration(c.MaxDailyHours * float64(time.Hour))
	if wd, err := roster.ParseWeekday(c.WeekStartsOn); err == nil {
		p.WeekStartsOn = wd
	}
	if loc, err := time.LoadLocation(c.AppTimezone); err == nil {
		p.Location = loc
	}
	return p
}
