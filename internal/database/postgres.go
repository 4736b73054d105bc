package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rakaarfi/roster-system-be/internal/config"
	zlog "github.com/rs/zerolog/log"
)

func NewPgxPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.PostgresDSN())
	if err != nil {
		return nil, fmt.Errorf("unable to parse database config: %w", err)
	}

	// Konfigurasi pool
	poolConfig.MaxConns = cfg.DBMaxConns
	if poolConfig.MaxConns <= 0 {
		poolConfig.MaxConns = 10
	}
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 30 * time.Minute
	poolConfig.HealthCheckPeriod = time.Minute
	poolConfig.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	// Ping database untuk memastikan koneksi berhasil
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		zlog.Error().Err(err).Msg("Unable to ping database")
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	if err := EnsurePostgresSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}

	zlog.Info().Msg("Successfully connected to PostgreSQL database!")
	return pool, nil
}
