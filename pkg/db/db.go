// Package db builds the pgx connection pool for the relational store.
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/esposm03/my-cms/configs"
)

// Open connects a pool to the configured database, pinging with
// exponential backoff so the service survives the store coming up late.
func Open(ctx context.Context, cfg configs.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	poolCfg.MaxConns = 40
	poolCfg.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}

	sleep := time.Second
	var last error
	for i := 0; i < 8; i++ {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		last = pool.Ping(pingCtx)
		cancel()
		if last == nil {
			return pool, nil
		}
		slog.Warn("database not ready, retrying", "attempt", i+1, "error", last)
		time.Sleep(sleep)
		if sleep < 8*time.Second {
			sleep *= 2
		}
	}
	pool.Close()
	return nil, fmt.Errorf("ping database: %w", last)
}
