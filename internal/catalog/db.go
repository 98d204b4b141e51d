// Package catalog is the Postgres-backed store for the supplemented
// highscore tables and save slots (SPEC_FULL.md §5/§6). It is not part of
// the simulation core, and neither the engine nor cmd/zztstep calls it.
// Grounded on the teacher's internal/persist/db.go pgxpool wiring.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/zztstep/engine/internal/config"
)

// Store wraps a pgx connection pool shared by the highscore and save
// repositories.
type Store struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func NewStore(ctx context.Context, cfg config.CatalogConfig, log *zap.Logger) (*Store, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	poolCfg.MaxConns = int32(cfg.MaxOpenConns)
	poolCfg.MinConns = int32(cfg.MaxIdleConns)
	poolCfg.MaxConnLifetime = cfg.ConnMaxLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect to catalog db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}

	return &Store{Pool: pool, log: log}, nil
}

func (s *Store) Close() {
	s.Pool.Close()
}
