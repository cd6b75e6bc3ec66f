package main

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/barber-booking-backend/internal/config"
	"github.com/nekogravitycat/barber-booking-backend/internal/db"
	"github.com/nekogravitycat/barber-booking-backend/internal/pkg/logger"
)

// deps bundles what every subcommand needs. close releases it.
type deps struct {
	cfg  *config.Config
	log  *zap.Logger
	pool *pgxpool.Pool
}

func bootstrap(ctx context.Context) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.IsProduction, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("failed to connect to db: %w", err)
	}

	return &deps{cfg: cfg, log: log, pool: pool}, nil
}

func (r *deps) close() {
	r.pool.Close()
	_ = r.log.Sync()
}
