package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

// BunConfig configures the Postgres connection backing BunSyncer, grounded
// on smilemakc-mbflow's storage.Config connection-pool shape.
type BunConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DefaultBunConfig returns reasonable pool defaults.
func DefaultBunConfig(dsn string) BunConfig {
	return BunConfig{
		DSN:             dsn,
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
	}
}

// BunSyncer persists jobs to Postgres via uptrace/bun, mirroring
// original_source/server/jobs_api.py's jobs table and status normalization.
type BunSyncer struct {
	db *bun.DB
}

// NewBunSyncer opens a pooled connection and ensures the jobs table exists.
func NewBunSyncer(ctx context.Context, cfg BunConfig) (*BunSyncer, error) {
	connector := pgdriver.NewConnector(
		pgdriver.WithDSN(cfg.DSN),
		pgdriver.WithTimeout(30*time.Second),
	)
	sqldb := sql.OpenDB(connector)
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel((*jobRow)(nil))

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		return nil, fmt.Errorf("store: failed to ping database: %w", err)
	}

	if _, err := db.NewCreateTable().Model((*jobRow)(nil)).IfNotExists().Exec(ctx); err != nil {
		return nil, fmt.Errorf("store: failed to ensure jobs table: %w", err)
	}

	return &BunSyncer{db: db}, nil
}

// Sync upserts job's row, keyed by ID.
func (s *BunSyncer) Sync(ctx context.Context, job core.Job) error {
	row := toRow(job)
	_, err := s.db.NewInsert().
		Model(row).
		On("CONFLICT (id) DO UPDATE").
		Set("target_kind = EXCLUDED.target_kind").
		Set("target_x = EXCLUDED.target_x").
		Set("target_y = EXCLUDED.target_y").
		Set("target_radius = EXCLUDED.target_radius").
		Set("target_vertices = EXCLUDED.target_vertices").
		Set("remaining_time = EXCLUDED.remaining_time").
		Set("is_active = EXCLUDED.is_active").
		Set("drones = EXCLUDED.drones").
		Set("status = EXCLUDED.status").
		Set("maintain_until = EXCLUDED.maintain_until").
		Set("start_at = EXCLUDED.start_at").
		Set("completed_at = EXCLUDED.completed_at").
		Set("scenario_id = EXCLUDED.scenario_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// FindByID retrieves a job by ID, returning (zero, false) when absent.
func (s *BunSyncer) FindByID(ctx context.Context, id string) (core.Job, bool, error) {
	row := new(jobRow)
	err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if err == sql.ErrNoRows {
		return core.Job{}, false, nil
	}
	if err != nil {
		return core.Job{}, false, err
	}
	return fromRow(row), true, nil
}

// Close releases the underlying connection pool.
func (s *BunSyncer) Close() error {
	return s.db.Close()
}
