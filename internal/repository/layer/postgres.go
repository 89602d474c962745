package layer

import (
	"context"
	"embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jaennil/guide_helper/raster/internal/entity"
	"github.com/jaennil/guide_helper/raster/pkg/config"
	"github.com/jaennil/guide_helper/raster/pkg/logger"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

type PostgresStore struct {
	pool   *pgxpool.Pool
	logger logger.Logger
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(ctx context.Context, cfg config.DB, l logger.Logger) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	s := &PostgresStore{
		pool:   pool,
		logger: l,
	}

	if err := s.runMigrations(cfg.MigrationsTable); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	l.Info("postgres layer store initialized", "host", poolCfg.ConnConfig.Host, "database", poolCfg.ConnConfig.Database)

	return s, nil
}

func (s *PostgresStore) runMigrations(table string) error {
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	goose.SetBaseFS(migrations)
	if table != "" {
		goose.SetTableName(table)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}

	return goose.Up(db, "migrations")
}

func (s *PostgresStore) List(ctx context.Context) ([]entity.Layer, error) {
	query := `SELECT id, name, path, bounds, object_key, created_at
	FROM layers
	ORDER BY id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		s.logger.Error("failed to list layers", "error", err)
		return nil, err
	}

	layers, err := pgx.CollectRows(rows, scanLayer)
	if err != nil {
		s.logger.Error("failed to scan layers", "error", err)
		return nil, err
	}

	return layers, nil
}

func (s *PostgresStore) Get(ctx context.Context, id int64) (entity.Layer, error) {
	query := `SELECT id, name, path, bounds, object_key, created_at
	FROM layers
	WHERE id = $1`

	rows, err := s.pool.Query(ctx, query, id)
	if err != nil {
		return entity.Layer{}, err
	}

	l, err := pgx.CollectExactlyOneRow(rows, scanLayer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Layer{}, ErrNotFound
		}
		s.logger.Error("failed to get layer", "layer_id", id, "error", err)
		return entity.Layer{}, err
	}

	return l, nil
}

func (s *PostgresStore) Create(ctx context.Context, nl NewLayer) (entity.Layer, error) {
	query := `INSERT INTO layers (name, path, bounds, object_key)
	VALUES ($1, $2, $3, $4)
	RETURNING id, name, path, bounds, object_key, created_at`

	rows, err := s.pool.Query(ctx, query, nl.Name, nl.Path, nl.Bounds, nl.ObjectKey)
	if err != nil {
		s.logger.Error("failed to insert layer", "name", nl.Name, "error", err)
		return entity.Layer{}, err
	}

	l, err := pgx.CollectExactlyOneRow(rows, scanLayer)
	if err != nil {
		s.logger.Error("failed to insert layer", "name", nl.Name, "error", err)
		return entity.Layer{}, err
	}

	return l, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM layers WHERE id = $1`, id)
	if err != nil {
		s.logger.Error("failed to delete layer", "layer_id", id, "error", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func scanLayer(row pgx.CollectableRow) (entity.Layer, error) {
	var l entity.Layer
	err := row.Scan(&l.ID, &l.Name, &l.Path, &l.Bounds, &l.ObjectKey, &l.CreatedAt)
	return l, err
}
