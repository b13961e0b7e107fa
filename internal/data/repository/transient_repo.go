package repository

import (
	"context"
	"fmt"
	"time"

	"google-reviews/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// TransientRepository stores values that disappear after a TTL.
// Get never returns an expired value.
type TransientRepository interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) (int64, error)
}

type transientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewTransientRepository(db database.PgxIface, log *zap.Logger) TransientRepository {
	return &transientRepository{
		db:  db,
		log: log.With(zap.String("repository", "transient")),
	}
}

func (r *transientRepository) Get(ctx context.Context, key string) (string, bool, error) {
	query := `
		SELECT transient_value
		FROM transients
		WHERE transient_key = $1 AND expires_at > NOW()
	`

	var value string
	err := r.db.QueryRow(ctx, query, key).Scan(&value)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		r.log.Error("Failed to get transient",
			zap.Error(err),
			zap.String("key", key),
		)
		return "", false, fmt.Errorf("get transient %s: %w", key, err)
	}

	return value, true, nil
}

func (r *transientRepository) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	query := `
		INSERT INTO transients (transient_key, transient_value, expires_at)
		VALUES ($1, $2, NOW() + make_interval(secs => $3))
		ON CONFLICT (transient_key)
		DO UPDATE SET transient_value = EXCLUDED.transient_value, expires_at = EXCLUDED.expires_at
	`

	if _, err := r.db.Exec(ctx, query, key, value, ttl.Seconds()); err != nil {
		r.log.Error("Failed to set transient",
			zap.Error(err),
			zap.String("key", key),
			zap.Duration("ttl", ttl),
		)
		return fmt.Errorf("set transient %s: %w", key, err)
	}

	return nil
}

func (r *transientRepository) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM transients WHERE transient_key = $1`

	if _, err := r.db.Exec(ctx, query, key); err != nil {
		r.log.Error("Failed to delete transient",
			zap.Error(err),
			zap.String("key", key),
		)
		return fmt.Errorf("delete transient %s: %w", key, err)
	}

	return nil
}

func (r *transientRepository) DeleteByPrefix(ctx context.Context, prefix string) (int64, error) {
	query := `DELETE FROM transients WHERE starts_with(transient_key, $1)`

	result, err := r.db.Exec(ctx, query, prefix)
	if err != nil {
		r.log.Error("Failed to delete transients by prefix",
			zap.Error(err),
			zap.String("prefix", prefix),
		)
		return 0, fmt.Errorf("delete transients with prefix %s: %w", prefix, err)
	}

	r.log.Info("Transients deleted",
		zap.String("prefix", prefix),
		zap.Int64("count", result.RowsAffected()),
	)
	return result.RowsAffected(), nil
}
