package repository

import (
	"context"
	"fmt"
	"sync"

	"google-reviews/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// OptionRepository is a plain key/value settings store.
// Get returns found=false for an option that was never saved.
type OptionRepository interface {
	Get(ctx context.Context, name string) (value string, found bool, err error)
	Set(ctx context.Context, name, value string) error
	Delete(ctx context.Context, name string) error
}

type optionRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOptionRepository(db database.PgxIface, log *zap.Logger) OptionRepository {
	return &optionRepository{
		db:  db,
		log: log.With(zap.String("repository", "option")),
	}
}

func (r *optionRepository) Get(ctx context.Context, name string) (string, bool, error) {
	query := `SELECT option_value FROM options WHERE option_name = $1`

	var value string
	err := r.db.QueryRow(ctx, query, name).Scan(&value)
	if err == pgx.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		r.log.Error("Failed to get option",
			zap.Error(err),
			zap.String("option", name),
		)
		return "", false, fmt.Errorf("get option %s: %w", name, err)
	}

	return value, true, nil
}

func (r *optionRepository) Set(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO options (option_name, option_value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (option_name)
		DO UPDATE SET option_value = EXCLUDED.option_value, updated_at = NOW()
	`

	if _, err := r.db.Exec(ctx, query, name, value); err != nil {
		r.log.Error("Failed to set option",
			zap.Error(err),
			zap.String("option", name),
		)
		return fmt.Errorf("set option %s: %w", name, err)
	}

	return nil
}

func (r *optionRepository) Delete(ctx context.Context, name string) error {
	query := `DELETE FROM options WHERE option_name = $1`

	if _, err := r.db.Exec(ctx, query, name); err != nil {
		r.log.Error("Failed to delete option",
			zap.Error(err),
			zap.String("option", name),
		)
		return fmt.Errorf("delete option %s: %w", name, err)
	}

	return nil
}

// memoryOptionRepository keeps options for the life of the process
type memoryOptionRepository struct {
	mu      sync.RWMutex
	options map[string]string
}

func NewMemoryOptionRepository() OptionRepository {
	return &memoryOptionRepository{options: make(map[string]string)}
}

func (r *memoryOptionRepository) Get(_ context.Context, name string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.options[name]
	return value, ok, nil
}

func (r *memoryOptionRepository) Set(_ context.Context, name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.options[name] = value
	return nil
}

func (r *memoryOptionRepository) Delete(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.options, name)
	return nil
}
