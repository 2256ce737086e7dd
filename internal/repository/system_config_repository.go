package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ConfigEntry is one system_config key/value row.
type ConfigEntry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SystemConfigRepository handles deployment-level key/value settings.
type SystemConfigRepository struct {
	pool *pgxpool.Pool
}

// NewSystemConfigRepository creates a new SystemConfigRepository.
func NewSystemConfigRepository(pool *pgxpool.Pool) *SystemConfigRepository {
	return &SystemConfigRepository{pool: pool}
}

// GetAll retrieves every config entry ordered by key.
func (r *SystemConfigRepository) GetAll(ctx context.Context) ([]ConfigEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT key, value, updated_at FROM system_config ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []ConfigEntry
	for rows.Next() {
		var e ConfigEntry
		if err := rows.Scan(&e.Key, &e.Value, &e.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Upsert writes one config entry.
func (r *SystemConfigRepository) Upsert(ctx context.Context, key, value string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO system_config (key, value, updated_at) VALUES ($1, $2, NOW())
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
		key, value)
	return err
}
