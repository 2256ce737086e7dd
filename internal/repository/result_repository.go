package repository

import (
	"context"
	"fmt"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResultRepository persists per-subject test results. It satisfies
// session.ResultStore.
type ResultRepository struct {
	pool *pgxpool.Pool
}

// NewResultRepository creates a new ResultRepository.
func NewResultRepository(pool *pgxpool.Pool) *ResultRepository {
	return &ResultRepository{pool: pool}
}

// InsertBatch writes all submission rows of one session in a single
// transaction. Either every row lands or none does: a failed submit
// leaves no partial results behind.
func (r *ResultRepository) InsertBatch(ctx context.Context, results []model.TestResult) error {
	if len(results) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for i := range results {
		batch.Queue(
			`INSERT INTO test_results (email, test_time, subject, questions, answers, score, duration_seconds)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			results[i].Email, results[i].TestTime, results[i].Subject,
			results[i].Questions, results[i].Answers,
			results[i].Score, results[i].DurationSeconds,
		)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	br := tx.SendBatch(ctx, batch)
	for range results {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("insert result: %w", err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// CountByEmail returns how many result rows exist for a submitter.
// Admin-facing: end users cannot read test_results back.
func (r *ResultRepository) CountByEmail(ctx context.Context, email string) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM test_results WHERE email = $1`, email,
	).Scan(&n)
	return n, err
}

// ListByEmail retrieves a submitter's result rows without the heavy
// question/answer snapshots. Admin-facing.
func (r *ResultRepository) ListByEmail(ctx context.Context, email string) ([]model.TestResult, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, email, test_time, subject, score, duration_seconds
		 FROM test_results
		 WHERE email = $1
		 ORDER BY test_time DESC, subject ASC`, email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []model.TestResult
	for rows.Next() {
		var t model.TestResult
		if err := rows.Scan(&t.ID, &t.Email, &t.TestTime, &t.Subject, &t.Score, &t.DurationSeconds); err != nil {
			return nil, err
		}
		results = append(results, t)
	}
	return results, rows.Err()
}
