package repository

import (
	"context"

	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QuestionRepository handles question bank data access.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

// NewQuestionRepository creates a new QuestionRepository.
func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

// ListRandom retrieves up to limit questions in random database order.
// Rows with a malformed correct_answer (outside 1..4) or missing option
// text are dropped silently: the session layer treats a short or empty
// result the same as an unavailable store.
func (r *QuestionRepository) ListRandom(ctx context.Context, limit int) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject, question, option_a, option_b, option_c, option_d, correct_answer, difficulty
		 FROM questions
		 ORDER BY random()
		 LIMIT $1`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var a, b, c, d string
		var correct int
		if err := rows.Scan(&q.ID, &q.Subject, &q.Prompt, &a, &b, &c, &d, &correct, &q.Difficulty); err != nil {
			return nil, err
		}
		// Stored correct_answer is 1-based.
		q.Options = []string{a, b, c, d}
		q.CorrectIndex = correct - 1
		if q.Valid() {
			questions = append(questions, q)
		}
	}
	return questions, rows.Err()
}

// ListBySubject retrieves all questions for one subject, newest first.
func (r *QuestionRepository) ListBySubject(ctx context.Context, subject string) ([]model.Question, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, subject, question, option_a, option_b, option_c, option_d, correct_answer, difficulty
		 FROM questions
		 WHERE subject = $1
		 ORDER BY created_at DESC`, subject,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []model.Question
	for rows.Next() {
		var q model.Question
		var a, b, c, d string
		var correct int
		if err := rows.Scan(&q.ID, &q.Subject, &q.Prompt, &a, &b, &c, &d, &correct, &q.Difficulty); err != nil {
			return nil, err
		}
		q.Options = []string{a, b, c, d}
		q.CorrectIndex = correct - 1
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// Create inserts a new question. CorrectIndex is stored 1-based to
// match the persisted schema.
func (r *QuestionRepository) Create(ctx context.Context, q *model.Question) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO questions (subject, question, option_a, option_b, option_c, option_d, correct_answer, difficulty)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		q.Subject, q.Prompt, q.Options[0], q.Options[1], q.Options[2], q.Options[3],
		q.CorrectIndex+1, q.Difficulty,
	).Scan(&q.ID)
}

// Count returns the number of questions in the bank.
func (r *QuestionRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM questions`).Scan(&n)
	return n, err
}
