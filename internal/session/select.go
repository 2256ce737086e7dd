package session

import (
	"context"
	"math/rand"
	"time"

	"github.com/edumetrics/assess-backend/internal/model"
)

// Default selection parameters. Overridable per Config.
const (
	DefaultPoolLimit   = 60
	DefaultSize        = 6
	DefaultDurationSec = 30 * 60
)

// QuestionSource supplies candidate questions for a session. A source
// may return an error or an empty slice when the backing store is
// unavailable; Start recovers from both by using the built-in set.
type QuestionSource interface {
	Fetch(ctx context.Context, limit int) ([]model.Question, error)
}

// Config bounds question selection and the time budget for a session.
type Config struct {
	// PoolLimit caps how many candidates are requested from the source.
	PoolLimit int
	// Size is the number of questions in the session after truncation.
	Size int
	// DurationSec is the full remaining-time budget at start.
	DurationSec int
}

func (c Config) withDefaults() Config {
	if c.PoolLimit <= 0 {
		c.PoolLimit = DefaultPoolLimit
	}
	if c.Size <= 0 {
		c.Size = DefaultSize
	}
	if c.DurationSec <= 0 {
		c.DurationSec = DefaultDurationSec
	}
	return c
}

// Start builds a fresh active session: it requests up to cfg.PoolLimit
// candidates from src, falls back to the built-in set on error or empty
// result, applies a uniform Fisher-Yates shuffle, truncates to cfg.Size
// and builds the parallel answer records at their defaults.
//
// Remote failures never surface to the caller. ErrMalformedFallback is
// returned only when the built-in set itself is broken, which indicates
// a defect rather than a runtime condition.
func Start(ctx context.Context, src QuestionSource, cfg Config) (*Session, error) {
	cfg = cfg.withDefaults()

	pool := fetchPool(ctx, src, cfg.PoolLimit)
	if len(pool) == 0 {
		pool = Fallback()
		for _, q := range pool {
			if !q.Valid() {
				return nil, ErrMalformedFallback
			}
		}
		if len(pool) == 0 {
			return nil, ErrMalformedFallback
		}
	}

	rand.Shuffle(len(pool), func(i, j int) {
		pool[i], pool[j] = pool[j], pool[i]
	})
	if len(pool) > cfg.Size {
		pool = pool[:cfg.Size]
	}

	answers := make([]model.AnswerRecord, len(pool))
	for i := range pool {
		answers[i] = model.AnswerRecord{QuestionID: pool[i].ID}
	}

	return &Session{
		Questions:    pool,
		Answers:      answers,
		Current:      0,
		RemainingSec: cfg.DurationSec,
		StartedAt:    time.Now(),
		active:       true,
	}, nil
}

// fetchPool pulls candidates from the source, dropping malformed
// entries. Any source error is treated the same as an empty result.
func fetchPool(ctx context.Context, src QuestionSource, limit int) []model.Question {
	if src == nil {
		return nil
	}
	fetched, err := src.Fetch(ctx, limit)
	if err != nil {
		return nil
	}
	pool := make([]model.Question, 0, len(fetched))
	for _, q := range fetched {
		if q.Valid() {
			pool = append(pool, q)
		}
	}
	return pool
}
