package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/edumetrics/assess-backend/internal/config"
	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/edumetrics/assess-backend/internal/repository"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// QuestionService manages the question bank and acts as the session
// core's QuestionSource. Fetches go through a Redis cache so a burst of
// session starts does not hammer PostgreSQL; a cold or broken cache
// falls through to the database, and a broken database yields an error
// that the session core recovers from with its built-in set.
type QuestionService struct {
	repo *repository.QuestionRepository
	rdb  *redis.Client
	cfg  *config.Config
	log  zerolog.Logger
}

// NewQuestionService creates a new QuestionService.
func NewQuestionService(repo *repository.QuestionRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *QuestionService {
	return &QuestionService{
		repo: repo,
		rdb:  rdb,
		cfg:  cfg,
		log:  log.With().Str("component", "question_service").Logger(),
	}
}

// Fetch implements session.QuestionSource.
func (s *QuestionService) Fetch(ctx context.Context, limit int) ([]model.Question, error) {
	if questions, ok := s.fromCache(ctx, limit); ok {
		return questions, nil
	}

	questions, err := s.repo.ListRandom(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	s.fillCache(ctx, questions)
	return questions, nil
}

// Prewarm loads the question pool into Redis before traffic arrives.
// A failure is logged and tolerated: the cache self-heals on first miss.
func (s *QuestionService) Prewarm(ctx context.Context) error {
	questions, err := s.repo.ListRandom(ctx, s.cfg.QuestionPoolLimit)
	if err != nil {
		return fmt.Errorf("prewarm questions: %w", err)
	}
	s.fillCache(ctx, questions)
	s.log.Info().Int("count", len(questions)).Msg("Question pool cache prewarmed")
	return nil
}

// Create adds a question to the bank and invalidates the pool cache.
func (s *QuestionService) Create(ctx context.Context, req *model.CreateQuestionRequest) (*model.Question, error) {
	q := &model.Question{
		Subject:      req.Subject,
		Prompt:       req.Prompt,
		Options:      req.Options,
		CorrectIndex: req.Correct,
		Difficulty:   model.Difficulty(req.Difficulty),
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}

	if err := s.rdb.Del(ctx, config.CacheKey.QuestionPoolKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Question pool cache invalidation failed")
	}
	return q, nil
}

// ListBySubject returns all bank questions for a subject. Admin-facing.
func (s *QuestionService) ListBySubject(ctx context.Context, subject string) ([]model.Question, error) {
	return s.repo.ListBySubject(ctx, subject)
}

func (s *QuestionService) fromCache(ctx context.Context, limit int) ([]model.Question, bool) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.QuestionPoolKey()).Result()
	if err != nil {
		if err != redis.Nil {
			s.log.Warn().Err(err).Msg("Question pool cache read failed")
		}
		return nil, false
	}

	var questions []model.Question
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		s.log.Warn().Err(err).Msg("Question pool cache corrupt, dropping")
		_ = s.rdb.Del(ctx, config.CacheKey.QuestionPoolKey()).Err()
		return nil, false
	}
	if len(questions) == 0 {
		return nil, false
	}
	if len(questions) > limit {
		questions = questions[:limit]
	}
	return questions, true
}

func (s *QuestionService) fillCache(ctx context.Context, questions []model.Question) {
	if len(questions) == 0 {
		return
	}
	raw, err := json.Marshal(questions)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, config.CacheKey.QuestionPoolKey(), raw, s.cfg.QuestionCacheTTL).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Question pool cache write failed")
	}
}
