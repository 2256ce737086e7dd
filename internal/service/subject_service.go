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

// SubjectService manages the subject enumeration with a Redis read-through
// cache. The subject list is small and nearly static.
type SubjectService struct {
	repo *repository.SubjectRepository
	rdb  *redis.Client
	cfg  *config.Config
	log  zerolog.Logger
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(repo *repository.SubjectRepository, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		repo: repo,
		rdb:  rdb,
		cfg:  cfg,
		log:  log.With().Str("component", "subject_service").Logger(),
	}
}

// List returns all subjects, from cache when possible.
func (s *SubjectService) List(ctx context.Context) ([]model.Subject, error) {
	key := config.CacheKey.SubjectListKey()

	if raw, err := s.rdb.Get(ctx, key).Result(); err == nil {
		var subjects []model.Subject
		if err := json.Unmarshal([]byte(raw), &subjects); err == nil {
			return subjects, nil
		}
		_ = s.rdb.Del(ctx, key).Err()
	}

	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}

	if raw, err := json.Marshal(subjects); err == nil {
		if err := s.rdb.Set(ctx, key, raw, s.cfg.QuestionCacheTTL).Err(); err != nil {
			s.log.Warn().Err(err).Msg("Subject cache write failed")
		}
	}
	return subjects, nil
}

// Create adds a subject and invalidates the cached list.
func (s *SubjectService) Create(ctx context.Context, req *model.CreateSubjectRequest) (*model.Subject, error) {
	subject := &model.Subject{Name: req.Name}
	if err := s.repo.Create(ctx, subject); err != nil {
		return nil, fmt.Errorf("create subject: %w", err)
	}
	if err := s.rdb.Del(ctx, config.CacheKey.SubjectListKey()).Err(); err != nil {
		s.log.Warn().Err(err).Msg("Subject cache invalidation failed")
	}
	return subject, nil
}
