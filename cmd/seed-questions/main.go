package main

import (
	"context"

	"github.com/edumetrics/assess-backend/internal/config"
	"github.com/edumetrics/assess-backend/internal/database"
	"github.com/edumetrics/assess-backend/internal/logger"
	"github.com/edumetrics/assess-backend/internal/model"
	"github.com/edumetrics/assess-backend/internal/repository"
	"github.com/edumetrics/assess-backend/internal/session"
)

// Seeds the question bank (and subjects) with the built-in fallback
// set so a fresh deployment can serve sessions from PostgreSQL.
func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)

	existing, err := questionRepo.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to count questions")
	}
	if existing > 0 {
		log.Info().Int64("existing", existing).Msg("Question bank not empty, skipping seed")
		return
	}

	seeded := 0
	subjects := make(map[string]bool)
	for _, q := range session.Fallback() {
		if !subjects[q.Subject] {
			subject := &model.Subject{Name: q.Subject}
			if err := subjectRepo.Create(ctx, subject); err != nil {
				log.Fatal().Err(err).Str("subject", q.Subject).Msg("Failed to seed subject")
			}
			subjects[q.Subject] = true
		}

		question := q
		if err := questionRepo.Create(ctx, &question); err != nil {
			log.Fatal().Err(err).Str("prompt", q.Prompt).Msg("Failed to seed question")
		}
		seeded++
	}

	log.Info().
		Int("questions", seeded).
		Int("subjects", len(subjects)).
		Msg("Question bank seeded")
}
