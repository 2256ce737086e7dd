package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edumetrics/assess-backend/internal/config"
	"github.com/edumetrics/assess-backend/internal/database"
	"github.com/edumetrics/assess-backend/internal/handler"
	"github.com/edumetrics/assess-backend/internal/logger"
	"github.com/edumetrics/assess-backend/internal/repository"
	"github.com/edumetrics/assess-backend/internal/router"
	"github.com/edumetrics/assess-backend/internal/service"
	"github.com/edumetrics/assess-backend/internal/validator"
	"github.com/edumetrics/assess-backend/internal/worker"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Assess Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	questionRepo := repository.NewQuestionRepository(pool)
	resultRepo := repository.NewResultRepository(pool)
	subjectRepo := repository.NewSubjectRepository(pool)
	regRepo := repository.NewRegistrationRepository(pool)
	adminRepo := repository.NewAdminRepository(pool)
	configRepo := repository.NewSystemConfigRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, regRepo, adminRepo)
	questionService := service.NewQuestionService(questionRepo, rdb, cfg, log)
	testService := service.NewTestService(questionService, resultRepo, cfg, log)
	subjectService := service.NewSubjectService(subjectRepo, rdb, cfg, log)
	regService := service.NewRegistrationService(regRepo, authService)
	resultService := service.NewResultService(resultRepo)
	configService := service.NewSystemConfigService(configRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Registration: handler.NewRegistrationHandler(regService),
		Test:         handler.NewTestHandler(testService),
		Subject:      handler.NewSubjectHandler(subjectService),
		Question:     handler.NewQuestionHandler(questionService),
		Result:       handler.NewResultHandler(resultService),
		SystemConfig: handler.NewSystemConfigHandler(configService),
		WS:           handler.NewWSHandler(testService, log, cfg.AllowedOrigins),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	timerWorker := worker.NewTimerWorker(testService, log)
	go timerWorker.Start(workerCtx)

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load the question pool into Redis BEFORE accepting traffic so a
	// burst of session starts does not hit PostgreSQL cold. A failure
	// here is tolerable: sessions fall back to the built-in set.
	if err := questionService.Prewarm(ctx); err != nil {
		log.Warn().Err(err).Msg("Question cache prewarm failed")
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop the countdown worker. In-memory sessions end with the
	// process; submitted results are already durable.
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
