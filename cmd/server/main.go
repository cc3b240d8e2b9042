package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/qforge/qforge-backend/internal/config"
	"github.com/qforge/qforge-backend/internal/database"
	"github.com/qforge/qforge-backend/internal/handler"
	"github.com/qforge/qforge-backend/internal/logger"
	"github.com/qforge/qforge-backend/internal/repository"
	"github.com/qforge/qforge-backend/internal/router"
	"github.com/qforge/qforge-backend/internal/service"
	"github.com/qforge/qforge-backend/internal/validator"
	"github.com/qforge/qforge-backend/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting QForge Backend")

	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// Repositories.
	teacherRepo := repository.NewTeacherRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	paperRepo := repository.NewPaperRepository(pool)
	taxonomyRepo := repository.NewTaxonomyRepository(pool)
	sheetRepo := repository.NewAnswerSheetRepository(pool)
	dashboardRepo := repository.NewDashboardRepository(pool)

	// Services.
	authService := service.NewAuthService(cfg, rdb, teacherRepo)
	questionService := service.NewQuestionService(questionRepo)
	draftService := service.NewDraftService(cfg, rdb)
	paperService := service.NewPaperService(paperRepo, questionRepo, log)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo, log)
	mediaService := service.NewMediaService(cfg)
	generationService := service.NewGenerationService(service.NewFixtureGenerator(), log)
	sheetService := service.NewAnswerSheetService(sheetRepo, paperRepo, rdb, log)
	dashboardService := service.NewDashboardService(dashboardRepo)

	handlers := &router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Question:    handler.NewQuestionHandler(questionService, generationService),
		Draft:       handler.NewDraftHandler(draftService),
		Paper:       handler.NewPaperHandler(paperService),
		Taxonomy:    handler.NewTaxonomyHandler(taxonomyService),
		Media:       handler.NewMediaHandler(mediaService),
		AnswerSheet: handler.NewAnswerSheetHandler(sheetService, mediaService),
		Dashboard:   handler.NewDashboardHandler(dashboardService),
		WS:          handler.NewWSHandler(rdb, sheetService, log, cfg.AllowedOrigins),
	}

	// Background worker that drains the sheet processing queue.
	workerCtx, workerCancel := context.WithCancel(context.Background())
	sheetWorker := worker.NewSheetWorker(sheetRepo, rdb, log)
	go sheetWorker.Start(workerCtx)

	r := router.SetupRouter(authService, handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new HTTP requests first.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// Then stop the worker; an in-flight sheet job is requeued.
	workerCancel()
	time.Sleep(2 * time.Second)

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
