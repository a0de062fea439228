package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/hbing/bingsprint/internal/bank"
	"github.com/hbing/bingsprint/internal/config"
	"github.com/hbing/bingsprint/internal/handler"
	"github.com/hbing/bingsprint/internal/logger"
	"github.com/hbing/bingsprint/internal/repository"
	"github.com/hbing/bingsprint/internal/router"
	"github.com/hbing/bingsprint/internal/service"
	"github.com/hbing/bingsprint/internal/validator"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("bank_file", cfg.BankFile).
		Str("data_dir", cfg.DataDir).
		Msg("Starting BingSprint")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	// ─── Prepare Data Directory ────────────────────────────────────────
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("Failed to create data directory")
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	progressRepo := repository.NewProgressRepository(cfg.DataDir)
	wrongRepo := repository.NewWrongAnswerRepository(cfg.DataDir)
	historyRepo := repository.NewHistoryRepository(cfg.DataDir)

	// ─── Load Question Bank ────────────────────────────────────────────
	// The first read happens here so startup logs show the bank size
	// before traffic arrives; later reads hit the mtime cache.
	loader := bank.NewLoader(cfg, log)
	log.Info().Int("questions", len(loader.Questions())).Msg("Question bank ready")

	// ─── Initialize Services ──────────────────────────────────────────
	examService := service.NewExamService(loader, progressRepo, wrongRepo, historyRepo, cfg.ExamSize, log)
	bankService := service.NewBankService(loader, progressRepo, wrongRepo, historyRepo, cfg.ExamSize, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Bank:    handler.NewBankHandler(bankService),
		Session: handler.NewSessionHandler(examService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
