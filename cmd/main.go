package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/felipevm/batepapo-api/internal/api/http"
	"github.com/felipevm/batepapo-api/internal/config"
	"github.com/felipevm/batepapo-api/internal/repository"
	"github.com/felipevm/batepapo-api/internal/repository/model"
	"github.com/felipevm/batepapo-api/internal/service"
	"github.com/felipevm/batepapo-api/lib/logger/slogpretty"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.MustLoad()
	log := setupLogger(cfg.Env)

	participantRepo, messageRepo, err := buildRepositories(cfg.Database, log)
	if err != nil {
		log.Error("failed to set up storage", slog.Any("error", err))
		os.Exit(1)
	}

	presenceService := service.NewPresenceService(participantRepo, log)
	messageService := service.NewMessageService(messageRepo, participantRepo, log)

	participantController := httpapi.NewParticipantController(presenceService, messageService, log)
	messageController := httpapi.NewMessageController(messageService, log)

	router := httpapi.SetupRouter(participantController, messageController, rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sweeper := service.NewSweeper(presenceService, messageService, cfg.Presence.SweepInterval, cfg.Presence.StaleAfter, log)
	go func() {
		_ = sweeper.Run(ctx)
	}()

	srv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	go func() {
		log.Info("starting application", slog.String("addr", cfg.HTTP.Address))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	log.Info("application stopped")
}

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = setupPrettySlog()
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}

func buildRepositories(cfg config.DatabaseConfig, log *slog.Logger) (repository.ParticipantRepository, repository.MessageRepository, error) {
	if cfg.DSN == "" {
		log.Info("no database dsn, using in-memory storage")
		return repository.NewInMemoryParticipantRepository(), repository.NewInMemoryMessageRepository(), nil
	}

	db, err := connectDatabase(cfg)
	if err != nil {
		return nil, nil, err
	}

	return repository.NewPostgresParticipantRepository(db), repository.NewPostgresMessageRepository(db), nil
}

func connectDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	db.AutoMigrate(&model.Participant{}, &model.Message{})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}
