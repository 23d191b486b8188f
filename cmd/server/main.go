package main

import (
	"context"
	"errors"
	"log/slog"
	stdhttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/clock"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/handler/http"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/storage"
	"github.com/vncsmyrnk/ballotwizard/internal/adapters/telemetry"
	"github.com/vncsmyrnk/ballotwizard/internal/config"
	"github.com/vncsmyrnk/ballotwizard/internal/core/domain"
	"github.com/vncsmyrnk/ballotwizard/internal/core/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	cfg, err := config.ParseEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.OTelEndpoint, cfg.OTelServiceName)
	if err != nil {
		logger.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}

	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		logger.Error("failed to load policy", "error", err)
		os.Exit(1)
	}

	store, closeStore, err := storage.Open(cfg)
	if err != nil {
		logger.Error("failed to open storage", "storage", cfg.Storage, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	autosave := services.AutoSaveOptions{
		Key:       cfg.AutoSaveKey,
		Delay:     cfg.AutoSaveDelay,
		MaxAge:    cfg.AutoSaveMaxAge,
		RecentAge: cfg.AutoSaveRecentAge,
	}
	systemClock := clock.NewSystem()
	// Sessions share one slot so a new session can recover the last one.
	sessions := services.NewSessionService(func(id uuid.UUID, seed *domain.Draft) services.Wizard {
		return services.NewWizardService(services.WizardDeps{
			Clock:    systemClock,
			Store:    store,
			Policy:   policy,
			AutoSave: autosave,
			Logger:   logger.With("session_id", id),
		}, seed)
	}, logger)

	server := &stdhttp.Server{
		Addr:    ":" + cfg.Port,
		Handler: http.NewHandler(http.NewWizardHandler(sessions)),
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr, "storage", cfg.Storage)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, stdhttp.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", "error", err)
	}
	sessions.Shutdown(shutdownCtx)
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", "error", err)
	}

	logger.Info("server exited")
}

func logLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return l
}
