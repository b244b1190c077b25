// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/nearmeb2b/backoffice/internal/auth"
	"github.com/nearmeb2b/backoffice/internal/business"
	"github.com/nearmeb2b/backoffice/internal/config"
	"github.com/nearmeb2b/backoffice/internal/core"
	"github.com/nearmeb2b/backoffice/internal/jobs"
	"github.com/nearmeb2b/backoffice/internal/user"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("worker error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting worker",
		"name", cfg.App.Name,
		"queue", cfg.Jobs.Queue,
		"concurrency", cfg.Jobs.Concurrency,
	)

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	businessRepo := business.NewRepository(db.DB)
	businessSvc := business.NewService(businessRepo)

	userRepo := user.NewRepository(db.DB)
	userSvc := user.NewService(userRepo, businessSvc)

	authRepo := auth.NewRepository(db.DB)

	worker, err := jobs.NewWorker(
		cfg.Jobs,
		cfg.Redis.URL,
		businessSvc,
		userSvc,
		tokenPurger{repo: authRepo},
		logger,
	)
	if err != nil {
		return err
	}

	scheduler, err := jobs.NewScheduler(cfg.Jobs, cfg.Redis.URL, logger)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error { return worker.Run(groupCtx) })
	group.Go(func() error { return scheduler.Run(groupCtx) })

	if err := group.Wait(); err != nil {
		return err
	}

	logger.Info("worker stopped")
	return nil
}

// tokenPurger adapts the auth repository for the purge job. The worker
// has no need for the full token service and its redis dependency.
type tokenPurger struct {
	repo auth.Repository
}

func (p tokenPurger) PurgeExpiredTokens(ctx context.Context) (int64, error) {
	return p.repo.DeleteExpired(ctx)
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
