// AngelaMos | 2026
// worker.go

package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/nearmeb2b/backoffice/internal/config"
)

// PremiumExpirer reverts lapsed premium grants. An empty source expires
// grants regardless of how they were made.
type PremiumExpirer interface {
	ExpirePremium(ctx context.Context, source string, now time.Time) (int, error)
}

// SubscriptionExpirer marks lapsed owner subscriptions expired and
// reverts the premium those subscriptions were carrying.
type SubscriptionExpirer interface {
	ExpireSubscriptions(ctx context.Context, now time.Time) (int, error)
}

// TokenPurger removes refresh tokens that are past their expiry.
type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context) (int64, error)
}

type Worker struct {
	server        *asynq.Server
	mux           *asynq.ServeMux
	premiums      PremiumExpirer
	subscriptions SubscriptionExpirer
	tokens        TokenPurger
	log           *slog.Logger
}

func NewWorker(
	cfg config.JobsConfig,
	redisURL string,
	premiums PremiumExpirer,
	subscriptions SubscriptionExpirer,
	tokens TokenPurger,
	log *slog.Logger,
) (*Worker, error) {
	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.Queue
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.Concurrency
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:        server,
		mux:           mux,
		premiums:      premiums,
		subscriptions: subscriptions,
		tokens:        tokens,
		log:           log,
	}

	mux.HandleFunc(TaskPremiumExpirySweep, w.handlePremiumExpirySweep)
	mux.HandleFunc(TaskSubscriptionExpirySweep, w.handleSubscriptionExpirySweep)
	mux.HandleFunc(TaskTokenPurge, w.handleTokenPurge)

	return w, nil
}

func (w *Worker) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		return fmt.Errorf("run worker: %w", err)
	}
	return nil
}

func (w *Worker) handlePremiumExpirySweep(ctx context.Context, _ *asynq.Task) error {
	reverted, err := w.premiums.ExpirePremium(ctx, "", time.Now())
	if err != nil {
		return fmt.Errorf("premium expiry sweep: %w", err)
	}
	if reverted > 0 {
		w.log.Info("premium grants expired", "count", reverted)
	}
	return nil
}

func (w *Worker) handleSubscriptionExpirySweep(ctx context.Context, _ *asynq.Task) error {
	expired, err := w.subscriptions.ExpireSubscriptions(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("subscription expiry sweep: %w", err)
	}
	if expired > 0 {
		w.log.Info("subscriptions expired", "count", expired)
	}
	return nil
}

func (w *Worker) handleTokenPurge(ctx context.Context, _ *asynq.Task) error {
	purged, err := w.tokens.PurgeExpiredTokens(ctx)
	if err != nil {
		return fmt.Errorf("token purge: %w", err)
	}
	if purged > 0 {
		w.log.Info("expired refresh tokens purged", "count", purged)
	}
	return nil
}

func redisClientOpt(redisURL string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}
