// AngelaMos | 2026
// scheduler.go

package jobs

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/nearmeb2b/backoffice/internal/config"
)

// Scheduler registers the periodic sweeps and enqueues them on their
// cron specs. Run one instance alongside the worker pool.
type Scheduler struct {
	scheduler *asynq.Scheduler
}

func NewScheduler(
	cfg config.JobsConfig,
	redisURL string,
	log *slog.Logger,
) (*Scheduler, error) {
	opt, err := redisClientOpt(redisURL)
	if err != nil {
		return nil, err
	}

	queue := cfg.Queue
	if queue == "" {
		queue = "default"
	}

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{
		PostEnqueueFunc: func(info *asynq.TaskInfo, err error) {
			if err != nil {
				log.Error("enqueue periodic task", "error", err)
			}
		},
	})

	entries := []struct {
		spec string
		task *asynq.Task
	}{
		{cfg.PremiumSweepSchedule, NewPremiumExpirySweepTask()},
		{cfg.SubscriptionSweepSchedule, NewSubscriptionExpirySweepTask()},
		{cfg.TokenPurgeSchedule, NewTokenPurgeTask()},
	}

	for _, e := range entries {
		if e.spec == "" {
			continue
		}
		if _, err := scheduler.Register(e.spec, e.task, asynq.Queue(queue)); err != nil {
			return nil, fmt.Errorf("register %s: %w", e.task.Type(), err)
		}
	}

	return &Scheduler{scheduler: scheduler}, nil
}

func (s *Scheduler) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.scheduler.Shutdown()
	}()

	if err := s.scheduler.Run(); err != nil {
		return fmt.Errorf("run scheduler: %w", err)
	}
	return nil
}
