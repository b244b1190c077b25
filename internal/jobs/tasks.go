// AngelaMos | 2026
// tasks.go

package jobs

import (
	"github.com/hibiken/asynq"
)

const TaskPremiumExpirySweep = "premium.expiry.sweep"

const TaskSubscriptionExpirySweep = "subscription.expiry.sweep"

const TaskTokenPurge = "auth.tokens.purge"

// The sweeps carry no payload. Each handler works off the clock at
// execution time, not at enqueue time.

func NewPremiumExpirySweepTask() *asynq.Task {
	return asynq.NewTask(TaskPremiumExpirySweep, nil)
}

func NewSubscriptionExpirySweepTask() *asynq.Task {
	return asynq.NewTask(TaskSubscriptionExpirySweep, nil)
}

func NewTokenPurgeTask() *asynq.Task {
	return asynq.NewTask(TaskTokenPurge, nil)
}
