// AngelaMos | 2026
// worker_test.go

package jobs

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearmeb2b/backoffice/internal/config"
)

type fakeSweeps struct {
	premiumSource     string
	premiumCalls      int
	subscriptionCalls int
	purgeCalls        int
}

func (f *fakeSweeps) ExpirePremium(_ context.Context, source string, _ time.Time) (int, error) {
	f.premiumSource = source
	f.premiumCalls++
	return 2, nil
}

func (f *fakeSweeps) ExpireSubscriptions(_ context.Context, _ time.Time) (int, error) {
	f.subscriptionCalls++
	return 1, nil
}

func (f *fakeSweeps) PurgeExpiredTokens(_ context.Context) (int64, error) {
	f.purgeCalls++
	return 5, nil
}

func newTestWorker(t *testing.T, sweeps *fakeSweeps) *Worker {
	t.Helper()

	w, err := NewWorker(
		config.JobsConfig{Queue: "test", Concurrency: 1},
		"redis://localhost:6379/0",
		sweeps,
		sweeps,
		sweeps,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.NoError(t, err)
	return w
}

func TestPremiumSweepCoversAllSources(t *testing.T) {
	sweeps := &fakeSweeps{}
	w := newTestWorker(t, sweeps)

	err := w.handlePremiumExpirySweep(context.Background(), NewPremiumExpirySweepTask())
	require.NoError(t, err)

	assert.Equal(t, 1, sweeps.premiumCalls)
	assert.Empty(t, sweeps.premiumSource)
}

func TestSubscriptionSweepAndTokenPurge(t *testing.T) {
	sweeps := &fakeSweeps{}
	w := newTestWorker(t, sweeps)

	require.NoError(t,
		w.handleSubscriptionExpirySweep(context.Background(), NewSubscriptionExpirySweepTask()))
	require.NoError(t,
		w.handleTokenPurge(context.Background(), NewTokenPurgeTask()))

	assert.Equal(t, 1, sweeps.subscriptionCalls)
	assert.Equal(t, 1, sweeps.purgeCalls)
}

func TestNewWorkerRejectsBadRedisURL(t *testing.T) {
	_, err := NewWorker(
		config.JobsConfig{},
		"not-a-url",
		&fakeSweeps{},
		&fakeSweeps{},
		&fakeSweeps{},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
	require.Error(t, err)
}
