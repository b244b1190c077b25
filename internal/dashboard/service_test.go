// AngelaMos | 2026
// service_test.go

package dashboard

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nearmeb2b/backoffice/internal/business"
	"github.com/nearmeb2b/backoffice/internal/core"
)

type fakeStatsRepository struct {
	stats       map[string]*Stats
	lastScopeBy string
}

func (f *fakeStatsRepository) GetStats(
	_ context.Context,
	createdBy string,
) (*Stats, error) {
	f.lastScopeBy = createdBy
	s := *f.stats[createdBy]
	return &s, nil
}

func TestGetStatsScopesSalesman(t *testing.T) {
	salesman := core.Actor{UserID: uuid.New().String(), Role: core.RoleSalesman}
	repo := &fakeStatsRepository{stats: map[string]*Stats{
		"": {TotalBusinesses: 40, TotalLeads: 10,
			ConvertedLeads: 4, TotalSalesmen: 3},
		salesman.UserID: {TotalBusinesses: 5, TotalLeads: 2, ConvertedLeads: 1},
	}}
	svc := NewService(repo)

	stats, err := svc.GetStats(context.Background(), salesman)
	require.NoError(t, err)
	assert.Equal(t, salesman.UserID, repo.lastScopeBy)
	assert.Equal(t, 5, stats.TotalBusinesses)
	assert.InDelta(t, 50.0, stats.ConversionRate, 0.001)
	assert.Zero(t, stats.TotalSalesmen)

	admin := core.Actor{UserID: uuid.New().String(), Role: core.RoleAdmin}
	stats, err = svc.GetStats(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, "", repo.lastScopeBy)
	assert.Equal(t, 40, stats.TotalBusinesses)
	assert.InDelta(t, 40.0, stats.ConversionRate, 0.001)
	assert.Equal(t, 3, stats.TotalSalesmen)
}

func TestConversionRateZeroWhenNoLeads(t *testing.T) {
	admin := core.Actor{UserID: uuid.New().String(), Role: core.RoleAdmin}
	repo := &fakeStatsRepository{stats: map[string]*Stats{
		"": {TotalLeads: 0, ConvertedLeads: 0},
	}}
	svc := NewService(repo)

	stats, err := svc.GetStats(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 0.0, stats.ConversionRate)
}

// listingRow carries the columns the revenue aggregate reads.
type listingRow struct {
	paymentStatus string
	paymentAmount int64
}

// fakeAggregatingRepository recomputes stats from seeded rows with the
// same rules the SQL aggregate applies, so the tests exercise the
// aggregation contract rather than canned numbers.
type fakeAggregatingRepository struct {
	rows []listingRow
}

func (f *fakeAggregatingRepository) GetStats(
	_ context.Context,
	_ string,
) (*Stats, error) {
	stats := &Stats{}
	for _, r := range f.rows {
		stats.TotalBusinesses++
		if r.paymentStatus == business.PaymentVerified {
			stats.VerifiedPayments++
			stats.Revenue += r.paymentAmount
		}
	}
	return stats, nil
}

// Revenue sums verified payments only. A pending amount is a promise,
// not money.
func TestRevenueCountsOnlyVerifiedPayments(t *testing.T) {
	admin := core.Actor{UserID: uuid.New().String(), Role: core.RoleAdmin}
	repo := &fakeAggregatingRepository{rows: []listingRow{
		{paymentStatus: business.PaymentVerified, paymentAmount: 5000},
		{paymentStatus: business.PaymentVerified, paymentAmount: 2500},
		{paymentStatus: business.PaymentPending, paymentAmount: 9999},
		{paymentStatus: business.PaymentPending, paymentAmount: 1},
	}}
	svc := NewService(repo)

	stats, err := svc.GetStats(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalBusinesses)
	assert.Equal(t, 2, stats.VerifiedPayments)
	assert.Equal(t, int64(7500), stats.Revenue)
}

func TestGetStatsForbiddenForOwners(t *testing.T) {
	owner := core.Actor{UserID: uuid.New().String(), Role: core.RoleOwner}
	svc := NewService(&fakeStatsRepository{stats: map[string]*Stats{"": {}}})

	_, err := svc.GetStats(context.Background(), owner)
	assert.ErrorIs(t, err, core.ErrForbidden)
}
