// AngelaMos | 2026
// service.go

package dashboard

import (
	"context"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// GetStats scopes salesmen to their own slice of the data. Everything
// is recomputed per call; there is no snapshot cache to go stale.
func (s *Service) GetStats(
	ctx context.Context,
	actor core.Actor,
) (*Stats, error) {
	if !actor.IsAdmin() && !actor.IsSalesman() {
		return nil, core.ForbiddenError("no dashboard for this role")
	}

	createdBy := ""
	if actor.IsSalesman() {
		createdBy = actor.UserID
	}

	stats, err := s.repo.GetStats(ctx, createdBy)
	if err != nil {
		return nil, err
	}

	stats.ConversionRate = conversionRate(stats.ConvertedLeads, stats.TotalLeads)

	return stats, nil
}

// conversionRate is 0 when there are no leads, not NaN.
func conversionRate(converted, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(converted) / float64(total) * 100
}
