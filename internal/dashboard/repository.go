// AngelaMos | 2026
// repository.go

package dashboard

import (
	"context"
	"fmt"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type Repository interface {
	// GetStats aggregates over all rows, or over one salesman's slice
	// when createdBy is non-empty.
	GetStats(ctx context.Context, createdBy string) (*Stats, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) GetStats(
	ctx context.Context,
	createdBy string,
) (*Stats, error) {
	var stats Stats

	businessQuery := `
		SELECT
			COUNT(*) AS total_businesses,
			COUNT(*) FILTER (WHERE approval_status = 'pending') AS pending_approval,
			COUNT(*) FILTER (WHERE approval_status = 'approved'
				AND verified_at >= date_trunc('day', NOW())) AS approved_today,
			COUNT(*) FILTER (WHERE created_at >= date_trunc('day', NOW())) AS new_today,
			COUNT(*) FILTER (WHERE is_premium) AS premium_businesses,
			COUNT(*) FILTER (WHERE premium_request_status = 'premium_requested') AS premium_requests,
			COUNT(*) FILTER (WHERE payment_status = 'verified') AS verified_payments,
			COALESCE(SUM(payment_amount) FILTER (WHERE payment_status = 'verified'), 0) AS revenue
		FROM businesses`

	leadQuery := `
		SELECT
			COUNT(*) AS total_leads,
			COUNT(*) FILTER (WHERE status = 'converted') AS converted_leads
		FROM leads`

	// Bookings outlive their listing, so the unscoped count must not
	// join businesses; the join exists only to scope by salesman.
	bookingQuery := `
		SELECT COUNT(*) AS total_bookings
		FROM bookings`

	var args []any
	if createdBy != "" {
		businessQuery += ` WHERE created_by = $1`
		leadQuery += ` WHERE assigned_to = $1`
		bookingQuery = `
			SELECT COUNT(*) AS total_bookings
			FROM bookings b
			JOIN businesses biz ON biz.id = b.business_id
			WHERE biz.created_by = $1`
		args = append(args, createdBy)
	}

	if err := r.db.GetContext(ctx, &stats, businessQuery, args...); err != nil {
		return nil, fmt.Errorf("business stats: %w", err)
	}

	var leadStats struct {
		TotalLeads     int `db:"total_leads"`
		ConvertedLeads int `db:"converted_leads"`
	}
	if err := r.db.GetContext(ctx, &leadStats, leadQuery, args...); err != nil {
		return nil, fmt.Errorf("lead stats: %w", err)
	}
	stats.TotalLeads = leadStats.TotalLeads
	stats.ConvertedLeads = leadStats.ConvertedLeads

	if err := r.db.GetContext(ctx, &stats.TotalBookings, bookingQuery, args...); err != nil {
		return nil, fmt.Errorf("booking stats: %w", err)
	}

	if createdBy == "" {
		salesmenQuery := `
			SELECT COUNT(*) AS total_salesmen
			FROM users
			WHERE role = 'salesman' AND deleted_at IS NULL`

		if err := r.db.GetContext(ctx, &stats.TotalSalesmen, salesmenQuery); err != nil {
			return nil, fmt.Errorf("salesman stats: %w", err)
		}
	}

	return &stats, nil
}
