// AngelaMos | 2026
// repository.go

package business

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type Repository interface {
	Create(ctx context.Context, b *Business) error
	GetByID(ctx context.Context, id string) (*Business, error)
	UpdateDetails(ctx context.Context, b *Business) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListBusinessParams) ([]Business, int, error)

	// Transition methods apply their state change only when the row
	// still satisfies the precondition. sql.ErrNoRows maps to
	// core.ErrNotFound; callers re-read to tell a missing row from a
	// lost race.
	Approve(ctx context.Context, id string) (*Business, error)
	Reject(ctx context.Context, id, reason string) (*Business, error)
	VerifyPayment(ctx context.Context, id string) (*Business, error)
	SetVisibility(ctx context.Context, id string, visible bool) (*Business, error)
	ActivatePremium(ctx context.Context, id, source string, expiry *time.Time) (*Business, error)
	DeactivatePremium(ctx context.Context, id string) (*Business, error)
	RequestPremium(ctx context.Context, id string) (*Business, error)
	ApprovePremiumRequest(ctx context.Context, id string, expiry *time.Time) (*Business, error)
	RejectPremiumRequest(ctx context.Context, id string) (*Business, error)

	GrantSubscriptionPremium(ctx context.Context, ownerID string, expiry time.Time) (int, error)
	ExpirePremium(ctx context.Context, source string, now time.Time) (int, error)
}

type repository struct {
	db core.DBTX

	// sdb is the raw handle for Delete, which must detach lead
	// references and remove the row in one transaction.
	sdb *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, sdb: db}
}

const businessColumns = `
	id, business_name, category_id, phone, address, city,
	service_area, description, business_type, listing_type,
	approval_status, is_premium, premium_source, premium_expiry,
	premium_request_status, is_visible,
	payment_amount, payment_mode, payment_status, payment_note,
	verification_status, verified_at, rejection_reason,
	owner_id, created_by, created_at, updated_at`

func (r *repository) Create(ctx context.Context, b *Business) error {
	query := `
		INSERT INTO businesses (
			id, business_name, category_id, phone, address, city,
			service_area, description, business_type, listing_type,
			approval_status, is_premium, premium_source,
			premium_request_status, is_visible,
			payment_amount, payment_mode, payment_status, payment_note,
			verification_status, owner_id, created_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, b, query,
		b.ID,
		b.BusinessName,
		b.CategoryID,
		b.Phone,
		b.Address,
		b.City,
		b.ServiceArea,
		b.Description,
		b.BusinessType,
		b.ListingType,
		b.ApprovalStatus,
		b.IsPremium,
		b.PremiumSource,
		b.PremiumRequestStatus,
		b.IsVisible,
		b.PaymentAmount,
		b.PaymentMode,
		b.PaymentStatus,
		b.PaymentNote,
		b.VerificationStatus,
		b.OwnerID,
		b.CreatedBy,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create business: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create business: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Business, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM businesses
		WHERE id = $1`, businessColumns)

	var b Business
	err := r.db.GetContext(ctx, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get business: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get business: %w", err)
	}

	return &b, nil
}

func (r *repository) UpdateDetails(ctx context.Context, b *Business) error {
	query := `
		UPDATE businesses
		SET business_name = $2, category_id = $3, phone = $4,
		    address = $5, city = $6, service_area = $7,
		    description = $8, owner_id = $9, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &b.UpdatedAt, query,
		b.ID,
		b.BusinessName,
		b.CategoryID,
		b.Phone,
		b.Address,
		b.City,
		b.ServiceArea,
		b.Description,
		b.OwnerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update business: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}

	return nil
}

// Delete removes the row and detaches it from any leads that pointed
// at it. Leads survive a deleted listing; bookings keep their
// business_id as history and are never touched.
func (r *repository) Delete(ctx context.Context, id string) error {
	err := core.InTx(ctx, r.sdb, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE leads SET business_id = NULL WHERE business_id = $1`,
			id); err != nil {
			return fmt.Errorf("detach leads: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE leads SET assigned_business_id = NULL
			 WHERE assigned_business_id = $1`,
			id); err != nil {
			return fmt.Errorf("detach assigned leads: %w", err)
		}

		result, err := tx.ExecContext(ctx,
			`DELETE FROM businesses WHERE id = $1`, id)
		if err != nil {
			return err
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}

		if rows == 0 {
			return core.ErrNotFound
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListBusinessParams,
) ([]Business, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(business_name ILIKE $%d OR city ILIKE $%d OR phone ILIKE $%d)",
			argIdx, argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	if params.ApprovalStatus != "" {
		conditions = append(conditions, fmt.Sprintf("approval_status = $%d", argIdx))
		args = append(args, params.ApprovalStatus)
		argIdx++
	}

	if params.ListingType != "" {
		conditions = append(conditions, fmt.Sprintf("listing_type = $%d", argIdx))
		args = append(args, params.ListingType)
		argIdx++
	}

	if params.CategoryID != "" {
		conditions = append(conditions, fmt.Sprintf("category_id = $%d", argIdx))
		args = append(args, params.CategoryID)
		argIdx++
	}

	if params.City != "" {
		conditions = append(conditions, fmt.Sprintf("city = $%d", argIdx))
		args = append(args, params.City)
		argIdx++
	}

	if params.CreatedBy != "" {
		conditions = append(conditions, fmt.Sprintf("created_by = $%d", argIdx))
		args = append(args, params.CreatedBy)
		argIdx++
	}

	if params.BusinessType != "" {
		conditions = append(conditions, fmt.Sprintf("business_type = $%d", argIdx))
		args = append(args, params.BusinessType)
		argIdx++
	}

	if params.PremiumRequestStatus != "" {
		conditions = append(conditions, fmt.Sprintf("premium_request_status = $%d", argIdx))
		args = append(args, params.PremiumRequestStatus)
		argIdx++
	}

	if params.IsPremium != nil {
		conditions = append(conditions, fmt.Sprintf("is_premium = $%d", argIdx))
		args = append(args, *params.IsPremium)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM businesses WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count businesses: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM businesses
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		businessColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.Limit, params.Offset())

	var businesses []Business
	if err := r.db.SelectContext(ctx, &businesses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list businesses: %w", err)
	}

	return businesses, total, nil
}

// Approve flips a pending listing to approved. Approval also marks the
// salesman verification approved and makes the listing visible.
func (r *repository) Approve(ctx context.Context, id string) (*Business, error) {
	query := fmt.Sprintf(`
		UPDATE businesses
		SET approval_status = 'approved',
		    is_visible = TRUE,
		    verification_status = 'approved',
		    verified_at = NOW(),
		    rejection_reason = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND approval_status = 'pending'
		RETURNING %s`, businessColumns)

	return r.transition(ctx, "approve business", query, id)
}

func (r *repository) Reject(ctx context.Context, id, reason string) (*Business, error) {
	query := fmt.Sprintf(`
		UPDATE businesses
		SET approval_status = 'rejected',
		    is_visible = FALSE,
		    verification_status = 'rejected',
		    rejection_reason = $2,
		    updated_at = NOW()
		WHERE id = $1 AND approval_status = 'pending'
		RETURNING %s`, businessColumns)

	return r.transition(ctx, "reject business", query, id, reason)
}

func (r *repository) VerifyPayment(ctx context.Context, id string) (*Business, error) {
	query := fmt.Sprintf(`
		UPDATE businesses
		SET payment_status = 'verified',
		    updated_at = NOW()
		WHERE id = $1 AND payment_status = 'pending'
		RETURNING %s`, businessColumns)

	return r.transition(ctx, "verify payment", query, id)
}

// SetVisibility only takes effect on approved listings. Pending and
// rejected listings stay invisible regardless of the requested value.
func (r *repository) SetVisibility(
	ctx context.Context,
	id string,
	visible bool,
) (*Business, error) {
	query := fmt.Sprintf(`
		UPDATE businesses
		SET is_visible = $2,
		    updated_at = NOW()
		WHERE id = $1 AND approval_status = 'approved'
		RETURNING %s`, businessColumns)

	return r.transition(ctx, "set visibility", query, id, visible)
}

func (r *repository) ActivatePremium(
	ctx context.Context,
	id, source string,
	expiry *time.Time,
) (*Business, error) {
	query := fmt.Sprintf(`
		UPDATE businesses
		SET is_premium = TRUE,
		    listing_type = 'premium',
		    premium_source = $2,
		    premium_expiry = $3,
		    premium_request_status = 'premium_approved',
		    updated_at = NOW()
		WHERE id = $1 AND is_premium = FALSE
		RETURNING %s`, businessColumns)

	return r.transition(ctx, "activate premium", query, id, source, expiry)
}

// DeactivatePremium clears the grant but not premium_request_status,
// so the request trail survives revocation.
func (r *repository) DeactivatePremium(ctx context.Context, id string) (*Business, error) {
	query := fmt.Sprintf(`
		UPDATE businesses
		SET is_premium = FALSE,
		    listing_type = 'normal',
		    premium_source = 'none',
		    premium_expiry = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND is_premium = TRUE
		RETURNING %s`, businessColumns)

	return r.transition(ctx, "deactivate premium", query, id)
}

func (r *repository) RequestPremium(ctx context.Context, id string) (*Business, error) {
	query := fmt.Sprintf(`
		UPDATE businesses
		SET premium_request_status = 'premium_requested',
		    updated_at = NOW()
		WHERE id = $1
		  AND premium_request_status IN ('none', 'premium_rejected')
		RETURNING %s`, businessColumns)

	return r.transition(ctx, "request premium", query, id)
}

// ApprovePremiumRequest grants a manual premium in the same statement
// that consumes the pending request, so two concurrent approvals cannot
// both succeed.
func (r *repository) ApprovePremiumRequest(
	ctx context.Context,
	id string,
	expiry *time.Time,
) (*Business, error) {
	query := fmt.Sprintf(`
		UPDATE businesses
		SET is_premium = TRUE,
		    listing_type = 'premium',
		    premium_source = 'manual',
		    premium_expiry = $2,
		    premium_request_status = 'premium_approved',
		    updated_at = NOW()
		WHERE id = $1
		  AND premium_request_status = 'premium_requested'
		  AND is_premium = FALSE
		RETURNING %s`, businessColumns)

	return r.transition(ctx, "approve premium request", query, id, expiry)
}

func (r *repository) RejectPremiumRequest(ctx context.Context, id string) (*Business, error) {
	query := fmt.Sprintf(`
		UPDATE businesses
		SET premium_request_status = 'premium_rejected',
		    updated_at = NOW()
		WHERE id = $1 AND premium_request_status = 'premium_requested'
		RETURNING %s`, businessColumns)

	return r.transition(ctx, "reject premium request", query, id)
}

// GrantSubscriptionPremium marks every listing owned by ownerID premium
// with a subscription source. Manual grants are left untouched.
func (r *repository) GrantSubscriptionPremium(
	ctx context.Context,
	ownerID string,
	expiry time.Time,
) (int, error) {
	query := `
		UPDATE businesses
		SET is_premium = TRUE,
		    listing_type = 'premium',
		    premium_source = 'subscription',
		    premium_expiry = $2,
		    updated_at = NOW()
		WHERE owner_id = $1
		  AND (is_premium = FALSE OR premium_source = 'subscription')`

	result, err := r.db.ExecContext(ctx, query, ownerID, expiry)
	if err != nil {
		return 0, fmt.Errorf("grant subscription premium: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("grant subscription premium: %w", err)
	}

	return int(rows), nil
}

// ExpirePremium reverts lapsed grants of the given source. An empty
// source expires any lapsed grant.
func (r *repository) ExpirePremium(
	ctx context.Context,
	source string,
	now time.Time,
) (int, error) {
	var conditions []string
	args := []any{now}

	conditions = append(conditions,
		"is_premium = TRUE",
		"premium_expiry IS NOT NULL",
		"premium_expiry <= $1",
	)

	if source != "" {
		conditions = append(conditions, "premium_source = $2")
		args = append(args, source)
	}

	query := fmt.Sprintf(`
		UPDATE businesses
		SET is_premium = FALSE,
		    listing_type = 'normal',
		    premium_source = 'none',
		    premium_expiry = NULL,
		    updated_at = NOW()
		WHERE %s`, strings.Join(conditions, " AND "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("expire premium: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("expire premium: %w", err)
	}

	return int(rows), nil
}

func (r *repository) transition(
	ctx context.Context,
	op, query string,
	args ...any,
) (*Business, error) {
	var b Business
	err := r.db.GetContext(ctx, &b, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", op, core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &b, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
