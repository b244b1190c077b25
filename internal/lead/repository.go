// AngelaMos | 2026
// repository.go

package lead

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type Repository interface {
	Create(ctx context.Context, l *Lead) error
	GetByID(ctx context.Context, id string) (*Lead, error)
	UpdateStatus(ctx context.Context, id, status string) (*Lead, error)
	AssignBusiness(ctx context.Context, id, businessID string) (*Lead, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, params ListLeadParams) ([]Lead, int, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

const leadColumns = `
	id, customer_name, phone, message, status, lead_type,
	assigned_to, business_id, assigned_business_id,
	created_at, updated_at`

func (r *repository) Create(ctx context.Context, l *Lead) error {
	query := `
		INSERT INTO leads (
			id, customer_name, phone, message, status, lead_type,
			assigned_to, business_id, assigned_business_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, l, query,
		l.ID,
		l.CustomerName,
		l.Phone,
		l.Message,
		l.Status,
		l.LeadType,
		l.AssignedTo,
		l.BusinessID,
		l.AssignedBusinessID,
	)
	if err != nil {
		return fmt.Errorf("create lead: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Lead, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE id = $1`, leadColumns)

	var l Lead
	err := r.db.GetContext(ctx, &l, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get lead: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get lead: %w", err)
	}

	return &l, nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id, status string,
) (*Lead, error) {
	query := fmt.Sprintf(`
		UPDATE leads
		SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, leadColumns)

	var l Lead
	err := r.db.GetContext(ctx, &l, query, id, status)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update lead status: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("update lead status: %w", err)
	}

	return &l, nil
}

func (r *repository) AssignBusiness(
	ctx context.Context,
	id, businessID string,
) (*Lead, error) {
	query := fmt.Sprintf(`
		UPDATE leads
		SET assigned_business_id = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING %s`, leadColumns)

	var l Lead
	err := r.db.GetContext(ctx, &l, query, id, businessID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("assign lead: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("assign lead: %w", err)
	}

	return &l, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete lead: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListLeadParams,
) ([]Lead, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.AssignedTo != "" {
		conditions = append(conditions, fmt.Sprintf("assigned_to = $%d", argIdx))
		args = append(args, params.AssignedTo)
		argIdx++
	}

	if params.BusinessID != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(business_id = $%d OR assigned_business_id = $%d)", argIdx, argIdx))
		args = append(args, params.BusinessID)
		argIdx++
	}

	if params.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(customer_name ILIKE $%d OR phone ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+escapeLike(params.Search)+"%")
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM leads WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count leads: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM leads
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`,
		leadColumns, whereClause, argIdx, argIdx+1)

	args = append(args, params.Limit, params.Offset())

	var leads []Lead
	if err := r.db.SelectContext(ctx, &leads, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list leads: %w", err)
	}

	return leads, total, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "%", "\\%")
	s = strings.ReplaceAll(s, "_", "\\_")
	return s
}
