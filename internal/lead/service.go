// AngelaMos | 2026
// service.go

package lead

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nearmeb2b/backoffice/internal/business"
	"github.com/nearmeb2b/backoffice/internal/core"
)

// BusinessDirectory is the slice of the listing store assignment needs.
type BusinessDirectory interface {
	GetByID(ctx context.Context, id string) (*business.Business, error)
}

type Service struct {
	repo       Repository
	businesses BusinessDirectory
}

func NewService(repo Repository, businesses BusinessDirectory) *Service {
	return &Service{repo: repo, businesses: businesses}
}

func (s *Service) Create(
	ctx context.Context,
	actor core.Actor,
	req CreateLeadRequest,
) (*Lead, error) {
	if !actor.IsAdmin() && !actor.IsSalesman() {
		return nil, core.ForbiddenError("only staff can create leads")
	}

	l := &Lead{
		ID:           uuid.New().String(),
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		Message:      req.Message,
		Status:       StatusNew,
		LeadType:     req.LeadType,
		BusinessID:   req.BusinessID,
	}

	if actor.IsSalesman() {
		l.AssignedTo = &actor.UserID
	}

	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	return l, nil
}

func (s *Service) Get(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Lead, error) {
	l, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(actor, l); err != nil {
		return nil, err
	}

	return l, nil
}

// UpdateStatus accepts any known status from any other; the lead
// funnel has no one-way gates.
func (s *Service) UpdateStatus(
	ctx context.Context,
	actor core.Actor,
	id string,
	req UpdateLeadStatusRequest,
) (*Lead, error) {
	if !KnownStatus(req.Status) {
		return nil, core.ValidationError(
			fmt.Sprintf("unknown lead status %q", req.Status))
	}

	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(actor, cur); err != nil {
		return nil, err
	}

	return s.repo.UpdateStatus(ctx, id, req.Status)
}

// Assign routes a lead to a listing. Only approved listings receive
// leads; pending and rejected targets are turned away.
func (s *Service) Assign(
	ctx context.Context,
	actor core.Actor,
	id string,
	req AssignLeadRequest,
) (*Lead, error) {
	if !actor.IsAdmin() && !actor.IsSalesman() {
		return nil, core.ForbiddenError("only staff can assign leads")
	}

	if err := s.checkTarget(ctx, req.BusinessID); err != nil {
		return nil, err
	}

	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.canAccess(actor, cur); err != nil {
		return nil, err
	}

	return s.repo.AssignBusiness(ctx, id, req.BusinessID)
}

// BulkAssign processes each id independently and never fails the batch:
// one bad lead id leaves the rest assigned.
func (s *Service) BulkAssign(
	ctx context.Context,
	actor core.Actor,
	req BulkAssignRequest,
) ([]BulkAssignResult, error) {
	if !actor.IsAdmin() && !actor.IsSalesman() {
		return nil, core.ForbiddenError("only staff can assign leads")
	}

	// Target validation happens once; a bad target fails the whole
	// request before any lead is touched.
	if err := s.checkTarget(ctx, req.BusinessID); err != nil {
		return nil, err
	}

	results := make([]BulkAssignResult, 0, len(req.LeadIDs))
	for _, leadID := range req.LeadIDs {
		result := BulkAssignResult{LeadID: leadID}

		cur, err := s.repo.GetByID(ctx, leadID)
		if err == nil {
			err = s.canAccess(actor, cur)
		}
		if err == nil {
			_, err = s.repo.AssignBusiness(ctx, leadID, req.BusinessID)
		}

		if err != nil {
			result.Error = resultError(err)
		} else {
			result.Success = true
		}

		results = append(results, result)
	}

	return results, nil
}

func (s *Service) Delete(
	ctx context.Context,
	actor core.Actor,
	id string,
) error {
	if !actor.IsAdmin() {
		return core.ForbiddenError("only admins can delete leads")
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) List(
	ctx context.Context,
	actor core.Actor,
	params ListLeadParams,
) ([]Lead, int, error) {
	if actor.IsSalesman() {
		params.AssignedTo = actor.UserID
	}

	return s.repo.List(ctx, params)
}

func (s *Service) checkTarget(ctx context.Context, businessID string) error {
	target, err := s.businesses.GetByID(ctx, businessID)
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError("business")
	}
	if err != nil {
		return err
	}

	if !target.IsApproved() {
		return core.InvalidTransitionError(fmt.Sprintf(
			"cannot assign leads to a %s listing",
			target.ApprovalStatus,
		))
	}

	return nil
}

func (s *Service) canAccess(actor core.Actor, l *Lead) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsSalesman() {
		if l.AssignedTo == nil || *l.AssignedTo != actor.UserID {
			return core.ForbiddenError("lead is assigned to another salesman")
		}
		return nil
	}
	return core.ForbiddenError("cannot access leads")
}

func resultError(err error) string {
	var appErr *core.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	if errors.Is(err, core.ErrNotFound) {
		return "lead not found"
	}
	return "assignment failed"
}
