// AngelaMos | 2026
// service.go

package business

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nearmeb2b/backoffice/internal/core"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(
	ctx context.Context,
	actor core.Actor,
	req CreateBusinessRequest,
) (*Business, error) {
	if !actor.IsAdmin() && !actor.IsSalesman() {
		return nil, core.ForbiddenError("only staff can create listings")
	}

	b := &Business{
		ID:                   uuid.New().String(),
		BusinessName:         req.BusinessName,
		CategoryID:           req.CategoryID,
		Phone:                req.Phone,
		Address:              req.Address,
		City:                 req.City,
		ServiceArea:          req.ServiceArea,
		Description:          req.Description,
		BusinessType:         req.BusinessType,
		ListingType:          ListingNormal,
		ApprovalStatus:       ApprovalPending,
		IsPremium:            false,
		PremiumSource:        PremiumSourceNone,
		PremiumRequestStatus: RequestNone,
		IsVisible:            false,
		PaymentAmount:        req.PaymentDetails.Amount,
		PaymentMode:          req.PaymentDetails.PaymentMode,
		PaymentStatus:        PaymentPending,
		PaymentNote:          req.PaymentDetails.PaymentNote,
		VerificationStatus:   VerificationPending,
		OwnerID:              req.OwnerID,
		CreatedBy:            actor.UserID,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Get(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Business, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.canView(actor, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Update(
	ctx context.Context,
	actor core.Actor,
	id string,
	req UpdateBusinessRequest,
) (*Business, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() {
		if !actor.IsSalesman() || b.CreatedBy != actor.UserID {
			return nil, core.ForbiddenError("cannot edit this listing")
		}
	}

	if req.BusinessName != nil {
		b.BusinessName = *req.BusinessName
	}
	if req.CategoryID != nil {
		b.CategoryID = *req.CategoryID
	}
	if req.Phone != nil {
		b.Phone = *req.Phone
	}
	if req.Address != nil {
		b.Address = *req.Address
	}
	if req.City != nil {
		b.City = *req.City
	}
	if req.ServiceArea != nil {
		b.ServiceArea = req.ServiceArea
	}
	if req.Description != nil {
		b.Description = req.Description
	}
	if req.OwnerID != nil {
		b.OwnerID = req.OwnerID
	}

	if err := s.repo.UpdateDetails(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

func (s *Service) Delete(
	ctx context.Context,
	actor core.Actor,
	id string,
) error {
	if !actor.IsAdmin() {
		return core.ForbiddenError("only admins can delete listings")
	}

	return s.repo.Delete(ctx, id)
}

// List scopes salesmen to their own listings and owners to listings
// they own. Admins see everything.
func (s *Service) List(
	ctx context.Context,
	actor core.Actor,
	params ListBusinessParams,
) ([]Business, int, error) {
	if actor.IsSalesman() {
		params.CreatedBy = actor.UserID
	}

	return s.repo.List(ctx, params)
}

func (s *Service) Approve(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Business, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can approve listings")
	}

	message := func(cur *Business) string {
		return fmt.Sprintf(
			"cannot approve listing with approval status %q",
			cur.ApprovalStatus,
		)
	}

	if err := s.checkTransition(ctx, id, DimApproval, ApprovalApproved, message); err != nil {
		return nil, err
	}

	b, err := s.repo.Approve(ctx, id)
	if err != nil {
		return nil, s.classify(ctx, id, err, message)
	}

	return b, nil
}

func (s *Service) Reject(
	ctx context.Context,
	actor core.Actor,
	id string,
	req RejectBusinessRequest,
) (*Business, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can reject listings")
	}

	// The reason is mandatory regardless of caller; the DTO validator
	// only covers the HTTP path.
	if strings.TrimSpace(req.RejectionReason) == "" {
		return nil, core.ValidationError("rejectionReason must not be empty")
	}

	message := func(cur *Business) string {
		return fmt.Sprintf(
			"cannot reject listing with approval status %q",
			cur.ApprovalStatus,
		)
	}

	if err := s.checkTransition(ctx, id, DimApproval, ApprovalRejected, message); err != nil {
		return nil, err
	}

	b, err := s.repo.Reject(ctx, id, req.RejectionReason)
	if err != nil {
		return nil, s.classify(ctx, id, err, message)
	}

	return b, nil
}

// VerifyPayment moves the payment dimension independently of approval.
// A rejected listing can still have its cash collection verified.
func (s *Service) VerifyPayment(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Business, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can verify payments")
	}

	message := func(cur *Business) string {
		return fmt.Sprintf(
			"payment is already %q",
			cur.PaymentStatus,
		)
	}

	if err := s.checkTransition(ctx, id, DimPayment, PaymentVerified, message); err != nil {
		return nil, err
	}

	b, err := s.repo.VerifyPayment(ctx, id)
	if err != nil {
		return nil, s.classify(ctx, id, err, message)
	}

	return b, nil
}

func (s *Service) ToggleVisibility(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Business, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can change visibility")
	}

	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if cur.ApprovalStatus != ApprovalApproved {
		return nil, core.InvalidTransitionError(fmt.Sprintf(
			"cannot change visibility of a %s listing",
			cur.ApprovalStatus,
		))
	}

	b, err := s.repo.SetVisibility(ctx, id, !cur.IsVisible)
	if err != nil {
		return nil, s.classify(ctx, id, err, func(c *Business) string {
			return fmt.Sprintf(
				"cannot change visibility of a %s listing",
				c.ApprovalStatus,
			)
		})
	}

	return b, nil
}

func (s *Service) ActivatePremium(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Business, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can grant premium")
	}

	expiry := time.Now().Add(ManualPremiumDuration)
	b, err := s.repo.ActivatePremium(ctx, id, PremiumSourceManual, &expiry)
	if err != nil {
		return nil, s.classify(ctx, id, err, func(cur *Business) string {
			return "listing is already premium"
		})
	}

	return b, nil
}

func (s *Service) DeactivatePremium(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Business, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can revoke premium")
	}

	b, err := s.repo.DeactivatePremium(ctx, id)
	if err != nil {
		return nil, s.classify(ctx, id, err, func(cur *Business) string {
			return "listing is not premium"
		})
	}

	return b, nil
}

// RequestPremium is how a salesman asks for a manual grant on a listing
// they created. Admins can raise a request on any listing.
func (s *Service) RequestPremium(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Business, error) {
	if !actor.IsAdmin() && !actor.IsSalesman() {
		return nil, core.ForbiddenError("only staff can request premium")
	}

	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if actor.IsSalesman() && !actor.IsAdmin() && cur.CreatedBy != actor.UserID {
		return nil, core.ForbiddenError("cannot request premium for another salesman's listing")
	}

	message := func(c *Business) string {
		return fmt.Sprintf(
			"cannot request premium from status %q",
			c.PremiumRequestStatus,
		)
	}

	if !CanTransition(DimPremiumRequest, cur.PremiumRequestStatus, RequestRequested) {
		return nil, core.InvalidTransitionError(message(cur))
	}

	b, err := s.repo.RequestPremium(ctx, id)
	if err != nil {
		return nil, s.classify(ctx, id, err, message)
	}

	return b, nil
}

func (s *Service) ApprovePremiumRequest(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Business, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can approve premium requests")
	}

	message := func(cur *Business) string {
		if cur.IsPremium {
			return "listing is already premium"
		}
		return fmt.Sprintf(
			"no pending premium request, status is %q",
			cur.PremiumRequestStatus,
		)
	}

	if err := s.checkTransition(ctx, id, DimPremiumRequest, RequestApproved, message); err != nil {
		return nil, err
	}

	expiry := time.Now().Add(ManualPremiumDuration)
	b, err := s.repo.ApprovePremiumRequest(ctx, id, &expiry)
	if err != nil {
		return nil, s.classify(ctx, id, err, message)
	}

	return b, nil
}

func (s *Service) RejectPremiumRequest(
	ctx context.Context,
	actor core.Actor,
	id string,
) (*Business, error) {
	if !actor.IsAdmin() {
		return nil, core.ForbiddenError("only admins can reject premium requests")
	}

	message := func(cur *Business) string {
		return fmt.Sprintf(
			"no pending premium request, status is %q",
			cur.PremiumRequestStatus,
		)
	}

	if err := s.checkTransition(ctx, id, DimPremiumRequest, RequestRejected, message); err != nil {
		return nil, err
	}

	b, err := s.repo.RejectPremiumRequest(ctx, id)
	if err != nil {
		return nil, s.classify(ctx, id, err, message)
	}

	return b, nil
}

// GrantSubscriptionPremium marks every listing owned by the user
// premium for the subscription window.
func (s *Service) GrantSubscriptionPremium(
	ctx context.Context,
	ownerID string,
	expiry time.Time,
) (int, error) {
	return s.repo.GrantSubscriptionPremium(ctx, ownerID, expiry)
}

// ExpirePremium reverts lapsed grants. Called by the background sweeps.
func (s *Service) ExpirePremium(
	ctx context.Context,
	source string,
	now time.Time,
) (int, error) {
	return s.repo.ExpirePremium(ctx, source, now)
}

func (s *Service) canView(actor core.Actor, b *Business) error {
	if actor.IsAdmin() {
		return nil
	}
	if actor.IsSalesman() {
		if b.CreatedBy != actor.UserID {
			return core.ForbiddenError("cannot view another salesman's listing")
		}
		return nil
	}
	if b.OwnerID != nil && *b.OwnerID == actor.UserID {
		return nil
	}
	return core.ForbiddenError("cannot view this listing")
}

// checkTransition consults the transition table before the engine
// touches storage, so an illegal intent fails up front with the row's
// current state in the message. The conditional UPDATE still guards
// commit time; a race between this check and the update is classified
// after the fact.
func (s *Service) checkTransition(
	ctx context.Context,
	id string,
	dim Dimension,
	target string,
	message func(cur *Business) string,
) error {
	cur, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !CanTransition(dim, cur.StatusOf(dim), target) {
		return core.InvalidTransitionError(message(cur))
	}

	return nil
}

// classify turns a failed conditional update into the right client
// error. The row is re-read once: still missing means not found, present
// means the precondition lost a race or never held.
func (s *Service) classify(
	ctx context.Context,
	id string,
	transitionErr error,
	message func(cur *Business) string,
) error {
	if !errors.Is(transitionErr, core.ErrNotFound) {
		return transitionErr
	}

	cur, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, core.ErrNotFound) {
		return core.NotFoundError("business")
	}
	if err != nil {
		return err
	}

	return core.InvalidTransitionError(message(cur))
}
