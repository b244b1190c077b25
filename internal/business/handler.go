// AngelaMos | 2026
// handler.go

package business

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/nearmeb2b/backoffice/internal/core"
	"github.com/nearmeb2b/backoffice/internal/middleware"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, staffOnly, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/businesses", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/{businessID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(staffOnly)

			r.Post("/", h.Create)
			r.Put("/{businessID}", h.Update)
			r.Patch("/{businessID}/request-premium", h.RequestPremium)
		})

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Delete("/{businessID}", h.Delete)
			r.Patch("/{businessID}/approve", h.Approve)
			r.Patch("/{businessID}/reject", h.Reject)
			r.Patch("/{businessID}/verify-payment", h.VerifyPayment)
			r.Patch("/{businessID}/toggle-visibility", h.ToggleVisibility)
			r.Patch("/{businessID}/activate-premium", h.ActivatePremium)
			r.Patch("/{businessID}/deactivate-premium", h.DeactivatePremium)
			r.Patch("/{businessID}/premium-request/approve", h.ApprovePremiumRequest)
			r.Patch("/{businessID}/premium-request/reject", h.RejectPremiumRequest)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req CreateBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		respondError(w, err)
		return
	}

	core.Created(w, ToBusinessResponse(b))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "businessID")

	b, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToBusinessResponse(b))
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "businessID")

	var req UpdateBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.Update(r.Context(), actor, id, req)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToBusinessResponse(b))
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "businessID")

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		respondError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	params := ListBusinessParams{
		Page:                 parseIntQuery(r, "page", 1),
		Limit:                parseIntQuery(r, "limit", 20),
		Search:               r.URL.Query().Get("search"),
		ApprovalStatus:       r.URL.Query().Get("approvalStatus"),
		ListingType:          r.URL.Query().Get("listingType"),
		CategoryID:           r.URL.Query().Get("categoryId"),
		City:                 r.URL.Query().Get("city"),
		CreatedBy:            r.URL.Query().Get("createdBy"),
		BusinessType:         r.URL.Query().Get("businessType"),
		PremiumRequestStatus: r.URL.Query().Get("premiumRequestStatus"),
		IsPremium:            parseBoolQuery(r, "isPremium"),
	}

	businesses, total, err := h.service.List(r.Context(), actor, params)
	if err != nil {
		respondError(w, err)
		return
	}

	params.Normalize()
	core.Paginated(
		w,
		ToBusinessResponseList(businesses),
		params.Page,
		params.Limit,
		total,
	)
}

func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.Approve)
}

func (h *Handler) Reject(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "businessID")

	var req RejectBusinessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.Reject(r.Context(), actor, id, req)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToBusinessResponse(b))
}

func (h *Handler) VerifyPayment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.VerifyPayment)
}

func (h *Handler) ToggleVisibility(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ToggleVisibility)
}

func (h *Handler) ActivatePremium(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ActivatePremium)
}

func (h *Handler) DeactivatePremium(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.DeactivatePremium)
}

func (h *Handler) RequestPremium(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.RequestPremium)
}

func (h *Handler) ApprovePremiumRequest(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.ApprovePremiumRequest)
}

func (h *Handler) RejectPremiumRequest(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.service.RejectPremiumRequest)
}

func (h *Handler) transition(
	w http.ResponseWriter,
	r *http.Request,
	op func(ctx context.Context, actor core.Actor, id string) (*Business, error),
) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "businessID")

	b, err := op(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToBusinessResponse(b))
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "business")
	case errors.Is(err, core.ErrDuplicateKey):
		core.JSONError(w, core.DuplicateError("business"))
	default:
		core.InternalServerError(w, err)
	}
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}

func parseBoolQuery(r *http.Request, key string) *bool {
	val := r.URL.Query().Get(key)
	if val == "" {
		return nil
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return nil
	}

	return &parsed
}
