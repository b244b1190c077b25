// AngelaMos | 2026
// handler.go

package lead

import (
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
	r.Route("/leads", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/{leadID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(staffOnly)

			r.Post("/", h.Create)
			r.Patch("/{leadID}/status", h.UpdateStatus)
			r.Patch("/{leadID}/assign", h.Assign)
			r.Post("/bulk-assign", h.BulkAssign)
		})

		r.Group(func(r chi.Router) {
			r.Use(adminOnly)

			r.Delete("/{leadID}", h.Delete)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	l, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		respondError(w, err)
		return
	}

	core.Created(w, ToLeadResponse(l))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "leadID")

	l, err := h.service.Get(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToLeadResponse(l))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "leadID")

	var req UpdateLeadStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	l, err := h.service.UpdateStatus(r.Context(), actor, id, req)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToLeadResponse(l))
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "leadID")

	var req AssignLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	l, err := h.service.Assign(r.Context(), actor, id, req)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToLeadResponse(l))
}

func (h *Handler) BulkAssign(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req BulkAssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	results, err := h.service.BulkAssign(r.Context(), actor, req)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, results)
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "leadID")

	if err := h.service.Delete(r.Context(), actor, id); err != nil {
		respondError(w, err)
		return
	}

	core.NoContent(w)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	params := ListLeadParams{
		Page:       parseIntQuery(r, "page", 1),
		Limit:      parseIntQuery(r, "limit", 20),
		Status:     r.URL.Query().Get("status"),
		AssignedTo: r.URL.Query().Get("assignedTo"),
		BusinessID: r.URL.Query().Get("businessId"),
		Search:     r.URL.Query().Get("search"),
	}

	leads, total, err := h.service.List(r.Context(), actor, params)
	if err != nil {
		respondError(w, err)
		return
	}

	params.Normalize()
	core.Paginated(w, ToLeadResponseList(leads), params.Page, params.Limit, total)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "lead")
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
