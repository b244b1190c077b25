// AngelaMos | 2026
// handler.go

package booking

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
	authenticator, staffOnly func(http.Handler) http.Handler,
) {
	r.Route("/bookings", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.List)
		r.Get("/{bookingID}", h.Get)

		r.Group(func(r chi.Router) {
			r.Use(staffOnly)

			r.Post("/", h.Create)
			r.Patch("/{bookingID}/status", h.UpdateStatus)
			r.Patch("/{bookingID}/payment-status", h.UpdatePaymentStatus)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())

	var req CreateBookingRequest
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

	core.Created(w, ToBookingResponse(b))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "bookingID")

	b, err := h.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToBookingResponse(b))
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "bookingID")

	var req UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.UpdateStatus(r.Context(), actor, id, req)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToBookingResponse(b))
}

func (h *Handler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	actor := middleware.GetActor(r.Context())
	id := chi.URLParam(r, "bookingID")

	var req UpdateBookingPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	b, err := h.service.UpdatePaymentStatus(r.Context(), actor, id, req)
	if err != nil {
		respondError(w, err)
		return
	}

	core.OK(w, ToBookingResponse(b))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	params := ListBookingParams{
		Page:          parseIntQuery(r, "page", 1),
		Limit:         parseIntQuery(r, "limit", 20),
		BusinessID:    r.URL.Query().Get("businessId"),
		BookingStatus: r.URL.Query().Get("bookingStatus"),
		PaymentStatus: r.URL.Query().Get("paymentStatus"),
	}

	bookings, total, err := h.service.List(r.Context(), params)
	if err != nil {
		respondError(w, err)
		return
	}

	params.Normalize()
	core.Paginated(
		w,
		ToBookingResponseList(bookings),
		params.Page,
		params.Limit,
		total,
	)
}

func respondError(w http.ResponseWriter, err error) {
	switch {
	case core.IsAppError(err):
		core.JSONError(w, err)
	case errors.Is(err, core.ErrNotFound):
		core.NotFound(w, "booking")
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
