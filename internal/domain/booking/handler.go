package booking

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/afriframe/studio-api/internal/pkg/response"
	"github.com/afriframe/studio-api/internal/pkg/validator"
)

// Handler handles booking HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates booking handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Reserve handles POST /bookings, the public reserve-slot procedure.
// Validation errors, business-rule rejections and store failures each map
// to a distinct response so the form can tell them apart.
func (h *Handler) Reserve(w http.ResponseWriter, r *http.Request) {
	var req ReserveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	b, err := h.service.Reserve(r.Context(), &req)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.As(err, &vErr):
			response.ValidationError(w, vErr.Fields)
		case errors.Is(err, ErrServiceUnavailable),
			errors.Is(err, ErrDateUnavailable),
			errors.Is(err, ErrSlotTaken):
			response.Conflict(w, err.Error())
		default:
			log.Error().Err(err).Str("date", req.Date).Str("slot", req.SlotTime).Msg("reserve failed")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, NewResponse(b, ""))
}

// List handles GET /admin/bookings?status=
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")
	if statusFilter != "" {
		if err := validator.ValidateVar(statusFilter, "booking_status"); err != nil {
			response.BadRequest(w, "Invalid status filter")
			return
		}
	}

	bookings, err := h.service.List(r.Context(), statusFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list bookings")
		response.InternalError(w)
		return
	}

	response.OK(w, bookings)
}

// SetStatus handles PATCH /admin/bookings/{id}/status
func (h *Handler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking id")
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.SetStatus(r.Context(), id, Status(req.Status)); err != nil {
		switch err {
		case ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		case ErrInvalidTransition:
			response.Conflict(w, "This status transition is not allowed")
		default:
			log.Error().Err(err).Str("booking_id", id.String()).Msg("failed to update booking status")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// SetPaymentStatus handles PATCH /admin/bookings/{id}/payment
func (h *Handler) SetPaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking id")
		return
	}

	var req SetPaymentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	if err := h.service.SetPaymentStatus(r.Context(), id, PaymentStatus(req.PaymentStatus)); err != nil {
		switch err {
		case ErrBookingNotFound:
			response.NotFound(w, "Booking not found")
		default:
			log.Error().Err(err).Str("booking_id", id.String()).Msg("failed to update payment status")
			response.InternalError(w)
		}
		return
	}

	response.NoContent(w)
}

// Stats handles GET /admin/bookings/stats
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load booking stats")
		response.InternalError(w)
		return
	}

	response.OK(w, stats)
}
