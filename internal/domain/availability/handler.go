package availability

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/afriframe/studio-api/internal/pkg/response"
	"github.com/afriframe/studio-api/internal/pkg/validator"
)

// Handler handles availability HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates availability handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListForService handles GET /availability?service_id=...
// No service selected means no dates to show; that check lives client-side,
// so an absent parameter is a plain bad request here.
func (h *Handler) ListForService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(r.URL.Query().Get("service_id"))
	if err != nil {
		response.BadRequest(w, "Missing or invalid service_id")
		return
	}

	dates, err := h.repo.ListAvailableByService(r.Context(), serviceID)
	if err != nil {
		log.Error().Err(err).Str("service_id", serviceID.String()).Msg("failed to list booking dates")
		response.InternalError(w)
		return
	}

	out := make([]DateResponse, 0, len(dates))
	for _, d := range dates {
		out = append(out, NewDateResponse(d, false))
	}

	response.OK(w, out)
}

// ListAllForService handles GET /admin/availability?service_id=...
func (h *Handler) ListAllForService(w http.ResponseWriter, r *http.Request) {
	serviceID, err := uuid.Parse(r.URL.Query().Get("service_id"))
	if err != nil {
		response.BadRequest(w, "Missing or invalid service_id")
		return
	}

	dates, err := h.repo.ListByService(r.Context(), serviceID)
	if err != nil {
		log.Error().Err(err).Str("service_id", serviceID.String()).Msg("failed to list booking dates")
		response.InternalError(w)
		return
	}

	out := make([]DateResponse, 0, len(dates))
	for _, d := range dates {
		out = append(out, NewDateResponse(d, true))
	}

	response.OK(w, out)
}

// Create handles POST /admin/availability
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		response.BadRequest(w, "Invalid service_id")
		return
	}

	now := time.Now()
	d := &BookingDate{
		ID:        uuid.New(),
		ServiceID: serviceID,
		Date:      req.Date,
		Available: req.Available,
		Slots:     SlotList(req.Slots),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := h.repo.Create(r.Context(), d); err != nil {
		if err == ErrDateAlreadyExists {
			response.Conflict(w, "A booking date already exists for this service and date")
			return
		}
		log.Error().Err(err).Str("date", req.Date).Msg("failed to create booking date")
		response.InternalError(w)
		return
	}

	response.Created(w, NewDateResponse(d, true))
}

// Update handles PUT /admin/availability/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking date id")
		return
	}

	var req UpdateDateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	d, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("date_id", id.String()).Msg("failed to load booking date")
		response.InternalError(w)
		return
	}
	if d == nil {
		response.NotFound(w, "Booking date not found")
		return
	}

	d.Available = req.Available
	d.Slots = SlotList(req.Slots)

	if err := h.repo.Update(r.Context(), d); err != nil {
		log.Error().Err(err).Str("date_id", id.String()).Msg("failed to update booking date")
		response.InternalError(w)
		return
	}

	response.OK(w, NewDateResponse(d, true))
}

// Delete handles DELETE /admin/availability/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid booking date id")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		log.Error().Err(err).Str("date_id", id.String()).Msg("failed to delete booking date")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
