package catalog

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

// Handler handles service catalog HTTP requests
type Handler struct {
	repo Repository
}

// NewHandler creates catalog handler
func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// ListActive handles GET /services, the public offerable list.
// Inactive services never appear here.
func (h *Handler) ListActive(w http.ResponseWriter, r *http.Request) {
	services, err := h.repo.ListActive(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list active services")
		response.InternalError(w)
		return
	}

	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, NewServiceResponse(s))
	}

	response.OK(w, out)
}

// ListAll handles GET /admin/services
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	services, err := h.repo.ListAll(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list services")
		response.InternalError(w)
		return
	}

	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, NewServiceResponse(s))
	}

	response.OK(w, out)
}

// Create handles POST /admin/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	now := time.Now()
	s := &Service{
		ID:              uuid.New(),
		Name:            req.Name,
		Description:     nullString(req.Description),
		StartingPrice:   req.StartingPrice,
		DurationMinutes: req.DurationMinutes,
		Active:          true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := h.repo.Create(r.Context(), s); err != nil {
		log.Error().Err(err).Str("name", req.Name).Msg("failed to create service")
		response.InternalError(w)
		return
	}

	response.Created(w, NewServiceResponse(s))
}

// Update handles PUT /admin/services/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service id")
		return
	}

	var req UpdateServiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	if errors := validator.Validate(&req); errors != nil {
		response.ValidationError(w, errors)
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("service_id", id.String()).Msg("failed to load service")
		response.InternalError(w)
		return
	}
	if s == nil {
		response.NotFound(w, "Service not found")
		return
	}

	s.Name = req.Name
	s.Description = nullString(req.Description)
	s.StartingPrice = req.StartingPrice
	s.DurationMinutes = req.DurationMinutes
	s.Active = req.Active

	if err := h.repo.Update(r.Context(), s); err != nil {
		log.Error().Err(err).Str("service_id", id.String()).Msg("failed to update service")
		response.InternalError(w)
		return
	}

	response.OK(w, NewServiceResponse(s))
}

// Deactivate handles DELETE /admin/services/{id}.
// Services are never hard-deleted; bookings keep referencing them.
func (h *Handler) Deactivate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid service id")
		return
	}

	s, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("service_id", id.String()).Msg("failed to load service")
		response.InternalError(w)
		return
	}
	if s == nil {
		response.NotFound(w, "Service not found")
		return
	}

	s.Active = false
	if err := h.repo.Update(r.Context(), s); err != nil {
		log.Error().Err(err).Str("service_id", id.String()).Msg("failed to deactivate service")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}
