package booking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public booking router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Reserve)
	return r
}

// AdminRoutes returns the admin booking router
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/", h.List)
	r.Get("/stats", h.Stats)
	r.Patch("/{id}/status", h.SetStatus)
	r.Patch("/{id}/payment", h.SetPaymentStatus)

	return r
}
