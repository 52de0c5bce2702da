package gallery

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the public gallery router
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/items", h.ListItems)
	r.Get("/videos", h.ListVideos)
	return r
}

// AdminRoutes returns the admin gallery router
func (h *Handler) AdminRoutes(authMiddleware func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(authMiddleware)

	r.Get("/items", h.ListAllItems)
	r.Post("/items", h.UploadItem)
	r.Patch("/items/{id}", h.UpdateItem)
	r.Delete("/items/{id}", h.DeleteItem)

	r.Get("/videos", h.ListAllVideos)
	r.Post("/videos", h.UploadVideo)
	r.Patch("/videos/{id}", h.UpdateVideo)
	r.Delete("/videos/{id}", h.DeleteVideo)

	return r
}
