package gallery

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/afriframe/studio-api/internal/pkg/imaging"
	"github.com/afriframe/studio-api/internal/pkg/response"
	"github.com/afriframe/studio-api/internal/pkg/validator"
)

// Handler handles gallery HTTP requests
type Handler struct {
	service *Service
}

// NewHandler creates gallery handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListItems handles GET /gallery/items, the public portfolio
func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListPublishedItems(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list portfolio items")
		response.InternalError(w)
		return
	}

	out := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ItemResponseFromEntity(item))
	}
	response.OK(w, out)
}

// ListVideos handles GET /gallery/videos, the public reels
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.ListPublishedVideos(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list showcase videos")
		response.InternalError(w)
		return
	}

	out := make([]*VideoResponse, 0, len(videos))
	for _, video := range videos {
		out = append(out, VideoResponseFromEntity(video))
	}
	response.OK(w, out)
}

// Explore handles GET /explore: everything the explore page renders in one call
func (h *Handler) Explore(w http.ResponseWriter, r *http.Request) {
	items, videos, err := h.service.Explore(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load explore page data")
		response.InternalError(w)
		return
	}

	out := &ExploreResponse{
		Items:  make([]*ItemResponse, 0, len(items)),
		Videos: make([]*VideoResponse, 0, len(videos)),
	}
	for _, item := range items {
		out.Items = append(out.Items, ItemResponseFromEntity(item))
	}
	for _, video := range videos {
		out.Videos = append(out.Videos, VideoResponseFromEntity(video))
	}
	response.OK(w, out)
}

// ListAllItems handles GET /admin/gallery/items
func (h *Handler) ListAllItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListAllItems(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list portfolio items")
		response.InternalError(w)
		return
	}

	out := make([]*ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, ItemResponseFromEntity(item))
	}
	response.OK(w, out)
}

// UploadItem handles POST /admin/gallery/items
// Multipart form: file + title + category + position + published
func (h *Handler) UploadItem(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxFileSize+1024*1024)

	if err := r.ParseMultipartForm(imaging.MaxFileSize); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		response.BadRequest(w, "Title is required")
		return
	}
	category := r.FormValue("category")
	if category == "" {
		response.BadRequest(w, "Category is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	in := UploadItemInput{
		Filename:  header.Filename,
		Size:      header.Size,
		Title:     title,
		Category:  category,
		Position:  formInt(r, "position"),
		Published: formBool(r, "published"),
	}

	item, err := h.service.UploadItem(r.Context(), in, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidImageType):
			response.BadRequest(w, "File type not allowed")
		case errors.Is(err, ErrFileTooLarge):
			response.BadRequest(w, "File exceeds maximum size")
		case errors.Is(err, ErrEmptyFile):
			response.BadRequest(w, "File is empty")
		default:
			log.Error().Err(err).Str("filename", header.Filename).Msg("failed to upload portfolio item")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, ItemResponseFromEntity(item))
}

// UpdateItem handles PATCH /admin/gallery/items/{id}
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid item id")
		return
	}

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := h.service.UpdateItem(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, "Portfolio item not found")
			return
		}
		log.Error().Err(err).Str("item_id", id.String()).Msg("failed to update portfolio item")
		response.InternalError(w)
		return
	}

	response.OK(w, ItemResponseFromEntity(item))
}

// DeleteItem handles DELETE /admin/gallery/items/{id}
func (h *Handler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid item id")
		return
	}

	if err := h.service.DeleteItem(r.Context(), id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, "Portfolio item not found")
			return
		}
		log.Error().Err(err).Str("item_id", id.String()).Msg("failed to delete portfolio item")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

// ListAllVideos handles GET /admin/gallery/videos
func (h *Handler) ListAllVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.service.ListAllVideos(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list showcase videos")
		response.InternalError(w)
		return
	}

	out := make([]*VideoResponse, 0, len(videos))
	for _, video := range videos {
		out = append(out, VideoResponseFromEntity(video))
	}
	response.OK(w, out)
}

// UploadVideo handles POST /admin/gallery/videos
// Multipart form: file + title + description + position + published
func (h *Handler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxVideoSize+1024*1024)

	// Form values only; the file itself streams from the multipart reader
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		response.BadRequest(w, "Title is required")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "No file provided")
		return
	}
	defer file.Close()

	in := UploadVideoInput{
		Filename:    header.Filename,
		Size:        header.Size,
		Title:       title,
		Description: r.FormValue("description"),
		Position:    formInt(r, "position"),
		Published:   formBool(r, "published"),
	}

	video, err := h.service.UploadVideo(r.Context(), in, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidVideoType):
			response.BadRequest(w, "File type not allowed")
		case errors.Is(err, ErrFileTooLarge):
			response.BadRequest(w, "File exceeds maximum size")
		case errors.Is(err, ErrEmptyFile):
			response.BadRequest(w, "File is empty")
		default:
			log.Error().Err(err).Str("filename", header.Filename).Msg("failed to upload showcase video")
			response.InternalError(w)
		}
		return
	}

	response.Created(w, VideoResponseFromEntity(video))
}

// UpdateVideo handles PATCH /admin/gallery/videos/{id}
func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid video id")
		return
	}

	var req UpdateVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}
	if errs := validator.Validate(&req); errs != nil {
		response.ValidationError(w, errs)
		return
	}

	video, err := h.service.UpdateVideo(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			response.NotFound(w, "Showcase video not found")
			return
		}
		log.Error().Err(err).Str("video_id", id.String()).Msg("failed to update showcase video")
		response.InternalError(w)
		return
	}

	response.OK(w, VideoResponseFromEntity(video))
}

// DeleteVideo handles DELETE /admin/gallery/videos/{id}
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid video id")
		return
	}

	if err := h.service.DeleteVideo(r.Context(), id); err != nil {
		if errors.Is(err, ErrVideoNotFound) {
			response.NotFound(w, "Showcase video not found")
			return
		}
		log.Error().Err(err).Str("video_id", id.String()).Msg("failed to delete showcase video")
		response.InternalError(w)
		return
	}

	response.NoContent(w)
}

func formInt(r *http.Request, field string) int {
	n, _ := strconv.Atoi(r.FormValue(field))
	return n
}

func formBool(r *http.Request, field string) bool {
	b, _ := strconv.ParseBool(r.FormValue(field))
	return b
}
