package gallery

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/afriframe/studio-api/internal/pkg/imaging"
	"github.com/afriframe/studio-api/internal/pkg/storage"
)

// MaxVideoSize in bytes (200MB; cinematic reels)
const MaxVideoSize int64 = 200 * 1024 * 1024

// Service handles gallery business logic
type Service struct {
	repo      Repository
	store     storage.Storage
	processor *imaging.Processor
}

// NewService creates gallery service
func NewService(repo Repository, store storage.Storage, processor *imaging.Processor) *Service {
	return &Service{
		repo:      repo,
		store:     store,
		processor: processor,
	}
}

// UploadItemInput carries multipart form fields for a new portfolio item
type UploadItemInput struct {
	Filename  string
	Size      int64
	Title     string
	Category  string
	Position  int
	Published bool
}

// UploadItem processes an image, stores original plus thumbnail and records the item
func (s *Service) UploadItem(ctx context.Context, in UploadItemInput, file io.Reader) (*PortfolioItem, error) {
	if !imaging.ValidateType(in.Filename) {
		return nil, ErrInvalidImageType
	}
	if in.Size <= 0 {
		return nil, ErrEmptyFile
	}
	if !imaging.ValidateSize(in.Size, imaging.MaxFileSize) {
		return nil, ErrFileTooLarge
	}

	processed, err := s.processor.Process(file)
	if err != nil {
		return nil, fmt.Errorf("process image: %w", err)
	}

	id := uuid.New()
	originalKey, thumbKey := imaging.GeneratePaths(id.String(), in.Filename)

	if err := s.store.Put(ctx, originalKey, bytes.NewReader(processed.Original), processed.ContentType); err != nil {
		return nil, fmt.Errorf("store original: %w", err)
	}
	if err := s.store.Put(ctx, thumbKey, bytes.NewReader(processed.Thumbnail), processed.ContentType); err != nil {
		return nil, fmt.Errorf("store thumbnail: %w", err)
	}

	now := time.Now()
	item := &PortfolioItem{
		ID:        id,
		Title:     in.Title,
		Category:  in.Category,
		ImageKey:  originalKey,
		ImageURL:  s.store.GetURL(originalKey),
		ThumbKey:  thumbKey,
		ThumbURL:  s.store.GetURL(thumbKey),
		Position:  in.Position,
		Published: in.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.repo.CreateItem(ctx, item); err != nil {
		s.deleteObjects(originalKey, thumbKey)
		return nil, err
	}

	return item, nil
}

// UpdateItem applies partial metadata changes
func (s *Service) UpdateItem(ctx context.Context, id uuid.UUID, req *UpdateItemRequest) (*PortfolioItem, error) {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Position != nil {
		item.Position = *req.Position
	}
	if req.Published != nil {
		item.Published = *req.Published
	}

	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the record and its stored files
func (s *Service) DeleteItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.repo.GetItemByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}

	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}

	// Object store cleanup must not block the response
	s.deleteObjects(item.ImageKey, item.ThumbKey)
	return nil
}

// ListPublishedItems returns the public portfolio, in display order
func (s *Service) ListPublishedItems(ctx context.Context) ([]*PortfolioItem, error) {
	return s.repo.ListPublishedItems(ctx)
}

// ListAllItems returns every item including drafts, for the admin console
func (s *Service) ListAllItems(ctx context.Context) ([]*PortfolioItem, error) {
	return s.repo.ListAllItems(ctx)
}

// UploadVideoInput carries multipart form fields for a new showcase video
type UploadVideoInput struct {
	Filename    string
	Size        int64
	Title       string
	Description string
	Position    int
	Published   bool
}

// UploadVideo stores a reel as-is and records it. Videos are not transcoded.
func (s *Service) UploadVideo(ctx context.Context, in UploadVideoInput, file io.Reader) (*ShowcaseVideo, error) {
	contentType, ok := videoContentType(in.Filename)
	if !ok {
		return nil, ErrInvalidVideoType
	}
	if in.Size <= 0 {
		return nil, ErrEmptyFile
	}
	if in.Size > MaxVideoSize {
		return nil, ErrFileTooLarge
	}

	id := uuid.New()
	key := fmt.Sprintf("showcase/%s/%s", id, filepath.Base(in.Filename))

	if err := s.store.Put(ctx, key, file, contentType); err != nil {
		return nil, fmt.Errorf("store video: %w", err)
	}

	now := time.Now()
	video := &ShowcaseVideo{
		ID:          id,
		Title:       in.Title,
		Description: nullString(in.Description),
		VideoKey:    key,
		VideoURL:    s.store.GetURL(key),
		Position:    in.Position,
		Published:   in.Published,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateVideo(ctx, video); err != nil {
		s.deleteObjects(key)
		return nil, err
	}

	return video, nil
}

// UpdateVideo applies partial metadata changes
func (s *Service) UpdateVideo(ctx context.Context, id uuid.UUID, req *UpdateVideoRequest) (*ShowcaseVideo, error) {
	video, err := s.repo.GetVideoByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	if req.Title != nil {
		video.Title = *req.Title
	}
	if req.Description != nil {
		video.Description = nullString(*req.Description)
	}
	if req.Position != nil {
		video.Position = *req.Position
	}
	if req.Published != nil {
		video.Published = *req.Published
	}

	if err := s.repo.UpdateVideo(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// DeleteVideo removes the record and its stored file
func (s *Service) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	video, err := s.repo.GetVideoByID(ctx, id)
	if err != nil {
		return err
	}
	if video == nil {
		return ErrVideoNotFound
	}

	if err := s.repo.DeleteVideo(ctx, id); err != nil {
		return err
	}

	s.deleteObjects(video.VideoKey)
	return nil
}

// ListPublishedVideos returns the public reels, in display order
func (s *Service) ListPublishedVideos(ctx context.Context) ([]*ShowcaseVideo, error) {
	return s.repo.ListPublishedVideos(ctx)
}

// ListAllVideos returns every video including drafts
func (s *Service) ListAllVideos(ctx context.Context) ([]*ShowcaseVideo, error) {
	return s.repo.ListAllVideos(ctx)
}

// Explore bundles published items and videos for the explore page
func (s *Service) Explore(ctx context.Context) ([]*PortfolioItem, []*ShowcaseVideo, error) {
	items, err := s.repo.ListPublishedItems(ctx)
	if err != nil {
		return nil, nil, err
	}
	videos, err := s.repo.ListPublishedVideos(ctx)
	if err != nil {
		return nil, nil, err
	}
	return items, videos, nil
}

func (s *Service) deleteObjects(keys ...string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		for _, key := range keys {
			if key == "" {
				continue
			}
			if err := s.store.Delete(ctx, key); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("failed to delete stored object")
			}
		}
	}()
}

func videoContentType(filename string) (string, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".mp4":
		return "video/mp4", true
	case ".mov":
		return "video/quicktime", true
	case ".webm":
		return "video/webm", true
	default:
		return "", false
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
