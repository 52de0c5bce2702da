package gallery

import (
	"bytes"
	"context"
	"image"
	"image/jpeg"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/afriframe/studio-api/internal/pkg/imaging"
)

type fakeRepo struct {
	mu     sync.Mutex
	items  map[uuid.UUID]*PortfolioItem
	videos map[uuid.UUID]*ShowcaseVideo
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:  make(map[uuid.UUID]*PortfolioItem),
		videos: make(map[uuid.UUID]*ShowcaseVideo),
	}
}

func (r *fakeRepo) CreateItem(_ context.Context, item *PortfolioItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepo) GetItemByID(_ context.Context, id uuid.UUID) (*PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items[id], nil
}

func (r *fakeRepo) ListPublishedItems(context.Context) ([]*PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*PortfolioItem
	for _, item := range r.items {
		if item.Published {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAllItems(context.Context) ([]*PortfolioItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*PortfolioItem
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeRepo) UpdateItem(_ context.Context, item *PortfolioItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
	return nil
}

func (r *fakeRepo) DeleteItem(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, id)
	return nil
}

func (r *fakeRepo) CreateVideo(_ context.Context, video *ShowcaseVideo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos[video.ID] = video
	return nil
}

func (r *fakeRepo) GetVideoByID(_ context.Context, id uuid.UUID) (*ShowcaseVideo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.videos[id], nil
}

func (r *fakeRepo) ListPublishedVideos(context.Context) ([]*ShowcaseVideo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ShowcaseVideo
	for _, video := range r.videos {
		if video.Published {
			out = append(out, video)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAllVideos(context.Context) ([]*ShowcaseVideo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*ShowcaseVideo
	for _, video := range r.videos {
		out = append(out, video)
	}
	return out, nil
}

func (r *fakeRepo) UpdateVideo(_ context.Context, video *ShowcaseVideo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos[video.ID] = video
	return nil
}

func (r *fakeRepo) DeleteVideo(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.videos, id)
	return nil
}

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Put(_ context.Context, key string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *fakeStorage) Get(_ context.Context, key string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.NopCloser(bytes.NewReader(s.objects[key])), nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) Exists(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStorage) GetURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func testJPEG(t *testing.T) *bytes.Reader {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 640, 480))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func newTestService() (*Service, *fakeRepo, *fakeStorage) {
	repo := newFakeRepo()
	store := newFakeStorage()
	svc := NewService(repo, store, imaging.NewProcessor(imaging.DefaultConfig()))
	return svc, repo, store
}

func TestUploadItemStoresOriginalAndThumbnail(t *testing.T) {
	svc, repo, store := newTestService()

	img := testJPEG(t)
	in := UploadItemInput{
		Filename:  "portrait.jpg",
		Size:      int64(img.Len()),
		Title:     "Editorial Portrait",
		Category:  "Fashion",
		Published: true,
	}

	item, err := svc.UploadItem(context.Background(), in, img)
	if err != nil {
		t.Fatalf("UploadItem: %v", err)
	}

	if store.count() != 2 {
		t.Errorf("expected 2 stored objects, got %d", store.count())
	}
	if item.ImageURL == "" || item.ThumbURL == "" {
		t.Errorf("expected URLs to be set, got %q / %q", item.ImageURL, item.ThumbURL)
	}
	if !strings.HasPrefix(item.ImageKey, "gallery/") {
		t.Errorf("unexpected image key %q", item.ImageKey)
	}

	saved, _ := repo.GetItemByID(context.Background(), item.ID)
	if saved == nil {
		t.Fatal("item was not persisted")
	}
	if !saved.Published {
		t.Error("expected item to be published")
	}
}

func TestUploadItemRejectsBadFiles(t *testing.T) {
	svc, _, store := newTestService()

	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  error
	}{
		{"wrong extension", "notes.txt", 100, ErrInvalidImageType},
		{"empty", "photo.jpg", 0, ErrEmptyFile},
		{"oversized", "photo.jpg", imaging.MaxFileSize + 1, ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := UploadItemInput{Filename: tt.filename, Size: tt.size, Title: "x", Category: "y"}
			_, err := svc.UploadItem(context.Background(), in, bytes.NewReader(nil))
			if err != tt.wantErr {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	if store.count() != 0 {
		t.Errorf("rejected uploads must not store objects, got %d", store.count())
	}
}

func TestUpdateItemAppliesPartialChanges(t *testing.T) {
	svc, _, _ := newTestService()

	img := testJPEG(t)
	item, err := svc.UploadItem(context.Background(), UploadItemInput{
		Filename: "p.jpg", Size: int64(img.Len()), Title: "Old", Category: "Fashion",
	}, img)
	if err != nil {
		t.Fatalf("UploadItem: %v", err)
	}

	title := "Golden Hour"
	published := true
	updated, err := svc.UpdateItem(context.Background(), item.ID, &UpdateItemRequest{
		Title:     &title,
		Published: &published,
	})
	if err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	if updated.Title != "Golden Hour" {
		t.Errorf("title not updated: %q", updated.Title)
	}
	if updated.Category != "Fashion" {
		t.Errorf("category should be untouched, got %q", updated.Category)
	}
	if !updated.Published {
		t.Error("published not updated")
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	title := "x"
	_, err := svc.UpdateItem(context.Background(), uuid.New(), &UpdateItemRequest{Title: &title})
	if err != ErrItemNotFound {
		t.Errorf("expected ErrItemNotFound, got %v", err)
	}
}

func TestUploadVideoValidatesType(t *testing.T) {
	svc, repo, _ := newTestService()

	_, err := svc.UploadVideo(context.Background(), UploadVideoInput{
		Filename: "reel.avi", Size: 100, Title: "Wedding Film",
	}, strings.NewReader("data"))
	if err != ErrInvalidVideoType {
		t.Fatalf("expected ErrInvalidVideoType, got %v", err)
	}

	video, err := svc.UploadVideo(context.Background(), UploadVideoInput{
		Filename: "reel.mp4", Size: 100, Title: "Wedding Film", Description: "Cinematic love story", Published: true,
	}, strings.NewReader("data"))
	if err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}
	if !strings.HasPrefix(video.VideoKey, "showcase/") {
		t.Errorf("unexpected video key %q", video.VideoKey)
	}

	saved, _ := repo.GetVideoByID(context.Background(), video.ID)
	if saved == nil || saved.Description.String != "Cinematic love story" {
		t.Errorf("video not persisted correctly: %+v", saved)
	}
}

func TestExploreReturnsOnlyPublished(t *testing.T) {
	svc, _, _ := newTestService()

	img := testJPEG(t)
	if _, err := svc.UploadItem(context.Background(), UploadItemInput{
		Filename: "a.jpg", Size: int64(img.Len()), Title: "Draft", Category: "Fashion", Published: false,
	}, img); err != nil {
		t.Fatalf("UploadItem: %v", err)
	}

	img = testJPEG(t)
	if _, err := svc.UploadItem(context.Background(), UploadItemInput{
		Filename: "b.jpg", Size: int64(img.Len()), Title: "Live", Category: "Bridal", Published: true,
	}, img); err != nil {
		t.Fatalf("UploadItem: %v", err)
	}

	if _, err := svc.UploadVideo(context.Background(), UploadVideoInput{
		Filename: "reel.mov", Size: 10, Title: "Brand Story", Published: true,
	}, strings.NewReader("data")); err != nil {
		t.Fatalf("UploadVideo: %v", err)
	}

	items, videos, err := svc.Explore(context.Background())
	if err != nil {
		t.Fatalf("Explore: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Live" {
		t.Errorf("expected only published item, got %d", len(items))
	}
	if len(videos) != 1 {
		t.Errorf("expected one published video, got %d", len(videos))
	}
}
