package gallery

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines gallery data access
type Repository interface {
	CreateItem(ctx context.Context, item *PortfolioItem) error
	GetItemByID(ctx context.Context, id uuid.UUID) (*PortfolioItem, error)
	ListPublishedItems(ctx context.Context) ([]*PortfolioItem, error)
	ListAllItems(ctx context.Context) ([]*PortfolioItem, error)
	UpdateItem(ctx context.Context, item *PortfolioItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	CreateVideo(ctx context.Context, video *ShowcaseVideo) error
	GetVideoByID(ctx context.Context, id uuid.UUID) (*ShowcaseVideo, error)
	ListPublishedVideos(ctx context.Context) ([]*ShowcaseVideo, error)
	ListAllVideos(ctx context.Context) ([]*ShowcaseVideo, error)
	UpdateVideo(ctx context.Context, video *ShowcaseVideo) error
	DeleteVideo(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates gallery repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateItem(ctx context.Context, item *PortfolioItem) error {
	query := `
		INSERT INTO portfolio_items (id, title, category, image_key, image_url, thumb_key, thumb_url, position, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Category,
		item.ImageKey,
		item.ImageURL,
		item.ThumbKey,
		item.ThumbURL,
		item.Position,
		item.Published,
		item.CreatedAt,
		item.UpdatedAt,
	)
	return err
}

func (r *repository) GetItemByID(ctx context.Context, id uuid.UUID) (*PortfolioItem, error) {
	query := `SELECT * FROM portfolio_items WHERE id = $1`
	var item PortfolioItem
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (r *repository) ListPublishedItems(ctx context.Context) ([]*PortfolioItem, error) {
	query := `SELECT * FROM portfolio_items WHERE published ORDER BY position ASC, created_at ASC`
	var items []*PortfolioItem
	err := r.db.SelectContext(ctx, &items, query)
	return items, err
}

func (r *repository) ListAllItems(ctx context.Context) ([]*PortfolioItem, error) {
	query := `SELECT * FROM portfolio_items ORDER BY position ASC, created_at ASC`
	var items []*PortfolioItem
	err := r.db.SelectContext(ctx, &items, query)
	return items, err
}

func (r *repository) UpdateItem(ctx context.Context, item *PortfolioItem) error {
	query := `
		UPDATE portfolio_items
		SET title = $2, category = $3, position = $4, published = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		item.Title,
		item.Category,
		item.Position,
		item.Published,
	)
	return err
}

func (r *repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM portfolio_items WHERE id = $1`, id)
	return err
}

func (r *repository) CreateVideo(ctx context.Context, video *ShowcaseVideo) error {
	query := `
		INSERT INTO showcase_videos (id, title, description, video_key, video_url, position, published, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.VideoKey,
		video.VideoURL,
		video.Position,
		video.Published,
		video.CreatedAt,
		video.UpdatedAt,
	)
	return err
}

func (r *repository) GetVideoByID(ctx context.Context, id uuid.UUID) (*ShowcaseVideo, error) {
	query := `SELECT * FROM showcase_videos WHERE id = $1`
	var video ShowcaseVideo
	err := r.db.GetContext(ctx, &video, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}

func (r *repository) ListPublishedVideos(ctx context.Context) ([]*ShowcaseVideo, error) {
	query := `SELECT * FROM showcase_videos WHERE published ORDER BY position ASC, created_at ASC`
	var videos []*ShowcaseVideo
	err := r.db.SelectContext(ctx, &videos, query)
	return videos, err
}

func (r *repository) ListAllVideos(ctx context.Context) ([]*ShowcaseVideo, error) {
	query := `SELECT * FROM showcase_videos ORDER BY position ASC, created_at ASC`
	var videos []*ShowcaseVideo
	err := r.db.SelectContext(ctx, &videos, query)
	return videos, err
}

func (r *repository) UpdateVideo(ctx context.Context, video *ShowcaseVideo) error {
	query := `
		UPDATE showcase_videos
		SET title = $2, description = $3, position = $4, published = $5, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		video.ID,
		video.Title,
		video.Description,
		video.Position,
		video.Published,
	)
	return err
}

func (r *repository) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM showcase_videos WHERE id = $1`, id)
	return err
}
