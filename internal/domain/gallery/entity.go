package gallery

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// PortfolioItem is a published studio photograph (metadata only, files in R2)
type PortfolioItem struct {
	ID        uuid.UUID `db:"id"`
	Title     string    `db:"title"`
	Category  string    `db:"category"`
	ImageKey  string    `db:"image_key"`
	ImageURL  string    `db:"image_url"`
	ThumbKey  string    `db:"thumb_key"`
	ThumbURL  string    `db:"thumb_url"`
	Position  int       `db:"position"`
	Published bool      `db:"published"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ShowcaseVideo is a cinematic reel on the explore page
type ShowcaseVideo struct {
	ID          uuid.UUID      `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	VideoKey    string         `db:"video_key"`
	VideoURL    string         `db:"video_url"`
	Position    int            `db:"position"`
	Published   bool           `db:"published"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}
