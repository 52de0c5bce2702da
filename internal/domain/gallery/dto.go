package gallery

import (
	"time"

	"github.com/google/uuid"
)

// UpdateItemRequest for PATCH /gallery/items/{id}
type UpdateItemRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=1,max=120"`
	Category  *string `json:"category" validate:"omitempty,min=1,max=60"`
	Position  *int    `json:"position" validate:"omitempty,gte=0"`
	Published *bool   `json:"published"`
}

// UpdateVideoRequest for PATCH /gallery/videos/{id}
type UpdateVideoRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=120"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Position    *int    `json:"position" validate:"omitempty,gte=0"`
	Published   *bool   `json:"published"`
}

// ItemResponse represents a portfolio item in API responses
type ItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	ImageURL  string    `json:"image_url"`
	ThumbURL  string    `json:"thumb_url"`
	Position  int       `json:"position"`
	Published bool      `json:"published"`
	CreatedAt string    `json:"created_at"`
}

// ItemResponseFromEntity converts entity to response DTO
func ItemResponseFromEntity(i *PortfolioItem) *ItemResponse {
	return &ItemResponse{
		ID:        i.ID,
		Title:     i.Title,
		Category:  i.Category,
		ImageURL:  i.ImageURL,
		ThumbURL:  i.ThumbURL,
		Position:  i.Position,
		Published: i.Published,
		CreatedAt: i.CreatedAt.Format(time.RFC3339),
	}
}

// VideoResponse represents a showcase video in API responses
type VideoResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VideoURL    string    `json:"video_url"`
	Position    int       `json:"position"`
	Published   bool      `json:"published"`
	CreatedAt   string    `json:"created_at"`
}

// VideoResponseFromEntity converts entity to response DTO
func VideoResponseFromEntity(v *ShowcaseVideo) *VideoResponse {
	return &VideoResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description.String,
		VideoURL:    v.VideoURL,
		Position:    v.Position,
		Published:   v.Published,
		CreatedAt:   v.CreatedAt.Format(time.RFC3339),
	}
}

// ExploreResponse bundles everything the explore page renders
type ExploreResponse struct {
	Items  []*ItemResponse  `json:"items"`
	Videos []*VideoResponse `json:"videos"`
}
