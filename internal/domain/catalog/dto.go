package catalog

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// CreateServiceRequest for POST /admin/services
type CreateServiceRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=200"`
	Description     string  `json:"description" validate:"max=2000"`
	StartingPrice   float64 `json:"starting_price" validate:"required,gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gte=15,lte=1440"`
}

// UpdateServiceRequest for PUT /admin/services/{id}
type UpdateServiceRequest struct {
	Name            string  `json:"name" validate:"required,min=2,max=200"`
	Description     string  `json:"description" validate:"max=2000"`
	StartingPrice   float64 `json:"starting_price" validate:"required,gte=0"`
	DurationMinutes int     `json:"duration_minutes" validate:"required,gte=15,lte=1440"`
	Active          bool    `json:"active"`
}

// ServiceResponse represents a service in API responses
type ServiceResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	StartingPrice   float64   `json:"starting_price"`
	DurationMinutes int       `json:"duration_minutes"`
	Active          bool      `json:"active"`
	CreatedAt       string    `json:"created_at"`
}

// NewServiceResponse maps entity to response
func NewServiceResponse(s *Service) ServiceResponse {
	return ServiceResponse{
		ID:              s.ID,
		Name:            s.Name,
		Description:     s.Description.String,
		StartingPrice:   s.StartingPrice,
		DurationMinutes: s.DurationMinutes,
		Active:          s.Active,
		CreatedAt:       s.CreatedAt.Format(time.RFC3339),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
