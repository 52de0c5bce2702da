package catalog

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Service represents a bookable photography offering
type Service struct {
	ID              uuid.UUID      `db:"id"`
	Name            string         `db:"name"`
	Description     sql.NullString `db:"description"`
	StartingPrice   float64        `db:"starting_price"`
	DurationMinutes int            `db:"duration_minutes"`
	Active          bool           `db:"active"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}
