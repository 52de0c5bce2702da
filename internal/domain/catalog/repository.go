package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines service catalog data access
type Repository interface {
	Create(ctx context.Context, s *Service) error
	GetByID(ctx context.Context, id uuid.UUID) (*Service, error)
	ListActive(ctx context.Context) ([]*Service, error)
	ListAll(ctx context.Context) ([]*Service, error)
	Update(ctx context.Context, s *Service) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates catalog repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, s *Service) error {
	query := `
		INSERT INTO services (id, name, description, starting_price, duration_minutes, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Description,
		s.StartingPrice,
		s.DurationMinutes,
		s.Active,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	query := `SELECT * FROM services WHERE id = $1`
	var s Service
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// ListActive returns only offerable services, in the order they were authored
func (r *repository) ListActive(ctx context.Context) ([]*Service, error) {
	query := `SELECT * FROM services WHERE active ORDER BY created_at ASC`
	var services []*Service
	err := r.db.SelectContext(ctx, &services, query)
	return services, err
}

func (r *repository) ListAll(ctx context.Context) ([]*Service, error) {
	query := `SELECT * FROM services ORDER BY created_at ASC`
	var services []*Service
	err := r.db.SelectContext(ctx, &services, query)
	return services, err
}

func (r *repository) Update(ctx context.Context, s *Service) error {
	query := `
		UPDATE services
		SET name = $2, description = $3, starting_price = $4, duration_minutes = $5, active = $6, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.Name,
		s.Description,
		s.StartingPrice,
		s.DurationMinutes,
		s.Active,
	)
	return err
}
