package availability

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines booking date data access
type Repository interface {
	Create(ctx context.Context, d *BookingDate) error
	GetByID(ctx context.Context, id uuid.UUID) (*BookingDate, error)
	GetByServiceAndDate(ctx context.Context, serviceID uuid.UUID, date string) (*BookingDate, error)
	ListAvailableByService(ctx context.Context, serviceID uuid.UUID) ([]*BookingDate, error)
	ListByService(ctx context.Context, serviceID uuid.UUID) ([]*BookingDate, error)
	Update(ctx context.Context, d *BookingDate) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates availability repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, d *BookingDate) error {
	query := `
		INSERT INTO booking_dates (id, service_id, date, available, slots, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.ServiceID,
		d.Date,
		d.Available,
		d.Slots,
		d.CreatedAt,
		d.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		// unique_violation on (service_id, date)
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDateAlreadyExists
		}
		return err
	}
	return nil
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*BookingDate, error) {
	query := `SELECT id, service_id, to_char(date, 'YYYY-MM-DD') AS date, available, slots, created_at, updated_at
		FROM booking_dates WHERE id = $1`
	var d BookingDate
	err := r.db.GetContext(ctx, &d, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) GetByServiceAndDate(ctx context.Context, serviceID uuid.UUID, date string) (*BookingDate, error) {
	query := `SELECT id, service_id, to_char(date, 'YYYY-MM-DD') AS date, available, slots, created_at, updated_at
		FROM booking_dates WHERE service_id = $1 AND date = $2`
	var d BookingDate
	err := r.db.GetContext(ctx, &d, query, serviceID, date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

// ListAvailableByService returns open dates for a service, soonest first
func (r *repository) ListAvailableByService(ctx context.Context, serviceID uuid.UUID) ([]*BookingDate, error) {
	query := `
		SELECT id, service_id, to_char(date, 'YYYY-MM-DD') AS date, available, slots, created_at, updated_at
		FROM booking_dates
		WHERE service_id = $1 AND available
		ORDER BY date ASC
	`
	var dates []*BookingDate
	err := r.db.SelectContext(ctx, &dates, query, serviceID)
	return dates, err
}

func (r *repository) ListByService(ctx context.Context, serviceID uuid.UUID) ([]*BookingDate, error) {
	query := `
		SELECT id, service_id, to_char(date, 'YYYY-MM-DD') AS date, available, slots, created_at, updated_at
		FROM booking_dates
		WHERE service_id = $1
		ORDER BY date ASC
	`
	var dates []*BookingDate
	err := r.db.SelectContext(ctx, &dates, query, serviceID)
	return dates, err
}

func (r *repository) Update(ctx context.Context, d *BookingDate) error {
	query := `
		UPDATE booking_dates
		SET available = $2, slots = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, d.ID, d.Available, d.Slots)
	return err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM booking_dates WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	return err
}
