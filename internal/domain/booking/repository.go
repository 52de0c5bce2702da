package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/afriframe/studio-api/internal/domain/availability"
)

// Repository defines booking data access. Reserve is the atomic
// check-and-reserve procedure; everything else is plain row access.
type Repository interface {
	Reserve(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	ListAllWithService(ctx context.Context) ([]*WithService, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, ps PaymentStatus) error
	CountByStatus(ctx context.Context) (map[Status]int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Reserve performs the check-and-reserve procedure as one transaction.
// The booking_dates row is locked with SELECT ... FOR UPDATE, so two
// concurrent attempts for the same (date, slot) serialize: the second
// sees the slot already consumed and gets ErrSlotTaken.
func (r *repository) Reserve(ctx context.Context, b *Booking) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reserve tx: %w", err)
	}
	defer tx.Rollback()

	// The service must still be offerable
	var active bool
	err = tx.GetContext(ctx, &active, `SELECT active FROM services WHERE id = $1`, b.ServiceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrServiceUnavailable
		}
		return fmt.Errorf("check service: %w", err)
	}
	if !active {
		return ErrServiceUnavailable
	}

	// Lock the date row for the duration of the transaction
	var d availability.BookingDate
	err = tx.GetContext(ctx, &d, `
		SELECT id, service_id, to_char(date, 'YYYY-MM-DD') AS date, available, slots, created_at, updated_at
		FROM booking_dates
		WHERE service_id = $1 AND date = $2
		FOR UPDATE
	`, b.ServiceID, b.BookingDate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDateUnavailable
		}
		return fmt.Errorf("lock booking date: %w", err)
	}
	if !d.Available {
		return ErrDateUnavailable
	}

	if b.SlotTime.Valid {
		// Consume the chosen slot
		found := false
		for i, s := range d.Slots {
			if s.Time != b.SlotTime.String {
				continue
			}
			if !s.Available {
				return ErrSlotTaken
			}
			d.Slots[i].Available = false
			found = true
			break
		}
		if !found {
			return ErrSlotTaken
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE booking_dates SET slots = $2, updated_at = NOW() WHERE id = $1`,
			d.ID, d.Slots,
		); err != nil {
			return fmt.Errorf("consume slot: %w", err)
		}
	} else {
		// Date-granularity booking consumes the whole date
		if _, err := tx.ExecContext(ctx,
			`UPDATE booking_dates SET available = false, updated_at = NOW() WHERE id = $1`,
			d.ID,
		); err != nil {
			return fmt.Errorf("consume date: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO bookings (id, service_id, name, email, phone, booking_date, slot_time, message, status, payment_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		b.ID,
		b.ServiceID,
		b.Name,
		b.Email,
		b.Phone,
		b.BookingDate,
		b.SlotTime,
		b.Message,
		b.Status,
		b.PaymentStatus,
		b.CreatedAt,
		b.UpdatedAt,
	); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}

	return tx.Commit()
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	query := `SELECT id, service_id, name, email, phone, to_char(booking_date, 'YYYY-MM-DD') AS booking_date,
		slot_time, message, status, payment_status, created_at, updated_at
		FROM bookings WHERE id = $1`
	var b Booking
	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

// ListAllWithService returns every booking joined with its service name,
// newest first. Filtering by status happens in the service layer; the
// console always works from the full refetched list.
func (r *repository) ListAllWithService(ctx context.Context) ([]*WithService, error) {
	query := `
		SELECT b.id, b.service_id, b.name, b.email, b.phone,
		       to_char(b.booking_date, 'YYYY-MM-DD') AS booking_date,
		       b.slot_time, b.message, b.status, b.payment_status, b.created_at, b.updated_at,
		       s.name AS service_name
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		ORDER BY b.created_at DESC
	`
	var bookings []*WithService
	err := r.db.SelectContext(ctx, &bookings, query)
	return bookings, err
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status Status) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status)
	return err
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, ps PaymentStatus) error {
	query := `UPDATE bookings SET payment_status = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, ps)
	return err
}

func (r *repository) CountByStatus(ctx context.Context) (map[Status]int, error) {
	query := `SELECT status, COUNT(*) AS count FROM bookings GROUP BY status`
	rows := []struct {
		Status Status `db:"status"`
		Count  int    `db:"count"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, err
	}
	counts := make(map[Status]int, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
