package booking

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Status represents the booking lifecycle state
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// PaymentStatus tracks whether a booking has been paid for.
// Stored as text; unpaid/paid are the known values.
type PaymentStatus string

const (
	PaymentUnpaid PaymentStatus = "unpaid"
	PaymentPaid   PaymentStatus = "paid"
)

// CanTransition reports whether a status change is allowed.
// pending may be confirmed or cancelled, confirmed may only be cancelled,
// and cancelled is terminal. The server enforces this even though the
// console never offers a forbidden transition.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled
	default:
		return false
	}
}

// Booking represents a customer's reservation request
type Booking struct {
	ID            uuid.UUID      `db:"id"`
	ServiceID     uuid.UUID      `db:"service_id"`
	Name          string         `db:"name"`
	Email         string         `db:"email"`
	Phone         string         `db:"phone"`
	BookingDate   string         `db:"booking_date"` // YYYY-MM-DD
	SlotTime      sql.NullString `db:"slot_time"`
	Message       sql.NullString `db:"message"`
	Status        Status         `db:"status"`
	PaymentStatus PaymentStatus  `db:"payment_status"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// WithService is a booking joined with its service name for the admin list
type WithService struct {
	Booking
	ServiceName string `db:"service_name"`
}
