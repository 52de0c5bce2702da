package availability

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Slot is a time-of-day option within a BookingDate
type Slot struct {
	Time      string `json:"time" validate:"required,slot_time"`
	Available bool   `json:"available"`
}

// SlotList is stored as a JSONB column on booking_dates
type SlotList []Slot

// Value implements driver.Valuer
func (s SlotList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *SlotList) Scan(src interface{}) error {
	if src == nil {
		*s = nil
		return nil
	}
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("unsupported slots type %T", src)
	}
	return json.Unmarshal(b, s)
}

// BookingDate represents a calendar date on which a service may be scheduled
type BookingDate struct {
	ID        uuid.UUID `db:"id"`
	ServiceID uuid.UUID `db:"service_id"`
	Date      string    `db:"date"` // YYYY-MM-DD
	Available bool      `db:"available"`
	Slots     SlotList  `db:"slots"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// OfferableSlots returns the slots a visitor may actually pick: the
// intersection of the slot flag and the date flag. An unavailable date
// offers nothing regardless of its slots.
func (d *BookingDate) OfferableSlots() []Slot {
	if !d.Available {
		return nil
	}
	var out []Slot
	for _, s := range d.Slots {
		if s.Available {
			out = append(out, s)
		}
	}
	return out
}

// DateOnly reports whether the date is booked at date granularity:
// no slot list, or every slot switched off while the date stays open.
func (d *BookingDate) DateOnly() bool {
	return d.Available && len(d.OfferableSlots()) == 0
}
