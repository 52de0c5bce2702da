package availability

import (
	"github.com/google/uuid"
)

// CreateDateRequest for POST /admin/availability
type CreateDateRequest struct {
	ServiceID string `json:"service_id" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,booking_date"`
	Available bool   `json:"available"`
	Slots     []Slot `json:"slots" validate:"dive"`
}

// UpdateDateRequest for PUT /admin/availability/{id}
type UpdateDateRequest struct {
	Available bool   `json:"available"`
	Slots     []Slot `json:"slots" validate:"dive"`
}

// DateResponse represents a booking date in API responses
type DateResponse struct {
	ID        uuid.UUID `json:"id"`
	ServiceID uuid.UUID `json:"service_id"`
	Date      string    `json:"date"`
	Available bool      `json:"available"`
	Slots     []Slot    `json:"slots"`
	DateOnly  bool      `json:"date_only"`
}

// NewDateResponse maps entity to response. The public view carries only the
// offerable slot subset; the admin view carries every slot with its flag.
func NewDateResponse(d *BookingDate, adminView bool) DateResponse {
	slots := []Slot(d.Slots)
	if !adminView {
		slots = d.OfferableSlots()
	}
	if slots == nil {
		slots = []Slot{}
	}
	return DateResponse{
		ID:        d.ID,
		ServiceID: d.ServiceID,
		Date:      d.Date,
		Available: d.Available,
		Slots:     slots,
		DateOnly:  d.DateOnly(),
	}
}
