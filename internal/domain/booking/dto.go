package booking

import (
	"time"

	"github.com/google/uuid"
)

// ReserveRequest is the reserve-slot payload from the public booking form.
// Field names match the form wire format.
type ReserveRequest struct {
	ServiceID string `json:"serviceId" validate:"required,uuid"`
	Date      string `json:"date" validate:"required,booking_date"`
	SlotTime  string `json:"slotTime" validate:"omitempty,slot_time"`
	Name      string `json:"name" validate:"required,min=2,max=200"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Phone     string `json:"phone" validate:"required,min=7,max=30"`
	Message   string `json:"message" validate:"max=2000"`
}

// SetStatusRequest for PATCH /admin/bookings/{id}/status
type SetStatusRequest struct {
	Status string `json:"status" validate:"required,booking_status"`
}

// SetPaymentStatusRequest for PATCH /admin/bookings/{id}/payment
type SetPaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,payment_status"`
}

// Response represents a booking in API responses
type Response struct {
	ID            uuid.UUID `json:"id"`
	ServiceID     uuid.UUID `json:"service_id"`
	ServiceName   string    `json:"service_name,omitempty"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone"`
	BookingDate   string    `json:"booking_date"`
	SlotTime      *string   `json:"slot_time"`
	Message       *string   `json:"message"`
	Status        Status    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     string    `json:"created_at"`
}

// StatsResponse backs the admin dashboard cards
type StatsResponse struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
}

// NewResponse maps a booking to its API shape
func NewResponse(b *Booking, serviceName string) Response {
	resp := Response{
		ID:            b.ID,
		ServiceID:     b.ServiceID,
		ServiceName:   serviceName,
		Name:          b.Name,
		Email:         b.Email,
		Phone:         b.Phone,
		BookingDate:   b.BookingDate,
		Status:        b.Status,
		PaymentStatus: string(b.PaymentStatus),
		CreatedAt:     b.CreatedAt.Format(time.RFC3339),
	}
	if b.SlotTime.Valid {
		resp.SlotTime = &b.SlotTime.String
	}
	if b.Message.Valid {
		resp.Message = &b.Message.String
	}
	return resp
}
