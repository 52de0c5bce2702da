package booking

import "errors"

// Business-rule rejections. Handlers must surface these with their message
// and keep them distinct from transport/store failures.
var (
	ErrServiceUnavailable = errors.New("this service is not available for booking")
	ErrDateUnavailable    = errors.New("this date is no longer available")
	ErrSlotTaken          = errors.New("this time slot is no longer available")
	ErrBookingNotFound    = errors.New("booking not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
)
