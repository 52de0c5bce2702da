package availability

import "errors"

var (
	ErrDateNotFound      = errors.New("booking date not found")
	ErrDateAlreadyExists = errors.New("booking date already exists for this service")
	ErrSlotNotFound      = errors.New("time slot not found on this date")
)
