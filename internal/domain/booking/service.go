package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/afriframe/studio-api/internal/pkg/validator"
)

// ChangePublisher pushes "something changed" events for a table. The admin
// console refetches on every event rather than merging diffs; keeping this
// behind an interface means a diff-based strategy could replace it without
// touching this package.
type ChangePublisher interface {
	Publish(ctx context.Context, table, event string)
}

// ValidationError carries per-field validation failures. Raised before any
// repository access.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}

// Service handles booking business logic
type Service struct {
	repo      Repository
	publisher ChangePublisher
}

// NewService creates booking service. publisher may be nil in tests.
func NewService(repo Repository, publisher ChangePublisher) *Service {
	return &Service{repo: repo, publisher: publisher}
}

// Reserve validates the request locally, then runs the atomic
// check-and-reserve procedure. Validation failures never reach the
// repository. Business-rule rejections come back as the sentinel errors
// from errors.go; anything else is a store failure.
func (s *Service) Reserve(ctx context.Context, req *ReserveRequest) (*Booking, error) {
	if errs := validator.Validate(req); errs != nil {
		return nil, &ValidationError{Fields: errs}
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"serviceId": "Invalid value"}}
	}

	now := time.Now()
	b := &Booking{
		ID:            uuid.New(),
		ServiceID:     serviceID,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		BookingDate:   req.Date,
		SlotTime:      nullString(req.SlotTime),
		Message:       nullString(req.Message),
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Reserve(ctx, b); err != nil {
		return nil, err
	}

	s.publish(ctx, "insert")
	return b, nil
}

// List returns bookings newest first, optionally filtered by status.
// The filter runs over the full fetched list; pending, confirmed and
// cancelled views are disjoint by construction.
func (s *Service) List(ctx context.Context, statusFilter string) ([]Response, error) {
	all, err := s.repo.ListAllWithService(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]Response, 0, len(all))
	for _, b := range all {
		if statusFilter != "" && string(b.Status) != statusFilter {
			continue
		}
		out = append(out, NewResponse(&b.Booking, b.ServiceName))
	}
	return out, nil
}

// SetStatus transitions a booking through the status machine and publishes
// a change event. The caller is expected to refetch the list afterwards.
func (s *Service) SetStatus(ctx context.Context, id uuid.UUID, newStatus Status) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}

	if !CanTransition(b.Status, newStatus) {
		return ErrInvalidTransition
	}

	if err := s.repo.UpdateStatus(ctx, id, newStatus); err != nil {
		return err
	}

	s.publish(ctx, "update")
	return nil
}

// SetPaymentStatus updates the payment flag on a booking
func (s *Service) SetPaymentStatus(ctx context.Context, id uuid.UUID, ps PaymentStatus) error {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if b == nil {
		return ErrBookingNotFound
	}

	if err := s.repo.UpdatePaymentStatus(ctx, id, ps); err != nil {
		return err
	}

	s.publish(ctx, "update")
	return nil
}

// Stats returns the dashboard counters
func (s *Service) Stats(ctx context.Context) (*StatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsResponse{
		Total:     counts[StatusPending] + counts[StatusConfirmed] + counts[StatusCancelled],
		Pending:   counts[StatusPending],
		Confirmed: counts[StatusConfirmed],
		Cancelled: counts[StatusCancelled],
	}, nil
}

func (s *Service) publish(ctx context.Context, event string) {
	if s.publisher != nil {
		s.publisher.Publish(ctx, "bookings", event)
	}
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
