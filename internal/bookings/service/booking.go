package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "roomly/internal/bookings/errors"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/validator"
	"roomly/internal/events"
	"roomly/pkg/clock"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

const (
	// Booking duration bounds, inclusive on both ends.
	MinBookingDuration = 15 * time.Minute
	MaxBookingDuration = 120 * time.Minute

	// ConflictBuffer is the mandatory gap between consecutive bookings of
	// the same resource. It is folded into the query bounds of the proposed
	// window, which is algebraically the same as expanding every stored
	// interval by the buffer on both ends.
	ConflictBuffer = 10 * time.Minute
)

const dateLayout = "2006-01-02"

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) (*model.Booking, error)
	List(ctx context.Context, resource, date string) ([]*model.Booking, error)
	AvailableSlots(ctx context.Context, resource, date string) ([]model.Slot, error)
	Delete(ctx context.Context, id string) (*model.Booking, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.ResourceLockRepository
	validator *validator.BookingValidator
	publisher events.Publisher
	clock     clock.Clock
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.ResourceLockRepository,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	clk clock.Clock,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: bookingValidator,
		publisher: publisher,
		clock:     clk,
		cfg:       cfg,
	}
}

// Create validates the proposed window, checks for buffered conflicts and
// persists the booking. Checks run in order and the first failure wins:
// missing fields, inverted range, duration bounds, conflict.
func (s *bookingService) Create(ctx context.Context, booking *model.Booking) (*model.Booking, error) {
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return nil, err
	}

	if !booking.StartTime.Before(booking.EndTime) {
		return nil, apperrors.InvalidRange()
	}

	duration := booking.EndTime.Sub(booking.StartTime)
	if duration < MinBookingDuration {
		return nil, apperrors.TooShort(int(MinBookingDuration.Minutes()))
	}
	if duration > MaxBookingDuration {
		return nil, apperrors.TooLong(int(MaxBookingDuration.Minutes()))
	}

	// Serialize check-and-insert per resource so two concurrent creates
	// cannot both pass the conflict query.
	lockID, err := s.acquireResourceLock(ctx, booking.Resource)
	if err != nil {
		return nil, err
	}
	defer func() {
		if releaseErr := s.releaseResourceLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release resource lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	bufferStart := booking.StartTime.Add(-ConflictBuffer)
	bufferEnd := booking.EndTime.Add(ConflictBuffer)

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		conflict, err := s.repo.FindConflicting(sessCtx, booking.Resource, bufferStart, bufferEnd)
		if err != nil && !errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.Internal("Failed to check existing bookings", err)
		}
		if conflict != nil {
			return apperrors.Conflict(conflict.StartTime, conflict.EndTime)
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return nil, err
	}

	s.publisher.BookingCreated(ctx, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"resource", booking.Resource,
		"start_time", booking.StartTime,
		"end_time", booking.EndTime,
	)
	return booking, nil
}

// List returns bookings ascending by start time, optionally filtered by
// resource and by UTC calendar day, each annotated with its derived status.
func (s *bookingService) List(ctx context.Context, resource, date string) ([]*model.Booking, error) {
	resource = sanitizer.NormalizeResource(resource)

	var dayStart, dayEnd *time.Time
	if date != "" {
		day, err := time.Parse(dateLayout, date)
		if err != nil {
			return nil, apperrors.InvalidInput(fmt.Sprintf("invalid date format, must be YYYY-MM-DD: %s", date))
		}
		start := day.UTC()
		end := start.Add(24*time.Hour - time.Millisecond)
		dayStart, dayEnd = &start, &end
	}

	bookings, err := s.repo.FindFiltered(ctx, resource, dayStart, dayEnd)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "resource", resource, "date", date, "error", err)
		return nil, apperrors.Internal("Failed to retrieve bookings", err)
	}

	now := s.clock.Now()
	for _, booking := range bookings {
		booking.Status = booking.StatusAt(now)
	}

	return bookings, nil
}

// Delete removes the booking and returns the removed record.
func (s *bookingService) Delete(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to delete booking", err)
	}

	s.publisher.BookingDeleted(ctx, booking)

	s.cfg.Log.Info("Booking deleted successfully", "id", id)
	return booking, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.Resource = sanitizer.NormalizeResource(b.Resource)
	b.RequestedBy = sanitizer.NormalizeRequester(b.RequestedBy)
}

func (s *bookingService) validate(booking *model.Booking) error {
	err := s.validator.Validate(booking)
	if err == nil {
		return nil
	}

	s.cfg.Log.Warn("Booking validation failed", "error", err)

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) && validationErrs.OnlyMissing() {
		return apperrors.MissingFields(validationErrs.MissingFields()...)
	}
	return apperrors.InvalidInput(err.Error())
}

// acquireResourceLock inserts an advisory lock document keyed by the
// resource. A duplicate key error means another create on the same
// resource is in flight.
func (s *bookingService) acquireResourceLock(ctx context.Context, resource string) (string, error) {
	lockID := fmt.Sprintf("resource_lock_%s", resource)

	lock := &model.ResourceLock{
		ID:        lockID,
		ExpiresAt: time.Now().UTC().Add(s.cfg.LockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.ConflictMessage("This resource is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire resource lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseResourceLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
