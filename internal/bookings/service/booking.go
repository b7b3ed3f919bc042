package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"roomly/internal/bookings/conflict"
	bookingserrors "roomly/internal/bookings/errors"
	"roomly/internal/bookings/events"
	"roomly/internal/bookings/repository"
	"roomly/internal/bookings/rules"
	"roomly/internal/bookings/validator"
	"roomly/internal/directory"
	"roomly/pkg/config"
	apperrors "roomly/pkg/errors"
	"roomly/pkg/model"
	"roomly/pkg/sanitizer"

	"go.mongodb.org/mongo-driver/mongo"
)

// AvailabilityResult reports whether a room is free over an interval and,
// when it is not, the bookings standing in the way.
type AvailabilityResult struct {
	RoomID    string                 `json:"room_id"`
	StartTime time.Time              `json:"start_time"`
	EndTime   time.Time              `json:"end_time"`
	Available bool                   `json:"available"`
	Conflicts []model.BookingSummary `json:"conflicts"`
}

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Booking, int64, error)
	Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error)
	Cancel(ctx context.Context, id string) error
	CheckAvailability(ctx context.Context, roomID string, interval model.Interval) (*AvailabilityResult, error)
	RoomStats(ctx context.Context, roomID string) (*repository.RoomStats, error)
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.RoomLockRepository
	detector  *conflict.Detector
	lookup    directory.EntityLookup
	validator *validator.BookingValidator
	publisher events.Publisher
	cfg       *config.Config

	// now is swapped out in tests so the time rules stay deterministic.
	now func() time.Time
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.RoomLockRepository,
	lookup directory.EntityLookup,
	bookingValidator *validator.BookingValidator,
	publisher events.Publisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		detector:  conflict.NewDetector(repo),
		lookup:    lookup,
		validator: bookingValidator,
		publisher: publisher,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}
	if err := s.verifyReferences(ctx, booking); err != nil {
		return err
	}
	if err := s.applyRules(booking); err != nil {
		return err
	}

	// Room-level advisory lock so concurrent creates for the same room
	// serialize; losers re-check conflicts after the winner commits.
	if _, err := s.lockRepo.Acquire(ctx, booking.RoomID); err != nil {
		return s.lockError(booking.RoomID, err)
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(ctx, booking.RoomID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "room_id", booking.RoomID, "error", releaseErr)
		}
	}()

	err := s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflicts(sessCtx, booking); err != nil {
			return err
		}
		if err := s.repo.Create(sessCtx, booking); err != nil {
			return apperrors.Internal("Failed to create booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "room_id", booking.RoomID, "error", err)
		return err
	}

	s.publisher.BookingCreated(ctx, booking)
	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"room_id", booking.RoomID,
		"manager_id", booking.ManagerID,
		"start_time", booking.StartTime,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id, model.IncludeDeleted)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, filter repository.ListFilter, limit int, offset int64) ([]*model.Booking, int64, error) {
	var count int64
	var bookings []*model.Booking
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.CountAll(ctx, filter)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bookings", "error", errCount)
			errCount = apperrors.Internal("Failed to count bookings", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bookings, errFind = s.repo.FindAll(ctx, filter, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bookings", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bookings", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bookings, count, nil
}

func (s *bookingService) Update(ctx context.Context, id string, updates *model.BookingUpdate) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id, model.ActiveOnly)
	if err != nil {
		return nil, s.mapLookupError(err, id)
	}

	if !rules.CanModify(existing, s.now()) {
		return nil, apperrors.NotModifiable("Booking has already started and can no longer be modified")
	}

	if err := s.validator.ValidateUpdate(updates); err != nil {
		s.cfg.Log.Warn("Booking update validation failed", "id", id, "error", err)
		return nil, apperrors.Validation("Invalid update input", map[string]any{"error": err.Error()})
	}

	merged := s.mergeBookingUpdates(existing, updates)
	s.sanitize(merged)
	if err := s.validate(merged); err != nil {
		return nil, err
	}
	if err := s.applyRules(merged); err != nil {
		return nil, err
	}

	if _, err := s.lockRepo.Acquire(ctx, merged.RoomID); err != nil {
		return nil, s.lockError(merged.RoomID, err)
	}
	defer func() {
		if releaseErr := s.lockRepo.Release(ctx, merged.RoomID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release room lock", "room_id", merged.RoomID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		if err := s.verifyNoConflicts(sessCtx, merged); err != nil {
			return err
		}
		if err := s.repo.Update(sessCtx, merged); err != nil {
			if errors.Is(err, bookingserrors.ErrNotFound) {
				return apperrors.NotFoundWithID("Booking", id)
			}
			return apperrors.Internal("Failed to update booking", err)
		}
		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to update booking", "id", id, "error", err)
		return nil, err
	}

	s.publisher.BookingUpdated(ctx, merged)
	s.cfg.Log.Info("Booking updated successfully", "id", id)
	return merged, nil
}

func (s *bookingService) Cancel(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("Booking ID cannot be empty")
	}

	existing, err := s.repo.FindByID(ctx, id, model.ActiveOnly)
	if err != nil {
		return s.mapLookupError(err, id)
	}

	now := s.now()
	if !rules.CanCancel(existing, now) {
		return apperrors.NotCancellable("Booking has already ended and can no longer be cancelled")
	}

	deletedAt := now.UTC().Truncate(time.Millisecond)
	if err := s.repo.SoftDelete(ctx, id, deletedAt); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return apperrors.NotFoundWithID("Booking", id)
		}
		return apperrors.Internal("Failed to cancel booking", err)
	}

	existing.DeletedAt = &deletedAt
	s.publisher.BookingCancelled(ctx, existing)
	s.cfg.Log.Info("Booking cancelled successfully", "id", id)
	return nil
}

func (s *bookingService) CheckAvailability(ctx context.Context, roomID string, interval model.Interval) (*AvailabilityResult, error) {
	if roomID == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}
	if _, err := model.NewInterval(interval.Start, interval.End); err != nil {
		return nil, apperrors.InvalidInput("end_time must be after start_time")
	}

	exists, err := s.lookup.RoomExists(ctx, roomID)
	if err != nil {
		return nil, apperrors.Internal("Failed to check room existence", err)
	}
	if !exists {
		return nil, apperrors.NotFoundWithID("Room", roomID)
	}

	available, conflicts, err := s.detector.IsAvailable(ctx, roomID, interval, "")
	if err != nil {
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	result := &AvailabilityResult{
		RoomID:    roomID,
		StartTime: interval.Start,
		EndTime:   interval.End,
		Available: available,
		Conflicts: []model.BookingSummary{},
	}
	for _, c := range conflicts {
		result.Conflicts = append(result.Conflicts, c.Summary())
	}
	return result, nil
}

func (s *bookingService) RoomStats(ctx context.Context, roomID string) (*repository.RoomStats, error) {
	if roomID == "" {
		return nil, apperrors.InvalidInput("Room ID cannot be empty")
	}

	exists, err := s.lookup.RoomExists(ctx, roomID)
	if err != nil {
		return nil, apperrors.Internal("Failed to check room existence", err)
	}
	if !exists {
		return nil, apperrors.NotFoundWithID("Room", roomID)
	}

	stats, err := s.repo.Stats(ctx, roomID, s.now())
	if err != nil {
		s.cfg.Log.Error("Failed to compute room stats", "room_id", roomID, "error", err)
		return nil, apperrors.Internal("Failed to compute room stats", err)
	}
	return stats, nil
}

// --- Helpers ---

func (s *bookingService) sanitize(b *model.Booking) {
	b.Name = sanitizer.SanitizeDisplayName(b.Name)
	b.Description = sanitizer.SanitizeDescription(b.Description)
	b.CoffeeDescription = sanitizer.SanitizeDescription(b.CoffeeDescription)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

// applyRules runs the domain rules that depend on the current time and the
// coffee fields. Validation of field shapes happens before this.
func (s *bookingService) applyRules(booking *model.Booking) error {
	if ruleErr := rules.ValidateTimeWindow(booking.Interval(), s.now()); ruleErr != nil {
		return apperrors.ValidationKind(ruleErr.Kind, ruleErr.Message)
	}
	if ruleErr := rules.ValidateCoffee(booking.CoffeeOption, booking.CoffeeQuantity); ruleErr != nil {
		return apperrors.ValidationKind(ruleErr.Kind, ruleErr.Message)
	}
	return nil
}

func (s *bookingService) verifyReferences(ctx context.Context, booking *model.Booking) error {
	exists, err := s.lookup.RoomExists(ctx, booking.RoomID)
	if err != nil {
		return apperrors.Internal("Failed to check room existence", err)
	}
	if !exists {
		return apperrors.NotFoundWithID("Room", booking.RoomID)
	}

	exists, err = s.lookup.ManagerExists(ctx, booking.ManagerID)
	if err != nil {
		return apperrors.Internal("Failed to check manager existence", err)
	}
	if !exists {
		return apperrors.NotFoundWithID("Manager", booking.ManagerID)
	}
	return nil
}

func (s *bookingService) verifyNoConflicts(ctx context.Context, booking *model.Booking) error {
	conflicts, err := s.detector.FindConflicts(ctx, booking.RoomID, booking.Interval(), booking.ID)
	if err != nil {
		return apperrors.Internal("Failed to check existing bookings", err)
	}
	if len(conflicts) > 0 {
		summaries := make([]model.BookingSummary, 0, len(conflicts))
		for _, c := range conflicts {
			summaries = append(summaries, c.Summary())
		}
		return apperrors.RoomUnavailable(booking.RoomID, summaries)
	}
	return nil
}

func (s *bookingService) lockError(roomID string, err error) error {
	if errors.Is(err, bookingserrors.ErrRoomLocked) {
		return apperrors.RoomUnavailable(roomID, nil)
	}
	return apperrors.Internal(fmt.Sprintf("Failed to lock room %s", roomID), err)
}

func (s *bookingService) mapLookupError(err error, id string) error {
	if errors.Is(err, bookingserrors.ErrNotFound) {
		return apperrors.NotFoundWithID("Booking", id)
	}
	if errors.Is(err, bookingserrors.ErrInvalidID) {
		return apperrors.InvalidInput("Invalid booking ID format")
	}
	return apperrors.Internal("Failed to retrieve booking", err)
}

func (s *bookingService) mergeBookingUpdates(existing *model.Booking, updates *model.BookingUpdate) *model.Booking {
	merged := *existing

	if updates.Name != "" {
		merged.Name = updates.Name
	}
	if updates.Description != nil {
		merged.Description = *updates.Description
	}
	if updates.StartTime != nil {
		merged.StartTime = *updates.StartTime
	}
	if updates.EndTime != nil {
		merged.EndTime = *updates.EndTime
	}
	if updates.CoffeeOption != nil {
		merged.CoffeeOption = *updates.CoffeeOption
		if !merged.CoffeeOption {
			merged.CoffeeQuantity = nil
			merged.CoffeeDescription = ""
		}
	}
	if updates.CoffeeQuantity != nil {
		merged.CoffeeQuantity = updates.CoffeeQuantity
	}
	if updates.CoffeeDescription != nil {
		merged.CoffeeDescription = *updates.CoffeeDescription
	}

	return &merged
}
