package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/tutor-match-api/internal/dto"
	"github.com/noah-isme/tutor-match-api/internal/models"
	"github.com/noah-isme/tutor-match-api/internal/schedule"
	appErrors "github.com/noah-isme/tutor-match-api/pkg/errors"
)

type slotRepository interface {
	FindByID(ctx context.Context, id string) (*models.AvailabilitySlot, error)
	ListActiveByTutor(ctx context.Context, tutorID, excludeID string) ([]models.AvailabilitySlot, error)
	Create(ctx context.Context, slot *models.AvailabilitySlot) error
	Update(ctx context.Context, slot *models.AvailabilitySlot) error
	UpdateBookingCount(ctx context.Context, id string, count, version int) (bool, error)
}

type tutorReader interface {
	FindByID(ctx context.Context, id string) (*models.Tutor, error)
}

// AvailabilityService manages tutor availability slots: self-conflict
// validation on declaration and the capacity ledger on booking.
type AvailabilityService struct {
	slots     slotRepository
	tutors    tutorReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAvailabilityService creates a service instance.
func NewAvailabilityService(slots slotRepository, tutors tutorReader, validate *validator.Validate, logger *zap.Logger) *AvailabilityService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AvailabilityService{slots: slots, tutors: tutors, validator: validate, logger: logger}
}

// ListSlots returns a tutor's active availability slots.
func (s *AvailabilityService) ListSlots(ctx context.Context, tutorID string) ([]models.AvailabilitySlot, error) {
	if _, err := s.loadTutor(ctx, tutorID); err != nil {
		return nil, err
	}
	slots, err := s.slots.ListActiveByTutor(ctx, tutorID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list availability slots")
	}
	return slots, nil
}

// CreateSlot declares a new availability window after checking it against
// the tutor's existing slots.
func (s *AvailabilityService) CreateSlot(ctx context.Context, tutorID string, req dto.AvailabilitySlotRequest) (*models.AvailabilitySlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability slot payload")
	}
	if !req.CanTeachOnline && !req.CanTeachOffline {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slot must allow online or offline teaching")
	}
	pattern, err := req.Schedule.ToPattern()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability schedule")
	}

	tutor, err := s.loadTutor(ctx, tutorID)
	if err != nil {
		return nil, err
	}
	if tutor.Status != models.TutorStatusActive {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "tutor is inactive")
	}

	conflict, err := s.HasConflict(ctx, tutorID, pattern, "")
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, appErrors.Clone(appErrors.ErrConflict, "slot overlaps an existing availability slot")
	}

	slot := &models.AvailabilitySlot{
		TutorID:         tutorID,
		CanTeachOnline:  req.CanTeachOnline,
		CanTeachOffline: req.CanTeachOffline,
		MaxBookings:     req.MaxBookings,
		Status:          models.SlotStatusActive,
		WeeklyPattern:   pattern,
	}
	if err := s.slots.Create(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create availability slot")
	}
	return slot, nil
}

// UpdateSlot edits a slot, validating the new window against the tutor's
// other active slots.
func (s *AvailabilityService) UpdateSlot(ctx context.Context, tutorID, slotID string, req dto.AvailabilitySlotRequest) (*models.AvailabilitySlot, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability slot payload")
	}
	if !req.CanTeachOnline && !req.CanTeachOffline {
		return nil, appErrors.Clone(appErrors.ErrValidation, "slot must allow online or offline teaching")
	}
	pattern, err := req.Schedule.ToPattern()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid availability schedule")
	}

	slot, err := s.loadSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot.TutorID != tutorID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "availability slot not found")
	}
	if req.MaxBookings < slot.CurrentBookings {
		return nil, appErrors.Clone(appErrors.ErrValidation, "max bookings cannot drop below current bookings")
	}

	conflict, err := s.HasConflict(ctx, tutorID, pattern, slotID)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, appErrors.Clone(appErrors.ErrConflict, "slot overlaps an existing availability slot")
	}

	slot.CanTeachOnline = req.CanTeachOnline
	slot.CanTeachOffline = req.CanTeachOffline
	slot.MaxBookings = req.MaxBookings
	slot.WeeklyPattern = pattern
	if err := s.slots.Update(ctx, slot); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update availability slot")
	}
	return slot, nil
}

// HasConflict reports whether the candidate pattern collides with any of the
// tutor's active slots, excluding excludeSlotID when editing. The same
// evaluator as contract matching applies, so two windows 90+ minutes apart
// on the same day are allowed.
func (s *AvailabilityService) HasConflict(ctx context.Context, tutorID string, candidate models.WeeklyPattern, excludeSlotID string) (bool, error) {
	existing, err := s.slots.ListActiveByTutor(ctx, tutorID, excludeSlotID)
	if err != nil {
		return false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability slots")
	}
	patterns := make([]models.WeeklyPattern, 0, len(existing))
	for _, slot := range existing {
		patterns = append(patterns, slot.WeeklyPattern)
	}
	return schedule.ConflictsWithAny(candidate, patterns), nil
}

// AdjustBookingCount moves a slot's booking counter by delta under the
// optimistic version guard. Underflow clamps to zero so double-releases stay
// idempotent; an increment past max bookings fails and leaves the count
// untouched. A stale write is retried once with fresh data before giving up.
func (s *AvailabilityService) AdjustBookingCount(ctx context.Context, slotID string, delta int) (*models.AvailabilitySlot, error) {
	if delta == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "delta must be non-zero")
	}

	for attempt := 0; attempt < 2; attempt++ {
		slot, err := s.loadSlot(ctx, slotID)
		if err != nil {
			return nil, err
		}

		next := slot.CurrentBookings + delta
		if next < 0 {
			next = 0
		}
		if next > slot.MaxBookings {
			return nil, appErrors.Clone(appErrors.ErrCapacityExceeded, "")
		}

		ok, err := s.slots.UpdateBookingCount(ctx, slot.ID, next, slot.Version)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to adjust booking count")
		}
		if ok {
			slot.CurrentBookings = next
			slot.Version++
			return slot, nil
		}
		s.logger.Info("booking count write lost a race, retrying",
			zap.String("slot_id", slotID), zap.Int("attempt", attempt+1))
	}

	return nil, appErrors.Clone(appErrors.ErrConcurrencyConflict, "")
}

func (s *AvailabilityService) loadTutor(ctx context.Context, tutorID string) (*models.Tutor, error) {
	tutor, err := s.tutors.FindByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "tutor not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load tutor")
	}
	return tutor, nil
}

func (s *AvailabilityService) loadSlot(ctx context.Context, slotID string) (*models.AvailabilitySlot, error) {
	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "availability slot not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load availability slot")
	}
	return slot, nil
}
