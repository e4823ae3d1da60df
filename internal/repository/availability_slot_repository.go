package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

const slotColumns = `id, tutor_id, can_teach_online, can_teach_offline, max_bookings, current_bookings, status, version, days, start_minute, end_minute, effective_from, effective_until, created_at, updated_at`

// AvailabilitySlotRepository manages persistence for tutor availability
// slots, including the optimistically versioned booking counters.
type AvailabilitySlotRepository struct {
	db *sqlx.DB
}

// NewAvailabilitySlotRepository constructs an AvailabilitySlotRepository.
func NewAvailabilitySlotRepository(db *sqlx.DB) *AvailabilitySlotRepository {
	return &AvailabilitySlotRepository{db: db}
}

// FindByID fetches a slot by ID, version included.
func (r *AvailabilitySlotRepository) FindByID(ctx context.Context, id string) (*models.AvailabilitySlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM tutor_availability_slots WHERE id = $1`, slotColumns)
	var slot models.AvailabilitySlot
	if err := r.db.GetContext(ctx, &slot, query, id); err != nil {
		return nil, err
	}
	return &slot, nil
}

// ListActiveByTutor returns the tutor's active slots, optionally excluding
// one (used when validating an edit against its siblings).
func (r *AvailabilitySlotRepository) ListActiveByTutor(ctx context.Context, tutorID, excludeID string) ([]models.AvailabilitySlot, error) {
	query := fmt.Sprintf(`SELECT %s FROM tutor_availability_slots WHERE tutor_id = $1 AND status = $2`, slotColumns)
	args := []interface{}{tutorID, models.SlotStatusActive}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query+" ORDER BY created_at", args...); err != nil {
		return nil, fmt.Errorf("list availability slots for tutor %s: %w", tutorID, err)
	}
	return slots, nil
}

// Create inserts a new availability slot.
func (r *AvailabilitySlotRepository) Create(ctx context.Context, slot *models.AvailabilitySlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now
	slot.Version = 1

	const query = `INSERT INTO tutor_availability_slots (id, tutor_id, can_teach_online, can_teach_offline, max_bookings, current_bookings, status, version, days, start_minute, end_minute, effective_from, effective_until, created_at, updated_at)
		VALUES (:id, :tutor_id, :can_teach_online, :can_teach_offline, :max_bookings, :current_bookings, :status, :version, :days, :start_minute, :end_minute, :effective_from, :effective_until, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("create availability slot: %w", err)
	}
	return nil
}

// Update rewrites the declarative fields of a slot. Booking counters go
// through UpdateBookingCount instead so the version guard stays effective.
func (r *AvailabilitySlotRepository) Update(ctx context.Context, slot *models.AvailabilitySlot) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tutor_availability_slots SET can_teach_online = :can_teach_online, can_teach_offline = :can_teach_offline, max_bookings = :max_bookings, status = :status, days = :days, start_minute = :start_minute, end_minute = :end_minute, effective_from = :effective_from, effective_until = :effective_until, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, slot); err != nil {
		return fmt.Errorf("update availability slot: %w", err)
	}
	return nil
}

// UpdateBookingCount writes a new booking count guarded by the version read
// alongside it. Returns false without error when the row was modified
// concurrently; the caller re-reads and retries.
func (r *AvailabilitySlotRepository) UpdateBookingCount(ctx context.Context, id string, count, version int) (bool, error) {
	const query = `UPDATE tutor_availability_slots SET current_bookings = $2, version = version + 1, updated_at = $4 WHERE id = $1 AND version = $3`
	result, err := r.db.ExecContext(ctx, query, id, count, version, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("update booking count for slot %s: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update booking count for slot %s: %w", id, err)
	}
	return affected == 1, nil
}
