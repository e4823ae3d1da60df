package models

import "time"

// SlotStatus is the lifecycle state of an availability slot.
type SlotStatus string

const (
	SlotStatusActive   SlotStatus = "active"
	SlotStatusInactive SlotStatus = "inactive"
)

// AvailabilitySlot is a tutor-declared recurring availability window with
// concurrent-booking capacity counters. Version guards optimistic updates to
// the booking count: every write increments it and is rejected when stale.
type AvailabilitySlot struct {
	ID              string     `db:"id" json:"id"`
	TutorID         string     `db:"tutor_id" json:"tutor_id"`
	CanTeachOnline  bool       `db:"can_teach_online" json:"can_teach_online"`
	CanTeachOffline bool       `db:"can_teach_offline" json:"can_teach_offline"`
	MaxBookings     int        `db:"max_bookings" json:"max_bookings"`
	CurrentBookings int        `db:"current_bookings" json:"current_bookings"`
	Status          SlotStatus `db:"status" json:"status"`
	Version         int        `db:"version" json:"-"`
	WeeklyPattern   `json:"pattern"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}
