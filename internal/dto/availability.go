package dto

import "github.com/noah-isme/tutor-match-api/internal/models"

// AvailabilitySlotRequest declares or edits a recurring availability window.
type AvailabilitySlotRequest struct {
	Schedule        SchedulePayload `json:"schedule" validate:"required"`
	CanTeachOnline  bool            `json:"can_teach_online"`
	CanTeachOffline bool            `json:"can_teach_offline"`
	MaxBookings     int             `json:"max_bookings" validate:"required,min=1"`
}

// AdjustBookingRequest moves a slot's booking counter. Delta is +1 when a
// contract is matched to the slot and -1 on cancellation or completion.
type AdjustBookingRequest struct {
	Delta int `json:"delta" validate:"required,oneof=-1 1"`
}

// AvailabilitySlotResponse is the boundary form of a slot.
type AvailabilitySlotResponse struct {
	ID              string          `json:"id"`
	TutorID         string          `json:"tutor_id"`
	Schedule        SchedulePayload `json:"schedule"`
	CanTeachOnline  bool            `json:"can_teach_online"`
	CanTeachOffline bool            `json:"can_teach_offline"`
	MaxBookings     int             `json:"max_bookings"`
	CurrentBookings int             `json:"current_bookings"`
	Status          string          `json:"status"`
}

// SlotResponse converts a slot model to its boundary form.
func SlotResponse(slot models.AvailabilitySlot) AvailabilitySlotResponse {
	return AvailabilitySlotResponse{
		ID:              slot.ID,
		TutorID:         slot.TutorID,
		Schedule:        FromPattern(slot.WeeklyPattern),
		CanTeachOnline:  slot.CanTeachOnline,
		CanTeachOffline: slot.CanTeachOffline,
		MaxBookings:     slot.MaxBookings,
		CurrentBookings: slot.CurrentBookings,
		Status:          string(slot.Status),
	}
}

// SlotResponses maps a slice of slots to the boundary form.
func SlotResponses(slots []models.AvailabilitySlot) []AvailabilitySlotResponse {
	result := make([]AvailabilitySlotResponse, 0, len(slots))
	for _, slot := range slots {
		result = append(result, SlotResponse(slot))
	}
	return result
}
