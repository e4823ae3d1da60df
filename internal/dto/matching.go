package dto

import (
	"fmt"
	"time"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

// SchedulePayload is the API-boundary form of a weekly pattern: day names
// and HH:MM clocks instead of raw bitmasks and minute offsets.
type SchedulePayload struct {
	Days           []string `json:"days" validate:"required,min=1"`
	StartTime      string   `json:"start_time" validate:"required"`
	EndTime        string   `json:"end_time" validate:"required"`
	EffectiveFrom  string   `json:"effective_from" validate:"required"`
	EffectiveUntil string   `json:"effective_until,omitempty"`
}

// ToPattern converts the payload into the internal representation. Parse
// failures and invariant violations both surface as errors; nothing is
// silently corrected.
func (p SchedulePayload) ToPattern() (models.WeeklyPattern, error) {
	var pattern models.WeeklyPattern

	mask, err := models.DayMaskFromNames(p.Days)
	if err != nil {
		return pattern, err
	}
	start, err := models.ParseClock(p.StartTime)
	if err != nil {
		return pattern, err
	}
	end, err := models.ParseClock(p.EndTime)
	if err != nil {
		return pattern, err
	}
	from, err := time.Parse("2006-01-02", p.EffectiveFrom)
	if err != nil {
		return pattern, fmt.Errorf("invalid effective_from %q, expected YYYY-MM-DD", p.EffectiveFrom)
	}

	pattern = models.WeeklyPattern{
		Days:          mask,
		StartMinute:   start,
		EndMinute:     end,
		EffectiveFrom: from,
	}
	if p.EffectiveUntil != "" {
		until, err := time.Parse("2006-01-02", p.EffectiveUntil)
		if err != nil {
			return pattern, fmt.Errorf("invalid effective_until %q, expected YYYY-MM-DD", p.EffectiveUntil)
		}
		pattern.EffectiveUntil = &until
	}

	if err := pattern.Validate(); err != nil {
		return pattern, err
	}
	return pattern, nil
}

// FromPattern renders the internal representation back into the boundary
// form.
func FromPattern(pattern models.WeeklyPattern) SchedulePayload {
	payload := SchedulePayload{
		Days:          pattern.Days.Names(),
		StartTime:     models.FormatClock(pattern.StartMinute),
		EndTime:       models.FormatClock(pattern.EndMinute),
		EffectiveFrom: pattern.EffectiveFrom.Format("2006-01-02"),
	}
	if pattern.EffectiveUntil != nil {
		payload.EffectiveUntil = pattern.EffectiveUntil.Format("2006-01-02")
	}
	return payload
}

// PreviewMatchRequest asks which tutors could take a contract that has not
// been created yet.
type PreviewMatchRequest struct {
	Schedule SchedulePayload `json:"schedule" validate:"required"`
	Mode     string          `json:"mode" validate:"required,oneof=online offline"`
	ChildID  string          `json:"child_id" validate:"required"`
	CenterID *string         `json:"center_id,omitempty"`
}

// MatchOptions select the optional result decorations. Both sorts may be
// combined; rating is then the primary key.
type MatchOptions struct {
	SortByRating   bool
	SortByDistance bool
}
