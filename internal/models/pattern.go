package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DayMask encodes the weekdays a recurring pattern applies to as a 7-bit
// mask. The bit layout is a stable wire contract: Sunday=1, Monday=2,
// Tuesday=4, Wednesday=8, Thursday=16, Friday=32, Saturday=64.
type DayMask int

const (
	DaySunday    DayMask = 1 << 0
	DayMonday    DayMask = 1 << 1
	DayTuesday   DayMask = 1 << 2
	DayWednesday DayMask = 1 << 3
	DayThursday  DayMask = 1 << 4
	DayFriday    DayMask = 1 << 5
	DaySaturday  DayMask = 1 << 6

	DayMaskAll      DayMask = 127
	DayMaskWeekdays DayMask = DayMonday | DayTuesday | DayWednesday | DayThursday | DayFriday
	DayMaskWeekend  DayMask = DaySaturday | DaySunday
)

var dayNames = []struct {
	bit  DayMask
	name string
}{
	{DaySunday, "SUNDAY"},
	{DayMonday, "MONDAY"},
	{DayTuesday, "TUESDAY"},
	{DayWednesday, "WEDNESDAY"},
	{DayThursday, "THURSDAY"},
	{DayFriday, "FRIDAY"},
	{DaySaturday, "SATURDAY"},
}

// Valid reports whether the mask selects at least one day and no stray bits.
func (m DayMask) Valid() bool {
	return m > 0 && m <= DayMaskAll
}

// Has reports whether the given day bit is set.
func (m DayMask) Has(day DayMask) bool {
	return m&day != 0
}

// Intersects reports whether two masks share at least one day.
func (m DayMask) Intersects(other DayMask) bool {
	return m&other != 0
}

// Names expands the mask into uppercase day names, Sunday first.
func (m DayMask) Names() []string {
	var names []string
	for _, d := range dayNames {
		if m.Has(d.bit) {
			names = append(names, d.name)
		}
	}
	return names
}

// DayMaskFromNames builds a mask from day names. Unknown names are rejected
// rather than skipped so malformed payloads surface as validation errors.
func DayMaskFromNames(names []string) (DayMask, error) {
	var mask DayMask
	for _, raw := range names {
		name := strings.ToUpper(strings.TrimSpace(raw))
		found := false
		for _, d := range dayNames {
			if d.name == name {
				mask |= d.bit
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown day name %q", raw)
		}
	}
	return mask, nil
}

// ParseClock converts an "HH:MM" string to minutes since midnight.
func ParseClock(raw string) (int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", raw)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatClock renders minutes since midnight as "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}

// WeeklyPattern is a recurring weekly time commitment: a day-of-week mask, a
// time-of-day window and an inclusive effective date range. All patterns use
// the same canonical clock; there is no per-pattern timezone.
type WeeklyPattern struct {
	Days           DayMask    `db:"days" json:"days"`
	StartMinute    int        `db:"start_minute" json:"start_minute"`
	EndMinute      int        `db:"end_minute" json:"end_minute"`
	EffectiveFrom  time.Time  `db:"effective_from" json:"effective_from"`
	EffectiveUntil *time.Time `db:"effective_until" json:"effective_until,omitempty"`
}

// Complete reports whether every field required for an overlap decision is
// present. Incomplete patterns are never treated as conflicting.
func (p WeeklyPattern) Complete() bool {
	return p.Days != 0 && p.StartMinute != p.EndMinute && !p.EffectiveFrom.IsZero()
}

// Validate rejects malformed patterns before any overlap computation.
func (p WeeklyPattern) Validate() error {
	if !p.Days.Valid() {
		return errors.New("days must select at least one weekday")
	}
	if p.StartMinute < 0 || p.EndMinute > 24*60 {
		return errors.New("time window must fall within a single day")
	}
	if p.StartMinute >= p.EndMinute {
		return errors.New("startTime must be before endTime")
	}
	if p.EffectiveFrom.IsZero() {
		return errors.New("effectiveFrom is required")
	}
	if p.EffectiveUntil != nil && p.EffectiveUntil.Before(p.EffectiveFrom) {
		return errors.New("effectiveUntil must not be before effectiveFrom")
	}
	return nil
}
