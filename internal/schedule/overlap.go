// Package schedule implements the pure overlap reasoning for recurring
// weekly patterns. It performs no I/O; callers load the patterns and decide
// what a conflict means for them.
package schedule

import "github.com/noah-isme/tutor-match-api/internal/models"

// GraceMinutes is the mandatory buffer between two same-day sessions for the
// same person. Two windows separated by at least this many minutes do not
// conflict even though they share a day.
const GraceMinutes = 90

// Overlaps reports whether two recurring weekly patterns collide.
//
// A collision requires all of:
//   - at least one shared weekday,
//   - intersecting effective date ranges (inclusive bounds, an absent
//     effectiveUntil means open-ended),
//   - time windows closer than GraceMinutes apart. The separation is
//     max(start) - min(end); it is negative when the windows overlap, so a
//     direct overlap always collides and a gap of 90+ minutes never does.
//
// Incomplete patterns yield false: without a full pattern there is no
// evidence of a conflict, and this path must stay non-blocking. Write paths
// validate patterns separately.
func Overlaps(a, b models.WeeklyPattern) bool {
	if !a.Complete() || !b.Complete() {
		return false
	}
	if !a.Days.Intersects(b.Days) {
		return false
	}
	if !dateRangesIntersect(a, b) {
		return false
	}
	return separationMinutes(a, b) < GraceMinutes
}

// ConflictsWithAny reports whether candidate collides with any existing
// pattern. Used for both contract eligibility and self-availability checks.
func ConflictsWithAny(candidate models.WeeklyPattern, existing []models.WeeklyPattern) bool {
	for _, p := range existing {
		if Overlaps(candidate, p) {
			return true
		}
	}
	return false
}

// separationMinutes is the gap between the two time windows on a shared day.
// Negative when they overlap.
func separationMinutes(a, b models.WeeklyPattern) int {
	latestStart := a.StartMinute
	if b.StartMinute > latestStart {
		latestStart = b.StartMinute
	}
	earliestEnd := a.EndMinute
	if b.EndMinute < earliestEnd {
		earliestEnd = b.EndMinute
	}
	return latestStart - earliestEnd
}

func dateRangesIntersect(a, b models.WeeklyPattern) bool {
	if a.EffectiveUntil != nil && b.EffectiveFrom.After(*a.EffectiveUntil) {
		return false
	}
	if b.EffectiveUntil != nil && a.EffectiveFrom.After(*b.EffectiveUntil) {
		return false
	}
	return true
}
