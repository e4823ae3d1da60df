package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/tutor-match-api/internal/models"
)

func date(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func pattern(days models.DayMask, start, end string, from string, until string) models.WeeklyPattern {
	startMin, err := models.ParseClock(start)
	if err != nil {
		panic(err)
	}
	endMin, err := models.ParseClock(end)
	if err != nil {
		panic(err)
	}
	p := models.WeeklyPattern{
		Days:          days,
		StartMinute:   startMin,
		EndMinute:     endMin,
		EffectiveFrom: date(from),
	}
	if until != "" {
		u := date(until)
		p.EffectiveUntil = &u
	}
	return p
}

func TestOverlapsDirectTimeOverlap(t *testing.T) {
	a := pattern(models.DayMaskWeekdays, "09:00", "10:00", "2024-01-01", "2024-12-31")
	b := pattern(models.DayMonday, "09:30", "10:30", "2024-01-01", "2024-12-31")

	assert.True(t, Overlaps(a, b), "Mon-Fri 09:00-10:00 must collide with Mon 09:30-10:30")
	assert.True(t, Overlaps(b, a))
}

func TestOverlapsDayDisjoint(t *testing.T) {
	a := pattern(models.DayMonday|models.DayWednesday, "09:00", "10:00", "2024-01-01", "")
	b := pattern(models.DayTuesday|models.DayThursday, "09:00", "10:00", "2024-01-01", "")

	assert.False(t, Overlaps(a, b), "disjoint day masks can never collide")
	assert.False(t, Overlaps(b, a))
}

func TestOverlapsGracePeriodBoundary(t *testing.T) {
	base := pattern(models.DayMonday, "09:00", "10:00", "2024-01-01", "2024-06-30")

	exactGap := pattern(models.DayMonday, "11:30", "12:30", "2024-01-01", "2024-06-30")
	assert.False(t, Overlaps(base, exactGap), "exactly 90 minutes apart is allowed")
	assert.False(t, Overlaps(exactGap, base))

	shortGap := pattern(models.DayMonday, "11:29", "12:29", "2024-01-01", "2024-06-30")
	assert.True(t, Overlaps(base, shortGap), "89 minutes apart is too close")
	assert.True(t, Overlaps(shortGap, base))
}

func TestOverlapsGraceRequiresSharedDay(t *testing.T) {
	// A close gap only matters when the patterns actually share a weekday.
	a := pattern(models.DayMonday, "09:00", "10:00", "2024-01-01", "")
	b := pattern(models.DayWednesday, "10:30", "11:30", "2024-01-01", "")
	assert.False(t, Overlaps(a, b))
}

func TestOverlapsDateRangeBoundary(t *testing.T) {
	a := pattern(models.DayMonday, "09:00", "10:00", "2024-01-01", "2024-06-30")
	b := pattern(models.DayMonday, "09:00", "10:00", "2024-06-30", "")

	assert.True(t, Overlaps(a, b), "ranges touching at 2024-06-30 intersect inclusively")
	assert.True(t, Overlaps(b, a))

	later := pattern(models.DayMonday, "09:00", "10:00", "2024-07-01", "")
	assert.False(t, Overlaps(a, later), "range starting the day after a ends does not intersect")
	assert.False(t, Overlaps(later, a))
}

func TestOverlapsOpenEndedRanges(t *testing.T) {
	a := pattern(models.DayFriday, "14:00", "15:00", "2024-01-01", "")
	b := pattern(models.DayFriday, "14:30", "15:30", "2030-01-01", "")

	assert.True(t, Overlaps(a, b), "two open-ended ranges always intersect eventually")
}

func TestOverlapsIncompletePatterns(t *testing.T) {
	complete := pattern(models.DayMonday, "09:00", "10:00", "2024-01-01", "")

	noDays := complete
	noDays.Days = 0
	assert.False(t, Overlaps(complete, noDays))
	assert.False(t, Overlaps(noDays, complete))

	noWindow := complete
	noWindow.StartMinute = 0
	noWindow.EndMinute = 0
	assert.False(t, Overlaps(complete, noWindow))

	noFrom := complete
	noFrom.EffectiveFrom = time.Time{}
	assert.False(t, Overlaps(complete, noFrom))
}

func TestOverlapsSymmetry(t *testing.T) {
	patterns := []models.WeeklyPattern{
		pattern(models.DayMaskWeekdays, "09:00", "10:00", "2024-01-01", "2024-12-31"),
		pattern(models.DayMonday, "09:30", "10:30", "2024-01-01", ""),
		pattern(models.DayMaskWeekend, "08:00", "12:00", "2024-03-01", "2024-04-01"),
		pattern(models.DayMonday|models.DayWednesday|models.DayFriday, "11:30", "12:30", "2024-01-01", "2024-06-30"),
		pattern(models.DayTuesday|models.DayThursday, "16:00", "17:00", "2025-01-01", ""),
		{},
	}
	for i, a := range patterns {
		for j, b := range patterns {
			assert.Equal(t, Overlaps(a, b), Overlaps(b, a), "Overlaps must be symmetric for pair %d/%d", i, j)
		}
	}
}

func TestConflictsWithAny(t *testing.T) {
	candidate := pattern(models.DayMaskWeekdays, "09:00", "10:00", "2024-01-01", "2024-12-31")
	existing := []models.WeeklyPattern{
		pattern(models.DaySaturday, "09:00", "10:00", "2024-01-01", ""),
		pattern(models.DayMonday, "09:30", "10:30", "2024-01-01", "2024-12-31"),
	}

	require.True(t, ConflictsWithAny(candidate, existing))
	assert.False(t, ConflictsWithAny(candidate, existing[:1]))
	assert.False(t, ConflictsWithAny(candidate, nil))
}
