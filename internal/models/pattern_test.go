package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayMaskWireValues(t *testing.T) {
	assert.Equal(t, DayMask(1), DaySunday)
	assert.Equal(t, DayMask(2), DayMonday)
	assert.Equal(t, DayMask(4), DayTuesday)
	assert.Equal(t, DayMask(8), DayWednesday)
	assert.Equal(t, DayMask(16), DayThursday)
	assert.Equal(t, DayMask(32), DayFriday)
	assert.Equal(t, DayMask(64), DaySaturday)
	assert.Equal(t, DayMask(127), DayMaskAll)
	assert.Equal(t, DayMask(62), DayMaskWeekdays)
	assert.Equal(t, DayMask(65), DayMaskWeekend)
}

func TestDayMaskRoundTrip(t *testing.T) {
	cases := []DayMask{
		DayMaskWeekdays,
		DayMaskWeekend,
		DayMonday | DayWednesday | DayFriday, // 42
		DayTuesday | DayThursday,             // 20
		DayMaskAll,
	}
	for _, mask := range cases {
		parsed, err := DayMaskFromNames(mask.Names())
		require.NoError(t, err)
		assert.Equal(t, mask, parsed)
	}
}

func TestDayMaskFromNamesRejectsUnknown(t *testing.T) {
	_, err := DayMaskFromNames([]string{"MONDAY", "FUNDAY"})
	assert.Error(t, err)

	mask, err := DayMaskFromNames([]string{" monday ", "Friday"})
	require.NoError(t, err)
	assert.Equal(t, DayMonday|DayFriday, mask)
}

func TestParseClock(t *testing.T) {
	minute, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, 570, minute)
	assert.Equal(t, "09:30", FormatClock(minute))

	_, err = ParseClock("25:00")
	assert.Error(t, err)
	_, err = ParseClock("9am")
	assert.Error(t, err)
}

func TestWeeklyPatternValidate(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	valid := WeeklyPattern{Days: DayMaskWeekdays, StartMinute: 540, EndMinute: 600, EffectiveFrom: from, EffectiveUntil: &until}
	require.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*WeeklyPattern)
	}{
		{"zero day mask", func(p *WeeklyPattern) { p.Days = 0 }},
		{"stray bits", func(p *WeeklyPattern) { p.Days = 255 }},
		{"start equals end", func(p *WeeklyPattern) { p.EndMinute = p.StartMinute }},
		{"start after end", func(p *WeeklyPattern) { p.StartMinute = p.EndMinute + 30 }},
		{"missing effectiveFrom", func(p *WeeklyPattern) { p.EffectiveFrom = time.Time{} }},
		{"until before from", func(p *WeeklyPattern) { u := from.AddDate(0, 0, -1); p.EffectiveUntil = &u }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := valid
			tc.mutate(&p)
			assert.Error(t, p.Validate())
		})
	}
}
