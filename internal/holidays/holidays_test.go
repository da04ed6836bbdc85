package holidays

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seoul = time.FixedZone("KST", 9*60*60)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, seoul)
}

func newTestCalendar(t *testing.T) *Calendar {
	t.Helper()
	cal, err := NewCalendar(seoul)
	require.NoError(t, err)
	return cal
}

func TestFixedHolidays(t *testing.T) {
	cal := newTestCalendar(t)

	assert.True(t, cal.IsHoliday(day(2024, time.January, 1)))
	assert.True(t, cal.IsHoliday(day(2024, time.March, 1)))
	assert.True(t, cal.IsHoliday(day(2024, time.June, 6)))
	assert.True(t, cal.IsHoliday(day(2024, time.August, 15)))
	assert.True(t, cal.IsHoliday(day(2024, time.October, 3)))
	assert.True(t, cal.IsHoliday(day(2024, time.October, 9)))
	assert.True(t, cal.IsHoliday(day(2024, time.December, 25)))

	// An ordinary weekday.
	assert.False(t, cal.IsHoliday(day(2024, time.January, 2)))
}

func TestLunarHolidays(t *testing.T) {
	cal := newTestCalendar(t)

	// Seollal block 2024: Feb 9-11.
	assert.True(t, cal.IsHoliday(day(2024, time.February, 9)))
	assert.True(t, cal.IsHoliday(day(2024, time.February, 10)))
	assert.True(t, cal.IsHoliday(day(2024, time.February, 11)))

	// Buddha's Birthday 2024: May 15.
	assert.True(t, cal.IsHoliday(day(2024, time.May, 15)))

	// Chuseok block 2024: Sep 16-18.
	assert.True(t, cal.IsHoliday(day(2024, time.September, 16)))
	assert.True(t, cal.IsHoliday(day(2024, time.September, 17)))
	assert.True(t, cal.IsHoliday(day(2024, time.September, 18)))
}

func TestSubstituteHolidays(t *testing.T) {
	cal := newTestCalendar(t)

	// Seollal 2024 falls on a Saturday, so its block covers Sunday Feb 11
	// and Monday Feb 12 becomes a substitute holiday.
	assert.True(t, cal.IsHoliday(day(2024, time.February, 12)))

	// Children's Day 2024 is a Sunday; Monday May 6 substitutes.
	assert.True(t, cal.IsHoliday(day(2024, time.May, 6)))
}

func TestHolidayName(t *testing.T) {
	cal := newTestCalendar(t)

	assert.Equal(t, "Chuseok", cal.Name(day(2024, time.September, 17)))
	assert.Equal(t, "", cal.Name(day(2024, time.April, 2)))
}

func TestTimezoneNormalization(t *testing.T) {
	cal := newTestCalendar(t)

	// 2024-01-01 15:00 UTC is already 2024-01-02 in Seoul.
	utc := time.Date(2024, time.January, 1, 15, 0, 0, 0, time.UTC)
	assert.False(t, cal.IsHoliday(utc))

	// 2023-12-31 16:00 UTC is 2024-01-01 01:00 in Seoul.
	utc = time.Date(2023, time.December, 31, 16, 0, 0, 0, time.UTC)
	assert.True(t, cal.IsHoliday(utc))
}
