package lunar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seoul = time.FixedZone("KST", 9*60*60)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, seoul)
}

func TestToLunarNewYear(t *testing.T) {
	tests := []struct {
		solar time.Time
		year  int
	}{
		{date(2020, time.January, 25), 2020},
		{date(2021, time.February, 12), 2021},
		{date(2022, time.February, 1), 2022},
		{date(2023, time.January, 22), 2023},
		{date(2024, time.February, 10), 2024},
		{date(2025, time.January, 29), 2025},
		{date(2026, time.February, 17), 2026},
		{date(2027, time.February, 6), 2027},
		{date(2028, time.January, 26), 2028},
		{date(2029, time.February, 13), 2029},
		{date(2030, time.February, 3), 2030},
	}

	for _, tc := range tests {
		got, err := ToLunar(tc.solar)
		require.NoError(t, err)
		assert.Equal(t, Date{Year: tc.year, Month: 1, Day: 1}, got, "seollal %d", tc.year)
	}
}

func TestToLunarHolidayAnchors(t *testing.T) {
	tests := []struct {
		name  string
		solar time.Time
		want  Date
	}{
		{"buddha 2022", date(2022, time.May, 8), Date{Year: 2022, Month: 4, Day: 8}},
		{"buddha 2023", date(2023, time.May, 27), Date{Year: 2023, Month: 4, Day: 8}},
		{"buddha 2024", date(2024, time.May, 15), Date{Year: 2024, Month: 4, Day: 8}},
		{"buddha 2025", date(2025, time.May, 5), Date{Year: 2025, Month: 4, Day: 8}},
		{"chuseok 2022", date(2022, time.September, 10), Date{Year: 2022, Month: 8, Day: 15}},
		{"chuseok 2023", date(2023, time.September, 29), Date{Year: 2023, Month: 8, Day: 15}},
		{"chuseok 2024", date(2024, time.September, 17), Date{Year: 2024, Month: 8, Day: 15}},
		{"chuseok 2025", date(2025, time.October, 6), Date{Year: 2025, Month: 8, Day: 15}},
		{"chuseok 2026", date(2026, time.September, 25), Date{Year: 2026, Month: 8, Day: 15}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToLunar(tc.solar)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestToLunarBeforeSeollalBelongsToPreviousYear(t *testing.T) {
	// 2024-01-01 precedes Seollal 2024 (Feb 10), so it sits late in lunar 2023.
	got, err := ToLunar(date(2024, time.January, 1))
	require.NoError(t, err)
	assert.Equal(t, 2023, got.Year)
	assert.Equal(t, 11, got.Month)
}

func TestFromLunarRoundTrip(t *testing.T) {
	anchors := []Date{
		{Year: 2024, Month: 1, Day: 1},
		{Year: 2024, Month: 4, Day: 8},
		{Year: 2024, Month: 8, Day: 15},
		{Year: 2025, Month: 6, Day: 10, Leap: true},
	}
	for _, d := range anchors {
		solar, err := FromLunar(d, seoul)
		require.NoError(t, err)
		back, err := ToLunar(solar)
		require.NoError(t, err)
		assert.Equal(t, d, back)
	}
}

func TestFromLunarKnownDates(t *testing.T) {
	solar, err := FromLunar(Date{Year: 2024, Month: 8, Day: 15}, seoul)
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.September, 17), solar)

	solar, err = FromLunar(Date{Year: 2025, Month: 4, Day: 8}, seoul)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.May, 5), solar)
}

func TestFromLunarRejectsBadLeap(t *testing.T) {
	_, err := FromLunar(Date{Year: 2024, Month: 3, Day: 1, Leap: true}, seoul)
	assert.Error(t, err)
}

func TestOutOfRange(t *testing.T) {
	_, err := ToLunar(date(2019, time.June, 1))
	assert.ErrorIs(t, err, ErrOutOfRange)

	_, err = ToLunar(date(2031, time.June, 1))
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestNewYearDate(t *testing.T) {
	lny, err := NewYearDate(2025, seoul)
	require.NoError(t, err)
	assert.Equal(t, date(2025, time.January, 29), lny)

	_, err = NewYearDate(1999, seoul)
	assert.ErrorIs(t, err, ErrOutOfRange)
}
