package timetable

import (
	"context"
	"testing"
	"time"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/appconf"
	"campus.hyuabot.org/internal/holidays"
	"campus.hyuabot.org/internal/lunar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestResolver(t *testing.T) (*Resolver, *campusdb.Queries, *time.Location) {
	t.Helper()

	client, err := campusdb.NewClient(campusdb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})

	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	cal, err := holidays.NewCalendar(loc)
	require.NoError(t, err)

	return NewResolver(client.Queries, cal, loc), client.Queries, loc
}

func seedSchedule(t *testing.T, q *campusdb.Queries) {
	t.Helper()
	ctx := context.Background()

	_, err := q.CreatePeriod(ctx, campusdb.CreatePeriodParams{
		Type: "semester", StartDate: "2023-09-01", EndDate: "2023-12-21",
	})
	require.NoError(t, err)
	_, err = q.CreatePeriod(ctx, campusdb.CreatePeriodParams{
		Type: "vacation", StartDate: "2023-12-22", EndDate: "2024-02-29",
	})
	require.NoError(t, err)

	require.NoError(t, q.CreateShuttleStop(ctx, campusdb.ShuttleStop{Name: "dormitory"}))
	require.NoError(t, q.CreateShuttleStop(ctx, campusdb.ShuttleStop{Name: "station"}))
	require.NoError(t, q.CreateShuttleRoute(ctx, campusdb.CreateShuttleRouteParams{Name: "DHDD", Tag: "DH"}))
	require.NoError(t, q.CreateRouteStop(ctx, campusdb.RouteStop{RouteName: "DHDD", StopName: "dormitory", StopOrder: 0}))
	require.NoError(t, q.CreateRouteStop(ctx, campusdb.RouteStop{RouteName: "DHDD", StopName: "station", StopOrder: 1, CumulativeTime: 600}))

	for _, params := range []campusdb.CreateTimetableParams{
		{PeriodType: "vacation", IsWeekdays: true, RouteName: "DHDD", DepartureTime: 8 * 3600},
		{PeriodType: "vacation", IsWeekdays: false, RouteName: "DHDD", DepartureTime: 10 * 3600},
		{PeriodType: "semester", IsWeekdays: true, RouteName: "DHDD", DepartureTime: 7 * 3600},
	} {
		_, err := q.CreateTimetable(ctx, params)
		require.NoError(t, err)
	}
}

func TestResolvePlainWeekday(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	// 2024-01-03 is a Wednesday inside the vacation period.
	at := time.Date(2024, time.January, 3, 9, 0, 0, 0, loc)
	result, err := resolver.Resolve(context.Background(), at, Query{})
	require.NoError(t, err)

	assert.Equal(t, "2024-01-03", result.Date)
	assert.Equal(t, "vacation", result.PeriodType)
	assert.True(t, result.IsWeekdays)
	assert.False(t, result.Halted)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, int64(8*3600), result.Entries[0].DepartureTime)
	assert.Equal(t, int64(8*3600+600), result.Entries[1].DepartureTime)

	// Resolution is a pure read; repeating it returns the same ordered rows.
	again, err := resolver.Resolve(context.Background(), at, Query{})
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestResolveSaturdayUsesWeekendTable(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	at := time.Date(2024, time.January, 6, 9, 0, 0, 0, loc)
	result, err := resolver.Resolve(context.Background(), at, Query{})
	require.NoError(t, err)

	assert.False(t, result.IsWeekdays)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, int64(10*3600), result.Entries[0].DepartureTime)
}

func TestResolvePublicHolidayUsesWeekendTable(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	// Seollal substitute holiday 2024-02-12 falls on a Monday.
	at := time.Date(2024, time.February, 12, 9, 0, 0, 0, loc)
	result, err := resolver.Resolve(context.Background(), at, Query{})
	require.NoError(t, err)

	assert.False(t, result.IsWeekdays)
	assert.False(t, result.Halted)
}

func TestResolveHaltSuspendsService(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	ctx := context.Background()
	require.NoError(t, q.CreateHoliday(ctx, campusdb.Holiday{
		Date: "2024-01-01", Calendar: "solar", Type: "halt",
	}))

	at := time.Date(2024, time.January, 1, 9, 0, 0, 0, loc)
	result, err := resolver.Resolve(ctx, at, Query{})
	require.NoError(t, err)

	assert.True(t, result.Halted)
	assert.Empty(t, result.Entries)
	assert.Equal(t, "vacation", result.PeriodType)
}

func TestResolveWeekendsOverrideOnWeekday(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	ctx := context.Background()
	require.NoError(t, q.CreateHoliday(ctx, campusdb.Holiday{
		Date: "2024-01-03", Calendar: "solar", Type: "weekends",
	}))

	at := time.Date(2024, time.January, 3, 9, 0, 0, 0, loc)
	result, err := resolver.Resolve(ctx, at, Query{})
	require.NoError(t, err)

	assert.False(t, result.IsWeekdays)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, int64(10*3600), result.Entries[0].DepartureTime)
}

func TestResolveLunarHoliday(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	ctx := context.Background()
	// Lunar 2023-12-24 corresponds to solar 2024-02-03. The lunar year is
	// still 2023 because Seollal 2024 has not yet arrived.
	require.NoError(t, q.CreateHoliday(ctx, campusdb.Holiday{
		Date: "2023-12-24", Calendar: "lunar", Type: "halt",
	}))

	at := time.Date(2024, time.February, 3, 9, 0, 0, 0, loc)
	result, err := resolver.Resolve(ctx, at, Query{})
	require.NoError(t, err)
	assert.True(t, result.Halted)
}

func TestResolveHaltWinsOverWeekendsOverride(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	ctx := context.Background()
	require.NoError(t, q.CreateHoliday(ctx, campusdb.Holiday{
		Date: "2024-01-03", Calendar: "solar", Type: "weekends",
	}))
	// Same solar day flagged halt on the lunar calendar.
	require.NoError(t, q.CreateHoliday(ctx, campusdb.Holiday{
		Date: "2023-11-22", Calendar: "lunar", Type: "halt",
	}))

	at := time.Date(2024, time.January, 3, 9, 0, 0, 0, loc)
	result, err := resolver.Resolve(ctx, at, Query{})
	require.NoError(t, err)
	assert.True(t, result.Halted)
}

func TestResolveFilters(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	at := time.Date(2024, time.January, 3, 9, 0, 0, 0, loc)

	result, err := resolver.Resolve(context.Background(), at, Query{Stops: []string{"station"}})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "station", result.Entries[0].StopName)
	assert.Equal(t, int64(8*3600+600), result.Entries[0].DepartureTime)

	result, err = resolver.Resolve(context.Background(), at, Query{Tags: []string{"DY"}})
	require.NoError(t, err)
	assert.Empty(t, result.Entries)
}

func TestResolveNoPeriod(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	at := time.Date(2025, time.January, 1, 9, 0, 0, 0, loc)
	_, err := resolver.Resolve(context.Background(), at, Query{})
	require.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestResolveNormalizesTimezone(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)
	_ = loc

	// 2024-01-02 23:30 UTC is already 2024-01-03 in Seoul.
	at := time.Date(2024, time.January, 2, 23, 30, 0, 0, time.UTC)
	result, err := resolver.Resolve(context.Background(), at, Query{})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-03", result.Date)
}

func TestResolveOutsideLunarCoverage(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	ctx := context.Background()

	// An operating period past the end of the lunar conversion table.
	_, err := q.CreatePeriod(ctx, campusdb.CreatePeriodParams{
		Type: "semester", StartDate: "2031-03-01", EndDate: "2031-06-21",
	})
	require.NoError(t, err)
	require.NoError(t, q.CreateShuttleStop(ctx, campusdb.ShuttleStop{Name: "dormitory"}))
	require.NoError(t, q.CreateShuttleRoute(ctx, campusdb.CreateShuttleRouteParams{Name: "DHDD", Tag: "DH"}))
	require.NoError(t, q.CreateRouteStop(ctx, campusdb.RouteStop{RouteName: "DHDD", StopName: "dormitory", StopOrder: 0}))
	_, err = q.CreateTimetable(ctx, campusdb.CreateTimetableParams{
		PeriodType: "semester", IsWeekdays: true, RouteName: "DHDD", DepartureTime: 7 * 3600,
	})
	require.NoError(t, err)

	// Monday 2031-04-07. With no lunar exceptions stored, the missing
	// conversion changes nothing and the day resolves normally.
	at := time.Date(2031, time.April, 7, 9, 0, 0, 0, loc)
	result, err := resolver.Resolve(ctx, at, Query{})
	require.NoError(t, err)
	assert.True(t, result.IsWeekdays)
	require.Len(t, result.Entries, 1)

	// Once a lunar exception exists it could be a halt on this very day,
	// so an unconvertible date must fail instead of resolving blind.
	require.NoError(t, q.CreateHoliday(ctx, campusdb.Holiday{
		Date: "2031-03-15", Calendar: "lunar", Type: "halt",
	}))
	_, err = resolver.Resolve(ctx, at, Query{})
	require.Error(t, err)
	assert.ErrorIs(t, err, lunar.ErrOutOfRange)
}

func TestResolveHaltOnUncoveredDateStillNotFound(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	ctx := context.Background()
	// 2025-01-01 has a halt exception but no period covers it; the missing
	// period is reported before the halt is consulted.
	require.NoError(t, q.CreateHoliday(ctx, campusdb.Holiday{
		Date: "2025-01-01", Calendar: "solar", Type: "halt",
	}))

	at := time.Date(2025, time.January, 1, 9, 0, 0, 0, loc)
	_, err := resolver.Resolve(ctx, at, Query{})
	require.ErrorIs(t, err, ErrPeriodNotFound)
}

func TestResolveClassificationOverrides(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	// A vacation-period Wednesday, queried with overrides.
	at := time.Date(2024, time.January, 3, 9, 0, 0, 0, loc)

	result, err := resolver.Resolve(context.Background(), at, Query{
		Weekdays: []bool{false},
		Stops:    []string{"dormitory"},
	})
	require.NoError(t, err)
	assert.True(t, result.IsWeekdays, "reported classification keeps the calendar value")
	require.Len(t, result.Entries, 1)
	assert.Equal(t, int64(10*3600), result.Entries[0].DepartureTime)

	result, err = resolver.Resolve(context.Background(), at, Query{
		PeriodTypes: []string{"semester"},
		Stops:       []string{"dormitory"},
	})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, int64(7*3600), result.Entries[0].DepartureTime)
}

func TestResolvePeriodOverrideCoversUnclassifiedDate(t *testing.T) {
	resolver, q, loc := newTestResolver(t)
	seedSchedule(t, q)

	// No period covers 2025, but an explicit period filter still resolves.
	at := time.Date(2025, time.April, 2, 9, 0, 0, 0, loc)
	result, err := resolver.Resolve(context.Background(), at, Query{
		PeriodTypes: []string{"vacation"},
		Stops:       []string{"dormitory"},
	})
	require.NoError(t, err)
	assert.Empty(t, result.PeriodType)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, int64(8*3600), result.Entries[0].DepartureTime)
}
