// Package timetable resolves which shuttle departures apply at a moment in
// time. Classification happens in two steps: the date picks an operating
// period, then the day type picks the weekday or weekend table, with stored
// service exceptions checked on both the solar and lunar calendars.
package timetable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/holidays"
	"campus.hyuabot.org/internal/lunar"
)

// ErrPeriodNotFound reports that no operating period covers the date.
var ErrPeriodNotFound = errors.New("no operating period covers the requested date")

// Resolver classifies timestamps against the stored shuttle schedule.
type Resolver struct {
	queries  *campusdb.Queries
	holidays *holidays.Calendar
	loc      *time.Location
}

func NewResolver(queries *campusdb.Queries, cal *holidays.Calendar, loc *time.Location) *Resolver {
	return &Resolver{queries: queries, holidays: cal, loc: loc}
}

// Query narrows the resolved departures. Empty slices leave a dimension
// unconstrained; nil time bounds are open on that side and both bounds are
// inclusive, measured at the stop after its offset is applied.
//
// PeriodTypes and Weekdays, when non-empty, replace the values the resolver
// would classify from the timestamp. A period override also relaxes the
// requirement that some operating period covers the date.
type Query struct {
	PeriodTypes []string
	Weekdays    []bool
	Routes      []string
	Tags        []string
	Stops       []string
	StartTime   *int64 // seconds since midnight
	EndTime     *int64
}

// Result is the outcome of resolving one timestamp. When Halted is true the
// service is suspended for the day and Entries is empty.
type Result struct {
	Date       string
	PeriodType string
	IsWeekdays bool
	Halted     bool
	Entries    []campusdb.TimetableViewRow
}

// Resolve classifies the timestamp and returns the matching departures in
// insertion order.
func (r *Resolver) Resolve(ctx context.Context, at time.Time, query Query) (Result, error) {
	local := at.In(r.loc)
	date := local.Format("2006-01-02")

	periodType := ""
	period, err := r.queries.GetPeriodForDate(ctx, date)
	switch {
	case err == nil:
		periodType = period.Type
	case !errors.Is(err, campusdb.ErrNotFound):
		return Result{}, fmt.Errorf("error classifying period for %s: %v", date, err)
	case len(query.PeriodTypes) == 0:
		return Result{}, fmt.Errorf("%w: %s", ErrPeriodNotFound, date)
	}

	isWeekdays, halted, err := r.classifyDay(ctx, local)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Date:       date,
		PeriodType: periodType,
		IsWeekdays: isWeekdays,
		Halted:     halted,
	}
	if halted {
		return result, nil
	}

	periodTypes := query.PeriodTypes
	if len(periodTypes) == 0 {
		periodTypes = []string{periodType}
	}
	weekdayFlags := query.Weekdays
	if len(weekdayFlags) == 0 {
		weekdayFlags = []bool{isWeekdays}
	}

	entries, err := r.queries.ListTimetableView(ctx, campusdb.ListTimetableViewParams{
		PeriodTypes: periodTypes,
		Weekdays:    weekdayFlags,
		Routes:      query.Routes,
		Tags:        query.Tags,
		Stops:       query.Stops,
		StartTime:   query.StartTime,
		EndTime:     query.EndTime,
	})
	if err != nil {
		return Result{}, fmt.Errorf("error loading timetable for %s: %v", date, err)
	}

	result.Entries = entries
	return result, nil
}

// classifyDay decides between the weekday and weekend tables. Stored
// exceptions win over the plain calendar: a halt suspends service outright
// and a weekends exception forces the weekend table even on a weekday.
func (r *Resolver) classifyDay(ctx context.Context, local time.Time) (isWeekdays, halted bool, err error) {
	lunarDate := ""
	converted, convErr := lunar.ToLunar(local)
	if convErr == nil {
		lunarDate = fmt.Sprintf("%04d-%02d-%02d", converted.Year, converted.Month, converted.Day)
	} else {
		// Without the lunar equivalent, stored lunar exceptions cannot be
		// matched. Fail loudly when any exist rather than silently running
		// a schedule that might be halted.
		lunarCount, countErr := r.queries.CountHolidaysByCalendar(ctx, "lunar")
		if countErr != nil {
			return false, false, fmt.Errorf("error loading service exceptions: %v", countErr)
		}
		if lunarCount > 0 {
			return false, false, fmt.Errorf(
				"cannot check lunar service exceptions for %s: %w",
				local.Format("2006-01-02"), convErr)
		}
	}

	exceptions, err := r.queries.GetHolidaysForDates(ctx, local.Format("2006-01-02"), lunarDate)
	if err != nil {
		return false, false, fmt.Errorf("error loading service exceptions: %v", err)
	}

	forceWeekend := false
	for _, exception := range exceptions {
		switch exception.Type {
		case "halt":
			return false, true, nil
		case "weekends":
			forceWeekend = true
		}
	}
	if forceWeekend {
		return false, false, nil
	}

	weekday := local.Weekday()
	if weekday == time.Saturday || weekday == time.Sunday || r.holidays.IsHoliday(local) {
		return false, false, nil
	}
	return true, false, nil
}
