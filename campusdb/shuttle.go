package campusdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Period is one operating regime of the shuttle service. Its date range is
// inclusive on both ends; overlapping periods are legal and classification
// prefers the most recently created one.
type Period struct {
	Seq       int64  // period_seq
	Type      string // period_type (semester | vacation | vacation_session)
	StartDate string // period_start (YYYY-MM-DD)
	EndDate   string // period_end (YYYY-MM-DD)
	CreatedAt string // created_at
}

// Holiday is a stored service exception. Type "weekends" forces the date
// onto the weekend timetable; "halt" suspends service entirely.
type Holiday struct {
	Date     string // holiday_date (YYYY-MM-DD; lunar dates use the lunar year)
	Calendar string // calendar_type (solar | lunar)
	Type     string // holiday_type (weekends | halt)
}

// ShuttleRoute is a named shuttle path.
type ShuttleRoute struct {
	Name      string         // route_name
	Tag       string         // route_tag
	Korean    sql.NullString // korean_name
	English   sql.NullString // english_name
	StartStop sql.NullString // start_stop
	EndStop   sql.NullString // end_stop
}

// ShuttleStop is a physical stop location.
type ShuttleStop struct {
	Name      string  // stop_name
	Latitude  float64 // latitude
	Longitude float64 // longitude
}

// RouteStop associates a stop with a route, ordered by StopOrder, with the
// cumulative travel time in seconds from the route start.
type RouteStop struct {
	RouteName      string // route_name
	StopName       string // stop_name
	StopOrder      int64  // stop_order
	CumulativeTime int64  // cumulative_time (seconds)
}

// Timetable is one scheduled departure from a route's first stop.
type Timetable struct {
	Seq           int64  // timetable_seq
	PeriodType    string // period_type
	IsWeekdays    bool   // is_weekdays
	RouteName     string // route_name
	DepartureTime int64  // departure_time (seconds since midnight)
}

// TimetableViewRow is the denormalized read model: one departure at one
// stop, with the stop's offset already applied.
type TimetableViewRow struct {
	Seq           int64
	PeriodType    string
	IsWeekdays    bool
	RouteName     string
	RouteTag      string
	StopName      string
	DepartureTime int64 // seconds since midnight at this stop
}

type CreatePeriodParams struct {
	Type      string
	StartDate string
	EndDate   string
}

func (q *Queries) CreatePeriod(ctx context.Context, params CreatePeriodParams) (Period, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO shuttle_periods (period_type, period_start, period_end)
		VALUES (?, ?, ?)
		RETURNING period_seq, period_type, period_start, period_end, created_at;
	`, params.Type, params.StartDate, params.EndDate)

	var p Period
	err := row.Scan(&p.Seq, &p.Type, &p.StartDate, &p.EndDate, &p.CreatedAt)
	if err != nil {
		return Period{}, fmt.Errorf("error inserting period: %w", wrapWriteError(err))
	}
	return p, nil
}

func (q *Queries) ListPeriods(ctx context.Context) ([]Period, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT period_seq, period_type, period_start, period_end, created_at
		FROM shuttle_periods ORDER BY period_seq;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var periods []Period
	for rows.Next() {
		var p Period
		if err := rows.Scan(&p.Seq, &p.Type, &p.StartDate, &p.EndDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

func (q *Queries) GetPeriod(ctx context.Context, seq int64) (Period, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT period_seq, period_type, period_start, period_end, created_at
		FROM shuttle_periods WHERE period_seq = ?;
	`, seq)

	var p Period
	err := row.Scan(&p.Seq, &p.Type, &p.StartDate, &p.EndDate, &p.CreatedAt)
	return p, wrapReadError(err)
}

// GetPeriodForDate returns the period covering the given date. Overlaps
// resolve to the most recently created period; type id descending breaks
// exact creation-time ties.
func (q *Queries) GetPeriodForDate(ctx context.Context, date string) (Period, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT period_seq, period_type, period_start, period_end, created_at
		FROM shuttle_periods
		WHERE period_start <= ? AND period_end >= ?
		ORDER BY created_at DESC, period_type DESC
		LIMIT 1;
	`, date, date)

	var p Period
	err := row.Scan(&p.Seq, &p.Type, &p.StartDate, &p.EndDate, &p.CreatedAt)
	return p, wrapReadError(err)
}

func (q *Queries) DeletePeriod(ctx context.Context, seq int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM shuttle_periods WHERE period_seq = ?;`, seq)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateHoliday(ctx context.Context, h Holiday) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO shuttle_holidays (holiday_date, calendar_type, holiday_type)
		VALUES (?, ?, ?);
	`, h.Date, h.Calendar, h.Type)
	if err != nil {
		return fmt.Errorf("error inserting holiday: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListHolidays(ctx context.Context) ([]Holiday, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT holiday_date, calendar_type, holiday_type
		FROM shuttle_holidays ORDER BY holiday_date, calendar_type;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.Date, &h.Calendar, &h.Type); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// GetHolidaysForDates returns holiday rows matching either the solar date
// on the solar calendar or the lunar-equivalent date on the lunar calendar.
// Both calendars must be checked because a lunar holiday's solar date moves
// year to year.
func (q *Queries) GetHolidaysForDates(ctx context.Context, solarDate, lunarDate string) ([]Holiday, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT holiday_date, calendar_type, holiday_type
		FROM shuttle_holidays
		WHERE (calendar_type = 'solar' AND holiday_date = ?)
		   OR (calendar_type = 'lunar' AND holiday_date = ?);
	`, solarDate, lunarDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var holidays []Holiday
	for rows.Next() {
		var h Holiday
		if err := rows.Scan(&h.Date, &h.Calendar, &h.Type); err != nil {
			return nil, err
		}
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// CountHolidaysByCalendar counts stored service exceptions on one calendar.
func (q *Queries) CountHolidaysByCalendar(ctx context.Context, calendar string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM shuttle_holidays WHERE calendar_type = ?;
	`, calendar).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (q *Queries) DeleteHoliday(ctx context.Context, date, calendar string) error {
	result, err := q.db.ExecContext(ctx, `
		DELETE FROM shuttle_holidays WHERE holiday_date = ? AND calendar_type = ?;
	`, date, calendar)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

type CreateShuttleRouteParams struct {
	Name      string
	Tag       string
	Korean    sql.NullString
	English   sql.NullString
	StartStop sql.NullString
	EndStop   sql.NullString
}

func (q *Queries) CreateShuttleRoute(ctx context.Context, params CreateShuttleRouteParams) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO shuttle_routes (route_name, route_tag, korean_name, english_name, start_stop, end_stop)
		VALUES (?, ?, ?, ?, ?, ?);
	`, params.Name, params.Tag, params.Korean, params.English, params.StartStop, params.EndStop)
	if err != nil {
		return fmt.Errorf("error inserting route: %w", wrapWriteError(err))
	}
	return nil
}

type ListShuttleRoutesParams struct {
	Name string // substring match, empty matches all
	Tag  string // exact match, empty matches all
}

func (q *Queries) ListShuttleRoutes(ctx context.Context, params ListShuttleRoutesParams) ([]ShuttleRoute, error) {
	query := `
		SELECT route_name, route_tag, korean_name, english_name, start_stop, end_stop
		FROM shuttle_routes WHERE 1=1`
	var args []interface{}
	if params.Name != "" {
		query += " AND route_name LIKE ?"
		args = append(args, "%"+params.Name+"%")
	}
	if params.Tag != "" {
		query += " AND route_tag = ?"
		args = append(args, params.Tag)
	}
	query += " ORDER BY route_name;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var routes []ShuttleRoute
	for rows.Next() {
		var r ShuttleRoute
		if err := rows.Scan(&r.Name, &r.Tag, &r.Korean, &r.English, &r.StartStop, &r.EndStop); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (q *Queries) GetShuttleRoute(ctx context.Context, name string) (ShuttleRoute, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT route_name, route_tag, korean_name, english_name, start_stop, end_stop
		FROM shuttle_routes WHERE route_name = ?;
	`, name)

	var r ShuttleRoute
	err := row.Scan(&r.Name, &r.Tag, &r.Korean, &r.English, &r.StartStop, &r.EndStop)
	return r, wrapReadError(err)
}

type UpdateShuttleRouteParams struct {
	Tag       *string
	Korean    *string
	English   *string
	StartStop *string
	EndStop   *string
}

// UpdateShuttleRoute patches the non-nil fields of an existing route.
func (q *Queries) UpdateShuttleRoute(ctx context.Context, name string, params UpdateShuttleRouteParams) error {
	var sets []string
	var args []interface{}
	if params.Tag != nil {
		sets = append(sets, "route_tag = ?")
		args = append(args, *params.Tag)
	}
	if params.Korean != nil {
		sets = append(sets, "korean_name = ?")
		args = append(args, *params.Korean)
	}
	if params.English != nil {
		sets = append(sets, "english_name = ?")
		args = append(args, *params.English)
	}
	if params.StartStop != nil {
		sets = append(sets, "start_stop = ?")
		args = append(args, *params.StartStop)
	}
	if params.EndStop != nil {
		sets = append(sets, "end_stop = ?")
		args = append(args, *params.EndStop)
	}
	if len(sets) == 0 {
		// Nothing to patch; still report absence for unknown routes.
		_, err := q.GetShuttleRoute(ctx, name)
		return err
	}

	args = append(args, name)
	result, err := q.db.ExecContext(ctx,
		"UPDATE shuttle_routes SET "+strings.Join(sets, ", ")+" WHERE route_name = ?;", args...)
	if err != nil {
		return wrapWriteError(err)
	}
	return requireAffected(result)
}

func (q *Queries) DeleteShuttleRoute(ctx context.Context, name string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM shuttle_routes WHERE route_name = ?;`, name)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateShuttleStop(ctx context.Context, stop ShuttleStop) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO shuttle_stops (stop_name, latitude, longitude) VALUES (?, ?, ?);
	`, stop.Name, stop.Latitude, stop.Longitude)
	if err != nil {
		return fmt.Errorf("error inserting stop: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListShuttleStops(ctx context.Context, name string) ([]ShuttleStop, error) {
	query := `SELECT stop_name, latitude, longitude FROM shuttle_stops`
	var args []interface{}
	if name != "" {
		query += " WHERE stop_name LIKE ?"
		args = append(args, "%"+name+"%")
	}
	query += " ORDER BY stop_name;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var stops []ShuttleStop
	for rows.Next() {
		var s ShuttleStop
		if err := rows.Scan(&s.Name, &s.Latitude, &s.Longitude); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

func (q *Queries) GetShuttleStop(ctx context.Context, name string) (ShuttleStop, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT stop_name, latitude, longitude FROM shuttle_stops WHERE stop_name = ?;
	`, name)

	var s ShuttleStop
	err := row.Scan(&s.Name, &s.Latitude, &s.Longitude)
	return s, wrapReadError(err)
}

type UpdateShuttleStopParams struct {
	Latitude  *float64
	Longitude *float64
}

func (q *Queries) UpdateShuttleStop(ctx context.Context, name string, params UpdateShuttleStopParams) error {
	var sets []string
	var args []interface{}
	if params.Latitude != nil {
		sets = append(sets, "latitude = ?")
		args = append(args, *params.Latitude)
	}
	if params.Longitude != nil {
		sets = append(sets, "longitude = ?")
		args = append(args, *params.Longitude)
	}
	if len(sets) == 0 {
		_, err := q.GetShuttleStop(ctx, name)
		return err
	}

	args = append(args, name)
	result, err := q.db.ExecContext(ctx,
		"UPDATE shuttle_stops SET "+strings.Join(sets, ", ")+" WHERE stop_name = ?;", args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) DeleteShuttleStop(ctx context.Context, name string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM shuttle_stops WHERE stop_name = ?;`, name)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateRouteStop(ctx context.Context, rs RouteStop) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO shuttle_route_stops (route_name, stop_name, stop_order, cumulative_time)
		VALUES (?, ?, ?, ?);
	`, rs.RouteName, rs.StopName, rs.StopOrder, rs.CumulativeTime)
	if err != nil {
		return fmt.Errorf("error inserting route stop: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListRouteStops(ctx context.Context, routeName string) ([]RouteStop, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT route_name, stop_name, stop_order, cumulative_time
		FROM shuttle_route_stops WHERE route_name = ? ORDER BY stop_order;
	`, routeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var stops []RouteStop
	for rows.Next() {
		var rs RouteStop
		if err := rows.Scan(&rs.RouteName, &rs.StopName, &rs.StopOrder, &rs.CumulativeTime); err != nil {
			return nil, err
		}
		stops = append(stops, rs)
	}
	return stops, rows.Err()
}

type UpdateRouteStopParams struct {
	StopOrder      *int64
	CumulativeTime *int64
}

func (q *Queries) UpdateRouteStop(ctx context.Context, routeName, stopName string, params UpdateRouteStopParams) error {
	var sets []string
	var args []interface{}
	if params.StopOrder != nil {
		sets = append(sets, "stop_order = ?")
		args = append(args, *params.StopOrder)
	}
	if params.CumulativeTime != nil {
		sets = append(sets, "cumulative_time = ?")
		args = append(args, *params.CumulativeTime)
	}
	if len(sets) == 0 {
		return nil
	}

	args = append(args, routeName, stopName)
	result, err := q.db.ExecContext(ctx,
		"UPDATE shuttle_route_stops SET "+strings.Join(sets, ", ")+" WHERE route_name = ? AND stop_name = ?;", args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) DeleteRouteStop(ctx context.Context, routeName, stopName string) error {
	result, err := q.db.ExecContext(ctx, `
		DELETE FROM shuttle_route_stops WHERE route_name = ? AND stop_name = ?;
	`, routeName, stopName)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

type CreateTimetableParams struct {
	PeriodType    string
	IsWeekdays    bool
	RouteName     string
	DepartureTime int64
}

func (q *Queries) CreateTimetable(ctx context.Context, params CreateTimetableParams) (Timetable, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO shuttle_timetables (period_type, is_weekdays, route_name, departure_time)
		VALUES (?, ?, ?, ?)
		RETURNING timetable_seq, period_type, is_weekdays, route_name, departure_time;
	`, params.PeriodType, params.IsWeekdays, params.RouteName, params.DepartureTime)

	var t Timetable
	err := row.Scan(&t.Seq, &t.PeriodType, &t.IsWeekdays, &t.RouteName, &t.DepartureTime)
	if err != nil {
		return Timetable{}, fmt.Errorf("error inserting timetable: %w", wrapWriteError(err))
	}
	return t, nil
}

func (q *Queries) GetTimetable(ctx context.Context, seq int64) (Timetable, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT timetable_seq, period_type, is_weekdays, route_name, departure_time
		FROM shuttle_timetables WHERE timetable_seq = ?;
	`, seq)

	var t Timetable
	err := row.Scan(&t.Seq, &t.PeriodType, &t.IsWeekdays, &t.RouteName, &t.DepartureTime)
	return t, wrapReadError(err)
}

func (q *Queries) ListTimetables(ctx context.Context) ([]Timetable, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT timetable_seq, period_type, is_weekdays, route_name, departure_time
		FROM shuttle_timetables ORDER BY timetable_seq;
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var timetables []Timetable
	for rows.Next() {
		var t Timetable
		if err := rows.Scan(&t.Seq, &t.PeriodType, &t.IsWeekdays, &t.RouteName, &t.DepartureTime); err != nil {
			return nil, err
		}
		timetables = append(timetables, t)
	}
	return timetables, rows.Err()
}

func (q *Queries) DeleteTimetable(ctx context.Context, seq int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM shuttle_timetables WHERE timetable_seq = ?;`, seq)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// ListTimetableViewParams narrows the denormalized timetable view. Nil or
// empty slices leave that dimension unconstrained; nil time bounds are
// unconstrained on that side, and both bounds are inclusive.
type ListTimetableViewParams struct {
	PeriodTypes []string
	Weekdays    []bool
	Routes      []string
	Tags        []string
	Stops       []string
	StartTime   *int64 // seconds since midnight
	EndTime     *int64
}

// ListTimetableView joins timetable entries with their route's stops and
// applies the per-stop cumulative offset. Rows come back in timetable
// sequence order (insertion order), not chronological order.
func (q *Queries) ListTimetableView(ctx context.Context, params ListTimetableViewParams) ([]TimetableViewRow, error) {
	query := `
		SELECT t.timetable_seq, t.period_type, t.is_weekdays, t.route_name, r.route_tag,
		       rs.stop_name, t.departure_time + rs.cumulative_time AS stop_time
		FROM shuttle_timetables t
		JOIN shuttle_routes r ON r.route_name = t.route_name
		JOIN shuttle_route_stops rs ON rs.route_name = t.route_name
		WHERE 1=1`
	var args []interface{}

	if len(params.PeriodTypes) > 0 {
		query += " AND t.period_type IN (" + placeholders(len(params.PeriodTypes)) + ")"
		for _, p := range params.PeriodTypes {
			args = append(args, p)
		}
	}
	if len(params.Weekdays) > 0 {
		query += " AND t.is_weekdays IN (" + placeholders(len(params.Weekdays)) + ")"
		for _, w := range params.Weekdays {
			args = append(args, w)
		}
	}
	if len(params.Routes) > 0 {
		query += " AND t.route_name IN (" + placeholders(len(params.Routes)) + ")"
		for _, r := range params.Routes {
			args = append(args, r)
		}
	}
	if len(params.Tags) > 0 {
		query += " AND r.route_tag IN (" + placeholders(len(params.Tags)) + ")"
		for _, t := range params.Tags {
			args = append(args, t)
		}
	}
	if len(params.Stops) > 0 {
		query += " AND rs.stop_name IN (" + placeholders(len(params.Stops)) + ")"
		for _, s := range params.Stops {
			args = append(args, s)
		}
	}
	if params.StartTime != nil {
		query += " AND t.departure_time + rs.cumulative_time >= ?"
		args = append(args, *params.StartTime)
	}
	if params.EndTime != nil {
		query += " AND t.departure_time + rs.cumulative_time <= ?"
		args = append(args, *params.EndTime)
	}
	query += " ORDER BY t.timetable_seq, rs.stop_order;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var view []TimetableViewRow
	for rows.Next() {
		var v TimetableViewRow
		if err := rows.Scan(&v.Seq, &v.PeriodType, &v.IsWeekdays, &v.RouteName, &v.RouteTag, &v.StopName, &v.DepartureTime); err != nil {
			return nil, err
		}
		view = append(view, v)
	}
	return view, rows.Err()
}

// requireAffected maps "zero rows touched" onto ErrNotFound for update and
// delete statements.
func requireAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
