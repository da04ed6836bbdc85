package campusdb

import (
	"context"
	"database/sql"
	"fmt"
)

// BusRoute is a city bus route serving the campus area. Rows are entered
// by hand or mirrored from the city's GTFS feed.
type BusRoute struct {
	ID        string         // route_id
	ShortName sql.NullString // short_name
	LongName  sql.NullString // long_name
	Type      int64          // route_type
}

type BusStop struct {
	ID        string  // stop_id
	Name      string  // stop_name
	Latitude  float64 // latitude
	Longitude float64 // longitude
}

type BusRouteStop struct {
	RouteID   string // route_id
	StopID    string // stop_id
	StopOrder int64  // stop_order
}

// BusTimetable is one scheduled city-bus departure at a stop.
type BusTimetable struct {
	Seq           int64  // timetable_seq
	RouteID       string // route_id
	StopID        string // stop_id
	WeekdayType   string // weekday_type (weekdays | saturday | sunday)
	DepartureTime int64  // departure_time (seconds since midnight)
}

func (q *Queries) CreateBusRoute(ctx context.Context, route BusRoute) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO bus_routes (route_id, short_name, long_name, route_type)
		VALUES (?, ?, ?, ?);
	`, route.ID, route.ShortName, route.LongName, route.Type)
	if err != nil {
		return fmt.Errorf("error inserting bus route: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListBusRoutes(ctx context.Context, name string) ([]BusRoute, error) {
	query := `SELECT route_id, short_name, long_name, route_type FROM bus_routes`
	var args []interface{}
	if name != "" {
		query += " WHERE short_name LIKE ? OR long_name LIKE ?"
		args = append(args, "%"+name+"%", "%"+name+"%")
	}
	query += " ORDER BY route_id;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var routes []BusRoute
	for rows.Next() {
		var r BusRoute
		if err := rows.Scan(&r.ID, &r.ShortName, &r.LongName, &r.Type); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (q *Queries) GetBusRoute(ctx context.Context, id string) (BusRoute, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT route_id, short_name, long_name, route_type FROM bus_routes WHERE route_id = ?;
	`, id)

	var r BusRoute
	err := row.Scan(&r.ID, &r.ShortName, &r.LongName, &r.Type)
	return r, wrapReadError(err)
}

func (q *Queries) DeleteBusRoute(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM bus_routes WHERE route_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateBusStop(ctx context.Context, stop BusStop) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO bus_stops (stop_id, stop_name, latitude, longitude)
		VALUES (?, ?, ?, ?);
	`, stop.ID, stop.Name, stop.Latitude, stop.Longitude)
	if err != nil {
		return fmt.Errorf("error inserting bus stop: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListBusStops(ctx context.Context, name string) ([]BusStop, error) {
	query := `SELECT stop_id, stop_name, latitude, longitude FROM bus_stops`
	var args []interface{}
	if name != "" {
		query += " WHERE stop_name LIKE ?"
		args = append(args, "%"+name+"%")
	}
	query += " ORDER BY stop_id;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var stops []BusStop
	for rows.Next() {
		var s BusStop
		if err := rows.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude); err != nil {
			return nil, err
		}
		stops = append(stops, s)
	}
	return stops, rows.Err()
}

func (q *Queries) GetBusStop(ctx context.Context, id string) (BusStop, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT stop_id, stop_name, latitude, longitude FROM bus_stops WHERE stop_id = ?;
	`, id)

	var s BusStop
	err := row.Scan(&s.ID, &s.Name, &s.Latitude, &s.Longitude)
	return s, wrapReadError(err)
}

func (q *Queries) DeleteBusStop(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM bus_stops WHERE stop_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateBusRouteStop(ctx context.Context, rs BusRouteStop) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO bus_route_stops (route_id, stop_id, stop_order) VALUES (?, ?, ?);
	`, rs.RouteID, rs.StopID, rs.StopOrder)
	if err != nil {
		return fmt.Errorf("error inserting bus route stop: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListBusRouteStops(ctx context.Context, routeID string) ([]BusRouteStop, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT route_id, stop_id, stop_order FROM bus_route_stops
		WHERE route_id = ? ORDER BY stop_order;
	`, routeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var stops []BusRouteStop
	for rows.Next() {
		var rs BusRouteStop
		if err := rows.Scan(&rs.RouteID, &rs.StopID, &rs.StopOrder); err != nil {
			return nil, err
		}
		stops = append(stops, rs)
	}
	return stops, rows.Err()
}

type CreateBusTimetableParams struct {
	RouteID       string
	StopID        string
	WeekdayType   string
	DepartureTime int64
}

func (q *Queries) CreateBusTimetable(ctx context.Context, params CreateBusTimetableParams) (BusTimetable, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO bus_timetables (route_id, stop_id, weekday_type, departure_time)
		VALUES (?, ?, ?, ?)
		RETURNING timetable_seq, route_id, stop_id, weekday_type, departure_time;
	`, params.RouteID, params.StopID, params.WeekdayType, params.DepartureTime)

	var t BusTimetable
	err := row.Scan(&t.Seq, &t.RouteID, &t.StopID, &t.WeekdayType, &t.DepartureTime)
	if err != nil {
		return BusTimetable{}, fmt.Errorf("error inserting bus timetable: %w", wrapWriteError(err))
	}
	return t, nil
}

type ListBusTimetablesParams struct {
	RouteID     string
	StopID      string
	WeekdayType string
}

func (q *Queries) ListBusTimetables(ctx context.Context, params ListBusTimetablesParams) ([]BusTimetable, error) {
	query := `
		SELECT timetable_seq, route_id, stop_id, weekday_type, departure_time
		FROM bus_timetables WHERE 1=1`
	var args []interface{}
	if params.RouteID != "" {
		query += " AND route_id = ?"
		args = append(args, params.RouteID)
	}
	if params.StopID != "" {
		query += " AND stop_id = ?"
		args = append(args, params.StopID)
	}
	if params.WeekdayType != "" {
		query += " AND weekday_type = ?"
		args = append(args, params.WeekdayType)
	}
	query += " ORDER BY timetable_seq;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var timetables []BusTimetable
	for rows.Next() {
		var t BusTimetable
		if err := rows.Scan(&t.Seq, &t.RouteID, &t.StopID, &t.WeekdayType, &t.DepartureTime); err != nil {
			return nil, err
		}
		timetables = append(timetables, t)
	}
	return timetables, rows.Err()
}

func (q *Queries) DeleteBusTimetable(ctx context.Context, seq int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM bus_timetables WHERE timetable_seq = ?;`, seq)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
