package campusdb

import (
	"context"
	"fmt"
)

type SubwayRoute struct {
	ID   string // route_id
	Name string // route_name
}

type SubwayStation struct {
	ID      string // station_id
	Name    string // station_name
	RouteID string // route_id
}

// SubwayTimetable is one scheduled train departure at a station. Heading
// distinguishes the two track directions.
type SubwayTimetable struct {
	Seq             int64  // timetable_seq
	StationID       string // station_id
	IsWeekdays      bool   // is_weekdays
	Heading         string // heading (up | down)
	TerminalStation string // terminal_station
	DepartureTime   int64  // departure_time (seconds since midnight)
}

func (q *Queries) CreateSubwayRoute(ctx context.Context, route SubwayRoute) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO subway_routes (route_id, route_name) VALUES (?, ?);
	`, route.ID, route.Name)
	if err != nil {
		return fmt.Errorf("error inserting subway route: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListSubwayRoutes(ctx context.Context) ([]SubwayRoute, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT route_id, route_name FROM subway_routes ORDER BY route_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var routes []SubwayRoute
	for rows.Next() {
		var r SubwayRoute
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (q *Queries) GetSubwayRoute(ctx context.Context, id string) (SubwayRoute, error) {
	row := q.db.QueryRowContext(ctx, `SELECT route_id, route_name FROM subway_routes WHERE route_id = ?;`, id)

	var r SubwayRoute
	err := row.Scan(&r.ID, &r.Name)
	return r, wrapReadError(err)
}

func (q *Queries) DeleteSubwayRoute(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM subway_routes WHERE route_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateSubwayStation(ctx context.Context, station SubwayStation) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO subway_stations (station_id, station_name, route_id) VALUES (?, ?, ?);
	`, station.ID, station.Name, station.RouteID)
	if err != nil {
		return fmt.Errorf("error inserting subway station: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListSubwayStations(ctx context.Context, name string) ([]SubwayStation, error) {
	query := `SELECT station_id, station_name, route_id FROM subway_stations`
	var args []interface{}
	if name != "" {
		query += " WHERE station_name LIKE ?"
		args = append(args, "%"+name+"%")
	}
	query += " ORDER BY station_id;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var stations []SubwayStation
	for rows.Next() {
		var s SubwayStation
		if err := rows.Scan(&s.ID, &s.Name, &s.RouteID); err != nil {
			return nil, err
		}
		stations = append(stations, s)
	}
	return stations, rows.Err()
}

func (q *Queries) GetSubwayStation(ctx context.Context, id string) (SubwayStation, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT station_id, station_name, route_id FROM subway_stations WHERE station_id = ?;
	`, id)

	var s SubwayStation
	err := row.Scan(&s.ID, &s.Name, &s.RouteID)
	return s, wrapReadError(err)
}

func (q *Queries) DeleteSubwayStation(ctx context.Context, id string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM subway_stations WHERE station_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

type CreateSubwayTimetableParams struct {
	StationID       string
	IsWeekdays      bool
	Heading         string
	TerminalStation string
	DepartureTime   int64
}

func (q *Queries) CreateSubwayTimetable(ctx context.Context, params CreateSubwayTimetableParams) (SubwayTimetable, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO subway_timetables (station_id, is_weekdays, heading, terminal_station, departure_time)
		VALUES (?, ?, ?, ?, ?)
		RETURNING timetable_seq, station_id, is_weekdays, heading, terminal_station, departure_time;
	`, params.StationID, params.IsWeekdays, params.Heading, params.TerminalStation, params.DepartureTime)

	var t SubwayTimetable
	err := row.Scan(&t.Seq, &t.StationID, &t.IsWeekdays, &t.Heading, &t.TerminalStation, &t.DepartureTime)
	if err != nil {
		return SubwayTimetable{}, fmt.Errorf("error inserting subway timetable: %w", wrapWriteError(err))
	}
	return t, nil
}

type ListSubwayTimetablesParams struct {
	StationID  string
	Heading    string
	IsWeekdays *bool
}

func (q *Queries) ListSubwayTimetables(ctx context.Context, params ListSubwayTimetablesParams) ([]SubwayTimetable, error) {
	query := `
		SELECT timetable_seq, station_id, is_weekdays, heading, terminal_station, departure_time
		FROM subway_timetables WHERE 1=1`
	var args []interface{}
	if params.StationID != "" {
		query += " AND station_id = ?"
		args = append(args, params.StationID)
	}
	if params.Heading != "" {
		query += " AND heading = ?"
		args = append(args, params.Heading)
	}
	if params.IsWeekdays != nil {
		query += " AND is_weekdays = ?"
		args = append(args, *params.IsWeekdays)
	}
	query += " ORDER BY timetable_seq;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var timetables []SubwayTimetable
	for rows.Next() {
		var t SubwayTimetable
		if err := rows.Scan(&t.Seq, &t.StationID, &t.IsWeekdays, &t.Heading, &t.TerminalStation, &t.DepartureTime); err != nil {
			return nil, err
		}
		timetables = append(timetables, t)
	}
	return timetables, rows.Err()
}

func (q *Queries) DeleteSubwayTimetable(ctx context.Context, seq int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM subway_timetables WHERE timetable_seq = ?;`, seq)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
