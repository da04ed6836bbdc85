package campusdb

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

type Campus struct {
	ID   int64  // campus_id
	Name string // campus_name
}

type Building struct {
	Name      string         // building_name
	CampusID  int64          // campus_id
	Latitude  float64        // latitude
	Longitude float64        // longitude
	URL       sql.NullString // url
}

// Room is a numbered room inside a building, used for directory lookups.
type Room struct {
	BuildingName string // building_name
	Name         string // room_name
	Number       string // room_number
}

type Cafeteria struct {
	ID        int64   // cafeteria_id
	CampusID  int64   // campus_id
	Name      string  // cafeteria_name
	Latitude  float64 // latitude
	Longitude float64 // longitude
}

// Menu is one dish served by a cafeteria on a given date and meal slot.
type Menu struct {
	Seq         int64          // menu_seq
	CafeteriaID int64          // cafeteria_id
	FeedDate    string         // feed_date (YYYY-MM-DD)
	TimeType    string         // time_type (breakfast | lunch | dinner ...)
	Menu        string         // menu
	Price       sql.NullString // price
}

type ReadingRoom struct {
	ID            int64  // room_id
	CampusID      int64  // campus_id
	Name          string // room_name
	TotalSeats    int64  // total_seats
	ActiveSeats   int64  // active_seats
	OccupiedSeats int64  // occupied_seats
	UpdatedAt     string // updated_at
}

func (q *Queries) CreateCampus(ctx context.Context, campus Campus) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO campuses (campus_id, campus_name) VALUES (?, ?);`,
		campus.ID, campus.Name)
	if err != nil {
		return fmt.Errorf("error inserting campus: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListCampuses(ctx context.Context) ([]Campus, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT campus_id, campus_name FROM campuses ORDER BY campus_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var campuses []Campus
	for rows.Next() {
		var c Campus
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		campuses = append(campuses, c)
	}
	return campuses, rows.Err()
}

func (q *Queries) GetCampus(ctx context.Context, id int64) (Campus, error) {
	row := q.db.QueryRowContext(ctx, `SELECT campus_id, campus_name FROM campuses WHERE campus_id = ?;`, id)

	var c Campus
	err := row.Scan(&c.ID, &c.Name)
	return c, wrapReadError(err)
}

func (q *Queries) DeleteCampus(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM campuses WHERE campus_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateBuilding(ctx context.Context, b Building) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO buildings (building_name, campus_id, latitude, longitude, url)
		VALUES (?, ?, ?, ?, ?);
	`, b.Name, b.CampusID, b.Latitude, b.Longitude, b.URL)
	if err != nil {
		return fmt.Errorf("error inserting building: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListBuildings(ctx context.Context, name string, campusID *int64) ([]Building, error) {
	query := `SELECT building_name, campus_id, latitude, longitude, url FROM buildings WHERE 1=1`
	var args []interface{}
	if name != "" {
		query += " AND building_name LIKE ?"
		args = append(args, "%"+name+"%")
	}
	if campusID != nil {
		query += " AND campus_id = ?"
		args = append(args, *campusID)
	}
	query += " ORDER BY building_name;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var buildings []Building
	for rows.Next() {
		var b Building
		if err := rows.Scan(&b.Name, &b.CampusID, &b.Latitude, &b.Longitude, &b.URL); err != nil {
			return nil, err
		}
		buildings = append(buildings, b)
	}
	return buildings, rows.Err()
}

func (q *Queries) GetBuilding(ctx context.Context, name string) (Building, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT building_name, campus_id, latitude, longitude, url FROM buildings WHERE building_name = ?;
	`, name)

	var b Building
	err := row.Scan(&b.Name, &b.CampusID, &b.Latitude, &b.Longitude, &b.URL)
	return b, wrapReadError(err)
}

type UpdateBuildingParams struct {
	Latitude  *float64
	Longitude *float64
	URL       *string
}

func (q *Queries) UpdateBuilding(ctx context.Context, name string, params UpdateBuildingParams) error {
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
	if params.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *params.URL)
	}
	if len(sets) == 0 {
		_, err := q.GetBuilding(ctx, name)
		return err
	}

	args = append(args, name)
	result, err := q.db.ExecContext(ctx,
		"UPDATE buildings SET "+strings.Join(sets, ", ")+" WHERE building_name = ?;", args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) DeleteBuilding(ctx context.Context, name string) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM buildings WHERE building_name = ?;`, name)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateRoom(ctx context.Context, room Room) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO rooms (building_name, room_name, room_number) VALUES (?, ?, ?);
	`, room.BuildingName, room.Name, room.Number)
	if err != nil {
		return fmt.Errorf("error inserting room: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListRooms(ctx context.Context, buildingName, name string) ([]Room, error) {
	query := `SELECT building_name, room_name, room_number FROM rooms WHERE 1=1`
	var args []interface{}
	if buildingName != "" {
		query += " AND building_name = ?"
		args = append(args, buildingName)
	}
	if name != "" {
		query += " AND room_name LIKE ?"
		args = append(args, "%"+name+"%")
	}
	query += " ORDER BY building_name, room_number;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var rooms []Room
	for rows.Next() {
		var room Room
		if err := rows.Scan(&room.BuildingName, &room.Name, &room.Number); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

func (q *Queries) DeleteRoom(ctx context.Context, buildingName, number string) error {
	result, err := q.db.ExecContext(ctx,
		`DELETE FROM rooms WHERE building_name = ? AND room_number = ?;`, buildingName, number)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateCafeteria(ctx context.Context, c Cafeteria) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO cafeterias (cafeteria_id, campus_id, cafeteria_name, latitude, longitude)
		VALUES (?, ?, ?, ?, ?);
	`, c.ID, c.CampusID, c.Name, c.Latitude, c.Longitude)
	if err != nil {
		return fmt.Errorf("error inserting cafeteria: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListCafeterias(ctx context.Context, campusID *int64) ([]Cafeteria, error) {
	query := `SELECT cafeteria_id, campus_id, cafeteria_name, latitude, longitude FROM cafeterias`
	var args []interface{}
	if campusID != nil {
		query += " WHERE campus_id = ?"
		args = append(args, *campusID)
	}
	query += " ORDER BY cafeteria_id;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var cafeterias []Cafeteria
	for rows.Next() {
		var c Cafeteria
		if err := rows.Scan(&c.ID, &c.CampusID, &c.Name, &c.Latitude, &c.Longitude); err != nil {
			return nil, err
		}
		cafeterias = append(cafeterias, c)
	}
	return cafeterias, rows.Err()
}

func (q *Queries) GetCafeteria(ctx context.Context, id int64) (Cafeteria, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT cafeteria_id, campus_id, cafeteria_name, latitude, longitude FROM cafeterias WHERE cafeteria_id = ?;
	`, id)

	var c Cafeteria
	err := row.Scan(&c.ID, &c.CampusID, &c.Name, &c.Latitude, &c.Longitude)
	return c, wrapReadError(err)
}

func (q *Queries) DeleteCafeteria(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM cafeterias WHERE cafeteria_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

type CreateMenuParams struct {
	CafeteriaID int64
	FeedDate    string
	TimeType    string
	Menu        string
	Price       sql.NullString
}

func (q *Queries) CreateMenu(ctx context.Context, params CreateMenuParams) (Menu, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO menus (cafeteria_id, feed_date, time_type, menu, price)
		VALUES (?, ?, ?, ?, ?)
		RETURNING menu_seq, cafeteria_id, feed_date, time_type, menu, price;
	`, params.CafeteriaID, params.FeedDate, params.TimeType, params.Menu, params.Price)

	var m Menu
	err := row.Scan(&m.Seq, &m.CafeteriaID, &m.FeedDate, &m.TimeType, &m.Menu, &m.Price)
	if err != nil {
		return Menu{}, fmt.Errorf("error inserting menu: %w", wrapWriteError(err))
	}
	return m, nil
}

func (q *Queries) ListMenus(ctx context.Context, cafeteriaID int64, feedDate string) ([]Menu, error) {
	query := `SELECT menu_seq, cafeteria_id, feed_date, time_type, menu, price FROM menus WHERE cafeteria_id = ?`
	args := []interface{}{cafeteriaID}
	if feedDate != "" {
		query += " AND feed_date = ?"
		args = append(args, feedDate)
	}
	query += " ORDER BY menu_seq;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var menus []Menu
	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.Seq, &m.CafeteriaID, &m.FeedDate, &m.TimeType, &m.Menu, &m.Price); err != nil {
			return nil, err
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

func (q *Queries) DeleteMenu(ctx context.Context, seq int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM menus WHERE menu_seq = ?;`, seq)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateReadingRoom(ctx context.Context, r ReadingRoom) error {
	_, err := q.db.ExecContext(ctx, `
		INSERT INTO reading_rooms (room_id, campus_id, room_name, total_seats, active_seats, occupied_seats)
		VALUES (?, ?, ?, ?, ?, ?);
	`, r.ID, r.CampusID, r.Name, r.TotalSeats, r.ActiveSeats, r.OccupiedSeats)
	if err != nil {
		return fmt.Errorf("error inserting reading room: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListReadingRooms(ctx context.Context, campusID *int64) ([]ReadingRoom, error) {
	query := `
		SELECT room_id, campus_id, room_name, total_seats, active_seats, occupied_seats, updated_at
		FROM reading_rooms`
	var args []interface{}
	if campusID != nil {
		query += " WHERE campus_id = ?"
		args = append(args, *campusID)
	}
	query += " ORDER BY room_id;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var readingRooms []ReadingRoom
	for rows.Next() {
		var r ReadingRoom
		if err := rows.Scan(&r.ID, &r.CampusID, &r.Name, &r.TotalSeats, &r.ActiveSeats, &r.OccupiedSeats, &r.UpdatedAt); err != nil {
			return nil, err
		}
		readingRooms = append(readingRooms, r)
	}
	return readingRooms, rows.Err()
}

func (q *Queries) GetReadingRoom(ctx context.Context, id int64) (ReadingRoom, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT room_id, campus_id, room_name, total_seats, active_seats, occupied_seats, updated_at
		FROM reading_rooms WHERE room_id = ?;
	`, id)

	var r ReadingRoom
	err := row.Scan(&r.ID, &r.CampusID, &r.Name, &r.TotalSeats, &r.ActiveSeats, &r.OccupiedSeats, &r.UpdatedAt)
	return r, wrapReadError(err)
}

// UpdateReadingRoomSeats refreshes the live occupancy numbers.
func (q *Queries) UpdateReadingRoomSeats(ctx context.Context, id, activeSeats, occupiedSeats int64) error {
	result, err := q.db.ExecContext(ctx, `
		UPDATE reading_rooms
		SET active_seats = ?, occupied_seats = ?, updated_at = datetime('now')
		WHERE room_id = ?;
	`, activeSeats, occupiedSeats, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) DeleteReadingRoom(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM reading_rooms WHERE room_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
