package campusdb

import (
	"context"
	"database/sql"
	"fmt"
)

type NoticeCategory struct {
	ID   int64  // category_id
	Name string // category_name
}

type Notice struct {
	ID         int64          // notice_id
	CategoryID int64          // category_id
	Title      string         // title
	URL        string         // url
	Language   string         // language
	ExpiredAt  sql.NullString // expired_at
}

type ContactCategory struct {
	ID   int64  // category_id
	Name string // category_name
}

type Contact struct {
	ID         int64  // contact_id
	CategoryID int64  // category_id
	Name       string // contact_name
	Phone      string // phone
	CampusID   int64  // campus_id
}

type CalendarCategory struct {
	ID   int64  // category_id
	Name string // category_name
}

// CalendarEvent is one entry of the academic calendar.
type CalendarEvent struct {
	ID          int64          // event_id
	CategoryID  int64          // category_id
	Title       string         // title
	Description sql.NullString // description
	StartDate   string         // start_date (YYYY-MM-DD)
	EndDate     string         // end_date (YYYY-MM-DD)
}

func (q *Queries) CreateNoticeCategory(ctx context.Context, c NoticeCategory) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO notice_categories (category_id, category_name) VALUES (?, ?);`,
		c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("error inserting notice category: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListNoticeCategories(ctx context.Context) ([]NoticeCategory, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT category_id, category_name FROM notice_categories ORDER BY category_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var categories []NoticeCategory
	for rows.Next() {
		var c NoticeCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (q *Queries) GetNoticeCategory(ctx context.Context, id int64) (NoticeCategory, error) {
	row := q.db.QueryRowContext(ctx, `SELECT category_id, category_name FROM notice_categories WHERE category_id = ?;`, id)

	var c NoticeCategory
	err := row.Scan(&c.ID, &c.Name)
	return c, wrapReadError(err)
}

func (q *Queries) DeleteNoticeCategory(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM notice_categories WHERE category_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

type CreateNoticeParams struct {
	CategoryID int64
	Title      string
	URL        string
	Language   string
	ExpiredAt  sql.NullString
}

func (q *Queries) CreateNotice(ctx context.Context, params CreateNoticeParams) (Notice, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO notices (category_id, title, url, language, expired_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING notice_id, category_id, title, url, language, expired_at;
	`, params.CategoryID, params.Title, params.URL, params.Language, params.ExpiredAt)

	var n Notice
	err := row.Scan(&n.ID, &n.CategoryID, &n.Title, &n.URL, &n.Language, &n.ExpiredAt)
	if err != nil {
		return Notice{}, fmt.Errorf("error inserting notice: %w", wrapWriteError(err))
	}
	return n, nil
}

type ListNoticesParams struct {
	CategoryID *int64
	Language   string
	Title      string
}

func (q *Queries) ListNotices(ctx context.Context, params ListNoticesParams) ([]Notice, error) {
	query := `SELECT notice_id, category_id, title, url, language, expired_at FROM notices WHERE 1=1`
	var args []interface{}
	if params.CategoryID != nil {
		query += " AND category_id = ?"
		args = append(args, *params.CategoryID)
	}
	if params.Language != "" {
		query += " AND language = ?"
		args = append(args, params.Language)
	}
	if params.Title != "" {
		query += " AND title LIKE ?"
		args = append(args, "%"+params.Title+"%")
	}
	query += " ORDER BY notice_id DESC;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var notices []Notice
	for rows.Next() {
		var n Notice
		if err := rows.Scan(&n.ID, &n.CategoryID, &n.Title, &n.URL, &n.Language, &n.ExpiredAt); err != nil {
			return nil, err
		}
		notices = append(notices, n)
	}
	return notices, rows.Err()
}

func (q *Queries) GetNotice(ctx context.Context, id int64) (Notice, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT notice_id, category_id, title, url, language, expired_at FROM notices WHERE notice_id = ?;
	`, id)

	var n Notice
	err := row.Scan(&n.ID, &n.CategoryID, &n.Title, &n.URL, &n.Language, &n.ExpiredAt)
	return n, wrapReadError(err)
}

func (q *Queries) DeleteNotice(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM notices WHERE notice_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteExpiredNotices removes notices whose expiry has passed. Returns
// how many rows went away.
func (q *Queries) DeleteExpiredNotices(ctx context.Context, today string) (int64, error) {
	result, err := q.db.ExecContext(ctx,
		`DELETE FROM notices WHERE expired_at IS NOT NULL AND expired_at < ?;`, today)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (q *Queries) CreateContactCategory(ctx context.Context, c ContactCategory) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO contact_categories (category_id, category_name) VALUES (?, ?);`,
		c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("error inserting contact category: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListContactCategories(ctx context.Context) ([]ContactCategory, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT category_id, category_name FROM contact_categories ORDER BY category_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var categories []ContactCategory
	for rows.Next() {
		var c ContactCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (q *Queries) DeleteContactCategory(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM contact_categories WHERE category_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

type CreateContactParams struct {
	CategoryID int64
	Name       string
	Phone      string
	CampusID   int64
}

func (q *Queries) CreateContact(ctx context.Context, params CreateContactParams) (Contact, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO contacts (category_id, contact_name, phone, campus_id)
		VALUES (?, ?, ?, ?)
		RETURNING contact_id, category_id, contact_name, phone, campus_id;
	`, params.CategoryID, params.Name, params.Phone, params.CampusID)

	var c Contact
	err := row.Scan(&c.ID, &c.CategoryID, &c.Name, &c.Phone, &c.CampusID)
	if err != nil {
		return Contact{}, fmt.Errorf("error inserting contact: %w", wrapWriteError(err))
	}
	return c, nil
}

type ListContactsParams struct {
	CategoryID *int64
	CampusID   *int64
	Name       string
}

func (q *Queries) ListContacts(ctx context.Context, params ListContactsParams) ([]Contact, error) {
	query := `SELECT contact_id, category_id, contact_name, phone, campus_id FROM contacts WHERE 1=1`
	var args []interface{}
	if params.CategoryID != nil {
		query += " AND category_id = ?"
		args = append(args, *params.CategoryID)
	}
	if params.CampusID != nil {
		query += " AND campus_id = ?"
		args = append(args, *params.CampusID)
	}
	if params.Name != "" {
		query += " AND contact_name LIKE ?"
		args = append(args, "%"+params.Name+"%")
	}
	query += " ORDER BY contact_id;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var contacts []Contact
	for rows.Next() {
		var c Contact
		if err := rows.Scan(&c.ID, &c.CategoryID, &c.Name, &c.Phone, &c.CampusID); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

func (q *Queries) GetContact(ctx context.Context, id int64) (Contact, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT contact_id, category_id, contact_name, phone, campus_id FROM contacts WHERE contact_id = ?;
	`, id)

	var c Contact
	err := row.Scan(&c.ID, &c.CategoryID, &c.Name, &c.Phone, &c.CampusID)
	return c, wrapReadError(err)
}

func (q *Queries) DeleteContact(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM contacts WHERE contact_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func (q *Queries) CreateCalendarCategory(ctx context.Context, c CalendarCategory) error {
	_, err := q.db.ExecContext(ctx, `INSERT INTO calendar_categories (category_id, category_name) VALUES (?, ?);`,
		c.ID, c.Name)
	if err != nil {
		return fmt.Errorf("error inserting calendar category: %w", wrapWriteError(err))
	}
	return nil
}

func (q *Queries) ListCalendarCategories(ctx context.Context) ([]CalendarCategory, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT category_id, category_name FROM calendar_categories ORDER BY category_id;`)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var categories []CalendarCategory
	for rows.Next() {
		var c CalendarCategory
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (q *Queries) DeleteCalendarCategory(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM calendar_categories WHERE category_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

type CreateCalendarEventParams struct {
	CategoryID  int64
	Title       string
	Description sql.NullString
	StartDate   string
	EndDate     string
}

func (q *Queries) CreateCalendarEvent(ctx context.Context, params CreateCalendarEventParams) (CalendarEvent, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO calendar_events (category_id, title, description, start_date, end_date)
		VALUES (?, ?, ?, ?, ?)
		RETURNING event_id, category_id, title, description, start_date, end_date;
	`, params.CategoryID, params.Title, params.Description, params.StartDate, params.EndDate)

	var e CalendarEvent
	err := row.Scan(&e.ID, &e.CategoryID, &e.Title, &e.Description, &e.StartDate, &e.EndDate)
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("error inserting calendar event: %w", wrapWriteError(err))
	}
	return e, nil
}

type ListCalendarEventsParams struct {
	CategoryID *int64
	// OnDate limits results to events whose range covers this date.
	OnDate string
}

func (q *Queries) ListCalendarEvents(ctx context.Context, params ListCalendarEventsParams) ([]CalendarEvent, error) {
	query := `SELECT event_id, category_id, title, description, start_date, end_date FROM calendar_events WHERE 1=1`
	var args []interface{}
	if params.CategoryID != nil {
		query += " AND category_id = ?"
		args = append(args, *params.CategoryID)
	}
	if params.OnDate != "" {
		query += " AND start_date <= ? AND end_date >= ?"
		args = append(args, params.OnDate, params.OnDate)
	}
	query += " ORDER BY start_date, event_id;"

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close() // nolint:errcheck

	var events []CalendarEvent
	for rows.Next() {
		var e CalendarEvent
		if err := rows.Scan(&e.ID, &e.CategoryID, &e.Title, &e.Description, &e.StartDate, &e.EndDate); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (q *Queries) GetCalendarEvent(ctx context.Context, id int64) (CalendarEvent, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT event_id, category_id, title, description, start_date, end_date FROM calendar_events WHERE event_id = ?;
	`, id)

	var e CalendarEvent
	err := row.Scan(&e.ID, &e.CategoryID, &e.Title, &e.Description, &e.StartDate, &e.EndDate)
	return e, wrapReadError(err)
}

func (q *Queries) DeleteCalendarEvent(ctx context.Context, id int64) error {
	result, err := q.db.ExecContext(ctx, `DELETE FROM calendar_events WHERE event_id = ?;`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}
