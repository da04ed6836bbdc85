package campusdb

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCampus(t *testing.T, q *Queries) {
	t.Helper()
	require.NoError(t, q.CreateCampus(context.Background(), Campus{ID: 2, Name: "ERICA"}))
}

func TestBuildingSearch(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	q := client.Queries
	seedCampus(t, q)

	for _, b := range []Building{
		{Name: "Engineering Building 1", CampusID: 2, Latitude: 37.29, Longitude: 126.83},
		{Name: "Engineering Building 2", CampusID: 2, Latitude: 37.30, Longitude: 126.84},
		{Name: "Main Library", CampusID: 2, Latitude: 37.30, Longitude: 126.84},
	} {
		require.NoError(t, q.CreateBuilding(ctx, b))
	}

	buildings, err := q.ListBuildings(ctx, "Engineering", nil)
	require.NoError(t, err)
	assert.Len(t, buildings, 2)

	campusID := int64(2)
	buildings, err = q.ListBuildings(ctx, "", &campusID)
	require.NoError(t, err)
	assert.Len(t, buildings, 3)

	lat := 37.295
	require.NoError(t, q.UpdateBuilding(ctx, "Main Library", UpdateBuildingParams{Latitude: &lat}))

	building, err := q.GetBuilding(ctx, "Main Library")
	require.NoError(t, err)
	assert.Equal(t, 37.295, building.Latitude)
	assert.Equal(t, 126.84, building.Longitude)

	require.ErrorIs(t, q.DeleteBuilding(ctx, "missing"), ErrNotFound)
}

func TestRoomsCascadeWithBuilding(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	q := client.Queries
	seedCampus(t, q)

	require.NoError(t, q.CreateBuilding(ctx, Building{Name: "Engineering Building 1", CampusID: 2}))
	require.NoError(t, q.CreateRoom(ctx, Room{BuildingName: "Engineering Building 1", Name: "Lecture Room A", Number: "101"}))
	require.NoError(t, q.CreateRoom(ctx, Room{BuildingName: "Engineering Building 1", Name: "Robotics Lab", Number: "201"}))

	require.ErrorIs(t, q.CreateRoom(ctx, Room{
		BuildingName: "Engineering Building 1", Name: "Duplicate", Number: "101",
	}), ErrDuplicate)
	require.ErrorIs(t, q.CreateRoom(ctx, Room{
		BuildingName: "Ghost Building", Name: "Nowhere", Number: "1",
	}), ErrReferenceMissing)

	rooms, err := q.ListRooms(ctx, "Engineering Building 1", "Lab")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, "201", rooms[0].Number)

	require.NoError(t, q.DeleteBuilding(ctx, "Engineering Building 1"))
	rooms, err = q.ListRooms(ctx, "Engineering Building 1", "")
	require.NoError(t, err)
	assert.Empty(t, rooms)
}

func TestMenusByDate(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	q := client.Queries
	seedCampus(t, q)

	require.NoError(t, q.CreateCafeteria(ctx, Cafeteria{ID: 1, CampusID: 2, Name: "Student Cafeteria"}))

	for _, params := range []CreateMenuParams{
		{CafeteriaID: 1, FeedDate: "2025-05-12", TimeType: "lunch", Menu: "Pork cutlet", Price: sql.NullString{String: "5500", Valid: true}},
		{CafeteriaID: 1, FeedDate: "2025-05-12", TimeType: "dinner", Menu: "Kimchi stew"},
		{CafeteriaID: 1, FeedDate: "2025-05-13", TimeType: "lunch", Menu: "Bibimbap"},
	} {
		_, err := q.CreateMenu(ctx, params)
		require.NoError(t, err)
	}

	menus, err := q.ListMenus(ctx, 1, "2025-05-12")
	require.NoError(t, err)
	require.Len(t, menus, 2)
	assert.Equal(t, "Pork cutlet", menus[0].Menu)
	assert.Equal(t, "5500", menus[0].Price.String)

	menus, err = q.ListMenus(ctx, 1, "")
	require.NoError(t, err)
	assert.Len(t, menus, 3)

	// Menus go away with their cafeteria.
	require.NoError(t, q.DeleteCafeteria(ctx, 1))
	menus, err = q.ListMenus(ctx, 1, "")
	require.NoError(t, err)
	assert.Empty(t, menus)
}

func TestReadingRoomOccupancyUpdate(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	q := client.Queries
	seedCampus(t, q)

	require.NoError(t, q.CreateReadingRoom(ctx, ReadingRoom{
		ID: 1, CampusID: 2, Name: "Reading Room 1", TotalSeats: 300, ActiveSeats: 280, OccupiedSeats: 120,
	}))

	require.NoError(t, q.UpdateReadingRoomSeats(ctx, 1, 280, 205))

	room, err := q.GetReadingRoom(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(205), room.OccupiedSeats)
	assert.Equal(t, int64(300), room.TotalSeats)
	assert.NotEmpty(t, room.UpdatedAt)

	require.ErrorIs(t, q.UpdateReadingRoomSeats(ctx, 99, 0, 0), ErrNotFound)
}

func TestNoticeExpiry(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	q := client.Queries

	require.NoError(t, q.CreateNoticeCategory(ctx, NoticeCategory{ID: 1, Name: "academic"}))

	_, err := q.CreateNotice(ctx, CreateNoticeParams{
		CategoryID: 1, Title: "Course registration opens", URL: "https://example.ac.kr/1",
		Language: "korean", ExpiredAt: sql.NullString{String: "2025-02-01", Valid: true},
	})
	require.NoError(t, err)
	_, err = q.CreateNotice(ctx, CreateNoticeParams{
		CategoryID: 1, Title: "Library hours extended", URL: "https://example.ac.kr/2", Language: "korean",
	})
	require.NoError(t, err)

	removed, err := q.DeleteExpiredNotices(ctx, "2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	notices, err := q.ListNotices(ctx, ListNoticesParams{})
	require.NoError(t, err)
	require.Len(t, notices, 1)
	assert.Equal(t, "Library hours extended", notices[0].Title)
}

func TestContactUniquePerCategory(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	q := client.Queries
	seedCampus(t, q)

	require.NoError(t, q.CreateContactCategory(ctx, ContactCategory{ID: 1, Name: "administration"}))

	_, err := q.CreateContact(ctx, CreateContactParams{
		CategoryID: 1, Name: "Registrar", Phone: "031-400-1234", CampusID: 2,
	})
	require.NoError(t, err)

	_, err = q.CreateContact(ctx, CreateContactParams{
		CategoryID: 1, Name: "Registrar", Phone: "031-400-9999", CampusID: 2,
	})
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestCalendarEventsOnDate(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	q := client.Queries

	require.NoError(t, q.CreateCalendarCategory(ctx, CalendarCategory{ID: 1, Name: "academic"}))

	_, err := q.CreateCalendarEvent(ctx, CreateCalendarEventParams{
		CategoryID: 1, Title: "Midterm exams", StartDate: "2025-04-21", EndDate: "2025-04-25",
	})
	require.NoError(t, err)
	_, err = q.CreateCalendarEvent(ctx, CreateCalendarEventParams{
		CategoryID: 1, Title: "Summer vacation", StartDate: "2025-06-21", EndDate: "2025-08-31",
	})
	require.NoError(t, err)

	events, err := q.ListCalendarEvents(ctx, ListCalendarEventsParams{OnDate: "2025-04-23"})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Midterm exams", events[0].Title)

	events, err = q.ListCalendarEvents(ctx, ListCalendarEventsParams{OnDate: "2025-05-01"})
	require.NoError(t, err)
	assert.Empty(t, events)

	events, err = q.ListCalendarEvents(ctx, ListCalendarEventsParams{})
	require.NoError(t, err)
	assert.Len(t, events, 2)
}
