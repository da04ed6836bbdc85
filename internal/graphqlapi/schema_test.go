package graphqlapi

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/app"
	"campus.hyuabot.org/internal/appconf"
	"campus.hyuabot.org/internal/holidays"
	"campus.hyuabot.org/internal/logging"
	"campus.hyuabot.org/internal/timetable"
)

func newTestApplication(t *testing.T) *app.Application {
	t.Helper()

	client, err := campusdb.NewClient(campusdb.NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	cal, err := holidays.NewCalendar(loc)
	require.NoError(t, err)

	return &app.Application{
		Config:    appconf.Config{Env: appconf.Test},
		Logger:    logging.NewStructuredLogger(io.Discard, slog.LevelError),
		DataStore: client,
		Holidays:  cal,
		Resolver:  timetable.NewResolver(client.Queries, cal, loc),
		Location:  loc,
	}
}

func executeQuery(t *testing.T, application *app.Application, query string) map[string]interface{} {
	t.Helper()

	schema, err := NewSchema(application)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: query,
		Context:       context.Background(),
	})
	require.Empty(t, result.Errors)

	data, ok := result.Data.(map[string]interface{})
	require.True(t, ok)
	return data
}

func TestShuttleQuery(t *testing.T) {
	application := newTestApplication(t)
	ctx := context.Background()
	q := application.DataStore.Queries

	_, err := q.CreatePeriod(ctx, campusdb.CreatePeriodParams{
		Type: "vacation", StartDate: "2023-12-22", EndDate: "2024-02-29",
	})
	require.NoError(t, err)
	require.NoError(t, q.CreateShuttleStop(ctx, campusdb.ShuttleStop{Name: "dormitory", Latitude: 37.29, Longitude: 126.83}))
	require.NoError(t, q.CreateShuttleRoute(ctx, campusdb.CreateShuttleRouteParams{Name: "DHDD", Tag: "DH"}))
	require.NoError(t, q.CreateRouteStop(ctx, campusdb.RouteStop{RouteName: "DHDD", StopName: "dormitory"}))
	_, err = q.CreateTimetable(ctx, campusdb.CreateTimetableParams{
		PeriodType: "vacation", IsWeekdays: true, RouteName: "DHDD", DepartureTime: 8 * 3600,
	})
	require.NoError(t, err)

	data := executeQuery(t, application, `
		{
			shuttle(date: "2024-01-03") {
				date
				period
				weekdays
				halted
				entries { route tag stop time }
			}
		}
	`)

	view := data["shuttle"].(map[string]interface{})
	assert.Equal(t, "2024-01-03", view["date"])
	assert.Equal(t, "vacation", view["period"])
	assert.Equal(t, true, view["weekdays"])
	assert.Equal(t, false, view["halted"])

	entries := view["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "DHDD", entry["route"])
	assert.Equal(t, "DH", entry["tag"])
	assert.Equal(t, "dormitory", entry["stop"])
	assert.Equal(t, "08:00:00", entry["time"])
}

func TestShuttleViaQuery(t *testing.T) {
	application := newTestApplication(t)
	ctx := context.Background()
	q := application.DataStore.Queries

	_, err := q.CreatePeriod(ctx, campusdb.CreatePeriodParams{
		Type: "vacation", StartDate: "2023-12-22", EndDate: "2024-02-29",
	})
	require.NoError(t, err)
	require.NoError(t, q.CreateShuttleStop(ctx, campusdb.ShuttleStop{Name: "dormitory", Latitude: 37.29, Longitude: 126.83}))
	require.NoError(t, q.CreateShuttleStop(ctx, campusdb.ShuttleStop{Name: "station", Latitude: 37.30, Longitude: 126.85}))
	require.NoError(t, q.CreateShuttleRoute(ctx, campusdb.CreateShuttleRouteParams{Name: "DHDD", Tag: "DH"}))
	require.NoError(t, q.CreateRouteStop(ctx, campusdb.RouteStop{RouteName: "DHDD", StopName: "dormitory", StopOrder: 0}))
	require.NoError(t, q.CreateRouteStop(ctx, campusdb.RouteStop{RouteName: "DHDD", StopName: "station", StopOrder: 1, CumulativeTime: 600}))
	_, err = q.CreateTimetable(ctx, campusdb.CreateTimetableParams{
		PeriodType: "vacation", IsWeekdays: true, RouteName: "DHDD", DepartureTime: 8 * 3600,
	})
	require.NoError(t, err)

	data := executeQuery(t, application, `
		{
			shuttle(date: "2024-01-03", stops: ["station"]) {
				entries { stop time via { stop time } }
			}
		}
	`)

	entries := data["shuttle"].(map[string]interface{})["entries"].([]interface{})
	require.Len(t, entries, 1)
	entry := entries[0].(map[string]interface{})
	assert.Equal(t, "station", entry["stop"])
	assert.Equal(t, "08:10:00", entry["time"])

	via := entry["via"].([]interface{})
	require.Len(t, via, 2)
	assert.Equal(t, map[string]interface{}{"stop": "dormitory", "time": "08:00:00"}, via[0])
	assert.Equal(t, map[string]interface{}{"stop": "station", "time": "08:10:00"}, via[1])
}

func TestNoticesAndReadingRoomsQuery(t *testing.T) {
	application := newTestApplication(t)
	ctx := context.Background()
	q := application.DataStore.Queries

	require.NoError(t, q.CreateCampus(ctx, campusdb.Campus{ID: 2, Name: "ERICA"}))
	require.NoError(t, q.CreateNoticeCategory(ctx, campusdb.NoticeCategory{ID: 1, Name: "academic"}))
	_, err := q.CreateNotice(ctx, campusdb.CreateNoticeParams{
		CategoryID: 1, Title: "Course registration", URL: "https://example.com/1", Language: "korean",
	})
	require.NoError(t, err)
	require.NoError(t, q.CreateReadingRoom(ctx, campusdb.ReadingRoom{
		ID: 1, CampusID: 2, Name: "Reading Room 1", TotalSeats: 200, ActiveSeats: 200,
	}))
	require.NoError(t, q.UpdateReadingRoomSeats(ctx, 1, 180, 30))

	data := executeQuery(t, application, `
		{
			notices(category: 1) { title language }
			readingRooms(campus: 2) { name availableSeats }
		}
	`)

	notices := data["notices"].([]interface{})
	require.Len(t, notices, 1)
	assert.Equal(t, "Course registration", notices[0].(map[string]interface{})["title"])

	rooms := data["readingRooms"].([]interface{})
	require.Len(t, rooms, 1)
	assert.Equal(t, 150, rooms[0].(map[string]interface{})["availableSeats"])
}

func TestShuttleQueryRejectsBadClock(t *testing.T) {
	application := newTestApplication(t)

	schema, err := NewSchema(application)
	require.NoError(t, err)

	result := graphql.Do(graphql.Params{
		Schema:        schema,
		RequestString: `{ shuttle(date: "2024-01-03", start: "not a clock") { date } }`,
		Context:       context.Background(),
	})
	assert.NotEmpty(t, result.Errors)
}
