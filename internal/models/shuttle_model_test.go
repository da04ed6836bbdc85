package models

import (
	"database/sql"
	"encoding/json"
	"testing"

	"campus.hyuabot.org/campusdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatSeconds(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatSeconds(0))
	assert.Equal(t, "08:05:00", FormatSeconds(8*3600+300))
	assert.Equal(t, "23:59:59", FormatSeconds(24*3600-1))
	// Departures past midnight wrap around.
	assert.Equal(t, "00:30:00", FormatSeconds(24*3600+1800))
}

func TestTimetableViewEntryJSON(t *testing.T) {
	entry := NewTimetableViewEntry(campusdb.TimetableViewRow{
		Seq:           3,
		PeriodType:    "semester",
		IsWeekdays:    true,
		RouteName:     "DHDD",
		RouteTag:      "DH",
		StopName:      "shuttlecock",
		DepartureTime: 8*3600 + 300,
	})

	b, err := json.Marshal(entry)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"sequence": 3,
		"period": "semester",
		"weekdays": true,
		"route": "DHDD",
		"tag": "DH",
		"stop": "shuttlecock",
		"time": "08:05:00"
	}`, string(b))
}

func TestShuttleRouteEntryNullFields(t *testing.T) {
	entry := NewShuttleRouteEntry(campusdb.ShuttleRoute{
		Name:    "DHDD",
		Tag:     "DH",
		English: sql.NullString{String: "Dorm to Station", Valid: true},
	})

	require.NotNil(t, entry.English)
	assert.Equal(t, "Dorm to Station", *entry.English)
	assert.Nil(t, entry.Korean)
	assert.Nil(t, entry.StartStop)
}

func TestNewEntryResponse(t *testing.T) {
	response := NewEntryResponse(CampusEntry{ID: 2, Name: "ERICA"})

	assert.Equal(t, 200, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, 2, response.Version)
	assert.NotZero(t, response.CurrentTime)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, data, "entry")
}

func TestReadingRoomEntryAvailableSeats(t *testing.T) {
	entry := NewReadingRoomEntry(campusdb.ReadingRoom{
		ID: 1, CampusID: 2, Name: "Reading Room 1",
		TotalSeats: 300, ActiveSeats: 280, OccupiedSeats: 120,
	})
	assert.Equal(t, int64(160), entry.AvailableSeats)
}
