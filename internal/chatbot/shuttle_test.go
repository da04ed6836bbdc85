package chatbot

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

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

func postSkillRequest(t *testing.T, handler http.Handler, body interface{}) skillResponse {
	t.Helper()

	encoded, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/chatbot/shuttle", bytes.NewReader(encoded))
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response skillResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	return response
}

func TestShuttleHandlerAsksForStopWhenMissing(t *testing.T) {
	handler := NewShuttleHandler(newTestApplication(t))

	response := postSkillRequest(t, handler, map[string]interface{}{
		"userRequest": map[string]string{"utterance": ""},
		"action":      map[string]interface{}{"params": map[string]string{}},
	})

	require.Len(t, response.Template.Outputs, 1)
	assert.Equal(t, "2.0", response.Version)
	assert.Contains(t, response.Template.Outputs[0].SimpleText.Text, "Which stop")
}

func TestShuttleHandlerReportsMissingSchedule(t *testing.T) {
	handler := NewShuttleHandler(newTestApplication(t))

	response := postSkillRequest(t, handler, map[string]interface{}{
		"userRequest": map[string]string{"utterance": "dormitory"},
		"action":      map[string]interface{}{"params": map[string]string{}},
	})

	require.Len(t, response.Template.Outputs, 1)
	assert.Contains(t, response.Template.Outputs[0].SimpleText.Text, "No shuttle schedule is available for dormitory")
}

func TestComposeAnswer(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)
	noon := time.Date(2024, 1, 3, 12, 0, 0, 0, loc)

	entries := []campusdb.TimetableViewRow{
		{RouteName: "DHDD", StopName: "dormitory", DepartureTime: 9 * 3600},
		{RouteName: "DHDD", StopName: "dormitory", DepartureTime: 15 * 3600},
		{RouteName: "DYDD", StopName: "dormitory", DepartureTime: 12*3600 + 30*60},
	}
	result := timetable.Result{Date: "2024-01-03", PeriodType: "vacation", IsWeekdays: true, Entries: entries}

	t.Run("lists upcoming departures in time order", func(t *testing.T) {
		text := composeAnswer("dormitory", noon, result)
		assert.Equal(t, "Next departures from dormitory:\n12:30 DYDD\n15:00 DHDD", text)
	})

	t.Run("reports when the day is over", func(t *testing.T) {
		lateNight := time.Date(2024, 1, 3, 23, 30, 0, 0, loc)
		text := composeAnswer("dormitory", lateNight, result)
		assert.Equal(t, "No more departures from dormitory today.", text)
	})

	t.Run("reports halted service", func(t *testing.T) {
		text := composeAnswer("dormitory", noon, timetable.Result{Date: "2024-01-01", Halted: true})
		assert.Equal(t, "The shuttle does not run on 2024-01-01.", text)
	})
}
