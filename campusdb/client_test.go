package campusdb

import (
	"context"
	"testing"

	"campus.hyuabot.org/internal/appconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := NewClient(NewConfig(":memory:", appconf.Test, false))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestNewClientRejectsFileDBInTestEnv(t *testing.T) {
	_, err := NewClient(NewConfig("campus.db", appconf.Test, false))
	require.Error(t, err)
}

func TestMigrationCreatesAllTables(t *testing.T) {
	client := newTestClient(t)

	counts, err := client.TableCounts()
	require.NoError(t, err)

	for _, table := range []string{
		"campuses", "shuttle_periods", "shuttle_holidays", "shuttle_stops",
		"shuttle_routes", "shuttle_route_stops", "shuttle_timetables",
		"bus_routes", "bus_stops", "bus_route_stops", "bus_timetables",
		"subway_routes", "subway_stations", "subway_timetables",
		"buildings", "cafeterias", "menus", "reading_rooms",
		"notice_categories", "notices", "contact_categories", "contacts",
		"calendar_categories", "calendar_events",
	} {
		_, ok := counts[table]
		assert.True(t, ok, "table %s missing after migration", table)
	}
}

func TestForeignKeysEnforced(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	err := client.Queries.CreateBuilding(ctx, Building{Name: "Engineering Hall", CampusID: 99})
	require.ErrorIs(t, err, ErrReferenceMissing)
}

func TestCampusCRUD(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()
	q := client.Queries

	require.NoError(t, q.CreateCampus(ctx, Campus{ID: 1, Name: "Seoul"}))
	require.NoError(t, q.CreateCampus(ctx, Campus{ID: 2, Name: "ERICA"}))

	err := q.CreateCampus(ctx, Campus{ID: 1, Name: "Duplicate"})
	require.ErrorIs(t, err, ErrDuplicate)

	campuses, err := q.ListCampuses(ctx)
	require.NoError(t, err)
	require.Len(t, campuses, 2)
	assert.Equal(t, "Seoul", campuses[0].Name)

	campus, err := q.GetCampus(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "ERICA", campus.Name)

	_, err = q.GetCampus(ctx, 3)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, q.DeleteCampus(ctx, 2))
	require.ErrorIs(t, q.DeleteCampus(ctx, 2), ErrNotFound)
}
