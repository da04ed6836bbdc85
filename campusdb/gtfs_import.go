package campusdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/jamespfennell/gtfs"

	"campus.hyuabot.org/internal/logging"
)

// ImportBusGTFS loads a static GTFS feed into the city-bus tables. Routes
// and stops map directly; trips collapse into per-stop departure rows
// keyed by weekday type, since the city publishes separate services for
// weekdays, Saturday, and Sunday.
func (c *Client) ImportBusGTFS(ctx context.Context, b []byte) error {
	startTime := time.Now()
	defer func() {
		if c.config.verbose {
			logging.LogOperation(slog.Default(), "bus_gtfs_import_finished",
				slog.Duration("duration", time.Since(startTime)))
		}
	}()

	staticData, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return fmt.Errorf("error parsing GTFS feed: %w", err)
	}

	if c.config.verbose {
		slog.Info("parsed GTFS feed",
			"routes", len(staticData.Routes),
			"stops", len(staticData.Stops),
			"trips", len(staticData.Trips),
			"warnings", len(staticData.Warnings))
	}

	tx, err := c.DB.Begin()
	if err != nil {
		return err
	}
	defer logging.SafeRollbackWithLogging(tx, slog.Default(), "bus_gtfs_import")

	qtx := c.Queries.WithTx(tx)

	for _, r := range staticData.Routes {
		route := BusRoute{
			ID:        r.Id,
			ShortName: toNullString(r.ShortName),
			LongName:  toNullString(r.LongName),
			Type:      int64(r.Type),
		}
		if err := qtx.CreateBusRoute(ctx, route); err != nil {
			return fmt.Errorf("error importing route %s: %w", r.Id, err)
		}
	}

	for _, s := range staticData.Stops {
		stop := BusStop{ID: s.Id, Name: s.Name}
		if s.Latitude != nil {
			stop.Latitude = *s.Latitude
		}
		if s.Longitude != nil {
			stop.Longitude = *s.Longitude
		}
		if err := qtx.CreateBusStop(ctx, stop); err != nil {
			return fmt.Errorf("error importing stop %s: %w", s.Id, err)
		}
	}

	// One representative trip per route defines the stop sequence.
	routeStopsDone := make(map[string]bool)
	type timetableKey struct {
		routeID     string
		stopID      string
		weekdayType string
		departure   int64
	}
	seen := make(map[timetableKey]bool)

	for _, t := range staticData.Trips {
		weekdayTypes := serviceWeekdayTypes(t.Service)
		if len(weekdayTypes) == 0 {
			continue
		}

		if !routeStopsDone[t.Route.Id] {
			for _, st := range t.StopTimes {
				rs := BusRouteStop{
					RouteID:   t.Route.Id,
					StopID:    st.Stop.Id,
					StopOrder: int64(st.StopSequence),
				}
				if err := qtx.CreateBusRouteStop(ctx, rs); err != nil {
					return fmt.Errorf("error importing route stops for %s: %w", t.Route.Id, err)
				}
			}
			routeStopsDone[t.Route.Id] = true
		}

		for _, st := range t.StopTimes {
			departure := int64(st.DepartureTime / time.Second)
			for _, weekdayType := range weekdayTypes {
				key := timetableKey{t.Route.Id, st.Stop.Id, weekdayType, departure}
				if seen[key] {
					continue
				}
				seen[key] = true

				_, err := qtx.CreateBusTimetable(ctx, CreateBusTimetableParams{
					RouteID:       t.Route.Id,
					StopID:        st.Stop.Id,
					WeekdayType:   weekdayType,
					DepartureTime: departure,
				})
				if err != nil {
					return fmt.Errorf("error importing timetable for trip %s: %w", t.ID, err)
				}
			}
		}
	}

	return tx.Commit()
}

// serviceWeekdayTypes maps a GTFS service's active days onto the weekday
// buckets the timetable tables use.
func serviceWeekdayTypes(s *gtfs.Service) []string {
	if s == nil {
		return nil
	}

	var types []string
	if s.Monday || s.Tuesday || s.Wednesday || s.Thursday || s.Friday {
		types = append(types, "weekdays")
	}
	if s.Saturday {
		types = append(types, "saturday")
	}
	if s.Sunday {
		types = append(types, "sunday")
	}
	return types
}

func toNullString(s string) sql.NullString {
	return sql.NullString{
		String: s,
		Valid:  s != "",
	}
}
