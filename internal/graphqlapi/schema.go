// Package graphqlapi exposes a read-only GraphQL view over the campus
// store, for clients that want to batch several lookups in one request.
package graphqlapi

import (
	"time"

	"github.com/graphql-go/graphql"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/app"
	"campus.hyuabot.org/internal/models"
	"campus.hyuabot.org/internal/timetable"
	"campus.hyuabot.org/internal/utils"
)

var viaStopType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ViaStop",
	Fields: graphql.Fields{
		"stop": &graphql.Field{Type: graphql.String},
		"time": &graphql.Field{Type: graphql.String},
	},
})

// newTimetableEntryType builds the entry object. The via field loads the
// route's stop list on demand and projects the departure onto every stop.
func newTimetableEntryType(application *app.Application) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "TimetableEntry",
		Fields: graphql.Fields{
			"sequence": &graphql.Field{Type: graphql.Int},
			"period":   &graphql.Field{Type: graphql.String},
			"weekdays": &graphql.Field{Type: graphql.Boolean},
			"route":    &graphql.Field{Type: graphql.String},
			"tag":      &graphql.Field{Type: graphql.String},
			"stop":     &graphql.Field{Type: graphql.String},
			"time":     &graphql.Field{Type: graphql.String},
			"via": &graphql.Field{
				Type: graphql.NewList(viaStopType),
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					entry, ok := p.Source.(models.TimetableViewEntry)
					if !ok {
						return nil, nil
					}
					return resolveVia(application, p, entry)
				},
			},
		},
	})
}

func newTimetableViewType(application *app.Application) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "TimetableView",
		Fields: graphql.Fields{
			"date":     &graphql.Field{Type: graphql.String},
			"period":   &graphql.Field{Type: graphql.String},
			"weekdays": &graphql.Field{Type: graphql.Boolean},
			"halted":   &graphql.Field{Type: graphql.Boolean},
			"entries":  &graphql.Field{Type: graphql.NewList(newTimetableEntryType(application))},
		},
	})
}

var noticeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Notice",
	Fields: graphql.Fields{
		"id":         &graphql.Field{Type: graphql.Int},
		"categoryId": &graphql.Field{Type: graphql.Int},
		"title":      &graphql.Field{Type: graphql.String},
		"url":        &graphql.Field{Type: graphql.String},
		"language":   &graphql.Field{Type: graphql.String},
		"expiredAt":  &graphql.Field{Type: graphql.String},
	},
})

var menuType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Menu",
	Fields: graphql.Fields{
		"seq":         &graphql.Field{Type: graphql.Int},
		"cafeteriaId": &graphql.Field{Type: graphql.Int},
		"date":        &graphql.Field{Type: graphql.String},
		"timeType":    &graphql.Field{Type: graphql.String},
		"menu":        &graphql.Field{Type: graphql.String},
		"price":       &graphql.Field{Type: graphql.String},
	},
})

var readingRoomType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ReadingRoom",
	Fields: graphql.Fields{
		"id":             &graphql.Field{Type: graphql.Int},
		"campusId":       &graphql.Field{Type: graphql.Int},
		"name":           &graphql.Field{Type: graphql.String},
		"totalSeats":     &graphql.Field{Type: graphql.Int},
		"activeSeats":    &graphql.Field{Type: graphql.Int},
		"occupiedSeats":  &graphql.Field{Type: graphql.Int},
		"availableSeats": &graphql.Field{Type: graphql.Int},
	},
})

var subwayTimetableType = graphql.NewObject(graphql.ObjectConfig{
	Name: "SubwayTimetable",
	Fields: graphql.Fields{
		"seq":             &graphql.Field{Type: graphql.Int},
		"station":         &graphql.Field{Type: graphql.String},
		"weekdays":        &graphql.Field{Type: graphql.Boolean},
		"heading":         &graphql.Field{Type: graphql.String},
		"terminalStation": &graphql.Field{Type: graphql.String},
		"departureTime":   &graphql.Field{Type: graphql.String},
	},
})

// NewSchema builds the query schema against the given application.
func NewSchema(application *app.Application) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"shuttle": &graphql.Field{
				Type: newTimetableViewType(application),
				Args: graphql.FieldConfigArgument{
					"date":     &graphql.ArgumentConfig{Type: graphql.String},
					"period":   &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"weekdays": &graphql.ArgumentConfig{Type: graphql.Boolean},
					"routes":   &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"tags":     &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"stops":    &graphql.ArgumentConfig{Type: graphql.NewList(graphql.String)},
					"start":    &graphql.ArgumentConfig{Type: graphql.String},
					"end":      &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return resolveShuttle(application, p)
				},
			},
			"notices": &graphql.Field{
				Type: graphql.NewList(noticeType),
				Args: graphql.FieldConfigArgument{
					"category": &graphql.ArgumentConfig{Type: graphql.Int},
					"language": &graphql.ArgumentConfig{Type: graphql.String},
					"title":    &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return resolveNotices(application, p)
				},
			},
			"menus": &graphql.Field{
				Type: graphql.NewList(menuType),
				Args: graphql.FieldConfigArgument{
					"cafeteria": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"date":      &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return resolveMenus(application, p)
				},
			},
			"readingRooms": &graphql.Field{
				Type: graphql.NewList(readingRoomType),
				Args: graphql.FieldConfigArgument{
					"campus": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return resolveReadingRooms(application, p)
				},
			},
			"subwayTimetables": &graphql.Field{
				Type: graphql.NewList(subwayTimetableType),
				Args: graphql.FieldConfigArgument{
					"station":  &graphql.ArgumentConfig{Type: graphql.String},
					"heading":  &graphql.ArgumentConfig{Type: graphql.String},
					"weekdays": &graphql.ArgumentConfig{Type: graphql.Boolean},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return resolveSubwayTimetables(application, p)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
}

func resolveShuttle(application *app.Application, p graphql.ResolveParams) (interface{}, error) {
	at := time.Now().In(application.Location)
	if date, ok := p.Args["date"].(string); ok && date != "" {
		parsed, err := time.ParseInLocation("2006-01-02", date, application.Location)
		if err != nil {
			return nil, err
		}
		at = parsed
	}

	query := timetable.Query{
		PeriodTypes: stringListArg(p, "period"),
		Routes:      stringListArg(p, "routes"),
		Tags:        stringListArg(p, "tags"),
		Stops:       stringListArg(p, "stops"),
	}
	if weekdays, ok := p.Args["weekdays"].(bool); ok {
		query.Weekdays = []bool{weekdays}
	}
	for name, dst := range map[string]**int64{"start": &query.StartTime, "end": &query.EndTime} {
		raw, ok := p.Args[name].(string)
		if !ok || raw == "" {
			continue
		}
		seconds, err := utils.ParseClock(raw)
		if err != nil {
			return nil, err
		}
		*dst = &seconds
	}

	result, err := application.Resolver.Resolve(p.Context, at, query)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"date":     result.Date,
		"period":   result.PeriodType,
		"weekdays": result.IsWeekdays,
		"halted":   result.Halted,
		"entries":  models.NewTimetableViewEntries(result.Entries),
	}, nil
}

// resolveVia lists every stop of the entry's route with the time the same
// departure passes it. The entry's own time already carries its stop offset,
// so the route-level departure is recovered first.
func resolveVia(application *app.Application, p graphql.ResolveParams, entry models.TimetableViewEntry) (interface{}, error) {
	stops, err := application.DataStore.Queries.ListRouteStops(p.Context, entry.Route)
	if err != nil {
		return nil, err
	}

	atStop, err := utils.ParseClock(entry.Time)
	if err != nil {
		return nil, err
	}
	base := atStop
	for _, rs := range stops {
		if rs.StopName == entry.Stop {
			base = atStop - rs.CumulativeTime
			break
		}
	}
	if base < 0 {
		base += 24 * 3600
	}

	via := make([]models.ViaStopEntry, 0, len(stops))
	for _, rs := range stops {
		via = append(via, models.ViaStopEntry{
			Stop: rs.StopName,
			Time: models.FormatSeconds(base + rs.CumulativeTime),
		})
	}
	return via, nil
}

func resolveNotices(application *app.Application, p graphql.ResolveParams) (interface{}, error) {
	params := campusdb.ListNoticesParams{}
	if category, ok := p.Args["category"].(int); ok {
		id := int64(category)
		params.CategoryID = &id
	}
	if language, ok := p.Args["language"].(string); ok {
		params.Language = language
	}
	if title, ok := p.Args["title"].(string); ok {
		params.Title = title
	}

	notices, err := application.DataStore.Queries.ListNotices(p.Context, params)
	if err != nil {
		return nil, err
	}

	entries := make([]models.NoticeEntry, 0, len(notices))
	for _, n := range notices {
		entries = append(entries, models.NewNoticeEntry(n))
	}
	return entries, nil
}

func resolveMenus(application *app.Application, p graphql.ResolveParams) (interface{}, error) {
	cafeteriaID := int64(p.Args["cafeteria"].(int))
	feedDate := time.Now().In(application.Location).Format("2006-01-02")
	if date, ok := p.Args["date"].(string); ok && date != "" {
		feedDate = date
	}

	menus, err := application.DataStore.Queries.ListMenus(p.Context, cafeteriaID, feedDate)
	if err != nil {
		return nil, err
	}

	entries := make([]models.MenuEntry, 0, len(menus))
	for _, m := range menus {
		entries = append(entries, models.NewMenuEntry(m))
	}
	return entries, nil
}

func resolveReadingRooms(application *app.Application, p graphql.ResolveParams) (interface{}, error) {
	var campusID *int64
	if campus, ok := p.Args["campus"].(int); ok {
		id := int64(campus)
		campusID = &id
	}

	rooms, err := application.DataStore.Queries.ListReadingRooms(p.Context, campusID)
	if err != nil {
		return nil, err
	}

	entries := make([]models.ReadingRoomEntry, 0, len(rooms))
	for _, room := range rooms {
		entries = append(entries, models.NewReadingRoomEntry(room))
	}
	return entries, nil
}

func resolveSubwayTimetables(application *app.Application, p graphql.ResolveParams) (interface{}, error) {
	params := campusdb.ListSubwayTimetablesParams{}
	if station, ok := p.Args["station"].(string); ok {
		params.StationID = station
	}
	if heading, ok := p.Args["heading"].(string); ok {
		params.Heading = heading
	}
	if weekdays, ok := p.Args["weekdays"].(bool); ok {
		params.IsWeekdays = &weekdays
	}

	timetables, err := application.DataStore.Queries.ListSubwayTimetables(p.Context, params)
	if err != nil {
		return nil, err
	}

	entries := make([]models.SubwayTimetableEntry, 0, len(timetables))
	for _, t := range timetables {
		entries = append(entries, models.NewSubwayTimetableEntry(t))
	}
	return entries, nil
}

func stringListArg(p graphql.ResolveParams, name string) []string {
	raw, ok := p.Args[name].([]interface{})
	if !ok {
		return nil
	}
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values
}
