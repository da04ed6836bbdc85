package restapi

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/models"
	"campus.hyuabot.org/internal/timetable"
	"campus.hyuabot.org/internal/utils"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

func (api *RestAPI) listPeriodsHandler(w http.ResponseWriter, r *http.Request) {
	periods, err := api.DataStore.Queries.ListPeriods(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.PeriodEntry, 0, len(periods))
	for _, p := range periods {
		entries = append(entries, models.NewPeriodEntry(p))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createPeriodHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Type      string `json:"type" validate:"required,oneof=semester vacation vacation_session"`
		StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate   string `json:"endDate" validate:"required,datetime=2006-01-02"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}
	if payload.EndDate < payload.StartDate {
		api.errorResponse(w, r, http.StatusBadRequest, "endDate must not precede startDate")
		return
	}

	period, err := api.DataStore.Queries.CreatePeriod(r.Context(), campusdb.CreatePeriodParams{
		Type:      payload.Type,
		StartDate: payload.StartDate,
		EndDate:   payload.EndDate,
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewPeriodEntry(period))
}

func (api *RestAPI) getPeriodHandler(w http.ResponseWriter, r *http.Request) {
	seq, err := utils.ExtractIntFromParams(r, "seq")
	if err != nil {
		api.fieldErrorResponse(w, r, "seq", err)
		return
	}

	period, err := api.DataStore.Queries.GetPeriod(r.Context(), seq)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewPeriodEntry(period)))
}

func (api *RestAPI) deletePeriodHandler(w http.ResponseWriter, r *http.Request) {
	seq, err := utils.ExtractIntFromParams(r, "seq")
	if err != nil {
		api.fieldErrorResponse(w, r, "seq", err)
		return
	}

	if err := api.DataStore.Queries.DeletePeriod(r.Context(), seq); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listHolidaysHandler(w http.ResponseWriter, r *http.Request) {
	holidays, err := api.DataStore.Queries.ListHolidays(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.HolidayEntry, 0, len(holidays))
	for _, h := range holidays {
		entries = append(entries, models.NewHolidayEntry(h))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createHolidayHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Date     string `json:"date" validate:"required,datetime=2006-01-02"`
		Calendar string `json:"calendar" validate:"required,oneof=solar lunar"`
		Type     string `json:"type" validate:"required,oneof=weekends halt"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	holiday := campusdb.Holiday{Date: payload.Date, Calendar: payload.Calendar, Type: payload.Type}
	if err := api.DataStore.Queries.CreateHoliday(r.Context(), holiday); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewHolidayEntry(holiday))
}

func (api *RestAPI) deleteHolidayHandler(w http.ResponseWriter, r *http.Request) {
	calendar := utils.ExtractIDFromParams(r, "calendar")
	date := utils.ExtractIDFromParams(r, "date")
	if err := utils.ValidateDate(date); err != nil {
		api.fieldErrorResponse(w, r, "date", err)
		return
	}

	if err := api.DataStore.Queries.DeleteHoliday(r.Context(), date, calendar); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listShuttleStopsHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := utils.ValidateQuery(name); err != nil {
		api.fieldErrorResponse(w, r, "name", err)
		return
	}

	stops, err := api.DataStore.Queries.ListShuttleStops(r.Context(), name)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.ShuttleStopEntry, 0, len(stops))
	for _, s := range stops {
		entries = append(entries, models.NewShuttleStopEntry(s))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createShuttleStopHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string  `json:"name" validate:"required,max=100"`
		Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
		Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	stop := campusdb.ShuttleStop{Name: payload.Name, Latitude: payload.Latitude, Longitude: payload.Longitude}
	if err := api.DataStore.Queries.CreateShuttleStop(r.Context(), stop); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewShuttleStopEntry(stop))
}

func (api *RestAPI) getShuttleStopHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	stop, err := api.DataStore.Queries.GetShuttleStop(r.Context(), name)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewShuttleStopEntry(stop)))
}

func (api *RestAPI) updateShuttleStopHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	var payload struct {
		Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
		Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	err := api.DataStore.Queries.UpdateShuttleStop(r.Context(), name, campusdb.UpdateShuttleStopParams{
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	stop, err := api.DataStore.Queries.GetShuttleStop(r.Context(), name)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewShuttleStopEntry(stop)))
}

func (api *RestAPI) deleteShuttleStopHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	if err := api.DataStore.Queries.DeleteShuttleStop(r.Context(), name); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listShuttleRoutesHandler(w http.ResponseWriter, r *http.Request) {
	params := campusdb.ListShuttleRoutesParams{
		Name: r.URL.Query().Get("name"),
		Tag:  r.URL.Query().Get("tag"),
	}
	if err := utils.ValidateQuery(params.Name); err != nil {
		api.fieldErrorResponse(w, r, "name", err)
		return
	}

	routes, err := api.DataStore.Queries.ListShuttleRoutes(r.Context(), params)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.ShuttleRouteEntry, 0, len(routes))
	for _, route := range routes {
		entries = append(entries, models.NewShuttleRouteEntry(route))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createShuttleRouteHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string  `json:"name" validate:"required,max=100"`
		Tag       string  `json:"tag" validate:"required,max=20"`
		Korean    *string `json:"korean"`
		English   *string `json:"english"`
		StartStop *string `json:"startStop"`
		EndStop   *string `json:"endStop"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	params := campusdb.CreateShuttleRouteParams{
		Name:      payload.Name,
		Tag:       payload.Tag,
		Korean:    toNullString(payload.Korean),
		English:   toNullString(payload.English),
		StartStop: toNullString(payload.StartStop),
		EndStop:   toNullString(payload.EndStop),
	}
	if err := api.DataStore.Queries.CreateShuttleRoute(r.Context(), params); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	route, err := api.DataStore.Queries.GetShuttleRoute(r.Context(), payload.Name)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewShuttleRouteEntry(route))
}

func (api *RestAPI) getShuttleRouteHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	route, err := api.DataStore.Queries.GetShuttleRoute(r.Context(), name)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewShuttleRouteEntry(route)))
}

func (api *RestAPI) updateShuttleRouteHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	var payload struct {
		Tag       *string `json:"tag"`
		Korean    *string `json:"korean"`
		English   *string `json:"english"`
		StartStop *string `json:"startStop"`
		EndStop   *string `json:"endStop"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}

	err := api.DataStore.Queries.UpdateShuttleRoute(r.Context(), name, campusdb.UpdateShuttleRouteParams{
		Tag:       payload.Tag,
		Korean:    payload.Korean,
		English:   payload.English,
		StartStop: payload.StartStop,
		EndStop:   payload.EndStop,
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	route, err := api.DataStore.Queries.GetShuttleRoute(r.Context(), name)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewShuttleRouteEntry(route)))
}

func (api *RestAPI) deleteShuttleRouteHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	if err := api.DataStore.Queries.DeleteShuttleRoute(r.Context(), name); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listRouteStopsHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	if _, err := api.DataStore.Queries.GetShuttleRoute(r.Context(), name); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	stops, err := api.DataStore.Queries.ListRouteStops(r.Context(), name)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.RouteStopEntry, 0, len(stops))
	for _, rs := range stops {
		entries = append(entries, models.NewRouteStopEntry(rs))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createRouteStopHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	var payload struct {
		Stop           string `json:"stop" validate:"required,max=100"`
		Order          int64  `json:"order" validate:"min=0"`
		CumulativeTime int64  `json:"cumulativeTime" validate:"min=0"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	rs := campusdb.RouteStop{
		RouteName:      name,
		StopName:       payload.Stop,
		StopOrder:      payload.Order,
		CumulativeTime: payload.CumulativeTime,
	}
	if err := api.DataStore.Queries.CreateRouteStop(r.Context(), rs); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewRouteStopEntry(rs))
}

func (api *RestAPI) updateRouteStopHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")
	stop := utils.ExtractIDFromParams(r, "stop")

	var payload struct {
		Order          *int64 `json:"order"`
		CumulativeTime *int64 `json:"cumulativeTime"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}

	err := api.DataStore.Queries.UpdateRouteStop(r.Context(), name, stop, campusdb.UpdateRouteStopParams{
		StopOrder:      payload.Order,
		CumulativeTime: payload.CumulativeTime,
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) deleteRouteStopHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")
	stop := utils.ExtractIDFromParams(r, "stop")

	if err := api.DataStore.Queries.DeleteRouteStop(r.Context(), name, stop); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listShuttleTimetablesHandler(w http.ResponseWriter, r *http.Request) {
	timetables, err := api.DataStore.Queries.ListTimetables(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.ShuttleTimetableEntry, 0, len(timetables))
	for _, t := range timetables {
		entries = append(entries, models.NewShuttleTimetableEntry(t))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createShuttleTimetableHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Period        string `json:"period" validate:"required,oneof=semester vacation vacation_session"`
		Weekdays      *bool  `json:"weekdays" validate:"required"`
		Route         string `json:"route" validate:"required,max=100"`
		DepartureTime string `json:"departureTime" validate:"required"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	departure, err := utils.ParseClock(payload.DepartureTime)
	if err != nil {
		api.fieldErrorResponse(w, r, "departureTime", err)
		return
	}

	created, err := api.DataStore.Queries.CreateTimetable(r.Context(), campusdb.CreateTimetableParams{
		PeriodType:    payload.Period,
		IsWeekdays:    *payload.Weekdays,
		RouteName:     payload.Route,
		DepartureTime: departure,
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewShuttleTimetableEntry(created))
}

func (api *RestAPI) getShuttleTimetableHandler(w http.ResponseWriter, r *http.Request) {
	seq, err := utils.ExtractIntFromParams(r, "seq")
	if err != nil {
		api.fieldErrorResponse(w, r, "seq", err)
		return
	}

	entry, err := api.DataStore.Queries.GetTimetable(r.Context(), seq)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewShuttleTimetableEntry(entry)))
}

func (api *RestAPI) deleteShuttleTimetableHandler(w http.ResponseWriter, r *http.Request) {
	seq, err := utils.ExtractIntFromParams(r, "seq")
	if err != nil {
		api.fieldErrorResponse(w, r, "seq", err)
		return
	}

	if err := api.DataStore.Queries.DeleteTimetable(r.Context(), seq); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

// timetableViewHandler resolves the schedule for a point in time. The date
// parameter defaults to the current moment in the campus timezone.
func (api *RestAPI) timetableViewHandler(w http.ResponseWriter, r *http.Request) {
	at := time.Now().In(api.Location)
	if date := r.URL.Query().Get("date"); date != "" {
		if err := utils.ValidateDate(date); err != nil {
			api.fieldErrorResponse(w, r, "date", err)
			return
		}
		parsed, err := time.ParseInLocation("2006-01-02", date, api.Location)
		if err != nil {
			api.fieldErrorResponse(w, r, "date", err)
			return
		}
		at = parsed
	}

	query := timetable.Query{
		Routes: utils.QueryList(r, "route"),
		Tags:   utils.QueryList(r, "tag"),
		Stops:  utils.QueryList(r, "stop"),
	}
	for _, period := range utils.QueryList(r, "period") {
		switch period {
		case "semester", "vacation", "vacation_session":
			query.PeriodTypes = append(query.PeriodTypes, period)
		default:
			api.errorResponse(w, r, http.StatusBadRequest, "unknown period type "+period)
			return
		}
	}
	if raw := r.URL.Query().Get("weekdays"); raw != "" {
		weekdays, err := strconv.ParseBool(raw)
		if err != nil {
			api.fieldErrorResponse(w, r, "weekdays", err)
			return
		}
		query.Weekdays = []bool{weekdays}
	}
	for name, dst := range map[string]**int64{"start": &query.StartTime, "end": &query.EndTime} {
		raw := r.URL.Query().Get(name)
		if raw == "" {
			continue
		}
		seconds, err := utils.ParseClock(raw)
		if err != nil {
			api.fieldErrorResponse(w, r, name, err)
			return
		}
		*dst = &seconds
	}

	result, err := api.Resolver.Resolve(r.Context(), at, query)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	data := map[string]interface{}{
		"date":     result.Date,
		"period":   result.PeriodType,
		"weekdays": result.IsWeekdays,
		"halted":   result.Halted,
		"entries":  models.NewTimetableViewEntries(result.Entries),
	}
	api.sendResponse(w, r, models.ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: models.ResponseCurrentTime(),
		Data:        data,
		Text:        "OK",
		Version:     2,
	})
}

func toNullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
