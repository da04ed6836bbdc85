package restapi

import (
	"net/http"
	"strconv"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/models"
	"campus.hyuabot.org/internal/utils"
)

func (api *RestAPI) listSubwayRoutesHandler(w http.ResponseWriter, r *http.Request) {
	routes, err := api.DataStore.Queries.ListSubwayRoutes(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.SubwayRouteEntry, 0, len(routes))
	for _, route := range routes {
		entries = append(entries, models.NewSubwayRouteEntry(route))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createSubwayRouteHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID   string `json:"id" validate:"required,max=100"`
		Name string `json:"name" validate:"required,max=100"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	route := campusdb.SubwayRoute{ID: payload.ID, Name: payload.Name}
	if err := api.DataStore.Queries.CreateSubwayRoute(r.Context(), route); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewSubwayRouteEntry(route))
}

func (api *RestAPI) getSubwayRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	route, err := api.DataStore.Queries.GetSubwayRoute(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewSubwayRouteEntry(route)))
}

func (api *RestAPI) deleteSubwayRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	if err := api.DataStore.Queries.DeleteSubwayRoute(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listSubwayStationsHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := utils.ValidateQuery(name); err != nil {
		api.fieldErrorResponse(w, r, "name", err)
		return
	}

	stations, err := api.DataStore.Queries.ListSubwayStations(r.Context(), name)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.SubwayStationEntry, 0, len(stations))
	for _, s := range stations {
		entries = append(entries, models.NewSubwayStationEntry(s))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createSubwayStationHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID    string `json:"id" validate:"required,max=100"`
		Name  string `json:"name" validate:"required,max=100"`
		Route string `json:"route" validate:"required,max=100"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	station := campusdb.SubwayStation{ID: payload.ID, Name: payload.Name, RouteID: payload.Route}
	if err := api.DataStore.Queries.CreateSubwayStation(r.Context(), station); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewSubwayStationEntry(station))
}

func (api *RestAPI) getSubwayStationHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	station, err := api.DataStore.Queries.GetSubwayStation(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewSubwayStationEntry(station)))
}

func (api *RestAPI) deleteSubwayStationHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	if err := api.DataStore.Queries.DeleteSubwayStation(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listSubwayTimetablesHandler(w http.ResponseWriter, r *http.Request) {
	params := campusdb.ListSubwayTimetablesParams{
		StationID: r.URL.Query().Get("station"),
		Heading:   r.URL.Query().Get("heading"),
	}
	if raw := r.URL.Query().Get("weekdays"); raw != "" {
		weekdays, err := strconv.ParseBool(raw)
		if err != nil {
			api.fieldErrorResponse(w, r, "weekdays", err)
			return
		}
		params.IsWeekdays = &weekdays
	}

	timetables, err := api.DataStore.Queries.ListSubwayTimetables(r.Context(), params)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.SubwayTimetableEntry, 0, len(timetables))
	for _, t := range timetables {
		entries = append(entries, models.NewSubwayTimetableEntry(t))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createSubwayTimetableHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Station         string `json:"station" validate:"required,max=100"`
		Weekdays        *bool  `json:"weekdays" validate:"required"`
		Heading         string `json:"heading" validate:"required,oneof=up down"`
		TerminalStation string `json:"terminalStation" validate:"required,max=100"`
		DepartureTime   string `json:"departureTime" validate:"required"`
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

	created, err := api.DataStore.Queries.CreateSubwayTimetable(r.Context(), campusdb.CreateSubwayTimetableParams{
		StationID:       payload.Station,
		IsWeekdays:      *payload.Weekdays,
		Heading:         payload.Heading,
		TerminalStation: payload.TerminalStation,
		DepartureTime:   departure,
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewSubwayTimetableEntry(created))
}

func (api *RestAPI) deleteSubwayTimetableHandler(w http.ResponseWriter, r *http.Request) {
	seq, err := utils.ExtractIntFromParams(r, "seq")
	if err != nil {
		api.fieldErrorResponse(w, r, "seq", err)
		return
	}

	if err := api.DataStore.Queries.DeleteSubwayTimetable(r.Context(), seq); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}
