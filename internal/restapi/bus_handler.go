package restapi

import (
	"io"
	"net/http"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/models"
	"campus.hyuabot.org/internal/utils"
)

// maxGTFSFeedBytes caps the accepted size of an uploaded GTFS zip.
const maxGTFSFeedBytes = 64 << 20

// importBusGTFSHandler loads a static GTFS zip, posted as the raw request
// body, into the city-bus tables. Re-posting the same feed is a no-op for
// rows that already exist.
func (api *RestAPI) importBusGTFSHandler(w http.ResponseWriter, r *http.Request) {
	feed, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxGTFSFeedBytes))
	if err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}

	if err := api.DataStore.ImportBusGTFS(r.Context(), feed); err != nil {
		api.Logger.Warn("rejected GTFS import", "error", err)
		api.errorResponse(w, r, http.StatusBadRequest, "could not parse GTFS feed")
		return
	}

	api.sendResponse(w, r, models.ResponseModel{
		Code:        http.StatusOK,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "imported",
		Version:     2,
	})
}

func (api *RestAPI) listBusRoutesHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := utils.ValidateQuery(name); err != nil {
		api.fieldErrorResponse(w, r, "name", err)
		return
	}

	routes, err := api.DataStore.Queries.ListBusRoutes(r.Context(), name)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.BusRouteEntry, 0, len(routes))
	for _, route := range routes {
		entries = append(entries, models.NewBusRouteEntry(route))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createBusRouteHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID        string  `json:"id" validate:"required,max=100"`
		ShortName *string `json:"shortName"`
		LongName  *string `json:"longName"`
		Type      int64   `json:"type" validate:"min=0"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	route := campusdb.BusRoute{
		ID:        payload.ID,
		ShortName: toNullString(payload.ShortName),
		LongName:  toNullString(payload.LongName),
		Type:      payload.Type,
	}
	if err := api.DataStore.Queries.CreateBusRoute(r.Context(), route); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewBusRouteEntry(route))
}

func (api *RestAPI) getBusRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	route, err := api.DataStore.Queries.GetBusRoute(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewBusRouteEntry(route)))
}

func (api *RestAPI) deleteBusRouteHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	if err := api.DataStore.Queries.DeleteBusRoute(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listBusRouteStopsHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	if _, err := api.DataStore.Queries.GetBusRoute(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	stops, err := api.DataStore.Queries.ListBusRouteStops(r.Context(), id)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.BusRouteStopEntry, 0, len(stops))
	for _, rs := range stops {
		entries = append(entries, models.NewBusRouteStopEntry(rs))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createBusRouteStopHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	var payload struct {
		Stop  string `json:"stop" validate:"required,max=100"`
		Order int64  `json:"order" validate:"min=0"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	rs := campusdb.BusRouteStop{RouteID: id, StopID: payload.Stop, StopOrder: payload.Order}
	if err := api.DataStore.Queries.CreateBusRouteStop(r.Context(), rs); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewBusRouteStopEntry(rs))
}

func (api *RestAPI) listBusStopsHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := utils.ValidateQuery(name); err != nil {
		api.fieldErrorResponse(w, r, "name", err)
		return
	}

	stops, err := api.DataStore.Queries.ListBusStops(r.Context(), name)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.BusStopEntry, 0, len(stops))
	for _, s := range stops {
		entries = append(entries, models.NewBusStopEntry(s))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createBusStopHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID        string  `json:"id" validate:"required,max=100"`
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

	stop := campusdb.BusStop{
		ID:        payload.ID,
		Name:      payload.Name,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
	}
	if err := api.DataStore.Queries.CreateBusStop(r.Context(), stop); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewBusStopEntry(stop))
}

func (api *RestAPI) getBusStopHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	stop, err := api.DataStore.Queries.GetBusStop(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewBusStopEntry(stop)))
}

func (api *RestAPI) deleteBusStopHandler(w http.ResponseWriter, r *http.Request) {
	id := utils.ExtractIDFromParams(r, "id")

	if err := api.DataStore.Queries.DeleteBusStop(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listBusTimetablesHandler(w http.ResponseWriter, r *http.Request) {
	params := campusdb.ListBusTimetablesParams{
		RouteID:     r.URL.Query().Get("route"),
		StopID:      r.URL.Query().Get("stop"),
		WeekdayType: r.URL.Query().Get("weekdayType"),
	}

	timetables, err := api.DataStore.Queries.ListBusTimetables(r.Context(), params)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.BusTimetableEntry, 0, len(timetables))
	for _, t := range timetables {
		entries = append(entries, models.NewBusTimetableEntry(t))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createBusTimetableHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Route         string `json:"route" validate:"required,max=100"`
		Stop          string `json:"stop" validate:"required,max=100"`
		WeekdayType   string `json:"weekdayType" validate:"required,oneof=weekdays saturday sunday"`
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

	created, err := api.DataStore.Queries.CreateBusTimetable(r.Context(), campusdb.CreateBusTimetableParams{
		RouteID:       payload.Route,
		StopID:        payload.Stop,
		WeekdayType:   payload.WeekdayType,
		DepartureTime: departure,
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewBusTimetableEntry(created))
}

func (api *RestAPI) deleteBusTimetableHandler(w http.ResponseWriter, r *http.Request) {
	seq, err := utils.ExtractIntFromParams(r, "seq")
	if err != nil {
		api.fieldErrorResponse(w, r, "seq", err)
		return
	}

	if err := api.DataStore.Queries.DeleteBusTimetable(r.Context(), seq); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}
