package restapi

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"campus.hyuabot.org/internal/chatbot"
	"campus.hyuabot.org/internal/graphqlapi"
)

type handlerFunc func(w http.ResponseWriter, r *http.Request)

func validateAPIKey(api *RestAPI, finalHandler handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if api.RequestHasInvalidAPIKey(r) {
			api.invalidAPIKeyResponse(w, r)
			return
		}
		finalHandler(w, r)
	})
}

// Router builds the API router with every route registered.
func (api *RestAPI) Router() *httprouter.Router {
	router := httprouter.New()
	api.SetRoutes(router)
	return router
}

func (api *RestAPI) SetRoutes(router *httprouter.Router) {
	handle := func(method, path string, handler handlerFunc) {
		router.Handler(method, path, validateAPIKey(api, handler))
	}

	handle(http.MethodGet, "/api/current-time", api.currentTimeHandler)

	if graphqlHandler, err := graphqlapi.NewHandler(api.Application); err != nil {
		api.Logger.Error("failed to build graphql schema", "error", err)
	} else {
		handle(http.MethodPost, "/api/graphql", graphqlHandler.ServeHTTP)
	}

	handle(http.MethodPost, "/api/chatbot/shuttle", chatbot.NewShuttleHandler(api.Application).ServeHTTP)

	// Shuttle schedule management and the resolved timetable view.
	handle(http.MethodGet, "/api/shuttle/periods", api.listPeriodsHandler)
	handle(http.MethodPost, "/api/shuttle/periods", api.createPeriodHandler)
	handle(http.MethodGet, "/api/shuttle/periods/:seq", api.getPeriodHandler)
	handle(http.MethodDelete, "/api/shuttle/periods/:seq", api.deletePeriodHandler)

	handle(http.MethodGet, "/api/shuttle/holidays", api.listHolidaysHandler)
	handle(http.MethodPost, "/api/shuttle/holidays", api.createHolidayHandler)
	handle(http.MethodDelete, "/api/shuttle/holidays/:calendar/:date", api.deleteHolidayHandler)

	handle(http.MethodGet, "/api/shuttle/stops", api.listShuttleStopsHandler)
	handle(http.MethodPost, "/api/shuttle/stops", api.createShuttleStopHandler)
	handle(http.MethodGet, "/api/shuttle/stops/:name", api.getShuttleStopHandler)
	handle(http.MethodPatch, "/api/shuttle/stops/:name", api.updateShuttleStopHandler)
	handle(http.MethodDelete, "/api/shuttle/stops/:name", api.deleteShuttleStopHandler)

	handle(http.MethodGet, "/api/shuttle/routes", api.listShuttleRoutesHandler)
	handle(http.MethodPost, "/api/shuttle/routes", api.createShuttleRouteHandler)
	handle(http.MethodGet, "/api/shuttle/routes/:name", api.getShuttleRouteHandler)
	handle(http.MethodPatch, "/api/shuttle/routes/:name", api.updateShuttleRouteHandler)
	handle(http.MethodDelete, "/api/shuttle/routes/:name", api.deleteShuttleRouteHandler)

	handle(http.MethodGet, "/api/shuttle/routes/:name/stops", api.listRouteStopsHandler)
	handle(http.MethodPost, "/api/shuttle/routes/:name/stops", api.createRouteStopHandler)
	handle(http.MethodPatch, "/api/shuttle/routes/:name/stops/:stop", api.updateRouteStopHandler)
	handle(http.MethodDelete, "/api/shuttle/routes/:name/stops/:stop", api.deleteRouteStopHandler)

	handle(http.MethodGet, "/api/shuttle/timetables", api.listShuttleTimetablesHandler)
	handle(http.MethodPost, "/api/shuttle/timetables", api.createShuttleTimetableHandler)
	handle(http.MethodGet, "/api/shuttle/timetables/:seq", api.getShuttleTimetableHandler)
	handle(http.MethodDelete, "/api/shuttle/timetables/:seq", api.deleteShuttleTimetableHandler)

	handle(http.MethodGet, "/api/shuttle/timetable-view", api.timetableViewHandler)

	// City bus mirror tables.
	handle(http.MethodGet, "/api/bus/routes", api.listBusRoutesHandler)
	handle(http.MethodPost, "/api/bus/routes", api.createBusRouteHandler)
	handle(http.MethodGet, "/api/bus/routes/:id", api.getBusRouteHandler)
	handle(http.MethodDelete, "/api/bus/routes/:id", api.deleteBusRouteHandler)
	handle(http.MethodGet, "/api/bus/routes/:id/stops", api.listBusRouteStopsHandler)
	handle(http.MethodPost, "/api/bus/routes/:id/stops", api.createBusRouteStopHandler)

	handle(http.MethodGet, "/api/bus/stops", api.listBusStopsHandler)
	handle(http.MethodPost, "/api/bus/stops", api.createBusStopHandler)
	handle(http.MethodGet, "/api/bus/stops/:id", api.getBusStopHandler)
	handle(http.MethodDelete, "/api/bus/stops/:id", api.deleteBusStopHandler)

	handle(http.MethodGet, "/api/bus/timetables", api.listBusTimetablesHandler)
	handle(http.MethodPost, "/api/bus/timetables", api.createBusTimetableHandler)
	handle(http.MethodDelete, "/api/bus/timetables/:seq", api.deleteBusTimetableHandler)

	handle(http.MethodPost, "/api/bus/import", api.importBusGTFSHandler)

	// Subway.
	handle(http.MethodGet, "/api/subway/routes", api.listSubwayRoutesHandler)
	handle(http.MethodPost, "/api/subway/routes", api.createSubwayRouteHandler)
	handle(http.MethodGet, "/api/subway/routes/:id", api.getSubwayRouteHandler)
	handle(http.MethodDelete, "/api/subway/routes/:id", api.deleteSubwayRouteHandler)

	handle(http.MethodGet, "/api/subway/stations", api.listSubwayStationsHandler)
	handle(http.MethodPost, "/api/subway/stations", api.createSubwayStationHandler)
	handle(http.MethodGet, "/api/subway/stations/:id", api.getSubwayStationHandler)
	handle(http.MethodDelete, "/api/subway/stations/:id", api.deleteSubwayStationHandler)

	handle(http.MethodGet, "/api/subway/timetables", api.listSubwayTimetablesHandler)
	handle(http.MethodPost, "/api/subway/timetables", api.createSubwayTimetableHandler)
	handle(http.MethodDelete, "/api/subway/timetables/:seq", api.deleteSubwayTimetableHandler)

	// Campus life.
	handle(http.MethodGet, "/api/campuses", api.listCampusesHandler)
	handle(http.MethodPost, "/api/campuses", api.createCampusHandler)
	handle(http.MethodGet, "/api/campuses/:id", api.getCampusHandler)
	handle(http.MethodDelete, "/api/campuses/:id", api.deleteCampusHandler)

	handle(http.MethodGet, "/api/buildings", api.listBuildingsHandler)
	handle(http.MethodPost, "/api/buildings", api.createBuildingHandler)
	handle(http.MethodGet, "/api/buildings/:name", api.getBuildingHandler)
	handle(http.MethodPatch, "/api/buildings/:name", api.updateBuildingHandler)
	handle(http.MethodDelete, "/api/buildings/:name", api.deleteBuildingHandler)
	handle(http.MethodGet, "/api/buildings/:name/rooms", api.listRoomsHandler)
	handle(http.MethodPost, "/api/buildings/:name/rooms", api.createRoomHandler)
	handle(http.MethodDelete, "/api/buildings/:name/rooms/:number", api.deleteRoomHandler)

	handle(http.MethodGet, "/api/cafeterias", api.listCafeteriasHandler)
	handle(http.MethodPost, "/api/cafeterias", api.createCafeteriaHandler)
	handle(http.MethodGet, "/api/cafeterias/:id", api.getCafeteriaHandler)
	handle(http.MethodDelete, "/api/cafeterias/:id", api.deleteCafeteriaHandler)
	handle(http.MethodGet, "/api/cafeterias/:id/menus", api.listMenusHandler)
	handle(http.MethodPost, "/api/cafeterias/:id/menus", api.createMenuHandler)
	handle(http.MethodDelete, "/api/menus/:seq", api.deleteMenuHandler)

	handle(http.MethodGet, "/api/reading-rooms", api.listReadingRoomsHandler)
	handle(http.MethodPost, "/api/reading-rooms", api.createReadingRoomHandler)
	handle(http.MethodGet, "/api/reading-rooms/:id", api.getReadingRoomHandler)
	handle(http.MethodDelete, "/api/reading-rooms/:id", api.deleteReadingRoomHandler)
	handle(http.MethodPut, "/api/reading-rooms/:id/seats", api.updateReadingRoomSeatsHandler)

	// Notices, contacts, and the academic calendar. Category collections
	// live under the singular prefix to keep the wildcard routes clean.
	handle(http.MethodGet, "/api/notice/categories", api.listNoticeCategoriesHandler)
	handle(http.MethodPost, "/api/notice/categories", api.createNoticeCategoryHandler)
	handle(http.MethodDelete, "/api/notice/categories/:id", api.deleteNoticeCategoryHandler)
	handle(http.MethodGet, "/api/notices", api.listNoticesHandler)
	handle(http.MethodPost, "/api/notices", api.createNoticeHandler)
	handle(http.MethodGet, "/api/notices/:id", api.getNoticeHandler)
	handle(http.MethodDelete, "/api/notices/:id", api.deleteNoticeHandler)

	handle(http.MethodGet, "/api/contact/categories", api.listContactCategoriesHandler)
	handle(http.MethodPost, "/api/contact/categories", api.createContactCategoryHandler)
	handle(http.MethodDelete, "/api/contact/categories/:id", api.deleteContactCategoryHandler)
	handle(http.MethodGet, "/api/contacts", api.listContactsHandler)
	handle(http.MethodPost, "/api/contacts", api.createContactHandler)
	handle(http.MethodGet, "/api/contacts/:id", api.getContactHandler)
	handle(http.MethodDelete, "/api/contacts/:id", api.deleteContactHandler)

	handle(http.MethodGet, "/api/calendar/categories", api.listCalendarCategoriesHandler)
	handle(http.MethodPost, "/api/calendar/categories", api.createCalendarCategoryHandler)
	handle(http.MethodDelete, "/api/calendar/categories/:id", api.deleteCalendarCategoryHandler)
	handle(http.MethodGet, "/api/calendar/events", api.listCalendarEventsHandler)
	handle(http.MethodPost, "/api/calendar/events", api.createCalendarEventHandler)
	handle(http.MethodGet, "/api/calendar/events/:id", api.getCalendarEventHandler)
	handle(http.MethodDelete, "/api/calendar/events/:id", api.deleteCalendarEventHandler)
}
