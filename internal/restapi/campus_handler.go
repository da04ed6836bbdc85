package restapi

import (
	"net/http"
	"time"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/models"
	"campus.hyuabot.org/internal/utils"
)

func (api *RestAPI) listCampusesHandler(w http.ResponseWriter, r *http.Request) {
	campuses, err := api.DataStore.Queries.ListCampuses(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.CampusEntry, 0, len(campuses))
	for _, c := range campuses {
		entries = append(entries, models.NewCampusEntry(c))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createCampusHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID   int64  `json:"id" validate:"min=1"`
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

	campus := campusdb.Campus{ID: payload.ID, Name: payload.Name}
	if err := api.DataStore.Queries.CreateCampus(r.Context(), campus); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewCampusEntry(campus))
}

func (api *RestAPI) getCampusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	campus, err := api.DataStore.Queries.GetCampus(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewCampusEntry(campus)))
}

func (api *RestAPI) deleteCampusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.DataStore.Queries.DeleteCampus(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listBuildingsHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := utils.ValidateQuery(name); err != nil {
		api.fieldErrorResponse(w, r, "name", err)
		return
	}
	campusID, err := utils.QueryInt64(r, "campus")
	if err != nil {
		api.fieldErrorResponse(w, r, "campus", err)
		return
	}

	buildings, err := api.DataStore.Queries.ListBuildings(r.Context(), name, campusID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.BuildingEntry, 0, len(buildings))
	for _, b := range buildings {
		entries = append(entries, models.NewBuildingEntry(b))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createBuildingHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name      string  `json:"name" validate:"required,max=100"`
		Campus    int64   `json:"campus" validate:"min=1"`
		Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
		Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
		URL       *string `json:"url" validate:"omitempty,url"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}
	if err := utils.ValidateName(payload.Name); err != nil {
		api.fieldErrorResponse(w, r, "name", err)
		return
	}

	building := campusdb.Building{
		Name:      payload.Name,
		CampusID:  payload.Campus,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		URL:       toNullString(payload.URL),
	}
	if err := api.DataStore.Queries.CreateBuilding(r.Context(), building); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewBuildingEntry(building))
}

func (api *RestAPI) getBuildingHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	building, err := api.DataStore.Queries.GetBuilding(r.Context(), name)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewBuildingEntry(building)))
}

func (api *RestAPI) updateBuildingHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	var payload struct {
		Latitude  *float64 `json:"latitude" validate:"omitempty,min=-90,max=90"`
		Longitude *float64 `json:"longitude" validate:"omitempty,min=-180,max=180"`
		URL       *string  `json:"url" validate:"omitempty,url"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	params := campusdb.UpdateBuildingParams{
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
		URL:       payload.URL,
	}
	if err := api.DataStore.Queries.UpdateBuilding(r.Context(), name, params); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	building, err := api.DataStore.Queries.GetBuilding(r.Context(), name)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewBuildingEntry(building)))
}

func (api *RestAPI) deleteBuildingHandler(w http.ResponseWriter, r *http.Request) {
	name := utils.ExtractIDFromParams(r, "name")

	if err := api.DataStore.Queries.DeleteBuilding(r.Context(), name); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listRoomsHandler(w http.ResponseWriter, r *http.Request) {
	building := utils.ExtractIDFromParams(r, "name")

	if _, err := api.DataStore.Queries.GetBuilding(r.Context(), building); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	name := r.URL.Query().Get("name")
	if err := utils.ValidateQuery(name); err != nil {
		api.fieldErrorResponse(w, r, "name", err)
		return
	}

	rooms, err := api.DataStore.Queries.ListRooms(r.Context(), building, name)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.RoomEntry, 0, len(rooms))
	for _, room := range rooms {
		entries = append(entries, models.NewRoomEntry(room))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createRoomHandler(w http.ResponseWriter, r *http.Request) {
	building := utils.ExtractIDFromParams(r, "name")

	var payload struct {
		Name   string `json:"name" validate:"required,max=100"`
		Number string `json:"number" validate:"required,max=20"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	room := campusdb.Room{BuildingName: building, Name: payload.Name, Number: payload.Number}
	if err := api.DataStore.Queries.CreateRoom(r.Context(), room); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewRoomEntry(room))
}

func (api *RestAPI) deleteRoomHandler(w http.ResponseWriter, r *http.Request) {
	building := utils.ExtractIDFromParams(r, "name")
	number := utils.ExtractIDFromParams(r, "number")

	if err := api.DataStore.Queries.DeleteRoom(r.Context(), building, number); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listCafeteriasHandler(w http.ResponseWriter, r *http.Request) {
	campusID, err := utils.QueryInt64(r, "campus")
	if err != nil {
		api.fieldErrorResponse(w, r, "campus", err)
		return
	}

	cafeterias, err := api.DataStore.Queries.ListCafeterias(r.Context(), campusID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.CafeteriaEntry, 0, len(cafeterias))
	for _, c := range cafeterias {
		entries = append(entries, models.NewCafeteriaEntry(c))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createCafeteriaHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID        int64   `json:"id" validate:"min=1"`
		Campus    int64   `json:"campus" validate:"min=1"`
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

	cafeteria := campusdb.Cafeteria{
		ID:        payload.ID,
		CampusID:  payload.Campus,
		Name:      payload.Name,
		Latitude:  payload.Latitude,
		Longitude: payload.Longitude,
	}
	if err := api.DataStore.Queries.CreateCafeteria(r.Context(), cafeteria); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewCafeteriaEntry(cafeteria))
}

func (api *RestAPI) getCafeteriaHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	cafeteria, err := api.DataStore.Queries.GetCafeteria(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewCafeteriaEntry(cafeteria)))
}

func (api *RestAPI) deleteCafeteriaHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.DataStore.Queries.DeleteCafeteria(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listMenusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if _, err := api.DataStore.Queries.GetCafeteria(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	// Menus default to today's feed so the common lookup needs no params.
	feedDate := r.URL.Query().Get("date")
	if feedDate == "" {
		feedDate = time.Now().In(api.Location).Format("2006-01-02")
	} else if err := utils.ValidateDate(feedDate); err != nil {
		api.fieldErrorResponse(w, r, "date", err)
		return
	}

	menus, err := api.DataStore.Queries.ListMenus(r.Context(), id, feedDate)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.MenuEntry, 0, len(menus))
	for _, m := range menus {
		entries = append(entries, models.NewMenuEntry(m))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createMenuHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	var payload struct {
		Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
		TimeType string  `json:"timeType" validate:"required,max=50"`
		Menu     string  `json:"menu" validate:"required"`
		Price    *string `json:"price"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	created, err := api.DataStore.Queries.CreateMenu(r.Context(), campusdb.CreateMenuParams{
		CafeteriaID: id,
		FeedDate:    payload.Date,
		TimeType:    payload.TimeType,
		Menu:        payload.Menu,
		Price:       toNullString(payload.Price),
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewMenuEntry(created))
}

func (api *RestAPI) deleteMenuHandler(w http.ResponseWriter, r *http.Request) {
	seq, err := utils.ExtractIntFromParams(r, "seq")
	if err != nil {
		api.fieldErrorResponse(w, r, "seq", err)
		return
	}

	if err := api.DataStore.Queries.DeleteMenu(r.Context(), seq); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listReadingRoomsHandler(w http.ResponseWriter, r *http.Request) {
	campusID, err := utils.QueryInt64(r, "campus")
	if err != nil {
		api.fieldErrorResponse(w, r, "campus", err)
		return
	}

	rooms, err := api.DataStore.Queries.ListReadingRooms(r.Context(), campusID)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.ReadingRoomEntry, 0, len(rooms))
	for _, room := range rooms {
		entries = append(entries, models.NewReadingRoomEntry(room))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createReadingRoomHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		ID         int64  `json:"id" validate:"min=1"`
		Campus     int64  `json:"campus" validate:"min=1"`
		Name       string `json:"name" validate:"required,max=100"`
		TotalSeats int64  `json:"totalSeats" validate:"min=0"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	room := campusdb.ReadingRoom{
		ID:          payload.ID,
		CampusID:    payload.Campus,
		Name:        payload.Name,
		TotalSeats:  payload.TotalSeats,
		ActiveSeats: payload.TotalSeats,
	}
	if err := api.DataStore.Queries.CreateReadingRoom(r.Context(), room); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewReadingRoomEntry(room))
}

func (api *RestAPI) getReadingRoomHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	room, err := api.DataStore.Queries.GetReadingRoom(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewReadingRoomEntry(room)))
}

func (api *RestAPI) updateReadingRoomSeatsHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	var payload struct {
		ActiveSeats   *int64 `json:"activeSeats" validate:"required,min=0"`
		OccupiedSeats *int64 `json:"occupiedSeats" validate:"required,min=0"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	err = api.DataStore.Queries.UpdateReadingRoomSeats(r.Context(), id, *payload.ActiveSeats, *payload.OccupiedSeats)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}

	room, err := api.DataStore.Queries.GetReadingRoom(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewReadingRoomEntry(room)))
}

func (api *RestAPI) deleteReadingRoomHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.DataStore.Queries.DeleteReadingRoom(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}
