package restapi

import (
	"net/http"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/models"
	"campus.hyuabot.org/internal/utils"
)

type categoryPayload struct {
	ID   int64  `json:"id" validate:"min=1"`
	Name string `json:"name" validate:"required,max=100"`
}

func readCategoryPayload(api *RestAPI, w http.ResponseWriter, r *http.Request) (categoryPayload, bool) {
	var payload categoryPayload
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return payload, false
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return payload, false
	}
	return payload, true
}

func (api *RestAPI) listNoticeCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := api.DataStore.Queries.ListNoticeCategories(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.CategoryEntry, 0, len(categories))
	for _, c := range categories {
		entries = append(entries, models.CategoryEntry{ID: c.ID, Name: c.Name})
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createNoticeCategoryHandler(w http.ResponseWriter, r *http.Request) {
	payload, ok := readCategoryPayload(api, w, r)
	if !ok {
		return
	}

	category := campusdb.NoticeCategory{ID: payload.ID, Name: payload.Name}
	if err := api.DataStore.Queries.CreateNoticeCategory(r.Context(), category); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.CategoryEntry{ID: category.ID, Name: category.Name})
}

func (api *RestAPI) deleteNoticeCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.DataStore.Queries.DeleteNoticeCategory(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listNoticesHandler(w http.ResponseWriter, r *http.Request) {
	title := r.URL.Query().Get("title")
	if err := utils.ValidateQuery(title); err != nil {
		api.fieldErrorResponse(w, r, "title", err)
		return
	}
	categoryID, err := utils.QueryInt64(r, "category")
	if err != nil {
		api.fieldErrorResponse(w, r, "category", err)
		return
	}

	notices, err := api.DataStore.Queries.ListNotices(r.Context(), campusdb.ListNoticesParams{
		CategoryID: categoryID,
		Language:   r.URL.Query().Get("language"),
		Title:      title,
	})
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.NoticeEntry, 0, len(notices))
	for _, n := range notices {
		entries = append(entries, models.NewNoticeEntry(n))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createNoticeHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Category  int64   `json:"category" validate:"min=1"`
		Title     string  `json:"title" validate:"required,max=300"`
		URL       string  `json:"url" validate:"required,url"`
		Language  string  `json:"language" validate:"required,max=10"`
		ExpiredAt *string `json:"expiredAt" validate:"omitempty,datetime=2006-01-02"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	created, err := api.DataStore.Queries.CreateNotice(r.Context(), campusdb.CreateNoticeParams{
		CategoryID: payload.Category,
		Title:      payload.Title,
		URL:        payload.URL,
		Language:   payload.Language,
		ExpiredAt:  toNullString(payload.ExpiredAt),
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewNoticeEntry(created))
}

func (api *RestAPI) getNoticeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	notice, err := api.DataStore.Queries.GetNotice(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewNoticeEntry(notice)))
}

func (api *RestAPI) deleteNoticeHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.DataStore.Queries.DeleteNotice(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listContactCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := api.DataStore.Queries.ListContactCategories(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.CategoryEntry, 0, len(categories))
	for _, c := range categories {
		entries = append(entries, models.CategoryEntry{ID: c.ID, Name: c.Name})
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createContactCategoryHandler(w http.ResponseWriter, r *http.Request) {
	payload, ok := readCategoryPayload(api, w, r)
	if !ok {
		return
	}

	category := campusdb.ContactCategory{ID: payload.ID, Name: payload.Name}
	if err := api.DataStore.Queries.CreateContactCategory(r.Context(), category); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.CategoryEntry{ID: category.ID, Name: category.Name})
}

func (api *RestAPI) deleteContactCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.DataStore.Queries.DeleteContactCategory(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listContactsHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := utils.ValidateQuery(name); err != nil {
		api.fieldErrorResponse(w, r, "name", err)
		return
	}
	categoryID, err := utils.QueryInt64(r, "category")
	if err != nil {
		api.fieldErrorResponse(w, r, "category", err)
		return
	}
	campusID, err := utils.QueryInt64(r, "campus")
	if err != nil {
		api.fieldErrorResponse(w, r, "campus", err)
		return
	}

	contacts, err := api.DataStore.Queries.ListContacts(r.Context(), campusdb.ListContactsParams{
		CategoryID: categoryID,
		CampusID:   campusID,
		Name:       name,
	})
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.ContactEntry, 0, len(contacts))
	for _, c := range contacts {
		entries = append(entries, models.NewContactEntry(c))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createContactHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Category int64  `json:"category" validate:"min=1"`
		Name     string `json:"name" validate:"required,max=100"`
		Phone    string `json:"phone" validate:"required,max=30"`
		Campus   int64  `json:"campus" validate:"min=1"`
	}
	if err := utils.ReadJSON(r, &payload); err != nil {
		api.fieldErrorResponse(w, r, "body", err)
		return
	}
	if err := validate.Struct(payload); err != nil {
		api.fieldErrorResponse(w, r, "payload", err)
		return
	}

	created, err := api.DataStore.Queries.CreateContact(r.Context(), campusdb.CreateContactParams{
		CategoryID: payload.Category,
		Name:       payload.Name,
		Phone:      payload.Phone,
		CampusID:   payload.Campus,
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewContactEntry(created))
}

func (api *RestAPI) getContactHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	contact, err := api.DataStore.Queries.GetContact(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewContactEntry(contact)))
}

func (api *RestAPI) deleteContactHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.DataStore.Queries.DeleteContact(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listCalendarCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := api.DataStore.Queries.ListCalendarCategories(r.Context())
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.CategoryEntry, 0, len(categories))
	for _, c := range categories {
		entries = append(entries, models.CategoryEntry{ID: c.ID, Name: c.Name})
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createCalendarCategoryHandler(w http.ResponseWriter, r *http.Request) {
	payload, ok := readCategoryPayload(api, w, r)
	if !ok {
		return
	}

	category := campusdb.CalendarCategory{ID: payload.ID, Name: payload.Name}
	if err := api.DataStore.Queries.CreateCalendarCategory(r.Context(), category); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.CategoryEntry{ID: category.ID, Name: category.Name})
}

func (api *RestAPI) deleteCalendarCategoryHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.DataStore.Queries.DeleteCalendarCategory(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}

func (api *RestAPI) listCalendarEventsHandler(w http.ResponseWriter, r *http.Request) {
	categoryID, err := utils.QueryInt64(r, "category")
	if err != nil {
		api.fieldErrorResponse(w, r, "category", err)
		return
	}
	onDate := r.URL.Query().Get("date")
	if onDate != "" {
		if err := utils.ValidateDate(onDate); err != nil {
			api.fieldErrorResponse(w, r, "date", err)
			return
		}
	}

	events, err := api.DataStore.Queries.ListCalendarEvents(r.Context(), campusdb.ListCalendarEventsParams{
		CategoryID: categoryID,
		OnDate:     onDate,
	})
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}

	entries := make([]models.CalendarEventEntry, 0, len(events))
	for _, e := range events {
		entries = append(entries, models.NewCalendarEventEntry(e))
	}
	api.sendResponse(w, r, models.NewListResponse(entries))
}

func (api *RestAPI) createCalendarEventHandler(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Category    int64   `json:"category" validate:"min=1"`
		Title       string  `json:"title" validate:"required,max=300"`
		Description *string `json:"description"`
		StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
		EndDate     string  `json:"endDate" validate:"required,datetime=2006-01-02"`
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
		api.errorResponse(w, r, http.StatusBadRequest, "endDate precedes startDate")
		return
	}

	created, err := api.DataStore.Queries.CreateCalendarEvent(r.Context(), campusdb.CreateCalendarEventParams{
		CategoryID:  payload.Category,
		Title:       payload.Title,
		Description: toNullString(payload.Description),
		StartDate:   payload.StartDate,
		EndDate:     payload.EndDate,
	})
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendCreated(w, r, models.NewCalendarEventEntry(created))
}

func (api *RestAPI) getCalendarEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	event, err := api.DataStore.Queries.GetCalendarEvent(r.Context(), id)
	if err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendResponse(w, r, models.NewEntryResponse(models.NewCalendarEventEntry(event)))
}

func (api *RestAPI) deleteCalendarEventHandler(w http.ResponseWriter, r *http.Request) {
	id, err := utils.ExtractIntFromParams(r, "id")
	if err != nil {
		api.fieldErrorResponse(w, r, "id", err)
		return
	}

	if err := api.DataStore.Queries.DeleteCalendarEvent(r.Context(), id); err != nil {
		api.storeErrorResponse(w, r, err)
		return
	}
	api.sendNoContent(w, r)
}
