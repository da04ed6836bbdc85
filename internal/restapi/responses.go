package restapi

import (
	"encoding/json"
	"net/http"

	"campus.hyuabot.org/internal/models"
)

func (api *RestAPI) sendResponse(w http.ResponseWriter, r *http.Request, response models.ResponseModel) {
	setJSONResponseType(&w)
	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

// sendCreated writes a 201 response wrapping the created entry.
func (api *RestAPI) sendCreated(w http.ResponseWriter, r *http.Request, entry interface{}) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusCreated)

	response := models.ResponseModel{
		Code:        http.StatusCreated,
		CurrentTime: models.ResponseCurrentTime(),
		Data:        map[string]interface{}{"entry": entry},
		Text:        "created",
		Version:     2,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

// sendNoContent acknowledges a successful delete.
func (api *RestAPI) sendNoContent(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (api *RestAPI) sendNotFound(w http.ResponseWriter, r *http.Request) {
	setJSONResponseType(&w)
	w.WriteHeader(http.StatusNotFound)

	response := models.ResponseModel{
		Code:        http.StatusNotFound,
		CurrentTime: models.ResponseCurrentTime(),
		Text:        "resource not found",
		Version:     2,
	}

	err := json.NewEncoder(w).Encode(response)
	if err != nil {
		api.serverErrorResponse(w, r, err)
		return
	}
}

func setJSONResponseType(w *http.ResponseWriter) {
	(*w).Header().Set("Content-Type", "application/json")
}
