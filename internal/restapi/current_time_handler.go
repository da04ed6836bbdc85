package restapi

import (
	"net/http"
	"time"

	"campus.hyuabot.org/internal/models"
)

func (api *RestAPI) currentTimeHandler(w http.ResponseWriter, r *http.Request) {
	now := time.Now().In(api.Location)

	entry := map[string]interface{}{
		"readableTime": now.Format(time.RFC3339),
		"time":         now.UnixMilli(),
	}
	api.sendResponse(w, r, models.NewEntryResponse(entry))
}
