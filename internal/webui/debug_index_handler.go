package webui

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/davecgh/go-spew/spew"

	"campus.hyuabot.org/campusdb"
)

//go:embed debug_index.html
var templateFS embed.FS

type debugData struct {
	Title string
	Pre   string
}

func writeDebugData(w http.ResponseWriter, title string, data interface{}) {
	content := spew.Sdump(data)
	w.Header().Set("Content-Type", "text/html")
	tmpl, err := template.ParseFS(templateFS, "debug_index.html")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	dataStruct := debugData{
		Title: title,
		Pre:   content,
	}

	err = tmpl.Execute(w, dataStruct)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (webUI *WebUI) debugIndexHandler(w http.ResponseWriter, r *http.Request) {
	dataType := r.URL.Query().Get("dataType")
	ctx := r.Context()
	queries := webUI.DataStore.Queries

	var data interface{}
	var err error
	var title string

	switch dataType {
	case "counts":
		data, err = webUI.DataStore.TableCounts()
		title = "Campus Store - Table Counts"
	case "periods":
		data, err = queries.ListPeriods(ctx)
		title = "Shuttle - Periods"
	case "holidays":
		data, err = queries.ListHolidays(ctx)
		title = "Shuttle - Holidays"
	case "shuttle_routes":
		data, err = queries.ListShuttleRoutes(ctx, campusdb.ListShuttleRoutesParams{})
		title = "Shuttle - Routes"
	case "shuttle_stops":
		data, err = queries.ListShuttleStops(ctx, "")
		title = "Shuttle - Stops"
	case "bus_routes":
		data, err = queries.ListBusRoutes(ctx, "")
		title = "Bus - Routes"
	case "subway_stations":
		data, err = queries.ListSubwayStations(ctx, "")
		title = "Subway - Stations"
	case "campuses":
		data, err = queries.ListCampuses(ctx)
		title = "Campus Life - Campuses"
	default:
		data = map[string]string{
			"error": "Please use one of the following: counts, periods, holidays, shuttle_routes, shuttle_stops, bus_routes, subway_stations, campuses.",
		}
		title = "Choose a data type"
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeDebugData(w, title, data)
}
