// Package chatbot implements the Kakao-style skill webhook that answers
// shuttle questions in chat.
package chatbot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"campus.hyuabot.org/campusdb"
	"campus.hyuabot.org/internal/app"
	"campus.hyuabot.org/internal/logging"
	"campus.hyuabot.org/internal/timetable"
)

// maxAnswers caps how many upcoming departures one reply lists.
const maxAnswers = 5

type skillRequest struct {
	UserRequest struct {
		Utterance string `json:"utterance"`
	} `json:"userRequest"`
	Action struct {
		Params map[string]string `json:"params"`
	} `json:"action"`
}

type skillResponse struct {
	Version  string        `json:"version"`
	Template skillTemplate `json:"template"`
}

type skillTemplate struct {
	Outputs []skillOutput `json:"outputs"`
}

type skillOutput struct {
	SimpleText simpleText `json:"simpleText"`
}

type simpleText struct {
	Text string `json:"text"`
}

// NewShuttleHandler answers a skill request with the next shuttle
// departures from the requested stop.
func NewShuttleHandler(application *app.Application) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Skill payloads carry many fields this handler does not use, so
		// decode leniently instead of going through utils.ReadJSON.
		var request skillRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1_048_576)).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		stop := strings.TrimSpace(request.Action.Params["stop"])
		if stop == "" {
			stop = strings.TrimSpace(request.UserRequest.Utterance)
		}
		if stop == "" {
			writeSkillText(w, r, "Which stop would you like departures for?")
			return
		}

		now := time.Now().In(application.Location)
		query := timetable.Query{Stops: []string{stop}}
		result, err := application.Resolver.Resolve(r.Context(), now, query)
		if err != nil {
			writeSkillText(w, r, fmt.Sprintf("No shuttle schedule is available for %s today.", stop))
			return
		}

		writeSkillText(w, r, composeAnswer(stop, now, result))
	})
}

// composeAnswer renders the reply text for a resolved day of service.
func composeAnswer(stop string, now time.Time, result timetable.Result) string {
	if result.Halted {
		return fmt.Sprintf("The shuttle does not run on %s.", result.Date)
	}

	nowSeconds := int64(now.Hour()*3600 + now.Minute()*60 + now.Second())
	upcoming := make([]campusdb.TimetableViewRow, 0, len(result.Entries))
	for _, entry := range result.Entries {
		if entry.DepartureTime >= nowSeconds {
			upcoming = append(upcoming, entry)
		}
	}
	sort.Slice(upcoming, func(i, j int) bool {
		return upcoming[i].DepartureTime < upcoming[j].DepartureTime
	})
	if len(upcoming) > maxAnswers {
		upcoming = upcoming[:maxAnswers]
	}

	lines := make([]string, 0, len(upcoming))
	for _, entry := range upcoming {
		lines = append(lines, fmt.Sprintf("%02d:%02d %s",
			entry.DepartureTime/3600, (entry.DepartureTime%3600)/60, entry.RouteName))
	}

	if len(lines) == 0 {
		return fmt.Sprintf("No more departures from %s today.", stop)
	}
	return fmt.Sprintf("Next departures from %s:\n%s", stop, strings.Join(lines, "\n"))
}

func writeSkillText(w http.ResponseWriter, r *http.Request, text string) {
	response := skillResponse{
		Version: "2.0",
		Template: skillTemplate{
			Outputs: []skillOutput{{SimpleText: simpleText{Text: text}}},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger := logging.FromContext(r.Context())
		logger.Error("failed to encode chatbot response", "error", err)
	}
}
