package graphqlapi

import (
	"encoding/json"
	"net/http"

	"github.com/graphql-go/graphql"

	"campus.hyuabot.org/internal/app"
	"campus.hyuabot.org/internal/logging"
)

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// NewHandler returns the POST /api/graphql handler.
func NewHandler(application *app.Application) (http.Handler, error) {
	schema, err := NewSchema(application)
	if err != nil {
		return nil, err
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request graphqlRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1_048_576)).Decode(&request); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  request.Query,
			OperationName:  request.OperationName,
			VariableValues: request.Variables,
			Context:        r.Context(),
		})

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger := logging.FromContext(r.Context())
			logger.Error("failed to encode graphql result", "error", err)
		}
	}), nil
}
