package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"hermannm.dev/salesdash/analysis"
	"hermannm.dev/salesdash/dashboard"
)

// Method: POST
//
// Expects:
//   - body: JSON-encoded dashboard.Query (may be empty, in which case defaults are used)
//
// Returns:
//   - JSON-encoded dashboard.Result
func (api DashboardAPI) BuildDashboard(res http.ResponseWriter, req *http.Request) {
	if !allowMethod(res, req, http.MethodPost) {
		return
	}

	var query dashboard.Query
	if err := json.NewDecoder(req.Body).Decode(&query); err != nil && !errors.Is(err, io.EOF) {
		sendClientError(res, err, "failed to parse dashboard query from request body")
		return
	}

	table, err := api.data.Get(req.Context())
	if err != nil {
		sendLoadError(res, err)
		return
	}

	result, err := dashboard.Build(table, query)
	if err != nil {
		if errors.Is(err, analysis.ErrInvalidSelection) {
			sendClientError(res, err, "")
		} else {
			sendServerError(res, err, "failed to build dashboard")
		}
		return
	}

	sendJSON(res, result)
}
