package api

import (
	"net/http"

	"hermannm.dev/salesdash/analysis"
	"hermannm.dev/salesdash/sales"
)

type TableResponse struct {
	LoadID    string              `json:"loadId"`
	Source    string              `json:"source"`
	RowCount  int                 `json:"rowCount"`
	DateRange *analysis.DateRange `json:"dateRange,omitempty"`
	Records   []sales.Record      `json:"records,omitempty"`
}

func newTableResponse(table sales.Table, includeRecords bool) TableResponse {
	response := TableResponse{
		LoadID:   table.LoadID().String(),
		Source:   table.Source(),
		RowCount: table.Len(),
	}

	if fullRange, ok := analysis.FullRange(table); ok {
		response.DateRange = &fullRange
	}
	if includeRecords {
		response.Records = table.Records()
	}

	return response
}

// Method: GET
//
// Returns:
//   - JSON-encoded TableResponse with all records of the loaded table, in source order
func (api DashboardAPI) GetTable(res http.ResponseWriter, req *http.Request) {
	if !allowMethod(res, req, http.MethodGet) {
		return
	}

	table, err := api.data.Get(req.Context())
	if err != nil {
		sendLoadError(res, err)
		return
	}

	sendJSON(res, newTableResponse(table, true))
}

// Method: POST
//
// Clears the cached table and reads the data source again.
//
// Returns:
//   - JSON-encoded TableResponse without records
func (api DashboardAPI) Reload(res http.ResponseWriter, req *http.Request) {
	if !allowMethod(res, req, http.MethodPost) {
		return
	}

	table, err := api.data.Reload(req.Context())
	if err != nil {
		sendLoadError(res, err)
		return
	}

	sendJSON(res, newTableResponse(table, false))
}
