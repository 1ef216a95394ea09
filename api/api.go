package api

import (
	"fmt"
	"net/http"

	"hermannm.dev/salesdash/config"
	"hermannm.dev/salesdash/loader"
)

// Serves the sales table and dashboard aggregates to the frontend that renders them.
type DashboardAPI struct {
	data   *loader.Cache
	router *http.ServeMux
	config config.API
}

func NewDashboardAPI(data *loader.Cache, router *http.ServeMux, config config.API) DashboardAPI {
	api := DashboardAPI{data: data, router: router, config: config}

	api.router.HandleFunc("/table", api.GetTable)
	api.router.HandleFunc("/dashboard", api.BuildDashboard)
	api.router.HandleFunc("/reload", api.Reload)

	return api
}

func (api DashboardAPI) ListenAndServe() error {
	return http.ListenAndServe(fmt.Sprintf(":%s", api.config.Port), api.router)
}

func (api DashboardAPI) ServeHTTP(res http.ResponseWriter, req *http.Request) {
	api.router.ServeHTTP(res, req)
}
