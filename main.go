package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"hermannm.dev/devlog"
	"hermannm.dev/devlog/log"
	"hermannm.dev/salesdash/api"
	"hermannm.dev/salesdash/config"
	"hermannm.dev/salesdash/loader"
)

func main() {
	config, err := config.ReadFromEnv()
	if err != nil {
		log.ErrorCause(err, "failed to read config from env")
		os.Exit(1)
	}

	setUpLogger(config)

	data := loader.NewCache(config.DataSource)

	// A failed first load is not fatal: the dashboard reports it until the file is fixed and
	// reloaded
	if table, err := data.Get(context.Background()); err != nil {
		log.ErrorCause(err, "failed to load sales data on startup")
	} else if table.IsEmpty() {
		log.Warnf("no valid records in '%s'", config.DataSource)
	}

	dashboardAPI := api.NewDashboardAPI(data, http.NewServeMux(), config.API)

	log.Infof("listening on port %s...", config.API.Port)
	if err := dashboardAPI.ListenAndServe(); err != nil {
		log.ErrorCause(err, "server stopped")
		os.Exit(1)
	}
}

func setUpLogger(config config.Config) {
	var handler slog.Handler
	if config.IsProduction {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel.Slog()})
	} else {
		handler = devlog.NewHandler(os.Stdout, &devlog.Options{Level: config.LogLevel.Slog()})
	}
	slog.SetDefault(slog.New(handler))
}
