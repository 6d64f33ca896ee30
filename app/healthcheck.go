package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// healthCheckHandler reports 503 while the database is unreachable.
func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status, code, database := "available", http.StatusOK, "up"

	if err := app.db.PingContext(ctx); err != nil {
		app.logger.Warn("database ping failed", slog.String("error", err.Error()))
		status, code, database = "unavailable", http.StatusServiceUnavailable, "down"
	}

	env := envelope{
		"status": status,
		"system_info": map[string]string{
			"environment": app.config.Environment,
			"version":     app.config.Version,
			"database":    database,
		},
	}

	err := app.writeJSON(w, code, env, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
