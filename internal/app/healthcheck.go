package app

import (
	"context"
	"net/http"
	"time"

	"github.com/metinatakli/cinex-web/api"
)

// GetHealth reports DOWN with a 503 when the session store cannot be reached.
func (app *Application) GetHealth(w http.ResponseWriter, r *http.Request) {
	status, code := "UP", http.StatusOK

	ctx, cancel := context.WithTimeout(r.Context(), time.Second)
	defer cancel()

	err := app.redis.Ping(ctx).Err()
	if err != nil {
		app.contextGetLogger(r).Warn("session store unreachable", "error", err)
		status, code = "DOWN", http.StatusServiceUnavailable
	}

	resp := api.HealthcheckResponse{
		Status: status,
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: app.config.Env,
		},
	}

	app.writeJSON(w, code, resp, nil)
}

func (app *Application) GetOpenAPIDocument(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	w.WriteHeader(http.StatusOK)
	w.Write(api.Document())
}
