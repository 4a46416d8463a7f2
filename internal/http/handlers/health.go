package handlers

import (
	"net/http"
)

// Health is a plain liveness probe; it does not touch the Flux API.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, map[string]string{"status": "ok"})
}
