package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/infra"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/image"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/prompt"
)

// App carries the request-scoped collaborators for every handler. There is no
// shared mutable state: each interaction threads its own values through.
type App struct {
	Config    *infra.Config
	Logger    infra.Logger
	Generator image.Generator
	Suggester prompt.Suggester
}

// NewApp wires the handler container.
func NewApp(cfg *infra.Config, logger infra.Logger, gen image.Generator, sug prompt.Suggester) *App {
	return &App{Config: cfg, Logger: logger, Generator: gen, Suggester: sug}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": kind, "message": message},
	})
}
