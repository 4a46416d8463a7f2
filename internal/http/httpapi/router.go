package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/http/handlers"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/infra"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/middleware"
)

// NewRouter assembles the HTTP surface: the embedded page plus the JSON API.
func NewRouter(app *handlers.App, cfg *infra.Config, logger infra.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.AllowedOrigins),
	)

	r.Get("/", app.Index)
	r.Get("/v1/healthz", app.Health)

	r.Route("/v1", func(r chi.Router) {
		r.With(middleware.RateLimit(cfg.RateLimitPerMin, time.Minute)).Route("/images", func(r chi.Router) {
			r.Post("/generate", app.ImagesGenerate)
			r.Post("/edit", app.ImagesEdit)
		})
		r.Get("/prompts/ideas", app.PromptIdeas)
	})

	return r
}
