package handlers

import (
	"net/http"
	"strconv"
)

const defaultIdeaCount = 3

// PromptIdeas serves canned prompt suggestions for the generator's text box.
func (a *App) PromptIdeas(w http.ResponseWriter, r *http.Request) {
	count := defaultIdeaCount
	if raw := r.URL.Query().Get("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			a.error(w, http.StatusBadRequest, "bad_request", "count must be a positive integer")
			return
		}
		count = parsed
	}
	ideas, err := a.Suggester.Random(r.Context(), count)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load suggestions")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"items": ideas})
}
