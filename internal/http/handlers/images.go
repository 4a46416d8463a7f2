package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/imgedit"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/middleware"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/flux"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/image"
)

type imageGenerateRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
}

// imageResponse is the envelope for both generated and edited images: enough
// for the page to render the result inline and to offer a named PNG download.
type imageResponse struct {
	Filename string `json:"filename"`
	MIME     string `json:"mime"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Data     string `json:"data"`
}

// ImagesGenerate runs one blocking generation: submit, poll to completion,
// fetch, and return the bytes. The prompt must be non-empty; that check lives
// here so an empty prompt never reaches the provider.
func (a *App) ImagesGenerate(w http.ResponseWriter, r *http.Request) {
	var req imageGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "Please enter a prompt.")
		return
	}

	asset, err := a.Generator.Generate(r.Context(), image.GenerateRequest{
		Prompt:      req.Prompt,
		AspectRatio: req.AspectRatio,
		RequestID:   middleware.RequestIDFromContext(r.Context()),
	})
	if err != nil {
		a.generationError(w, r, err)
		return
	}

	// Downloads are always PNG regardless of what the provider served.
	data := asset.Data
	if asset.Format != "png" {
		if data, err = imgedit.EncodePNG(asset.Image); err != nil {
			a.error(w, http.StatusInternalServerError, "internal", "failed to encode image")
			return
		}
	}

	a.json(w, http.StatusOK, imageResponse{
		Filename: imgedit.Filename("generated_image"),
		MIME:     "image/png",
		Width:    asset.Width,
		Height:   asset.Height,
		Data:     base64.StdEncoding.EncodeToString(data),
	})
}

// generationError maps the provider taxonomy onto HTTP statuses. The message
// is surfaced verbatim; all three kinds are terminal and never retried here.
func (a *App) generationError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		transportErr *flux.TransportError
		protocolErr  *flux.ProtocolError
		timeoutErr   *flux.TimeoutError
	)
	switch {
	case errors.As(err, &timeoutErr):
		a.error(w, http.StatusGatewayTimeout, "timeout", err.Error())
	case errors.As(err, &transportErr):
		a.error(w, http.StatusBadGateway, "transport", err.Error())
	case errors.As(err, &protocolErr):
		a.error(w, http.StatusBadGateway, "protocol", err.Error())
	default:
		a.Logger.Error().Err(err).
			Str("request_id", middleware.RequestIDFromContext(r.Context())).
			Msg("generation failed")
		a.error(w, http.StatusInternalServerError, "internal", "image generation failed")
	}
}
