package handlers

import (
	"encoding/base64"
	"image"
	"net/http"
	"strconv"
	"strings"

	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/imgedit"
)

// maxUploadBytes bounds the multipart form we are willing to hold in memory.
const maxUploadBytes = 20 << 20

// ImagesEdit applies one raster operation to an uploaded JPEG/PNG and returns
// the result as PNG. Operations: grayscale, resize (width/height fields),
// upscale (scale field, 2 or 3).
func (a *App) ImagesEdit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "image file is required")
		return
	}
	defer file.Close()

	src, err := imgedit.Decode(file)
	if err != nil {
		a.error(w, http.StatusUnprocessableEntity, "bad_image", "could not decode image; JPG, JPEG and PNG are supported")
		return
	}

	op := strings.ToLower(strings.TrimSpace(r.FormValue("op")))
	var edited image.Image
	switch op {
	case "grayscale":
		edited = imgedit.Grayscale(src)
	case "resize":
		width, werr := strconv.Atoi(r.FormValue("width"))
		height, herr := strconv.Atoi(r.FormValue("height"))
		if werr != nil || herr != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "width and height must be integers")
			return
		}
		if edited, err = imgedit.Resize(src, width, height); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
	case "upscale":
		scale, serr := strconv.Atoi(r.FormValue("scale"))
		if serr != nil {
			a.error(w, http.StatusBadRequest, "bad_request", "scale must be an integer")
			return
		}
		if edited, err = imgedit.Upscale(src, scale); err != nil {
			a.error(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported operation: "+op)
		return
	}

	data, err := imgedit.EncodePNG(edited)
	if err != nil {
		a.Logger.Error().Err(err).Str("op", op).Str("upload", header.Filename).Msg("edit encode failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to encode edited image")
		return
	}
	bounds := edited.Bounds()
	a.json(w, http.StatusOK, imageResponse{
		Filename: imgedit.Filename("edited_image"),
		MIME:     "image/png",
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		Data:     base64.StdEncoding.EncodeToString(data),
	})
}
