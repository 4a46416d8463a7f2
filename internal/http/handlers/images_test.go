package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/infra"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/flux"
	imgprov "github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/image"
	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/prompt"
)

type stubGenerator struct {
	calls   int
	lastReq imgprov.GenerateRequest
	asset   *imgprov.Asset
	err     error
}

func (s *stubGenerator) Generate(_ context.Context, req imgprov.GenerateRequest) (*imgprov.Asset, error) {
	s.calls++
	s.lastReq = req
	return s.asset, s.err
}

func newTestApp(gen imgprov.Generator) *App {
	cfg := &infra.Config{AppEnv: "test"}
	return NewApp(cfg, zerolog.New(io.Discard), gen, prompt.NewStaticSuggester())
}

func pngAsset(t *testing.T, w, h int) *imgprov.Asset {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return &imgprov.Asset{Data: buf.Bytes(), Image: img, Format: "png", Width: w, Height: h}
}

func postJSON(t *testing.T, handler http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/v1/images/generate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (code, message string) {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code, body.Error.Message
}

func TestImagesGenerateSuccess(t *testing.T) {
	gen := &stubGenerator{asset: pngAsset(t, 16, 9)}
	app := newTestApp(gen)

	rec := postJSON(t, app.ImagesGenerate, `{"prompt":"A serene sunset over a mountain lake","aspect_ratio":"16:9"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if gen.calls != 1 {
		t.Fatalf("generator calls = %d, want 1", gen.calls)
	}
	if gen.lastReq.Prompt != "A serene sunset over a mountain lake" {
		t.Fatalf("prompt forwarded = %q", gen.lastReq.Prompt)
	}

	var resp imageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.MIME != "image/png" {
		t.Fatalf("mime = %q", resp.MIME)
	}
	if !strings.HasPrefix(resp.Filename, "generated_image_") || !strings.HasSuffix(resp.Filename, ".png") {
		t.Fatalf("filename = %q", resp.Filename)
	}
	if resp.Width != 16 || resp.Height != 9 {
		t.Fatalf("size = %dx%d", resp.Width, resp.Height)
	}
	raw, err := base64.StdEncoding.DecodeString(resp.Data)
	if err != nil {
		t.Fatalf("data not base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("data not a PNG: %v", err)
	}
}

func TestImagesGenerateReencodesNonPNG(t *testing.T) {
	asset := pngAsset(t, 4, 4)
	asset.Format = "jpeg"
	asset.Data = []byte("jpeg bytes that must not leak through")
	gen := &stubGenerator{asset: asset}
	app := newTestApp(gen)

	rec := postJSON(t, app.ImagesGenerate, `{"prompt":"a fox"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp imageResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	raw, err := base64.StdEncoding.DecodeString(resp.Data)
	if err != nil {
		t.Fatalf("data not base64: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(raw)); err != nil {
		t.Fatalf("re-encoded data not a PNG: %v", err)
	}
}

func TestImagesGenerateEmptyPromptNeverReachesProvider(t *testing.T) {
	gen := &stubGenerator{asset: pngAsset(t, 1, 1)}
	app := newTestApp(gen)

	for _, body := range []string{`{"prompt":""}`, `{"prompt":"   "}`, `{}`} {
		rec := postJSON(t, app.ImagesGenerate, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
		if _, msg := decodeError(t, rec); msg != "Please enter a prompt." {
			t.Fatalf("message = %q", msg)
		}
	}
	if gen.calls != 0 {
		t.Fatalf("generator calls = %d, want 0", gen.calls)
	}
}

func TestImagesGenerateInvalidJSON(t *testing.T) {
	app := newTestApp(&stubGenerator{})
	rec := postJSON(t, app.ImagesGenerate, `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestImagesGenerateErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "transport error surfaces status and body",
			err:        &flux.TransportError{StatusCode: 401, Body: "unauthorized"},
			wantStatus: http.StatusBadGateway,
			wantMsg:    "Error: 401 unauthorized",
		},
		{
			name:       "protocol error surfaces reason",
			err:        &flux.ProtocolError{Reason: "no polling URL returned"},
			wantStatus: http.StatusBadGateway,
			wantMsg:    "no polling URL returned",
		},
		{
			name:       "timeout error maps to gateway timeout",
			err:        &flux.TimeoutError{Attempts: 60},
			wantStatus: http.StatusGatewayTimeout,
			wantMsg:    "Timeout waiting for image",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&stubGenerator{err: tc.err})
			rec := postJSON(t, app.ImagesGenerate, `{"prompt":"a fox"}`)
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if _, msg := decodeError(t, rec); msg != tc.wantMsg {
				t.Fatalf("message = %q, want %q", msg, tc.wantMsg)
			}
		})
	}
}
