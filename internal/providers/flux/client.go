package flux

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/infra"
)

// Status is the job state reported by the polling endpoint.
type Status string

const (
	StatusPending Status = "Pending"
	StatusReady   Status = "Ready"
	StatusError   Status = "Error"
	StatusUnknown Status = "Unknown"
)

// ParseStatus maps the provider's free-form status string onto the known set.
func ParseStatus(raw string) Status {
	switch raw {
	case string(StatusPending):
		return StatusPending
	case string(StatusReady):
		return StatusReady
	case string(StatusError):
		return StatusError
	default:
		return StatusUnknown
	}
}

// JobHandle is the opaque polling URL issued for one generation request. It is
// owned by the client for the lifetime of that request and never reused.
type JobHandle string

// GenerationRequest captures the inputs for one image generation.
type GenerationRequest struct {
	Prompt      string
	AspectRatio string
	RequestID   string
}

// GeneratedImage is the terminal result of a successful generation: the raw
// payload bytes and their decoded raster form. Ownership passes to the caller.
type GeneratedImage struct {
	Data   []byte
	Image  image.Image
	Format string
	Width  int
	Height int
}

// Options configures the Flux API client.
type Options struct {
	APIKey       string
	BaseURL      string
	ModelPath    string
	HTTPClient   *http.Client
	Logger       *infra.Logger
	MaxAttempts  int
	PollInterval time.Duration
	// RequestTimeout applies only when HTTPClient is nil.
	RequestTimeout time.Duration
}

// Client performs HTTP calls against the Black Forest Labs Flux API.
type Client struct {
	apiKey       string
	baseURL      string
	modelPath    string
	httpClient   *http.Client
	logger       *infra.Logger
	maxAttempts  int
	pollInterval time.Duration
}

type submitRequest struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspect_ratio"`
}

type submitResponse struct {
	ID         string `json:"id"`
	PollingURL string `json:"polling_url"`
}

type pollResponse struct {
	Status string `json:"status"`
	Result *struct {
		Sample string `json:"sample"`
	} `json:"result"`
}

// NewClient constructs a client with sane defaults and injected dependencies.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.RequestTimeout
		if timeout <= 0 {
			timeout = 45 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.bfl.ai/v1"
	}
	modelPath := strings.Trim(opts.ModelPath, "/")
	if modelPath == "" {
		modelPath = "flux-pro-1.1-ultra"
	}
	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 60
	}
	var logger *infra.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	} else {
		discard := zerolog.New(io.Discard)
		l := infra.Logger(discard)
		logger = &l
	}
	return &Client{
		apiKey:       strings.TrimSpace(opts.APIKey),
		baseURL:      baseURL,
		modelPath:    modelPath,
		httpClient:   httpClient,
		logger:       logger,
		maxAttempts:  maxAttempts,
		pollInterval: opts.PollInterval,
	}
}

// ModelPath returns the configured model endpoint path.
func (c *Client) ModelPath() string {
	return c.modelPath
}

// Submit sends a single creation request and returns the job handle the
// provider issued for it. A non-2xx response yields a *TransportError; a
// success response without a polling URL yields a *ProtocolError.
func (c *Client) Submit(ctx context.Context, req GenerationRequest) (JobHandle, error) {
	aspect := strings.TrimSpace(req.AspectRatio)
	if aspect == "" {
		aspect = "1:1"
	}
	body, err := json.Marshal(submitRequest{Prompt: req.Prompt, AspectRatio: aspect})
	if err != nil {
		return "", fmt.Errorf("flux: encode request: %w", err)
	}
	endpoint := c.baseURL + "/" + c.modelPath
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("flux: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("x-key", c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("flux: submit request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("flux: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var decoded submitResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return "", &ProtocolError{Reason: fmt.Sprintf("decode response: %v", err)}
	}
	if strings.TrimSpace(decoded.PollingURL) == "" {
		return "", &ProtocolError{Reason: "no polling URL returned"}
	}

	c.logger.Debug().
		Str("model", c.modelPath).
		Str("request_id", req.RequestID).
		Str("job_id", decoded.ID).
		Msg("flux: generation submitted")
	return JobHandle(decoded.PollingURL), nil
}

// Poll queries the handle until the first Ready status, then fetches and
// decodes the sample image. It issues at most the configured number of
// attempts; exhausting the budget yields a *TimeoutError. Any status other
// than Ready consumes an attempt and the loop continues. Cancelling the
// context aborts the loop between attempts.
func (c *Client) Poll(ctx context.Context, handle JobHandle) (*GeneratedImage, error) {
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 && c.pollInterval > 0 {
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("flux: poll: %w", ctx.Err())
			case <-time.After(c.pollInterval):
			}
		} else if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("flux: poll: %w", err)
		}

		result, err := c.pollOnce(ctx, handle)
		if err != nil {
			return nil, err
		}
		status := ParseStatus(result.Status)
		if status != StatusReady {
			c.logger.Debug().
				Str("status", string(status)).
				Int("attempt", attempt+1).
				Msg("flux: job not ready")
			continue
		}
		if result.Result == nil || strings.TrimSpace(result.Result.Sample) == "" {
			return nil, &ProtocolError{Reason: "ready response missing sample URL"}
		}
		img, err := c.fetchSample(ctx, result.Result.Sample)
		if err != nil {
			return nil, err
		}
		c.logger.Debug().
			Int("attempts", attempt+1).
			Int("width", img.Width).
			Int("height", img.Height).
			Msg("flux: generation complete")
		return img, nil
	}
	return nil, &TimeoutError{Attempts: c.maxAttempts}
}

// Generate is the submit-then-poll composition used by the HTTP layer. The
// handle never escapes this call and is discarded after terminal resolution.
func (c *Client) Generate(ctx context.Context, req GenerationRequest) (*GeneratedImage, error) {
	handle, err := c.Submit(ctx, req)
	if err != nil {
		return nil, err
	}
	return c.Poll(ctx, handle)
}

func (c *Client) pollOnce(ctx context.Context, handle JobHandle) (*pollResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(handle), nil)
	if err != nil {
		return nil, fmt.Errorf("flux: build poll request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flux: poll request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("flux: read poll response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}
	var decoded pollResponse
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("decode poll response: %v", err)}
	}
	return &decoded, nil
}

// fetchSample downloads the finished image. The sample URL is pre-signed by
// the provider, so no credential header is attached.
func (c *Client) fetchSample(ctx context.Context, sampleURL string) (*GeneratedImage, error) {
	parsed, err := url.Parse(strings.TrimSpace(sampleURL))
	if err != nil || parsed.Scheme == "" {
		return nil, &ProtocolError{Reason: fmt.Sprintf("invalid sample url: %s", sampleURL)}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("flux: build download request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("flux: download image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{StatusCode: resp.StatusCode, Body: "image download failed"}
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("flux: read image: %w", err)
	}
	decoded, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &ProtocolError{Reason: fmt.Sprintf("decode image: %v", err)}
	}
	bounds := decoded.Bounds()
	return &GeneratedImage{
		Data:   data,
		Image:  decoded,
		Format: format,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}
