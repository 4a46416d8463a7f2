package image

import (
	"context"
	"image"
	"strings"
)

// DefaultAspectRatio is used whenever a request does not name one.
const DefaultAspectRatio = "1:1"

// supportedAspectRatios is the set the Flux ultra endpoint accepts, from the
// widest landscape to the tallest portrait frame.
var supportedAspectRatios = map[string]struct{}{
	"21:9": {},
	"16:9": {},
	"4:3":  {},
	"3:2":  {},
	"1:1":  {},
	"2:3":  {},
	"3:4":  {},
	"9:16": {},
	"9:21": {},
}

// GenerateRequest describes a normalized request passed to any image provider.
type GenerateRequest struct {
	Prompt      string
	AspectRatio string
	RequestID   string
}

// Asset represents one generated image: the raw payload plus its decoded
// raster form and dimensions.
type Asset struct {
	Data   []byte
	Image  image.Image
	Format string
	Width  int
	Height int
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Asset, error)
}

// NormalizeAspectRatio sanitizes free-form user input into a supported ratio,
// falling back to the square default.
func NormalizeAspectRatio(ratio string) string {
	ratio = strings.TrimSpace(ratio)
	if _, ok := supportedAspectRatios[ratio]; ok {
		return ratio
	}
	return DefaultAspectRatio
}
