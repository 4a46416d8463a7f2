package image

import (
	"context"
	"fmt"

	"github.com/Amritendu-tiwari/Flux-Image-Generator-Editor/internal/providers/flux"
)

type fluxClient interface {
	Generate(context.Context, flux.GenerationRequest) (*flux.GeneratedImage, error)
}

// FluxGenerator adapts the Flux protocol client to the normalized Generator
// contract used by the HTTP layer.
type FluxGenerator struct {
	client fluxClient
}

// NewFluxGenerator wires a Flux client into the provider abstraction.
func NewFluxGenerator(client fluxClient) *FluxGenerator {
	return &FluxGenerator{client: client}
}

// Generate fulfils the Generator interface. The prompt must be non-empty;
// callers reject empty prompts before reaching a provider.
func (g *FluxGenerator) Generate(ctx context.Context, req GenerateRequest) (*Asset, error) {
	if g == nil || g.client == nil {
		return nil, fmt.Errorf("flux generator not configured")
	}
	result, err := g.client.Generate(ctx, flux.GenerationRequest{
		Prompt:      req.Prompt,
		AspectRatio: NormalizeAspectRatio(req.AspectRatio),
		RequestID:   req.RequestID,
	})
	if err != nil {
		return nil, err
	}
	return &Asset{
		Data:   result.Data,
		Image:  result.Image,
		Format: result.Format,
		Width:  result.Width,
		Height: result.Height,
	}, nil
}

var _ Generator = (*FluxGenerator)(nil)
