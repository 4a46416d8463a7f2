package prompt

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Idea is one suggested prompt for the generator's text box.
type Idea struct {
	Title  string `json:"title"`
	Prompt string `json:"prompt"`
}

// Suggester produces prompt ideas for the UI.
type Suggester interface {
	Random(ctx context.Context, count int) ([]Idea, error)
}

// StaticSuggester serves a fixed pool of creative prompts. No remote calls.
type StaticSuggester struct {
	pool []Idea
}

type seed struct {
	subject string
	prompt  string
}

var defaultSeeds = []seed{
	{"serene sunset", "A serene sunset over a mountain lake, golden light reflecting off still water"},
	{"neon city", "A rain-soaked neon city street at night, cinematic lighting, reflections on wet asphalt"},
	{"forest spirit", "A glowing forest spirit walking between ancient moss-covered trees at dawn"},
	{"paper ocean", "An ocean wave made of folded paper, origami style, soft studio lighting"},
	{"desert observatory", "A lone observatory dome under the Milky Way in a vast desert, long exposure look"},
	{"clockwork hummingbird", "A clockwork hummingbird hovering over a brass flower, macro photograph"},
	{"winter market", "A cozy winter street market at dusk, string lights, gentle falling snow"},
	{"coral library", "An underwater library grown from coral, shafts of sunlight through the water"},
}

// NewStaticSuggester builds the default suggestion pool, title-casing each
// subject for display.
func NewStaticSuggester() *StaticSuggester {
	c := cases.Title(language.English)
	pool := make([]Idea, 0, len(defaultSeeds))
	for _, s := range defaultSeeds {
		pool = append(pool, Idea{Title: c.String(s.subject), Prompt: s.prompt})
	}
	return &StaticSuggester{pool: pool}
}

// Random returns up to count distinct ideas in shuffled order.
func (s *StaticSuggester) Random(_ context.Context, count int) ([]Idea, error) {
	if count <= 0 {
		return nil, fmt.Errorf("count must be positive, got %d", count)
	}
	if count > len(s.pool) {
		count = len(s.pool)
	}
	picks := rand.Perm(len(s.pool))[:count]
	out := make([]Idea, 0, count)
	for _, i := range picks {
		out = append(out, s.pool[i])
	}
	return out, nil
}

var _ Suggester = (*StaticSuggester)(nil)
