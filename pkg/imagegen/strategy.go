// Package imagegen renders character art through a fallback cascade. Each
// strategy in the chain is tried in order until one produces an image; the
// final placeholder strategy cannot fail, so the pipeline always returns a
// usable URL.
package imagegen

import (
	"context"
	"fmt"

	"ai-charstudio-be/internal/entity"
)

// Request carries everything a strategy needs to render one image. Prompt is
// the user's raw prompt; the model-facing strategies fold Style in themselves,
// while the stock fallback searches on the raw words only.
type Request struct {
	Prompt string
	Style  string
	Kind   entity.GenerationKind
}

// Refined is the prompt sent to the generative models: the raw prompt with
// the style appended when one is set.
func (r Request) Refined() string {
	if r.Style == "" {
		return r.Prompt
	}
	return fmt.Sprintf("%s, %s style", r.Prompt, r.Style)
}

// Result is the rendered image plus the name of the strategy that produced
// it, so callers can see how far down the cascade a request fell.
type Result struct {
	ImageURL string
	Strategy string
}

type Strategy interface {
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}
