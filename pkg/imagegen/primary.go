package imagegen

import (
	"context"
)

// ImageGenerator is the slice of the model client the primary strategy needs.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// primaryStrategy renders through the hosted image model. This is the full
// quality path and the first one the pipeline tries.
type primaryStrategy struct {
	client ImageGenerator
}

func NewPrimaryStrategy(client ImageGenerator) Strategy {
	return &primaryStrategy{client: client}
}

func (s *primaryStrategy) Name() string {
	return "primary"
}

func (s *primaryStrategy) Generate(ctx context.Context, req Request) (string, error) {
	return s.client.GenerateImage(ctx, req.Refined())
}
