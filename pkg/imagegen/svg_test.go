package imagegen

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"ai-charstudio-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

type stubTextGenerator struct {
	response string
	err      error

	gotPrompt string
}

func (s *stubTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	s.gotPrompt = prompt
	return s.response, s.err
}

func TestSVGStrategyRoundTrip(t *testing.T) {
	markup := `<svg viewBox="0 0 1024 1024"><rect width="10" height="10"/></svg>`
	gen := &stubTextGenerator{response: "```svg\n" + markup + "\n```"}

	s := NewSVGStrategy(gen)
	url, err := s.Generate(context.Background(), Request{Prompt: "a red fox", Style: "cartoon", Kind: entity.GenerationKindBasic})
	assert.NoError(t, err)

	assert.Contains(t, gen.gotPrompt, "a red fox, cartoon style")

	const prefix = "data:image/svg+xml;base64,"
	if assert.True(t, strings.HasPrefix(url, prefix), "expected a data URI, got %q", url) {
		decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(url, prefix))
		assert.NoError(t, err)
		assert.Equal(t, markup, string(decoded), "decoded payload must equal the fence-stripped markup")
	}
}

func TestSVGStrategyRejectsNonSVGResponse(t *testing.T) {
	gen := &stubTextGenerator{response: "I cannot draw that, sorry."}

	s := NewSVGStrategy(gen)
	_, err := s.Generate(context.Background(), Request{Prompt: "a red fox", Kind: entity.GenerationKindBasic})
	assert.Error(t, err)
}

func TestSVGStrategyPropagatesModelError(t *testing.T) {
	gen := &stubTextGenerator{err: errors.New("quota exhausted")}

	s := NewSVGStrategy(gen)
	_, err := s.Generate(context.Background(), Request{Prompt: "a red fox", Kind: entity.GenerationKindBasic})
	assert.Error(t, err)
}
