package imagegen

import (
	"context"
	"errors"
	"testing"

	"ai-charstudio-be/internal/entity"

	"github.com/stretchr/testify/assert"
)

type stubStrategy struct {
	name string
	url  string
	err  error

	calls int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Generate(ctx context.Context, req Request) (string, error) {
	s.calls++
	return s.url, s.err
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

func TestPipelineFirstSuccessWins(t *testing.T) {
	first := &stubStrategy{name: "first", url: "https://img.example/one.png"}
	second := &stubStrategy{name: "second", url: "https://img.example/two.png"}

	p := NewPipeline(nopLogger{}, first, second)
	res := p.Generate(context.Background(), Request{Prompt: "a red fox", Kind: entity.GenerationKindBasic})

	assert.Equal(t, "https://img.example/one.png", res.ImageURL)
	assert.Equal(t, "first", res.Strategy)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls, "later strategies must not run after a success")
}

func TestPipelineFallsThroughFailures(t *testing.T) {
	broken := &stubStrategy{name: "broken", err: errors.New("model unavailable")}
	alsoBroken := &stubStrategy{name: "also_broken", err: errors.New("timeout")}
	working := &stubStrategy{name: "working", url: "https://img.example/three.png"}

	p := NewPipeline(nopLogger{}, broken, alsoBroken, working)
	res := p.Generate(context.Background(), Request{Prompt: "a red fox", Kind: entity.GenerationKindStory})

	assert.Equal(t, "https://img.example/three.png", res.ImageURL)
	assert.Equal(t, "working", res.Strategy)
	assert.Equal(t, 1, broken.calls)
	assert.Equal(t, 1, alsoBroken.calls)
}

func TestPipelineNeverFails(t *testing.T) {
	broken := &stubStrategy{name: "broken", err: errors.New("down")}

	p := NewPipeline(nopLogger{}, broken, NewPlaceholderStrategy())
	res := p.Generate(context.Background(), Request{Prompt: "anything", Kind: entity.GenerationKindEmoji})

	assert.Equal(t, placeholderURLs[entity.GenerationKindEmoji], res.ImageURL)
	assert.Equal(t, "placeholder", res.Strategy)
}

func TestStockStrategySearchesRawPrompt(t *testing.T) {
	s := NewStockStrategy()
	url, err := s.Generate(context.Background(), Request{Prompt: "red fox", Style: "cartoon", Kind: entity.GenerationKindBasic})

	assert.NoError(t, err)
	assert.Equal(t, stockBaseURL+"red,fox,basic", url, "search terms must come from the raw prompt, not the styled one")
}

func TestRequestRefined(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want string
	}{
		{
			name: "style folded into the model prompt",
			req:  Request{Prompt: "a red fox", Style: "cartoon"},
			want: "a red fox, cartoon style",
		},
		{
			name: "no style leaves the prompt untouched",
			req:  Request{Prompt: "a red fox"},
			want: "a red fox",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Refined())
		})
	}
}

func TestStockURL(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		kind   entity.GenerationKind
		want   string
	}{
		{
			name:   "long prompt keeps first three words",
			prompt: "a red fox wearing sunglasses",
			kind:   entity.GenerationKindBasic,
			want:   stockBaseURL + "a,red,fox,basic",
		},
		{
			name:   "short prompt keeps everything",
			prompt: "robot",
			kind:   entity.GenerationKindMockup,
			want:   stockBaseURL + "robot,mockup",
		},
		{
			name:   "empty prompt still searches by kind",
			prompt: "",
			kind:   entity.GenerationKindStory,
			want:   stockBaseURL + "story",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stockURL(tt.prompt, tt.kind))
		})
	}
}

func TestStripCodeFence(t *testing.T) {
	svg := `<svg viewBox="0 0 1024 1024"><circle r="10"/></svg>`

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bare markup", raw: svg, want: svg},
		{name: "fenced with language", raw: "```svg\n" + svg + "\n```", want: svg},
		{name: "fenced without language", raw: "```\n" + svg + "\n```", want: svg},
		{name: "surrounding whitespace", raw: "\n  " + svg + "  \n", want: svg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripCodeFence(tt.raw))
		})
	}
}
