package imagegen

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
)

// TextGenerator is the slice of the model client the vector fallback needs.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// svgStrategy asks the text model for vector markup instead of raster
// pixels. Much cheaper than the image model and good enough as a first
// fallback for flat character art.
type svgStrategy struct {
	client TextGenerator
}

func NewSVGStrategy(client TextGenerator) Strategy {
	return &svgStrategy{client: client}
}

func (s *svgStrategy) Name() string {
	return "svg"
}

func (s *svgStrategy) Generate(ctx context.Context, req Request) (string, error) {
	prompt := fmt.Sprintf(
		"Create a simple, colorful SVG illustration of: %s. "+
			"Respond with ONLY the raw SVG markup, starting with <svg and ending with </svg>. "+
			"Use viewBox=\"0 0 1024 1024\". No explanation, no markdown.",
		req.Refined(),
	)

	raw, err := s.client.GenerateText(ctx, prompt)
	if err != nil {
		return "", err
	}

	markup := stripCodeFence(raw)
	if !strings.HasPrefix(markup, "<svg") || !strings.HasSuffix(markup, "</svg>") {
		return "", fmt.Errorf("model response is not svg markup")
	}

	encoded := base64.StdEncoding.EncodeToString([]byte(markup))
	return "data:image/svg+xml;base64," + encoded, nil
}

// stripCodeFence removes a wrapping markdown code fence, with or without a
// language tag, which the model adds even when told not to.
func stripCodeFence(raw string) string {
	out := strings.TrimSpace(raw)
	if !strings.HasPrefix(out, "```") {
		return out
	}

	out = strings.TrimPrefix(out, "```")
	if idx := strings.Index(out, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(out[:idx])
		// language tags are single words like "svg" or "xml"
		if firstLine != "" && !strings.ContainsAny(firstLine, "<> ") {
			out = out[idx+1:]
		}
	}
	out = strings.TrimSuffix(strings.TrimSpace(out), "```")
	return strings.TrimSpace(out)
}
