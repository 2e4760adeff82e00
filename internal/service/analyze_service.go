// FILE: internal/service/analyze_service.go
package service

import (
	"context"
	"strings"

	"ai-charstudio-be/internal/dto"
	"ai-charstudio-be/pkg/genai"
)

const defaultStyle = "3D Render"

const analyzePrompt = `Describe the character or subject in this image in one or two sentences, ` +
	`focusing on appearance, colors and mood. Then on a new line write "Style:" followed by ` +
	`the closest matching art style (for example 3D Render, Anime, Pixel Art, Watercolor).`

type IAnalyzeService interface {
	Analyze(ctx context.Context, mimeType string, image []byte) (*dto.AnalyzeResponse, error)
}

type analyzeService struct {
	aiClient *genai.Client
}

func NewAnalyzeService(aiClient *genai.Client) IAnalyzeService {
	return &analyzeService{aiClient: aiClient}
}

func (s *analyzeService) Analyze(ctx context.Context, mimeType string, image []byte) (*dto.AnalyzeResponse, error) {
	answer, err := s.aiClient.DescribeImage(ctx, mimeType, image, analyzePrompt)
	if err != nil {
		return nil, err
	}

	description, style := splitDescription(answer)
	return &dto.AnalyzeResponse{
		Description: description,
		Style:       style,
	}, nil
}

// splitDescription separates the freeform description from the trailing
// "Style:" line the model was asked for. A missing or empty style falls back
// to the default.
func splitDescription(answer string) (string, string) {
	description := strings.TrimSpace(answer)
	style := defaultStyle

	if idx := strings.LastIndex(description, "Style:"); idx >= 0 {
		if parsed := strings.TrimSpace(description[idx+len("Style:"):]); parsed != "" {
			style = parsed
		}
		description = strings.TrimSpace(description[:idx])
	}

	return description, style
}
