package imagegen

import (
	"context"
	"strings"

	"ai-charstudio-be/internal/entity"
)

const stockBaseURL = "https://source.unsplash.com/1024x1024/?"

// stockStrategy builds a keyword search URL against a free stock photo
// service. It makes no network call, so it only fails on an empty prompt.
type stockStrategy struct{}

func NewStockStrategy() Strategy {
	return &stockStrategy{}
}

func (s *stockStrategy) Name() string {
	return "stock"
}

func (s *stockStrategy) Generate(ctx context.Context, req Request) (string, error) {
	return stockURL(req.Prompt, req.Kind), nil
}

// stockURL uses the first three prompt words plus the generation kind as
// comma separated search terms.
func stockURL(prompt string, kind entity.GenerationKind) string {
	words := strings.Fields(prompt)
	if len(words) > 3 {
		words = words[:3]
	}
	terms := append(words, string(kind))
	return stockBaseURL + strings.Join(terms, ",")
}
