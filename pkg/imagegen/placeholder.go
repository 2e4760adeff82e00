package imagegen

import (
	"context"

	"ai-charstudio-be/internal/entity"
)

var placeholderURLs = map[entity.GenerationKind]string{
	entity.GenerationKindBasic:        "https://via.placeholder.com/1024x1024.png?text=AI+Character",
	entity.GenerationKindStory:        "https://via.placeholder.com/1024x1024.png?text=Storyboard+Scene",
	entity.GenerationKindMockup:       "https://via.placeholder.com/1024x1024.png?text=Product+Mockup",
	entity.GenerationKindEmoji:        "https://via.placeholder.com/1024x1024.png?text=Emoji+Pack",
	entity.GenerationKindModification: "https://via.placeholder.com/1024x1024.png?text=Modified+Character",
}

const placeholderDefault = "https://via.placeholder.com/1024x1024.png?text=AI+Character"

// placeholderStrategy is the terminal fallback. It never fails, which is
// what lets the pipeline guarantee a result.
type placeholderStrategy struct{}

func NewPlaceholderStrategy() Strategy {
	return &placeholderStrategy{}
}

func (s *placeholderStrategy) Name() string {
	return "placeholder"
}

func (s *placeholderStrategy) Generate(ctx context.Context, req Request) (string, error) {
	if url, ok := placeholderURLs[req.Kind]; ok {
		return url, nil
	}
	return placeholderDefault, nil
}
