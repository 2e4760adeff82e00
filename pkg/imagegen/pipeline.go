package imagegen

import (
	"context"

	"ai-charstudio-be/internal/pkg/logger"
)

// Pipeline walks its strategies in order and returns the first success.
// Generate has no error return on purpose: the final configured strategy is
// the infallible placeholder, so callers always get an image back.
type Pipeline struct {
	strategies []Strategy
	log        logger.ILogger
}

func NewPipeline(log logger.ILogger, strategies ...Strategy) *Pipeline {
	return &Pipeline{strategies: strategies, log: log}
}

// NewDefaultPipeline wires the full cascade: hosted image model, vector
// fallback, stock photo lookup, then placeholder.
func NewDefaultPipeline(log logger.ILogger, primary, svg Strategy) *Pipeline {
	return NewPipeline(log, primary, svg, NewStockStrategy(), NewPlaceholderStrategy())
}

func (p *Pipeline) Generate(ctx context.Context, req Request) Result {
	for _, strategy := range p.strategies {
		url, err := strategy.Generate(ctx, req)
		if err != nil {
			p.log.Warn("imagegen", "strategy failed, falling back", map[string]interface{}{
				"strategy": strategy.Name(),
				"kind":     string(req.Kind),
				"error":    err.Error(),
			})
			continue
		}
		return Result{ImageURL: url, Strategy: strategy.Name()}
	}

	// unreachable when the placeholder strategy is configured last
	return Result{ImageURL: placeholderDefault, Strategy: "placeholder"}
}
