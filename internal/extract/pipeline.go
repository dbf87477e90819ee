package extract

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/sendbackhq/sendback/internal/llm"
)

// Pipeline iterates an ordered strategy list until one produces fields.
// Per-strategy failures are collected for diagnostics and logged, never
// surfaced to the caller: the terminal FallbackStrategy guarantees a result.
type Pipeline struct {
	strategies []Strategy
	log        *zap.Logger
}

// NewPipeline builds the standard chain for the given backend and PDF
// extractor. backend may be nil (no LLM configured); the chain then resolves
// straight to the fallback record.
func NewPipeline(backend llm.Backend, pdf *PDFTextExtractor, logger *zap.Logger) *Pipeline {
	return NewPipelineWith(logger,
		VisionStrategy{Backend: backend},
		PDFTextStrategy{Extractor: pdf, Backend: backend},
		TextStrategy{Backend: backend},
		FallbackStrategy{},
	)
}

// NewPipelineWith assembles an explicit strategy order; split out for tests.
func NewPipelineWith(logger *zap.Logger, strategies ...Strategy) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{strategies: strategies, log: logger}
}

// Extract runs the chain. The returned attempt errors describe strategies
// that were applicable but failed; skipped strategies are not recorded.
func (p *Pipeline) Extract(ctx context.Context, in Input) (llm.OrderFields, []AttemptError) {
	var failures []AttemptError
	for _, s := range p.strategies {
		start := time.Now()
		fields, err := s.Attempt(ctx, in)
		if err == nil {
			p.log.Info("extract.strategy.ok",
				zap.String("strategy", s.Name()),
				zap.String("merchant", fields.Merchant),
				zap.Int("items", len(fields.Items)),
				zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
			)
			return fields, failures
		}
		if errors.Is(err, ErrNotApplicable) {
			p.log.Debug("extract.strategy.skip", zap.String("strategy", s.Name()))
			continue
		}
		p.log.Warn("extract.strategy.failed",
			zap.String("strategy", s.Name()),
			zap.Error(err),
			zap.Int64("elapsed_ms", time.Since(start).Milliseconds()),
		)
		failures = append(failures, AttemptError{Strategy: s.Name(), Err: err})
	}

	// The chain should always end in FallbackStrategy; this path only runs
	// when a caller assembled a chain without it.
	p.log.Error("extract.exhausted", zap.Int("failures", len(failures)))
	return FallbackStrategy{}.mustFields(), failures
}

func (FallbackStrategy) mustFields() llm.OrderFields {
	f, _ := FallbackStrategy{}.Attempt(context.Background(), Input{})
	return f
}
