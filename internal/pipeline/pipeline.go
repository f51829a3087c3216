// Package pipeline implements the answer-enrichment pipeline: one question in,
// one fully formatted answer out. The stages run sequentially and each stage
// absorbs its own failures with a documented fallback; only a failure of the
// retrieval/generation call itself aborts a request.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

// Retriever is the external RAG engine: question plus optional persona in,
// generated answer with ranked grounding chunks out.
type Retriever interface {
	Retrieve(ctx context.Context, question string, persona domain.Persona) (*domain.GenerationResult, error)
}

// Pipeline orchestrates retrieve → select context → extract timestamp →
// resolve metadata → format. It holds no per-request state; one instance
// serves concurrent requests.
type Pipeline struct {
	retriever Retriever
	extractor *TimestampExtractor
	resolver  *MetadataResolver
	logger    *zap.Logger
}

func New(retriever Retriever, extractor *TimestampExtractor, resolver *MetadataResolver, logger *zap.Logger) *Pipeline {
	return &Pipeline{
		retriever: retriever,
		extractor: extractor,
		resolver:  resolver,
		logger:    logger,
	}
}

// Answer runs the full pipeline for one question. The returned error is
// non-nil only when the retrieval/generation call fails.
func (p *Pipeline) Answer(ctx context.Context, question domain.Question) (string, error) {
	p.logger.Info("Processing question",
		zap.String("question", question.Text),
		zap.String("persona", question.Persona.String()),
	)

	result, err := p.retriever.Retrieve(ctx, question.Text, question.Persona)
	if err != nil {
		return "", fmt.Errorf("rag retrieval failed: %w", err)
	}

	documentID, excerpt := SelectContext(result, p.logger)

	timestamp := p.extractor.Extract(ctx, excerpt, question.Text)
	p.logger.Info("Selected timestamp for response", zap.String("timestamp", timestamp))

	metadata := p.resolver.Resolve(ctx, documentID)

	response := FormatResponse(result.Answer, metadata, timestamp, p.logger)
	p.logger.Info("Response formatting complete")
	return response, nil
}
