package pipeline

import (
	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

// unknownContext is returned when a generation carries no usable grounding.
// Downstream stages treat it like any other document id; the metadata lookup
// for it simply misses.
const unknownContext = "unknown"

// SelectContext picks the top-ranked grounding chunk from a generation
// result. A missing or degenerate grounding list is expected (the corpus may
// not back every answer) and yields the sentinel pair.
func SelectContext(result *domain.GenerationResult, logger *zap.Logger) (documentID, excerpt string) {
	if result == nil || len(result.Chunks) == 0 {
		logger.Warn("No grounding chunks in generation result, using sentinel context")
		return unknownContext, unknownContext
	}

	top := result.Chunks[0]
	if top.DocumentID == "" || top.Excerpt == "" {
		logger.Warn("Top grounding chunk is missing fields, using sentinel context",
			zap.String("document_id", top.DocumentID),
		)
		return unknownContext, unknownContext
	}

	logger.Info("Top context selected", zap.String("document_id", top.DocumentID))
	return top.DocumentID, top.Excerpt
}
