package pipeline

import (
	"context"
	"regexp"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
	"github.com/zazencodes/zazenbot5k-go/internal/prompt"
)

var (
	// markerPattern matches inline transcript markers like [00:03:52].
	markerPattern = regexp.MustCompile(`\[(\d{2}:\d{2}:\d{2})\]`)
	// replyPattern pulls an HH:MM:SS value out of free-form model output.
	replyPattern = regexp.MustCompile(`\d{2}:\d{2}:\d{2}`)
)

// Completer is the text-completion collaborator used to rank candidate
// timestamps. It may fail; the extractor absorbs every failure.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// TimestampExtractor finds the transcript timestamp most relevant to a
// question. The model is only ever asked to choose among timestamps that are
// present in the excerpt; any reply outside that set is discarded.
type TimestampExtractor struct {
	completer Completer
	logger    *zap.Logger
}

func NewTimestampExtractor(completer Completer, logger *zap.Logger) *TimestampExtractor {
	return &TimestampExtractor{
		completer: completer,
		logger:    logger,
	}
}

// Extract returns a single HH:MM:SS timestamp for the excerpt, or the
// sentinel when the excerpt carries no markers. It never returns an error:
// every degenerate case falls back to a deterministic choice.
func (e *TimestampExtractor) Extract(ctx context.Context, excerpt, question string) string {
	matches := markerPattern.FindAllStringSubmatch(excerpt, -1)
	if len(matches) == 0 {
		e.logger.Warn("No timestamps found in context, using sentinel")
		return domain.TimestampSentinel
	}

	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, m[1])
	}

	if len(candidates) == 1 {
		// Nothing to disambiguate, skip the model round-trip.
		e.logger.Info("Only one timestamp found in context",
			zap.String("timestamp", candidates[0]),
		)
		return candidates[0]
	}

	e.logger.Info("Multiple timestamps found, asking model to select the most relevant one",
		zap.Int("count", len(candidates)),
	)

	reply, err := e.completer.Complete(ctx, prompt.BuildTimestampSelector(question, excerpt))
	if err != nil {
		e.logger.Error("Timestamp selection call failed, falling back to first timestamp",
			zap.Error(err),
		)
		return candidates[0]
	}

	selected := replyPattern.FindString(reply)
	if selected == "" {
		e.logger.Warn("Model did not return a valid timestamp, using first timestamp")
		return candidates[0]
	}

	for _, c := range candidates {
		if c == selected {
			e.logger.Info("Model selected timestamp", zap.String("timestamp", selected))
			return selected
		}
	}

	e.logger.Warn("Selected timestamp not present in context, using first timestamp",
		zap.String("selected", selected),
	)
	return candidates[0]
}
