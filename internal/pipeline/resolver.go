package pipeline

import (
	"context"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

// MetadataStore looks up the metadata record for a document id. An error
// covers both genuine misses and transport failures; the resolver treats them
// identically.
type MetadataStore interface {
	Lookup(ctx context.Context, documentID string) (*domain.MetadataRecord, error)
}

// MetadataResolver maps a grounding document id to its video metadata.
// Absence is a valid outcome: the formatter renders an answer-only response
// when no record comes back.
type MetadataResolver struct {
	store  MetadataStore
	logger *zap.Logger
}

func NewMetadataResolver(store MetadataStore, logger *zap.Logger) *MetadataResolver {
	return &MetadataResolver{
		store:  store,
		logger: logger,
	}
}

// Resolve returns the metadata record for a document id, or nil when no
// record can be produced. It never fails the pipeline.
func (r *MetadataResolver) Resolve(ctx context.Context, documentID string) *domain.MetadataRecord {
	base := stripExtension(documentID)

	record, err := r.store.Lookup(ctx, base)
	if err != nil {
		r.logger.Warn("Metadata lookup failed, continuing without source block",
			zap.String("document_id", base),
			zap.Error(err),
		)
		return nil
	}

	r.logger.Info("Metadata resolved",
		zap.String("document_id", base),
		zap.String("title", record.Title),
	)
	return record
}

// stripExtension normalizes a document id by removing any trailing file
// extension, so "episode-12.txt" and "episode-12" key the same record.
func stripExtension(documentID string) string {
	ext := filepath.Ext(documentID)
	return strings.TrimSuffix(documentID, ext)
}
