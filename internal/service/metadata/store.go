// Package metadata reads per-video metadata records from the archive bucket.
// Records live at yt-rag/info/<document-id>.json and are produced by the
// upload tooling; a missing record is an expected state.
package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/constants"
	"github.com/zazencodes/zazenbot5k-go/internal/domain"
	"github.com/zazencodes/zazenbot5k-go/pkg/errors"
)

// GCSStore fetches metadata records from Google Cloud Storage.
type GCSStore struct {
	client *storage.Client
	bucket string
	logger *zap.Logger
}

func NewGCSStore(client *storage.Client, bucket string, logger *zap.Logger) (*GCSStore, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is required")
	}
	if bucket == "" {
		return nil, fmt.Errorf("bucket name is required")
	}

	return &GCSStore{
		client: client,
		bucket: bucket,
		logger: logger,
	}, nil
}

// Lookup fetches and decodes the record for a document id. Errors cover both
// genuine misses and transport failures; callers treat them identically.
func (s *GCSStore) Lookup(ctx context.Context, documentID string) (*domain.MetadataRecord, error) {
	objectPath := fmt.Sprintf("%s/%s.json", constants.GCSInfoPrefix, documentID)
	s.logger.Debug("Looking for metadata",
		zap.String("bucket", s.bucket),
		zap.String("path", objectPath),
	)

	reader, err := s.client.Bucket(s.bucket).Object(objectPath).NewReader(ctx)
	if err != nil {
		return nil, errors.NewServiceError("metadata object unavailable", "gcs", "read", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.NewServiceError("metadata read failed", "gcs", "read", err)
	}

	var record domain.MetadataRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.NewServiceError("metadata document malformed", "gcs", "decode", err)
	}

	return &record, nil
}
