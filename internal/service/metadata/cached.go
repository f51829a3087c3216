package metadata

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/constants"
	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

// Store is the lookup contract shared by the plain and cached stores.
type Store interface {
	Lookup(ctx context.Context, documentID string) (*domain.MetadataRecord, error)
}

// KeyedCache is the explicit keyed cache the cached store writes through.
// TTL expiry is the invalidation policy; there is no ambient caching state.
type KeyedCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedStore is a read-through cache in front of another Store. Cache
// failures degrade to the inner lookup and never surface to callers.
type CachedStore struct {
	inner  Store
	cache  KeyedCache
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedStore(inner Store, cache KeyedCache, ttl time.Duration, logger *zap.Logger) *CachedStore {
	return &CachedStore{
		inner:  inner,
		cache:  cache,
		ttl:    ttl,
		logger: logger,
	}
}

func (s *CachedStore) Lookup(ctx context.Context, documentID string) (*domain.MetadataRecord, error) {
	key := constants.MetadataCacheKeyPrefix + documentID

	var cached domain.MetadataRecord
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.logger.Warn("Metadata cache read failed, falling through to store",
			zap.String("key", key),
			zap.Error(err),
		)
	} else if found {
		s.logger.Debug("Metadata cache hit", zap.String("key", key))
		return &cached, nil
	}

	record, err := s.inner.Lookup(ctx, documentID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, record, s.ttl); err != nil {
		s.logger.Warn("Metadata cache write failed",
			zap.String("key", key),
			zap.Error(err),
		)
	}

	return record, nil
}
