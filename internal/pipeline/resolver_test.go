package pipeline

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

type fakeStore struct {
	record *domain.MetadataRecord
	err    error
	keys   []string
}

func (f *fakeStore) Lookup(_ context.Context, documentID string) (*domain.MetadataRecord, error) {
	f.keys = append(f.keys, documentID)
	if f.err != nil {
		return nil, f.err
	}
	return f.record, nil
}

func TestResolveStripsExtension(t *testing.T) {
	store := &fakeStore{record: &domain.MetadataRecord{Title: "Ep 1"}}
	resolver := NewMetadataResolver(store, zap.NewNop())

	got := resolver.Resolve(context.Background(), "episode-12.txt")

	if got == nil || got.Title != "Ep 1" {
		t.Fatalf("expected record back, got %+v", got)
	}
	if len(store.keys) != 1 || store.keys[0] != "episode-12" {
		t.Errorf("expected lookup with stripped id, got %v", store.keys)
	}
}

func TestResolveNoExtension(t *testing.T) {
	store := &fakeStore{record: &domain.MetadataRecord{Title: "Ep 1"}}
	resolver := NewMetadataResolver(store, zap.NewNop())

	resolver.Resolve(context.Background(), "episode-12")

	if len(store.keys) != 1 || store.keys[0] != "episode-12" {
		t.Errorf("unexpected lookup keys: %v", store.keys)
	}
}

func TestResolveStoreFailure(t *testing.T) {
	store := &fakeStore{err: errors.New("object not found")}
	resolver := NewMetadataResolver(store, zap.NewNop())

	if got := resolver.Resolve(context.Background(), "unknown"); got != nil {
		t.Errorf("store failure must resolve to absent metadata, got %+v", got)
	}
}
