package pipeline

import (
	"testing"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

func TestSelectContextTopChunk(t *testing.T) {
	result := &domain.GenerationResult{
		Answer: "the answer",
		Chunks: []domain.GroundingChunk{
			{DocumentID: "episode-12.txt", Excerpt: "[00:01:05] intro"},
			{DocumentID: "episode-07.txt", Excerpt: "[00:09:00] other"},
		},
	}

	docID, excerpt := SelectContext(result, zap.NewNop())

	if docID != "episode-12.txt" {
		t.Errorf("expected rank-0 document id, got %q", docID)
	}
	if excerpt != "[00:01:05] intro" {
		t.Errorf("expected rank-0 excerpt, got %q", excerpt)
	}
}

func TestSelectContextDegenerate(t *testing.T) {
	tests := []struct {
		name   string
		result *domain.GenerationResult
	}{
		{"nil result", nil},
		{"empty chunk list", &domain.GenerationResult{Answer: "a"}},
		{"chunk missing document id", &domain.GenerationResult{
			Chunks: []domain.GroundingChunk{{Excerpt: "[00:01:05] intro"}},
		}},
		{"chunk missing excerpt", &domain.GenerationResult{
			Chunks: []domain.GroundingChunk{{DocumentID: "episode-12.txt"}},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docID, excerpt := SelectContext(tt.result, zap.NewNop())
			if docID != "unknown" || excerpt != "unknown" {
				t.Errorf("expected sentinel pair, got (%q, %q)", docID, excerpt)
			}
		})
	}
}
