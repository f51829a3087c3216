package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type fakeCompleter struct {
	reply   string
	err     error
	prompts []string
}

func (f *fakeCompleter) Complete(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestExtractNoMarkers(t *testing.T) {
	completer := &fakeCompleter{}
	extractor := NewTimestampExtractor(completer, zap.NewNop())

	got := extractor.Extract(context.Background(), "no timestamps in here at all", "question")

	if got != "00:00:00" {
		t.Errorf("expected sentinel, got %q", got)
	}
	if len(completer.prompts) != 0 {
		t.Errorf("completer should not be called for zero markers, got %d calls", len(completer.prompts))
	}
}

func TestExtractSingleMarker(t *testing.T) {
	completer := &fakeCompleter{}
	extractor := NewTimestampExtractor(completer, zap.NewNop())

	got := extractor.Extract(context.Background(), "[00:03:52] the one section", "question")

	if got != "00:03:52" {
		t.Errorf("expected 00:03:52, got %q", got)
	}
	if len(completer.prompts) != 0 {
		t.Errorf("completer should not be called for a single marker, got %d calls", len(completer.prompts))
	}
}

func TestExtractMultipleMarkers(t *testing.T) {
	excerpt := "[00:01:05] intro to the video [00:12:30] main point discussion [00:25:00] outro"

	tests := []struct {
		name  string
		reply string
		err   error
		want  string
	}{
		{
			name:  "model picks a candidate from the set",
			reply: "00:12:30",
			want:  "00:12:30",
		},
		{
			name:  "model reply wrapped in prose",
			reply: "The most relevant timestamp is 00:25:00.",
			want:  "00:25:00",
		},
		{
			name:  "hallucinated timestamp falls back to first",
			reply: "00:59:59",
			want:  "00:01:05",
		},
		{
			name:  "reply without any timestamp falls back to first",
			reply: "I am not sure which section is most relevant.",
			want:  "00:01:05",
		},
		{
			name: "completer failure falls back to first",
			err:  errors.New("model unavailable"),
			want: "00:01:05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			completer := &fakeCompleter{reply: tt.reply, err: tt.err}
			extractor := NewTimestampExtractor(completer, zap.NewNop())

			got := extractor.Extract(context.Background(), excerpt, "what's the main point")

			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if len(completer.prompts) != 1 {
				t.Fatalf("expected exactly one completer call, got %d", len(completer.prompts))
			}
		})
	}
}

func TestExtractPromptCarriesQuestionAndExcerpt(t *testing.T) {
	excerpt := "[00:01:05] intro [00:12:30] main point"
	completer := &fakeCompleter{reply: "00:12:30"}
	extractor := NewTimestampExtractor(completer, zap.NewNop())

	extractor.Extract(context.Background(), excerpt, "what's the main point")

	if len(completer.prompts) != 1 {
		t.Fatalf("expected one completer call, got %d", len(completer.prompts))
	}
	prompt := completer.prompts[0]
	for _, fragment := range []string{"what's the main point", excerpt} {
		if !strings.Contains(prompt, fragment) {
			t.Errorf("prompt missing %q", fragment)
		}
	}
}
