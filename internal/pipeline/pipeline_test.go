package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

type fakeRetriever struct {
	result   *domain.GenerationResult
	err      error
	personas []domain.Persona
}

func (f *fakeRetriever) Retrieve(_ context.Context, _ string, persona domain.Persona) (*domain.GenerationResult, error) {
	f.personas = append(f.personas, persona)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestPipeline(retriever Retriever, completer Completer, store MetadataStore) *Pipeline {
	logger := zap.NewNop()
	return New(
		retriever,
		NewTimestampExtractor(completer, logger),
		NewMetadataResolver(store, logger),
		logger,
	)
}

func TestAnswerHappyPath(t *testing.T) {
	retriever := &fakeRetriever{
		result: &domain.GenerationResult{
			Answer: "The main point is X.",
			Chunks: []domain.GroundingChunk{
				{
					DocumentID: "ep-1.txt",
					Excerpt:    "[00:01:05] intro section [00:12:30] main point section",
				},
			},
		},
	}
	completer := &fakeCompleter{reply: "00:12:30"}
	store := &fakeStore{record: &domain.MetadataRecord{
		Title: "Ep 1",
		URL:   "https://youtu.be/abc",
	}}

	p := newTestPipeline(retriever, completer, store)

	got, err := p.Answer(context.Background(), domain.Question{Text: "what's the main point"})
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}

	want := "The main point is X.\n🍿Source video:\nEp 1\nhttps://youtu.be/abc?t=750s"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if len(store.keys) != 1 || store.keys[0] != "ep-1" {
		t.Errorf("expected metadata lookup for ep-1, got %v", store.keys)
	}
}

func TestAnswerRetrieveFailurePropagates(t *testing.T) {
	retriever := &fakeRetriever{err: errors.New("vertex unreachable")}
	p := newTestPipeline(retriever, &fakeCompleter{}, &fakeStore{})

	_, err := p.Answer(context.Background(), domain.Question{Text: "q"})
	if err == nil {
		t.Fatal("expected error when retrieval fails")
	}
	if !strings.Contains(err.Error(), "vertex unreachable") {
		t.Errorf("expected original message preserved, got %v", err)
	}
}

func TestAnswerEmptyGrounding(t *testing.T) {
	retriever := &fakeRetriever{
		result: &domain.GenerationResult{Answer: "best effort answer"},
	}
	completer := &fakeCompleter{}
	store := &fakeStore{err: errors.New("object not found")}

	p := newTestPipeline(retriever, completer, store)

	got, err := p.Answer(context.Background(), domain.Question{Text: "q"})
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}

	if got != "best effort answer\n" {
		t.Errorf("expected answer-only response, got %q", got)
	}
	if len(completer.prompts) != 0 {
		t.Error("sentinel excerpt must not trigger a disambiguation call")
	}
	if len(store.keys) != 1 || store.keys[0] != "unknown" {
		t.Errorf("expected lookup of sentinel id, got %v", store.keys)
	}
}

func TestAnswerForwardsPersona(t *testing.T) {
	retriever := &fakeRetriever{
		result: &domain.GenerationResult{Answer: "a"},
	}
	p := newTestPipeline(retriever, &fakeCompleter{}, &fakeStore{err: errors.New("miss")})

	_, err := p.Answer(context.Background(), domain.Question{
		Text:    "q",
		Persona: domain.PersonaPolitician,
	})
	if err != nil {
		t.Fatalf("Answer returned error: %v", err)
	}

	if len(retriever.personas) != 1 || retriever.personas[0] != domain.PersonaPolitician {
		t.Errorf("expected persona forwarded to retriever, got %v", retriever.personas)
	}
}
