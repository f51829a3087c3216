package ai

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
	"github.com/zazencodes/zazenbot5k-go/internal/prompt"
)

// RAGEngine answers questions grounded in the video-transcript corpus. It
// attaches a Vertex RAG retrieval tool to the generation call and maps the
// grounding metadata on the response into domain chunks.
type RAGEngine struct {
	client     *genai.Client
	model      string
	corpusName string
	topK       int32
	logger     *zap.Logger
}

type RAGEngineConfig struct {
	Model          string
	CorpusName     string
	SimilarityTopK int
}

func NewRAGEngine(client *genai.Client, cfg RAGEngineConfig, logger *zap.Logger) (*RAGEngine, error) {
	if client == nil {
		return nil, fmt.Errorf("genai client is required")
	}
	if cfg.CorpusName == "" {
		return nil, fmt.Errorf("rag corpus name is required")
	}

	return &RAGEngine{
		client:     client,
		model:      cfg.Model,
		corpusName: cfg.CorpusName,
		topK:       int32(cfg.SimilarityTopK),
		logger:     logger,
	}, nil
}

// Retrieve runs one grounded generation. Failures here are the only fatal
// condition in the pipeline and propagate to the API boundary.
func (r *RAGEngine) Retrieve(ctx context.Context, question string, persona domain.Persona) (*domain.GenerationResult, error) {
	r.logger.Info("Sending question to RAG corpus",
		zap.String("model", r.model),
		zap.Int32("top_k", r.topK),
	)

	topK := r.topK
	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{
				Retrieval: &genai.Retrieval{
					VertexRAGStore: &genai.VertexRAGStore{
						RAGResources: []*genai.VertexRAGStoreRAGResource{
							{RAGCorpus: r.corpusName},
						},
						SimilarityTopK: &topK,
					},
				},
			},
		},
	}

	if directive := prompt.PersonaDirective(persona); directive != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: directive}},
		}
	}

	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(question), config)
	if err != nil {
		r.logger.Error("RAG generation failed", zap.Error(err))
		return nil, err
	}

	result := &domain.GenerationResult{
		Answer: resp.Text(),
		Chunks: groundingChunks(resp),
	}

	r.logger.Info("RAG response received",
		zap.Int("answer_length", len(result.Answer)),
		zap.Int("grounding_chunks", len(result.Chunks)),
	)

	return result, nil
}

// groundingChunks flattens the retrieval grounding on a response, preserving
// rank order. Chunks without retrieved context are skipped.
func groundingChunks(resp *genai.GenerateContentResponse) []domain.GroundingChunk {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}

	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return nil
	}

	chunks := make([]domain.GroundingChunk, 0, len(meta.GroundingChunks))
	for _, gc := range meta.GroundingChunks {
		if gc == nil || gc.RetrievedContext == nil {
			continue
		}
		chunks = append(chunks, domain.GroundingChunk{
			DocumentID: gc.RetrievedContext.Title,
			Excerpt:    gc.RetrievedContext.Text,
		})
	}

	return chunks
}
