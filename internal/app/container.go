package app

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/zazencodes/zazenbot5k-go/internal/config"
	"github.com/zazencodes/zazenbot5k-go/internal/pipeline"
	"github.com/zazencodes/zazenbot5k-go/internal/server"
	"github.com/zazencodes/zazenbot5k-go/internal/service/ai"
	"github.com/zazencodes/zazenbot5k-go/internal/service/cache"
	"github.com/zazencodes/zazenbot5k-go/internal/service/metadata"
)

// Container bundles the assembled services behind the HTTP boundary.
type Container struct {
	Config   *config.Config
	Logger   *zap.Logger
	Pipeline *pipeline.Pipeline
	Server   *server.Server

	closers []func()
}

// Close releases held clients in reverse construction order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}

// Build assembles all infrastructure services. Heavy-weight initialization
// (GCS, Redis, genai clients) happens here so the pipeline stays focused on
// orchestration logic.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// Model clients
	genaiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  cfg.GCP.ProjectID,
		Location: cfg.GCP.Location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	ragEngine, err := ai.NewRAGEngine(genaiClient, ai.RAGEngineConfig{
		Model:          cfg.Gemini.Model,
		CorpusName:     cfg.RAG.CorpusName,
		SimilarityTopK: cfg.RAG.SimilarityTopK,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create RAG engine: %w", err)
	}

	geminiProvider := ai.NewGeminiProvider(genaiClient, cfg.Gemini.Model, logger)

	var fallback ai.TextProvider
	if cfg.OpenAI.EnableFallback {
		if openaiProvider := ai.NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.Model, logger); openaiProvider != nil {
			fallback = openaiProvider
		}
	}
	completions := ai.NewCompletionService(geminiProvider, fallback, logger)

	// Metadata store, optionally fronted by the Redis keyed cache
	storageClient, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	closers = append(closers, func() {
		_ = storageClient.Close()
	})

	gcsStore, err := metadata.NewGCSStore(storageClient, cfg.GCP.Bucket, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata store: %w", err)
	}

	var store metadata.Store = gcsStore
	if cfg.Redis.Enabled {
		cacheSvc, cacheErr := cache.NewCacheService(cache.CacheConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, logger)
		if cacheErr != nil {
			return nil, fmt.Errorf("failed to create cache service: %w", cacheErr)
		}
		closers = append(closers, func() {
			_ = cacheSvc.Close()
		})
		store = metadata.NewCachedStore(gcsStore, cacheSvc, cfg.Redis.MetadataTTL, logger)
	}

	// Pipeline and boundary
	p := pipeline.New(
		ragEngine,
		pipeline.NewTimestampExtractor(completions, logger),
		pipeline.NewMetadataResolver(store, logger),
		logger,
	)

	srv := server.New(cfg.ServerAddr(), p, logger)

	return &Container{
		Config:   cfg,
		Logger:   logger,
		Pipeline: p,
		Server:   srv,
		closers:  closers,
	}, nil
}
