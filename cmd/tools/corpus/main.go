// corpus manages the Vertex AI RAG corpus behind the bot:
//
//	corpus create   create a new corpus for video transcripts
//	corpus delete   delete the configured corpus
//	corpus import   import transcript-marker files from the archive bucket
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/oauth2/google"
	aiplatform "google.golang.org/api/aiplatform/v1"
	"google.golang.org/api/option"

	"github.com/zazencodes/zazenbot5k-go/internal/config"
	"github.com/zazencodes/zazenbot5k-go/internal/constants"
)

const (
	corpusDisplayName = "zazenbot-5000-video-transcripts"
	corpusDescription = "Transcripts and other metadata for ZazenCodes YouTube videos"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: corpus [create|delete|import]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()

	// Fail early with a readable message when ADC is not set up.
	if _, err := google.FindDefaultCredentials(ctx, aiplatform.CloudPlatformScope); err != nil {
		logger.Fatal("application default credentials unavailable", zap.Error(err))
	}

	endpoint := fmt.Sprintf("https://%s-aiplatform.googleapis.com/", cfg.GCP.Location)
	svc, err := aiplatform.NewService(ctx, option.WithEndpoint(endpoint))
	if err != nil {
		logger.Fatal("failed to create aiplatform service", zap.Error(err))
	}

	switch command {
	case "create":
		err = createCorpus(svc, cfg, logger)
	case "delete":
		err = deleteCorpus(svc, cfg, logger)
	case "import":
		err = importFiles(svc, cfg, logger)
	default:
		flag.Usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Fatal("corpus command failed", zap.String("command", command), zap.Error(err))
	}
}

func createCorpus(svc *aiplatform.Service, cfg *config.Config, logger *zap.Logger) error {
	parent := fmt.Sprintf("projects/%s/locations/%s", cfg.GCP.ProjectID, cfg.GCP.Location)

	op, err := svc.Projects.Locations.RagCorpora.Create(parent, &aiplatform.GoogleCloudAiplatformV1RagCorpus{
		DisplayName: corpusDisplayName,
		Description: corpusDescription,
	}).Do()
	if err != nil {
		return fmt.Errorf("create corpus: %w", err)
	}

	logger.Info("Corpus creation started",
		zap.String("parent", parent),
		zap.String("operation", op.Name),
	)
	return nil
}

func deleteCorpus(svc *aiplatform.Service, cfg *config.Config, logger *zap.Logger) error {
	op, err := svc.Projects.Locations.RagCorpora.Delete(cfg.RAG.CorpusName).Do()
	if err != nil {
		return fmt.Errorf("delete corpus: %w", err)
	}

	logger.Info("Corpus deleted",
		zap.String("corpus", cfg.RAG.CorpusName),
		zap.String("operation", op.Name),
	)
	return nil
}

func importFiles(svc *aiplatform.Service, cfg *config.Config, logger *zap.Logger) error {
	sourceURI := fmt.Sprintf("gs://%s/%s", cfg.GCP.Bucket, constants.GCSTranscriptMarkersPrefix)

	req := &aiplatform.GoogleCloudAiplatformV1ImportRagFilesRequest{
		ImportRagFilesConfig: &aiplatform.GoogleCloudAiplatformV1ImportRagFilesConfig{
			GcsSource: &aiplatform.GoogleCloudAiplatformV1GcsSource{
				Uris: []string{sourceURI},
			},
			RagFileTransformationConfig: &aiplatform.GoogleCloudAiplatformV1RagFileTransformationConfig{
				RagFileChunkingConfig: &aiplatform.GoogleCloudAiplatformV1RagFileChunkingConfig{
					FixedLengthChunking: &aiplatform.GoogleCloudAiplatformV1RagFileChunkingConfigFixedLengthChunking{
						ChunkSize:    int64(cfg.RAG.ChunkSize),
						ChunkOverlap: int64(cfg.RAG.ChunkOverlap),
					},
				},
			},
		},
	}

	op, err := svc.Projects.Locations.RagCorpora.RagFiles.Import(cfg.RAG.CorpusName, req).Do()
	if err != nil {
		return fmt.Errorf("import rag files: %w", err)
	}

	logger.Info("Import started",
		zap.String("corpus", cfg.RAG.CorpusName),
		zap.String("source", sourceURI),
		zap.String("operation", op.Name),
	)
	return nil
}
