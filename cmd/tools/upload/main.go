// upload mirrors per-video metadata folders into the archive bucket. Each
// folder contributes four objects:
//
//	<dir>/<name>/info.json               -> yt-rag/info/<name>.json
//	<dir>/<name>/summary.md              -> yt-rag/summary/<name>.md
//	<dir>/<name>/transcript_text.txt     -> yt-rag/transcript-text/<name>.txt
//	<dir>/<name>/transcript_markers.txt  -> yt-rag/transcript-markers/<name>.txt
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/config"
	"github.com/zazencodes/zazenbot5k-go/internal/constants"
)

const uploadConcurrency = 8

type uploadSpec struct {
	localPath string
	blobName  string
}

func main() {
	inputDir := flag.String("dir", "videos", "directory of per-video folders")
	onlyFolder := flag.String("folder", "", "exact folder name to process (default: all folders)")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	ctx := context.Background()
	client, err := storage.NewClient(ctx)
	if err != nil {
		logger.Fatal("failed to create storage client", zap.Error(err))
	}
	defer client.Close()

	folders, err := collectFolders(*inputDir, *onlyFolder)
	if err != nil {
		logger.Fatal("failed to list folders", zap.Error(err))
	}
	if len(folders) == 0 {
		logger.Fatal("no folders to process", zap.String("dir", *inputDir))
	}

	var specs []uploadSpec
	for _, folder := range folders {
		name := filepath.Base(folder)
		specs = append(specs,
			uploadSpec{filepath.Join(folder, "info.json"), fmt.Sprintf("%s/%s.json", constants.GCSInfoPrefix, name)},
			uploadSpec{filepath.Join(folder, "summary.md"), fmt.Sprintf("%s/%s.md", constants.GCSSummaryPrefix, name)},
			uploadSpec{filepath.Join(folder, "transcript_text.txt"), fmt.Sprintf("%s/%s.txt", constants.GCSTranscriptTextPrefix, name)},
			uploadSpec{filepath.Join(folder, "transcript_markers.txt"), fmt.Sprintf("%s/%s.txt", constants.GCSTranscriptMarkersPrefix, name)},
		)
	}

	bucket := client.Bucket(cfg.GCP.Bucket)

	p := pool.New().WithMaxGoroutines(uploadConcurrency).WithErrors()
	for _, spec := range specs {
		p.Go(func() error {
			logger.Info("Uploading", zap.String("blob", spec.blobName))
			return uploadFile(ctx, bucket, spec)
		})
	}

	if err := p.Wait(); err != nil {
		logger.Fatal("upload failed", zap.Error(err))
	}

	logger.Info("Upload complete",
		zap.Int("folders", len(folders)),
		zap.Int("objects", len(specs)),
	)
}

func collectFolders(inputDir, only string) ([]string, error) {
	if only != "" {
		path := filepath.Join(inputDir, only)
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", path)
		}
		return []string{path}, nil
	}

	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return nil, err
	}

	var folders []string
	for _, entry := range entries {
		if entry.IsDir() {
			folders = append(folders, filepath.Join(inputDir, entry.Name()))
		}
	}
	return folders, nil
}

func uploadFile(ctx context.Context, bucket *storage.BucketHandle, spec uploadSpec) error {
	data, err := os.ReadFile(spec.localPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", spec.localPath, err)
	}

	w := bucket.Object(spec.blobName).NewWriter(ctx)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fmt.Errorf("write %s: %w", spec.blobName, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("finalize %s: %w", spec.blobName, err)
	}
	return nil
}
