// fetch_metadata scrapes a video page for its title and writes the info.json
// skeleton the uploader expects. The source-code URL, when one exists for the
// video, is filled in by hand afterwards.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

const (
	userAgent      = "Mozilla/5.0 (compatible; ZazenBot/1.0)"
	requestTimeout = 15 * time.Second
)

func main() {
	videoURL := flag.String("url", "", "video page URL to scrape")
	outputPath := flag.String("out", "info.json", "output path for the metadata document")
	flag.Parse()

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	if *videoURL == "" {
		logger.Fatal("-url is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	title, err := fetchTitle(ctx, *videoURL)
	if err != nil {
		logger.Fatal("failed to fetch video title", zap.Error(err))
	}

	record := domain.MetadataRecord{
		Title: title,
		URL:   *videoURL,
	}

	if err := writeRecord(*outputPath, &record); err != nil {
		logger.Fatal("failed to write metadata document", zap.Error(err))
	}

	logger.Info("Metadata document written",
		zap.String("title", title),
		zap.String("path", *outputPath),
	)
}

func fetchTitle(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	client := &http.Client{Timeout: requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d for %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	if title, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title), nil
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("no title found at %s", pageURL)
	}
	return title, nil
}

func writeRecord(path string, record *domain.MetadataRecord) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, append(data, '\n'), 0644)
}
