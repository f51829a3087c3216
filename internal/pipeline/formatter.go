package pipeline

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/zazencodes/zazenbot5k-go/internal/domain"
)

// videoHostMarkers is the allow-list of substrings identifying URLs that
// accept a t=<seconds>s deep-link parameter. "youtu" covers both youtube.com
// and youtu.be.
var videoHostMarkers = []string{"youtu"}

// clockPattern tolerates non-zero-padded components when converting a
// timestamp to seconds.
var clockPattern = regexp.MustCompile(`(\d+):(\d+):(\d+)`)

// FormatResponse assembles the final user-facing string from the generated
// answer, optional metadata, and the resolved timestamp.
func FormatResponse(answer string, metadata *domain.MetadataRecord, timestamp string, logger *zap.Logger) string {
	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\n")

	if metadata == nil {
		logger.Warn("No additional metadata found for this content")
		return b.String()
	}

	title := metadata.Title
	if title == "" {
		title = "N/A"
	}

	logger.Info("Adding metadata to response", zap.String("title", title))
	b.WriteString("🍿Source video:\n")
	b.WriteString(title)
	b.WriteString("\n")

	url := metadata.URL
	if url == "" {
		url = "N/A"
	}

	if isVideoHostURL(url) && timestamp != domain.TimestampSentinel {
		if seconds, ok := timestampToSeconds(timestamp); ok {
			logger.Info("Adding timestamp to URL",
				zap.String("timestamp", timestamp),
				zap.Int("seconds", seconds),
			)
			url = appendTimestampParam(url, seconds)
		} else {
			logger.Warn("Failed to parse timestamp format", zap.String("timestamp", timestamp))
		}
	}

	b.WriteString(url)

	if metadata.SourceCodeURL != "" {
		b.WriteString("\n\n💾Source Code: ")
		b.WriteString(metadata.SourceCodeURL)
	}

	return b.String()
}

func isVideoHostURL(url string) bool {
	for _, marker := range videoHostMarkers {
		if strings.Contains(url, marker) {
			return true
		}
	}
	return false
}

// timestampToSeconds converts HH:MM:SS to a total second count, matching the
// first clock-shaped substring so unpadded components still parse.
func timestampToSeconds(timestamp string) (int, bool) {
	m := clockPattern.FindStringSubmatch(timestamp)
	if m == nil {
		return 0, false
	}

	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	seconds, _ := strconv.Atoi(m[3])
	return hours*3600 + minutes*60 + seconds, true
}

func appendTimestampParam(url string, seconds int) string {
	sep := "?"
	if strings.Contains(url, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%st=%ds", url, sep, seconds)
}
