package constants

import "time"

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    1 * time.Hour, // 429-specific backoff
	HealthCheckInterval: 10 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}

var AIInputLimits = struct {
	MaxQuestionLength int
}{
	MaxQuestionLength: 500,
}

// GCS object layout under the archive bucket. Corpus imports read
// transcript markers; the metadata resolver reads info documents.
const (
	GCSInfoPrefix              = "yt-rag/info"
	GCSSummaryPrefix           = "yt-rag/summary"
	GCSTranscriptTextPrefix    = "yt-rag/transcript-text"
	GCSTranscriptMarkersPrefix = "yt-rag/transcript-markers"
)

// MetadataCacheKeyPrefix namespaces resolved metadata records in Redis.
const MetadataCacheKeyPrefix = "zazenbot:meta:"
