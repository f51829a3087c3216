package domain

// TimestampSentinel marks an unknown video offset. Stages that cannot
// determine a timestamp return it instead of failing.
const TimestampSentinel = "00:00:00"

// MetadataRecord describes one archived video. Records live in object storage
// as JSON documents keyed by document id; a missing record is an expected
// state, not an error.
type MetadataRecord struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	SourceCodeURL string `json:"source_code_url,omitempty"`
}
