package domain

// GroundingChunk is one retrieved transcript passage backing a generated
// answer. DocumentID keys the external metadata record; Excerpt may contain
// zero or more inline [HH:MM:SS] markers.
type GroundingChunk struct {
	DocumentID string
	Excerpt    string
}

// GenerationResult is what the RAG engine returns for one question. Chunks
// are ordered by relevance; index 0 is the best match. The slice may be empty
// when the corpus produced no grounding for the answer.
type GenerationResult struct {
	Answer string
	Chunks []GroundingChunk
}
