// ABOUTME: Per-chunk ingestion outcomes and ranked search results
// ABOUTME: Ingestion always reports per-chunk status, never one opaque result
package models

import "time"

// ChunkStatus is the outcome of ingesting a single chunk
type ChunkStatus string

const (
	ChunkCreated          ChunkStatus = "created"
	ChunkSkippedDuplicate ChunkStatus = "skipped-duplicate"
	ChunkFailedValidation ChunkStatus = "failed-validation"
	ChunkFailedEmbedding  ChunkStatus = "failed-embedding"
)

// ChunkResult reports what happened to one chunk of an ingestion call.
// For skipped-duplicate, ID is the existing record's identifier.
type ChunkResult struct {
	ID         string      `json:"id,omitempty"`
	ChunkIndex int         `json:"chunk_index"`
	Status     ChunkStatus `json:"status"`
	Error      string      `json:"error,omitempty"`
}

// Skipped reports whether the chunk was deduplicated rather than stored
func (r ChunkResult) Skipped() bool {
	return r.Status == ChunkSkippedDuplicate
}

// SearchResult is one ranked hit from a similarity search
type SearchResult struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Score     float64        `json:"score"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Source    Source         `json:"source"`
	CreatedAt time.Time      `json:"created_at"`
}
