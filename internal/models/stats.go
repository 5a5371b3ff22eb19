// ABOUTME: CorpusStats summarizes one tenant's stored vectors
// ABOUTME: Computed by an explicit scan-and-reduce, never by the storage engine
package models

import "time"

// CorpusStats holds summary statistics for one tenant's corpus.
//
// EmbeddingDimension is taken from the first record scanned; the aggregator
// does not verify that every record shares it. A corpus with mixed
// dimensionalities (e.g. after an embedding-model change) reports a
// misleading dimension, and cross-dimension similarity scores are zero.
type CorpusStats struct {
	TotalVectors       int       `json:"total_vectors"`
	TotalContentLength int       `json:"total_content_length"`
	AvgContentLength   float64   `json:"avg_content_length"`
	SourceTypes        []string  `json:"source_types"`
	Categories         []string  `json:"categories"`
	EmbeddingDimension int       `json:"embedding_dimension"`
	OldestVector       time.Time `json:"oldest_vector,omitzero"`
	NewestVector       time.Time `json:"newest_vector,omitzero"`
}
