// ABOUTME: VectorRecord is the unit of storage: one content chunk with its embedding
// ABOUTME: Defines source metadata, tenant scoping, and record validation
package models

import (
	"fmt"
	"math"
	"time"
	"unicode/utf8"
)

// MaxContentLength is the practical ceiling on chunk content, in characters.
const MaxContentLength = 50000

// SourceType identifies where ingested content came from
type SourceType string

const (
	SourceURL      SourceType = "url"
	SourceDocument SourceType = "document"
	SourceText     SourceType = "text"
	SourceFile     SourceType = "file"
)

// Valid reports whether the source type is one of the known values
func (st SourceType) Valid() bool {
	switch st {
	case SourceURL, SourceDocument, SourceText, SourceFile:
		return true
	}
	return false
}

// Source describes the provenance of a record's content.
// ChunkIndex/TotalChunks are set by the ingestion pipeline when the
// original submission was split; TotalChunks == 0 means no chunking
// metadata is present.
type Source struct {
	Type           SourceType `json:"type"`
	URL            string     `json:"url,omitempty"`
	Title          string     `json:"title,omitempty"`
	Category       string     `json:"category,omitempty"`
	ChunkIndex     int        `json:"chunk_index"`
	TotalChunks    int        `json:"total_chunks,omitempty"`
	OriginalLength int        `json:"original_length,omitempty"`
}

// VectorRecord is one stored chunk: content, embedding, and tenant scoping.
// Records are immutable once committed apart from content/metadata edits.
type VectorRecord struct {
	ID          string         `json:"id"`
	AgentID     string         `json:"agent_id"`
	CompanyID   string         `json:"company_id"`
	Content     string         `json:"content"`
	Embedding   []float64      `json:"embedding"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	Source      Source         `json:"source"`
	ContentHash string         `json:"content_hash,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// Validate checks the record against storage invariants.
// Returns a *ValidationError describing the first violation found.
func (r *VectorRecord) Validate() error {
	if r.AgentID == "" {
		return &ValidationError{Field: "agent_id", Reason: "must not be empty"}
	}
	if r.CompanyID == "" {
		return &ValidationError{Field: "company_id", Reason: "must not be empty"}
	}
	if r.Content == "" {
		return &ValidationError{Field: "content", Reason: "must not be empty"}
	}
	if n := utf8.RuneCountInString(r.Content); n > MaxContentLength {
		return &ValidationError{Field: "content", Reason: fmt.Sprintf("length %d exceeds maximum %d", n, MaxContentLength)}
	}
	if len(r.Embedding) == 0 {
		return &ValidationError{Field: "embedding", Reason: "must not be empty"}
	}
	for i, v := range r.Embedding {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return &ValidationError{Field: "embedding", Reason: fmt.Sprintf("element %d is not finite", i)}
		}
	}
	if !r.Source.Type.Valid() {
		return &ValidationError{Field: "source.type", Reason: fmt.Sprintf("unknown source type %q", r.Source.Type)}
	}
	if r.Source.TotalChunks > 0 {
		if r.Source.ChunkIndex < 0 || r.Source.ChunkIndex >= r.Source.TotalChunks {
			return &ValidationError{
				Field:  "source.chunk_index",
				Reason: fmt.Sprintf("index %d out of range [0, %d)", r.Source.ChunkIndex, r.Source.TotalChunks),
			}
		}
	}
	return nil
}
